package migration

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/retailpos/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add sales index", "add_sales_index"},
		{"Add-Sales-Index", "add_sales_index"},
		{"ADD__SALES__INDEX", "add_sales_index"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000004_create_sales.up.sql"), []byte("--"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000004_create_sales.down.sql"), []byte("--"), 0o644))

	mf, err := CreateMigration(dir, "Add sale notes", "Free text notes on sales")
	require.NoError(t, err)

	assert.Equal(t, uint(5), mf.Version)
	assert.Equal(t, filepath.Join(dir, "000005_add_sale_notes.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "000005_add_sale_notes.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: add_sale_notes")
	assert.Contains(t, string(up), "-- Description: Free text notes on sales")
	assert.NotContains(t, string(up), "Rollback")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(Rollback)")
}

func TestCreateMigration_NewDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	mf, err := CreateMigration(dir, "init", "")
	require.NoError(t, err)
	assert.Equal(t, uint(1), mf.Version)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_b.up.sql":   {},
		"000002_b.down.sql": {},
		"000001_a.up.sql":   {},
		"000001_a.down.sql": {},
		"README.md":         {},
		"dir.up.sql/x":      {},
	}

	names, err := ListMigrations(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_a", "000002_b"}, names)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	names, err := ListMigrations(os.DirFS("/nonexistent/path/to/migrations"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "000001_create_products", names[0])

	for _, name := range names {
		_, err := migrations.FS.Open(name + ".down.sql")
		assert.NoError(t, err, "%s has no rollback", name)
	}
	assert.Equal(t, uint(len(names)+1), nextVersion(names))
}
