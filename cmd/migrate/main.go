// Command migrate manages the point-of-sale database schema.
package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/infrastructure/migration"
	"github.com/retailpos/backend/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	migrationsPath string
	logLevel       string
	log            *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Point-of-sale database migration tool",
	Long: `Applies the SQL schema with golang-migrate.

Migrations are read from the binary unless --path points at a directory.
Connection settings come from config.toml, .env and POS_DATABASE_* variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		log, err = logger.New(&logger.Config{
			Level:      logLevel,
			Format:     "console",
			Output:     "stdout",
			TimeFormat: "2006-01-02 15:04:05",
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if migrationsPath != "" {
			abs, err := filepath.Abs(migrationsPath)
			if err != nil {
				return fmt.Errorf("failed to resolve migrations path: %w", err)
			}
			migrationsPath = abs
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync(log)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "path", "", "migrations directory (default: embedded migrations)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(upCmd, downCmd, stepCmd, gotoCmd, versionCmd, forceCmd, dropCmd, createCmd, listCmd)
}

// withMigrator opens the database and runs fn with a migrator bound to it
func withMigrator(fn func(*migration.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	var m *migration.Migrator
	if migrationsPath != "" {
		log.Info("Using migrations directory", zap.String("path", migrationsPath))
		m, err = migration.New(db, migrationsPath, log)
	} else {
		m, err = migration.NewFromFS(db, migrations.FS, log)
	}
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}
