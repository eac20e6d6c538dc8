package partner

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates active customer with zero statistics", func(t *testing.T) {
		c, err := NewCustomer("Ada Lovelace", "ada@example.com")
		require.NoError(t, err)

		assert.Equal(t, CustomerStatusActive, c.Status)
		assert.Equal(t, 0, c.TotalPurchases)
		assert.True(t, c.TotalSpent.IsZero())
		assert.Nil(t, c.LastVisit)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewCustomer("Ada", "not-an-email")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email")
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCustomer("", "ada@example.com")
		require.Error(t, err)
	})
}

func TestCustomer_RecordPurchase(t *testing.T) {
	c, err := NewCustomer("Ada", "ada@example.com")
	require.NoError(t, err)

	at := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	require.NoError(t, c.RecordPurchase(decimal.RequireFromString("30.00"), at))
	require.NoError(t, c.RecordPurchase(decimal.RequireFromString("12.50"), at))

	assert.Equal(t, 2, c.TotalPurchases)
	assert.Equal(t, "42.50", c.TotalSpent.StringFixed(2))
	require.NotNil(t, c.LastVisit)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *c.LastVisit)

	assert.Error(t, c.RecordPurchase(decimal.NewFromInt(-1), at))
	assert.Equal(t, 2, c.TotalPurchases)
}

func TestCustomer_Update(t *testing.T) {
	c, err := NewCustomer("Ada", "ada@example.com")
	require.NoError(t, err)

	require.NoError(t, c.Update("Ada L.", "ada@example.org", "+1 555-0100", "1 Main St"))
	assert.Equal(t, "+1 555-0100", c.Phone)

	assert.Error(t, c.Update("Ada", "ada@example.org", "0123456789012345", ""))
	assert.Error(t, c.Update("Ada", "ada@example.org", "abc", ""))
}

func TestCustomer_SetStatus(t *testing.T) {
	c, err := NewCustomer("Ada", "ada@example.com")
	require.NoError(t, err)

	require.NoError(t, c.SetStatus(CustomerStatusInactive))
	assert.False(t, c.IsActive())
	assert.Error(t, c.SetStatus("suspended"))
}
