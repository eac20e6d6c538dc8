package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPaymentRepository_ExistsByTransactionID_Mock(t *testing.T) {
	db, mock := newMockGormDB(t)
	repo := NewGormPaymentRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "payments" WHERE transaction_id = \$1`).
		WithArgs("TX-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByTransactionID(context.Background(), "TX-1", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPaymentRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := NewGormPaymentRepository(newSQLiteDB(t))
	customerID := uuid.New()

	card, err := finance.NewPayment("TX-100", "ORD-1", customerID, decimal.RequireFromString("10.00"), finance.PaymentMethodCard, finance.PaymentStatusCompleted)
	require.NoError(t, err)
	card.PaymentDate = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	cash, err := finance.NewPayment("TX-200", "ORD-2", uuid.New(), decimal.RequireFromString("7.25"), finance.PaymentMethodCash, finance.PaymentStatusPending)
	require.NoError(t, err)
	cash.PaymentDate = time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, card))
	require.NoError(t, repo.Save(ctx, cash))

	t.Run("newest first by default", func(t *testing.T) {
		items, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 10, Filters: map[string]any{}})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "TX-200", items[0].TransactionID)
	})

	t.Run("filters by customer", func(t *testing.T) {
		filter := shared.NewListFilter(1, 10, "", "", "", "payment_date")
		filter.Filters["customer_id"] = customerID
		items, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "TX-100", items[0].TransactionID)
		assert.True(t, decimal.RequireFromString("10.00").Equal(items[0].Amount))
	})

	t.Run("transaction id uniqueness excludes self", func(t *testing.T) {
		exists, err := repo.ExistsByTransactionID(ctx, "TX-100", card.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsByTransactionID(ctx, "TX-100", cash.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, cash.ID))
		assert.ErrorIs(t, repo.Delete(ctx, cash.ID), shared.ErrNotFound)
	})
}
