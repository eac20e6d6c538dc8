package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCustomer(t *testing.T, name, email string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(name, email)
	require.NoError(t, err)
	return c
}

func TestGormCustomerRepository_FindByID_Mock(t *testing.T) {
	db, mock := newMockGormDB(t)
	repo := NewGormCustomerRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "status", "total_purchases", "total_spent"}).
			AddRow(id.String(), "Ada", "ada@example.com", "active", 4, "120.50"))

	customer, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", customer.Name)
	assert.Equal(t, partner.CustomerStatusActive, customer.Status)
	assert.Equal(t, 4, customer.TotalPurchases)
	assert.True(t, decimal.RequireFromString("120.50").Equal(customer.TotalSpent))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCustomerRepository_FindByIDs_Empty(t *testing.T) {
	db, mock := newMockGormDB(t)
	repo := NewGormCustomerRepository(db)

	customers, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, customers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCustomerRepository_SQLite(t *testing.T) {
	ctx := context.Background()

	t.Run("save, reload and record a purchase", func(t *testing.T) {
		repo := NewGormCustomerRepository(newSQLiteDB(t))
		customer := newTestCustomer(t, "Grace", "grace@example.com")
		require.NoError(t, repo.Save(ctx, customer))

		visit := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
		require.NoError(t, customer.RecordPurchase(decimal.RequireFromString("19.99"), visit))
		require.NoError(t, repo.Save(ctx, customer))

		found, err := repo.FindByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, found.TotalPurchases)
		assert.True(t, decimal.RequireFromString("19.99").Equal(found.TotalSpent))
		require.NotNil(t, found.LastVisit)
		assert.Equal(t, "2026-03-14", found.LastVisit.Format("2006-01-02"))
	})

	t.Run("FindByIDs skips unknown ids", func(t *testing.T) {
		repo := NewGormCustomerRepository(newSQLiteDB(t))
		a := newTestCustomer(t, "A", "a@example.com")
		b := newTestCustomer(t, "B", "b@example.com")
		require.NoError(t, repo.Save(ctx, a))
		require.NoError(t, repo.Save(ctx, b))

		found, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("search and status filter", func(t *testing.T) {
		repo := NewGormCustomerRepository(newSQLiteDB(t))
		active := newTestCustomer(t, "Linus", "linus@example.com")
		inactive := newTestCustomer(t, "Ken", "ken@example.com")
		require.NoError(t, inactive.SetStatus(partner.CustomerStatusInactive))
		require.NoError(t, repo.Save(ctx, active))
		require.NoError(t, repo.Save(ctx, inactive))

		filter := shared.NewListFilter(1, 10, "", "", "", "created_at")
		filter.Filters["status"] = string(partner.CustomerStatusInactive)
		items, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Ken", items[0].Name)

		search := shared.NewListFilter(1, 10, "", "", "LINUS@", "created_at")
		count, err := repo.Count(ctx, search)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Delete cascades to sales and payments", func(t *testing.T) {
		db := newSQLiteDB(t)
		repo := NewGormCustomerRepository(db)
		sales := NewGormSaleRepository(db)
		payments := NewGormPaymentRepository(db)

		customer := newTestCustomer(t, "Barbara", "barbara@example.com")
		require.NoError(t, repo.Save(ctx, customer))
		sale, err := trade.NewSale(customer.ID, uuid.New(), 1, decimal.NewFromInt(5))
		require.NoError(t, err)
		require.NoError(t, sales.Save(ctx, sale))
		payment, err := finance.NewPaymentForSale(sale.ID, customer.ID, sale.TotalPrice, finance.PaymentMethodCard, time.Now())
		require.NoError(t, err)
		require.NoError(t, payments.Save(ctx, payment))

		require.NoError(t, repo.Delete(ctx, customer.ID))

		_, err = sales.FindByID(ctx, sale.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = payments.FindByID(ctx, payment.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, customer.ID), shared.ErrNotFound)
	})
}
