package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormReportQueryRepository_CompletedSalesTotals_Mock(t *testing.T) {
	db, mock := newMockGormDB(t)
	repo := NewGormReportQueryRepository(db)
	since := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_price\), 0\) AS revenue, COUNT\(\*\) AS count FROM "sales" WHERE payment_status = \$1 AND sale_date >= \$2`).
		WithArgs("completed", since).
		WillReturnRows(sqlmock.NewRows([]string{"revenue", "count"}).AddRow("150.255", 3))

	totals, err := repo.CompletedSalesTotals(context.Background(), &since)
	require.NoError(t, err)
	assert.Equal(t, int64(3), totals.Count)
	assert.True(t, decimal.RequireFromString("150.26").Equal(totals.Revenue))
	assert.NoError(t, mock.ExpectationsWereMet())
}

type reportFixture struct {
	db       *gorm.DB
	day      time.Time
	espresso uuid.UUID
}

func seedReportFixture(t *testing.T) reportFixture {
	t.Helper()
	ctx := context.Background()
	db := newSQLiteDB(t)
	products := NewGormProductRepository(db)
	customers := NewGormCustomerRepository(db)
	sales := NewGormSaleRepository(db)
	payments := NewGormPaymentRepository(db)
	day := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	espresso := newTestProduct(t, "Espresso", "3.00", 2, 5)
	require.NoError(t, espresso.Update("Espresso", "Coffee", "", ""))
	croissant := newTestProduct(t, "Croissant", "2.50", 40, 10)
	require.NoError(t, croissant.Update("Croissant", "Bakery", "", ""))
	require.NoError(t, products.Save(ctx, espresso))
	require.NoError(t, products.Save(ctx, croissant))

	active := newTestCustomer(t, "Active", "active@example.com")
	inactive := newTestCustomer(t, "Inactive", "inactive@example.com")
	require.NoError(t, inactive.SetStatus(partner.CustomerStatusInactive))
	active.CreatedAt = day.AddDate(0, 0, -10)
	inactive.CreatedAt = day.Add(2 * time.Hour)
	require.NoError(t, customers.Save(ctx, active))
	require.NoError(t, customers.Save(ctx, inactive))

	paid := []struct {
		product uuid.UUID
		qty     int
		price   string
		method  finance.PaymentMethod
		at      time.Time
	}{
		{espresso.ID, 4, "3.00", finance.PaymentMethodCash, day.Add(9 * time.Hour)},
		{espresso.ID, 1, "3.00", finance.PaymentMethodCard, day.AddDate(0, 0, -3)},
		{croissant.ID, 2, "2.50", finance.PaymentMethodCard, day.AddDate(0, 0, -20)},
	}
	for _, p := range paid {
		sale := newTestSale(t, active.ID, p.product, p.qty, p.price, p.at)
		require.NoError(t, sale.Complete(p.method))
		require.NoError(t, sales.Save(ctx, sale))
	}
	pending := newTestSale(t, active.ID, croissant.ID, 10, "2.50", day.Add(10*time.Hour))
	require.NoError(t, sales.Save(ctx, pending))

	done, err := finance.NewPayment("TX-1", "ORD-1", active.ID, decimal.NewFromInt(12), finance.PaymentMethodCash, finance.PaymentStatusCompleted)
	require.NoError(t, err)
	done.PaymentDate = day.Add(9 * time.Hour)
	failed, err := finance.NewPayment("TX-2", "ORD-2", active.ID, decimal.NewFromInt(5), finance.PaymentMethodCard, finance.PaymentStatusFailed)
	require.NoError(t, err)
	failed.PaymentDate = day.Add(11 * time.Hour)
	old, err := finance.NewPayment("TX-3", "ORD-3", active.ID, decimal.NewFromInt(5), finance.PaymentMethodCard, finance.PaymentStatusCompleted)
	require.NoError(t, err)
	old.PaymentDate = day.AddDate(0, 0, -1)
	for _, p := range []*finance.Payment{done, failed, old} {
		require.NoError(t, payments.Save(ctx, p))
	}

	return reportFixture{db: db, day: day, espresso: espresso.ID}
}

func TestGormReportQueryRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	fx := seedReportFixture(t)
	repo := NewGormReportQueryRepository(fx.db)

	t.Run("completed sales totals", func(t *testing.T) {
		all, err := repo.CompletedSalesTotals(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(3), all.Count)
		assert.True(t, decimal.RequireFromString("20.00").Equal(all.Revenue), all.Revenue.String())

		today, err := repo.CompletedSalesTotals(ctx, &fx.day)
		require.NoError(t, err)
		assert.Equal(t, int64(1), today.Count)
		assert.True(t, decimal.RequireFromString("12.00").Equal(today.Revenue))
	})

	t.Run("report windows nest", func(t *testing.T) {
		w := report.NewWindows(fx.day.Add(15 * time.Hour))
		require.True(t, w.Today.Equal(fx.day))

		counts := make([]int64, 0, 4)
		for _, since := range []*time.Time{&w.Today, &w.WeekAgo, &w.MonthAgo, nil} {
			totals, err := repo.CompletedSalesTotals(ctx, since)
			require.NoError(t, err)
			counts = append(counts, totals.Count)
		}
		assert.Equal(t, []int64{1, 2, 3, 3}, counts)

		week, err := repo.CompletedSalesTotals(ctx, &w.WeekAgo)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("15.00").Equal(week.Revenue), week.Revenue.String())

		customers := make([]int64, 0, 4)
		for _, since := range []*time.Time{&w.Today, &w.WeekAgo, &w.MonthAgo, nil} {
			n, err := repo.CountCustomersSince(ctx, since)
			require.NoError(t, err)
			customers = append(customers, n)
		}
		assert.Equal(t, []int64{1, 1, 2, 2}, customers)
	})

	t.Run("stock figures", func(t *testing.T) {
		total, err := repo.TotalStock(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(42), total)

		low, err := repo.CountLowStock(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), low)

		items, err := repo.LowStockItems(ctx, 5)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Espresso", items[0].Name)
		assert.Equal(t, 5, items[0].MinStock)
		assert.Equal(t, "Coffee", items[0].Category)
	})

	t.Run("customer counts", func(t *testing.T) {
		active, err := repo.CountActiveCustomers(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), active)

		all, err := repo.CountCustomersSince(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), all)
	})

	t.Run("payment counts since a day", func(t *testing.T) {
		counts, err := repo.PaymentCountsSince(ctx, fx.day)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts.Total)
		assert.Equal(t, int64(1), counts.Completed)
	})

	t.Run("top products by units sold", func(t *testing.T) {
		top, err := repo.TopProducts(ctx, 10)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, "Espresso", top[0].ProductName)
		assert.Equal(t, int64(5), top[0].TotalSold)
		assert.True(t, decimal.RequireFromString("15.00").Equal(top[0].TotalRevenue))
		assert.Equal(t, "Croissant", top[1].ProductName)
	})

	t.Run("payment method shares", func(t *testing.T) {
		shares, err := repo.PaymentMethodShares(ctx)
		require.NoError(t, err)
		require.Len(t, shares, 2)
		assert.Equal(t, "card", shares[0].PaymentMethod)
		assert.Equal(t, int64(2), shares[0].Count)
		assert.True(t, decimal.RequireFromString("8.00").Equal(shares[0].Total))
		assert.Equal(t, "cash", shares[1].PaymentMethod)
	})
}
