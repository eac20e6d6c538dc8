package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	apptrade "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, name, price string, stock, minStock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, decimal.RequireFromString(price))
	require.NoError(t, err)
	require.NoError(t, p.SetStockLevels(stock, minStock))
	return p
}

func TestGormProductRepository_FindByID_Mock(t *testing.T) {
	t.Run("maps row to product", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormProductRepository(db)
		id := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "name", "price", "stock", "min_stock", "sku"}).
			AddRow(id.String(), 3, "Coffee", "4.50", 12, 5, "COF-1")
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, product.ID)
		assert.Equal(t, 3, product.Version)
		assert.Equal(t, "Coffee", product.Name)
		assert.True(t, decimal.RequireFromString("4.50").Equal(product.Price))
		assert.Equal(t, "COF-1", product.SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when no row matches", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormProductRepository(db)
		id := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(context.Background(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("passes through driver errors", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormProductRepository(db)
		id := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnError(errors.New("connection reset"))

		_, err := repo.FindByID(context.Background(), id)
		require.Error(t, err)
		assert.NotErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindByIDForUpdate_Mock(t *testing.T) {
	db, mock := newMockGormDB(t)
	repo := NewGormProductRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(id.String(), "Tea"))

	product, err := repo.FindByIDForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Tea", product.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_SaveWithLock_Mock(t *testing.T) {
	t.Run("conflict when no row has the loaded version", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormProductRepository(db)
		product := newTestProduct(t, "Coffee", "4.50", 10, 2)

		mock.ExpectExec(`UPDATE "products" SET .* WHERE .*version = `).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), product, 1)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("succeeds when one row is updated", func(t *testing.T) {
		db, mock := newMockGormDB(t)
		repo := NewGormProductRepository(db)
		product := newTestProduct(t, "Coffee", "4.50", 10, 2)

		mock.ExpectExec(`UPDATE "products" SET .* WHERE .*version = `).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SaveWithLock(context.Background(), product, 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_SQLite(t *testing.T) {
	ctx := context.Background()

	t.Run("save and reload", func(t *testing.T) {
		repo := NewGormProductRepository(newSQLiteDB(t))
		product := newTestProduct(t, "Espresso Beans", "12.99", 30, 5)
		require.NoError(t, product.SetSKU("ESP-01"))
		require.NoError(t, product.Update("Espresso Beans", "Coffee", "Roastery", "dark roast"))

		require.NoError(t, repo.Save(ctx, product))

		found, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Espresso Beans", found.Name)
		assert.True(t, decimal.RequireFromString("12.99").Equal(found.Price))
		assert.Equal(t, 30, found.Stock)
		assert.Equal(t, "Coffee", found.Category)
		assert.Equal(t, "ESP-01", found.SKU)
		assert.Equal(t, product.Version, found.Version)
	})

	t.Run("SaveWithLock detects a stale version", func(t *testing.T) {
		repo := NewGormProductRepository(newSQLiteDB(t))
		product := newTestProduct(t, "Mug", "8.00", 10, 2)
		require.NoError(t, repo.Save(ctx, product))

		first, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)

		loaded := first.Version
		require.NoError(t, first.DeductStock(3))
		require.NoError(t, repo.SaveWithLock(ctx, first, loaded))

		require.NoError(t, second.DeductStock(1))
		err = repo.SaveWithLock(ctx, second, loaded)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		current, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, current.Stock)
		assert.Equal(t, loaded+1, current.Version)
	})

	t.Run("FindByIDForUpdate works inside a transaction", func(t *testing.T) {
		db := newSQLiteDB(t)
		repo := NewGormProductRepository(db)
		product := newTestProduct(t, "Cup", "2.00", 1, 0)
		require.NoError(t, repo.Save(ctx, product))

		scope := NewGormTransactionScope(db)
		require.NoError(t, scope.Execute(ctx, func(repos apptrade.TransactionalRepositories) error {
			locked, err := repos.ProductRepo().FindByIDForUpdate(ctx, product.ID)
			if err != nil {
				return err
			}
			assert.Equal(t, "Cup", locked.Name)
			return nil
		}))
	})

	t.Run("list filters and search", func(t *testing.T) {
		repo := NewGormProductRepository(newSQLiteDB(t))

		latte := newTestProduct(t, "Latte", "3.50", 1, 5)
		require.NoError(t, latte.Update("Latte", "Drinks", "", ""))
		require.NoError(t, latte.SetSKU("LAT-1"))
		scone := newTestProduct(t, "Scone", "2.25", 20, 5)
		require.NoError(t, scone.Update("Scone", "Bakery", "", ""))
		mocha := newTestProduct(t, "Mocha", "4.00", 9, 3)
		require.NoError(t, mocha.Update("Mocha", "Drinks", "", ""))
		for _, p := range []*catalog.Product{latte, scone, mocha} {
			require.NoError(t, repo.Save(ctx, p))
		}

		drinks := shared.NewListFilter(1, 10, "name", "asc", "", "created_at", "name")
		drinks.Filters["category"] = "Drinks"
		items, err := repo.FindAll(ctx, drinks)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Latte", items[0].Name)
		assert.Equal(t, "Mocha", items[1].Name)

		low := shared.NewListFilter(1, 10, "", "", "", "created_at")
		low.Filters["low_stock"] = true
		count, err := repo.Count(ctx, low)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		search := shared.NewListFilter(1, 10, "", "", "lat-", "created_at")
		items, err = repo.FindAll(ctx, search)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, latte.ID, items[0].ID)

		byPrice := shared.NewListFilter(1, 2, "price", "desc", "", "created_at", "price")
		items, err = repo.FindAll(ctx, byPrice)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Mocha", items[0].Name)
		assert.Equal(t, "Latte", items[1].Name)
	})

	t.Run("ExistsBySKU ignores empty SKU and the product itself", func(t *testing.T) {
		repo := NewGormProductRepository(newSQLiteDB(t))
		product := newTestProduct(t, "Tea", "1.00", 0, 0)
		require.NoError(t, product.SetSKU("TEA"))
		require.NoError(t, repo.Save(ctx, product))

		exists, err := repo.ExistsBySKU(ctx, "TEA", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsBySKU(ctx, "TEA", product.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsBySKU(ctx, "", uuid.Nil)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Delete removes dependent sales", func(t *testing.T) {
		db := newSQLiteDB(t)
		repo := NewGormProductRepository(db)
		sales := NewGormSaleRepository(db)

		product := newTestProduct(t, "Bagel", "1.75", 10, 0)
		require.NoError(t, repo.Save(ctx, product))
		sale, err := trade.NewSale(uuid.New(), product.ID, 2, product.Price)
		require.NoError(t, err)
		require.NoError(t, sales.Save(ctx, sale))

		require.NoError(t, repo.Delete(ctx, product.ID))

		_, err = sales.FindByID(ctx, sale.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		_, err = repo.FindByID(ctx, product.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, product.ID), shared.ErrNotFound)
	})
}
