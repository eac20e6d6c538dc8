//go:build integration

package integration

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	catalogapp "github.com/retailpos/backend/internal/application/catalog"
	financeapp "github.com/retailpos/backend/internal/application/finance"
	partnerapp "github.com/retailpos/backend/internal/application/partner"
	reportapp "github.com/retailpos/backend/internal/application/report"
	tradeapp "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/retailpos/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleFlow(t *testing.T) {
	ts := NewTestServer(t)
	e := ts.Engine

	w := testutil.Request(e, http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Espresso Beans", "price": "12.50", "stock": 5, "min_stock": 3, "category": "Coffee", "sku": "ESP-1",
	})
	testutil.RequireStatus(t, w, http.StatusCreated)
	product := testutil.DecodeData[catalogapp.ProductResponse](t, w)

	w = testutil.Request(e, http.MethodPost, "/api/v1/customers", map[string]any{
		"name": "Ada Lovelace", "email": "ada@example.com",
	})
	testutil.RequireStatus(t, w, http.StatusCreated)
	customer := testutil.DecodeData[partnerapp.CustomerResponse](t, w)

	// Prime the dashboard cache; the payment below must invalidate it
	w = testutil.Request(e, http.MethodGet, "/api/v1/sales/dashboard", nil)
	testutil.RequireStatus(t, w, http.StatusOK)
	assert.Equal(t, int64(0), testutil.DecodeData[reportapp.DashboardResponse](t, w).Transactions)

	t.Run("sale with payment", func(t *testing.T) {
		w := testutil.Request(e, http.MethodPost, "/api/v1/sales", map[string]any{
			"customer": map[string]any{"id": customer.ID}, "product": product.ID, "quantity": 3, "payment_method": "card",
		})
		testutil.RequireStatus(t, w, http.StatusCreated)
		sale := testutil.DecodeData[tradeapp.SaleResponse](t, w)
		assert.Equal(t, "completed", sale.PaymentStatus)
		assert.Equal(t, "card", sale.PaymentMethod)
		assert.Equal(t, "37.50", sale.TotalPrice.StringFixed(2))

		w = testutil.Request(e, http.MethodGet, "/api/v1/products/"+product.ID.String(), nil)
		stocked := testutil.DecodeData[catalogapp.ProductResponse](t, w)
		assert.Equal(t, 2, stocked.Stock)
		assert.True(t, stocked.LowStock)

		w = testutil.Request(e, http.MethodGet, "/api/v1/customers/"+customer.ID.String(), nil)
		buyer := testutil.DecodeData[partnerapp.CustomerResponse](t, w)
		assert.Equal(t, 1, buyer.TotalPurchases)
		assert.Equal(t, "37.50", buyer.TotalSpent.StringFixed(2))
		require.NotNil(t, buyer.LastVisit)

		w = testutil.Request(e, http.MethodGet, "/api/v1/payments?customer="+customer.ID.String(), nil)
		testutil.RequireStatus(t, w, http.StatusOK)
		payments := testutil.DecodeData[[]financeapp.PaymentResponse](t, w)
		require.Len(t, payments, 1)
		assert.Equal(t, "37.50", payments[0].Amount.StringFixed(2))
		assert.Equal(t, "card", payments[0].Method)
		assert.Equal(t, sale.ID.String(), payments[0].OrderID)
		require.NotNil(t, payments[0].Customer)
		assert.Equal(t, "Ada Lovelace", payments[0].Customer.Name)

		w = testutil.Request(e, http.MethodGet, "/api/v1/sales/dashboard", nil)
		dashboard := testutil.DecodeData[reportapp.DashboardResponse](t, w)
		assert.Equal(t, int64(1), dashboard.Transactions)
		assert.Equal(t, "37.50", dashboard.TodaySales.StringFixed(2))
		require.Len(t, dashboard.LowStockItems, 1)
		assert.Equal(t, "Espresso Beans", dashboard.LowStockItems[0].Name)
	})

	t.Run("insufficient stock leaves a failed sale", func(t *testing.T) {
		w := testutil.Request(e, http.MethodPost, "/api/v1/sales", map[string]any{
			"customer": customer.ID, "product": product.ID, "quantity": 10,
		})
		testutil.RequireStatus(t, w, http.StatusBadRequest)
		resp := testutil.DecodeResponse(t, w)
		assert.Equal(t, dto.ErrCodePaymentFailed, resp.Error.Code)

		w = testutil.Request(e, http.MethodGet, "/api/v1/sales?payment_status=failed", nil)
		failed := testutil.DecodeData[[]tradeapp.SaleResponse](t, w)
		require.Len(t, failed, 1)
		assert.Equal(t, 10, failed[0].Quantity)

		assert.Equal(t, int64(1), ts.DB.Count(t, "payments"))
		p, err := ts.Products.FindByID(context.Background(), product.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, p.Stock)
	})

	t.Run("pending sale paid later", func(t *testing.T) {
		w := testutil.Request(e, http.MethodPost, "/api/v1/sales", map[string]any{
			"customer": customer.ID, "product": product.ID, "quantity": 1, "payment_method": "",
		})
		testutil.RequireStatus(t, w, http.StatusCreated)
		pending := testutil.DecodeData[tradeapp.SaleResponse](t, w)
		assert.Equal(t, "pending", pending.PaymentStatus)

		path := "/api/v1/sales/" + pending.ID.String() + "/process_payment"
		w = testutil.Request(e, http.MethodPost, path, map[string]any{"payment_method": "mobile"})
		testutil.RequireStatus(t, w, http.StatusOK)
		assert.Equal(t, "mobile", testutil.DecodeData[tradeapp.SaleResponse](t, w).PaymentMethod)

		w = testutil.Request(e, http.MethodPost, path, nil)
		testutil.RequireStatus(t, w, http.StatusBadRequest)
		assert.Equal(t, "Payment already processed or cancelled", testutil.DecodeResponse(t, w).Error.Message)
	})

	t.Run("deleting the customer removes sales and payments", func(t *testing.T) {
		w := testutil.Request(e, http.MethodDelete, "/api/v1/customers/"+customer.ID.String(), nil)
		testutil.RequireStatus(t, w, http.StatusNoContent)

		assert.Zero(t, ts.DB.Count(t, "sales", "customer_id = ?", customer.ID))
		assert.Zero(t, ts.DB.Count(t, "payments", "customer_id = ?", customer.ID))
		assert.Equal(t, int64(1), ts.DB.Count(t, "products"))
	})
}

func TestConcurrentPaymentsNeverOversell(t *testing.T) {
	ts := NewTestServer(t)
	ctx := context.Background()

	product := testutil.NewProduct(t, "Limited Mug", "9.99", 5, 0)
	require.NoError(t, ts.Products.Save(ctx, product))
	customer := testutil.NewCustomer(t, "Grace Hopper", "grace@example.com")
	require.NoError(t, ts.Customers.Save(ctx, customer))

	const attempts = 12
	saleIDs := make([]uuid.UUID, attempts)
	for i := range saleIDs {
		sale := testutil.NewSale(t, customer, product, 1)
		require.NoError(t, ts.Sales.Save(ctx, sale))
		saleIDs[i] = sale.ID
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		succeeded  int
		outOfStock int
	)
	for _, id := range saleIDs {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := ts.Processor.Process(ctx, id, finance.PaymentMethodCash)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			if pe, ok := tradeapp.AsPaymentError(err); ok && pe.Kind == tradeapp.PaymentErrorInsufficientStock {
				outOfStock++
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, attempts-5, outOfStock)

	stored, err := ts.Products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.Stock)

	buyer, err := ts.Customers.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, buyer.TotalPurchases)
	assert.Equal(t, "49.95", buyer.TotalSpent.StringFixed(2))

	assert.Equal(t, int64(5), ts.DB.Count(t, "payments"))
	assert.Equal(t, int64(attempts-5), ts.DB.Count(t, "sales", "payment_status = ?", "failed"))
}
