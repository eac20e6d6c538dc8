package testutil

import (
	"testing"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// NewProduct builds a valid product with the given stock levels
func NewProduct(t *testing.T, name, price string, stock, minStock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, decimal.RequireFromString(price))
	require.NoError(t, err)
	require.NoError(t, p.SetStockLevels(stock, minStock))
	return p
}

// NewCustomer builds a valid active customer
func NewCustomer(t *testing.T, name, email string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(name, email)
	require.NoError(t, err)
	return c
}

// NewSale builds a pending sale priced from the product
func NewSale(t *testing.T, customer *partner.Customer, product *catalog.Product, quantity int) *trade.Sale {
	t.Helper()
	s, err := trade.NewSale(customer.ID, product.ID, quantity, product.Price)
	require.NoError(t, err)
	return s
}
