package trade

import (
	"context"

	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/trade"
)

// TransactionScope runs a unit of work inside one database transaction.
// If fn returns an error every write made through repos is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories touched by sale
// payment processing, all bound to the same transaction.
type TransactionalRepositories interface {
	SaleRepo() trade.SaleRepository
	ProductRepo() catalog.ProductRepository
	CustomerRepo() partner.CustomerRepository
	PaymentRepo() finance.PaymentRepository
}

// NoOpTransactionScope hands out the plain repositories without opening a
// transaction. Used in tests.
type NoOpTransactionScope struct {
	saleRepo     trade.SaleRepository
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
	paymentRepo  finance.PaymentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	saleRepo trade.SaleRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	paymentRepo finance.PaymentRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
	}
}

// Execute runs fn without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) SaleRepo() trade.SaleRepository           { return s.saleRepo }
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository   { return s.productRepo }
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository { return s.customerRepo }
func (s *NoOpTransactionScope) PaymentRepo() finance.PaymentRepository   { return s.paymentRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
