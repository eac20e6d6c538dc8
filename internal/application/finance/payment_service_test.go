package finance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) ExistsByTransactionID(ctx context.Context, transactionID string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, transactionID, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]partner.Customer, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer("Linus", "linus@example.com")
	require.NoError(t, err)
	return c
}

func TestPaymentService_Create(t *testing.T) {
	ctx := context.Background()
	amount := decimal.NewFromFloat(30)

	t.Run("defaults status to completed and nests customer", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		customers := new(MockCustomerRepository)
		svc := NewPaymentService(payments, customers, zap.NewNop())
		customer := newTestCustomer(t)

		customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
		payments.On("ExistsByTransactionID", ctx, "PAY-manual-1", uuid.Nil).Return(false, nil)
		payments.On("Save", ctx, mock.AnythingOfType("*finance.Payment")).Return(nil)

		resp, err := svc.Create(ctx, CreatePaymentRequest{
			TransactionID: "PAY-manual-1",
			OrderID:       "ORD-manual-1",
			Customer:      shared.Ref{ID: customer.ID},
			Amount:        &amount,
			Method:        "card",
		})

		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		require.NotNil(t, resp.Customer)
		assert.Equal(t, customer.ID, resp.Customer.ID)
		assert.Equal(t, "30.00", resp.Amount.StringFixed(2))
	})

	t.Run("unknown customer", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		customers := new(MockCustomerRepository)
		svc := NewPaymentService(payments, customers, zap.NewNop())
		id := uuid.New()
		customers.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreatePaymentRequest{
			TransactionID: "PAY-1",
			OrderID:       "ORD-1",
			Customer:      shared.Ref{ID: id},
			Amount:        &amount,
			Method:        "cash",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CUSTOMER", domainErr.Code)
		payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate transaction id", func(t *testing.T) {
		payments := new(MockPaymentRepository)
		customers := new(MockCustomerRepository)
		svc := NewPaymentService(payments, customers, zap.NewNop())
		customer := newTestCustomer(t)
		customers.On("FindByID", ctx, customer.ID).Return(customer, nil)
		payments.On("ExistsByTransactionID", ctx, "PAY-1", uuid.Nil).Return(true, nil)

		_, err := svc.Create(ctx, CreatePaymentRequest{
			TransactionID: "PAY-1",
			OrderID:       "ORD-1",
			Customer:      shared.Ref{ID: customer.ID},
			Amount:        &amount,
			Method:        "cash",
		})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestPaymentService_List_NewestFirstWithCustomers(t *testing.T) {
	ctx := context.Background()
	payments := new(MockPaymentRepository)
	customers := new(MockCustomerRepository)
	svc := NewPaymentService(payments, customers, zap.NewNop())

	customer := newTestCustomer(t)
	p1, err := finance.NewPayment("PAY-a", "ORD-a", customer.ID, decimal.NewFromInt(5), finance.PaymentMethodCash, "")
	require.NoError(t, err)
	p2, err := finance.NewPayment("PAY-b", "ORD-b", customer.ID, decimal.NewFromInt(7), finance.PaymentMethodCard, "")
	require.NoError(t, err)

	expected := mock.MatchedBy(func(f shared.Filter) bool {
		return f.OrderBy == "payment_date" && f.OrderDir == "desc"
	})
	payments.On("FindAll", ctx, expected).Return([]finance.Payment{*p2, *p1}, nil)
	payments.On("Count", ctx, expected).Return(int64(2), nil)
	customers.On("FindByIDs", ctx, []uuid.UUID{customer.ID}).Return([]partner.Customer{*customer}, nil)

	items, total, err := svc.List(ctx, PaymentListFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, "PAY-b", items[0].TransactionID)
	require.NotNil(t, items[1].Customer)
	assert.Equal(t, "Linus", items[1].Customer.Name)
}

func TestPaymentService_Update(t *testing.T) {
	ctx := context.Background()
	payments := new(MockPaymentRepository)
	customers := new(MockCustomerRepository)
	svc := NewPaymentService(payments, customers, zap.NewNop())

	customer := newTestCustomer(t)
	payment, err := finance.NewPayment("PAY-a", "ORD-a", customer.ID, decimal.NewFromInt(5), finance.PaymentMethodCash, "")
	require.NoError(t, err)

	payments.On("FindByID", ctx, payment.ID).Return(payment, nil)
	payments.On("Save", ctx, payment).Return(nil)
	customers.On("FindByID", ctx, customer.ID).Return(customer, nil)

	status := "cancelled"
	resp, err := svc.Update(ctx, payment.ID, UpdatePaymentRequest{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "PAY-a", resp.TransactionID)
	payments.AssertNotCalled(t, "ExistsByTransactionID", mock.Anything, mock.Anything, mock.Anything)
}
