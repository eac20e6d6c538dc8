package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func TestSupplierService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())
		repo.On("ExistsByEmail", ctx, "orders@beans.example", uuid.Nil).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Supplier")).Return(nil)

		resp, err := svc.Create(ctx, CreateSupplierRequest{
			Name:          "Bean Co",
			ContactPerson: "Sam Roaster",
			Email:         "orders@beans.example",
			Status:        "pending",
		})

		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "Sam Roaster", resp.ContactPerson)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())
		repo.On("ExistsByEmail", ctx, "orders@beans.example", uuid.Nil).Return(true, nil)

		_, err := svc.Create(ctx, CreateSupplierRequest{
			Name:          "Bean Co",
			ContactPerson: "Sam Roaster",
			Email:         "orders@beans.example",
		})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSupplierService_Update(t *testing.T) {
	ctx := context.Background()

	supplier, err := partner.NewSupplier("Bean Co", "Sam Roaster", "orders@beans.example")
	require.NoError(t, err)

	t.Run("same email skips uniqueness check", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())
		repo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
		repo.On("Save", ctx, supplier).Return(nil)

		resp, err := svc.Update(ctx, supplier.ID, UpdateSupplierRequest{
			Email: ptr("orders@beans.example"),
			Phone: ptr("555-0100"),
		})

		require.NoError(t, err)
		assert.Equal(t, "555-0100", resp.Phone)
		repo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid status", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())
		repo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)

		_, err := svc.Update(ctx, supplier.ID, UpdateSupplierRequest{Status: ptr("retired")})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
