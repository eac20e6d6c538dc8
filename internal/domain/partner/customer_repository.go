package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByIDForUpdate loads a customer and holds a row lock until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByIDs finds multiple customers by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Customer, error)

	// FindAll finds all customers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete deletes a customer and cascades to its sales and payments
	Delete(ctx context.Context, id uuid.UUID) error
}
