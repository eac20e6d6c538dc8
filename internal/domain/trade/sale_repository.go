package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByIDForUpdate loads a sale and holds a row lock until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindAll returns sales newest first unless the filter orders otherwise
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)

	// Count counts sales matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a sale
	Save(ctx context.Context, sale *Sale) error

	// Delete deletes a sale
	Delete(ctx context.Context, id uuid.UUID) error
}
