package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForUpdate loads a product and holds a row lock until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product only if its stored version still equals
	// loadedVersion, the version the product had when it was read.
	// Returns shared.ErrConcurrencyConflict otherwise.
	SaveWithLock(ctx context.Context, product *Product, loadedVersion int) error

	// Delete deletes a product and cascades to its sales
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsBySKU checks if another product already uses the SKU.
	// excludeID may be uuid.Nil.
	ExistsBySKU(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error)
}
