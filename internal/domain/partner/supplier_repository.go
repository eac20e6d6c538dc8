package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByEmail checks if another supplier already uses the email.
	// excludeID may be uuid.Nil.
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}
