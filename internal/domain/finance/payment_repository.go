package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindAll returns payments newest first unless the filter orders otherwise
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, payment *Payment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByTransactionID checks if another payment already uses the
	// transaction id. excludeID may be uuid.Nil.
	ExistsByTransactionID(ctx context.Context, transactionID string, excludeID uuid.UUID) (bool, error)
}
