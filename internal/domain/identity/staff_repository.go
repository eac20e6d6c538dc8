package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// StaffRepository defines the interface for staff persistence
type StaffRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Staff, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, staff *Staff) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByEmail checks if another staff member already uses the email.
	// excludeID may be uuid.Nil.
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}
