package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var staffOrderFields = []string{"name", "email", "role", "department", "status", "created_at"}

// StaffService handles staff-related business operations
type StaffService struct {
	staffRepo identity.StaffRepository
	logger    *zap.Logger
}

// NewStaffService creates a new StaffService
func NewStaffService(staffRepo identity.StaffRepository, logger *zap.Logger) *StaffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// Create creates a new staff member
func (s *StaffService) Create(ctx context.Context, req CreateStaffRequest) (*StaffResponse, error) {
	if err := s.ensureEmailAvailable(ctx, req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	staff, err := identity.NewStaff(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	if err := staff.Update(req.Name, req.Email, req.Phone, req.Department); err != nil {
		return nil, err
	}
	if req.Role != "" {
		if err := staff.AssignRole(identity.StaffRole(req.Role)); err != nil {
			return nil, err
		}
	}
	if req.Status != "" {
		if err := staff.SetStatus(identity.StaffStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	staff.Version = 1
	if err := s.staffRepo.Save(ctx, staff); err != nil {
		s.logger.Error("failed to create staff", zap.String("email", staff.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("staff created",
		zap.String("staff_id", staff.ID.String()),
		zap.String("role", string(staff.Role)),
	)

	response := ToStaffResponse(staff)
	return &response, nil
}

// GetByID retrieves a staff member by ID
func (s *StaffService) GetByID(ctx context.Context, id uuid.UUID) (*StaffResponse, error) {
	staff, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToStaffResponse(staff)
	return &response, nil
}

// List retrieves a paginated list of staff
func (s *StaffService) List(ctx context.Context, filter StaffListFilter) ([]StaffResponse, int64, error) {
	sf := shared.NewListFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search,
		"created_at", staffOrderFields...)
	if filter.Role != "" {
		sf.Filters["role"] = filter.Role
	}
	if filter.Status != "" {
		sf.Filters["status"] = filter.Status
	}

	staff, err := s.staffRepo.FindAll(ctx, sf)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.staffRepo.Count(ctx, sf)
	if err != nil {
		return nil, 0, err
	}

	return ToStaffResponses(staff), total, nil
}

// Update applies a partial update to a staff member
func (s *StaffService) Update(ctx context.Context, id uuid.UUID, req UpdateStaffRequest) (*StaffResponse, error) {
	staff, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, email, phone, department := staff.Name, staff.Email, staff.Phone, staff.Department
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		if !strings.EqualFold(*req.Email, staff.Email) {
			if err := s.ensureEmailAvailable(ctx, *req.Email, staff.ID); err != nil {
				return nil, err
			}
		}
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Department != nil {
		department = *req.Department
	}
	if err := staff.Update(name, email, phone, department); err != nil {
		return nil, err
	}
	if req.Role != nil {
		if err := staff.AssignRole(identity.StaffRole(*req.Role)); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if err := staff.SetStatus(identity.StaffStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}

	response := ToStaffResponse(staff)
	return &response, nil
}

// Delete deletes a staff member
func (s *StaffService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("staff deleted", zap.String("staff_id", id.String()))
	return nil
}

func (s *StaffService) ensureEmailAvailable(ctx context.Context, email string, excludeID uuid.UUID) error {
	exists, err := s.staffRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Staff with this email already exists").
			WithDetail("email", "staff with this email already exists.")
	}
	return nil
}
