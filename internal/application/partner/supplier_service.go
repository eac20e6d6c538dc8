package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var supplierOrderFields = []string{"name", "contact_person", "email", "status", "created_at"}

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierService{
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	if err := s.ensureEmailAvailable(ctx, req.Email, uuid.Nil); err != nil {
		return nil, err
	}

	supplier, err := partner.NewSupplier(req.Name, req.ContactPerson, req.Email)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.Name, req.ContactPerson, req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := supplier.SetStatus(partner.SupplierStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	supplier.Version = 1
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		s.logger.Error("failed to create supplier", zap.String("email", supplier.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("supplier created", zap.String("supplier_id", supplier.ID.String()))

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves a paginated list of suppliers
func (s *SupplierService) List(ctx context.Context, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
	sf := shared.NewListFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search,
		"created_at", supplierOrderFields...)
	if filter.Status != "" {
		sf.Filters["status"] = filter.Status
	}

	suppliers, err := s.supplierRepo.FindAll(ctx, sf)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.Count(ctx, sf)
	if err != nil {
		return nil, 0, err
	}

	return ToSupplierResponses(suppliers), total, nil
}

// Update applies a partial update to a supplier
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, contact, email, phone, address := supplier.Name, supplier.ContactPerson, supplier.Email, supplier.Phone, supplier.Address
	if req.Name != nil {
		name = *req.Name
	}
	if req.ContactPerson != nil {
		contact = *req.ContactPerson
	}
	if req.Email != nil {
		if !strings.EqualFold(*req.Email, supplier.Email) {
			if err := s.ensureEmailAvailable(ctx, *req.Email, supplier.ID); err != nil {
				return nil, err
			}
		}
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Address != nil {
		address = *req.Address
	}
	if err := supplier.Update(name, contact, email, phone, address); err != nil {
		return nil, err
	}
	if req.Status != nil {
		if err := supplier.SetStatus(partner.SupplierStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete deletes a supplier
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("supplier deleted", zap.String("supplier_id", id.String()))
	return nil
}

func (s *SupplierService) ensureEmailAvailable(ctx context.Context, email string, excludeID uuid.UUID) error {
	exists, err := s.supplierRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Supplier with this email already exists").
			WithDetail("email", "supplier with this email already exists.")
	}
	return nil
}
