package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var customerOrderFields = []string{"name", "email", "total_purchases", "total_spent", "last_visit", "created_at"}

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(req.Name, req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := customer.SetStatus(partner.CustomerStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	customer.Version = 1
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Error("failed to create customer", zap.String("email", customer.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("customer created", zap.String("customer_id", customer.ID.String()))

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a paginated list of customers
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	sf := shared.NewListFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search,
		"created_at", customerOrderFields...)
	if filter.Status != "" {
		sf.Filters["status"] = filter.Status
	}

	customers, err := s.customerRepo.FindAll(ctx, sf)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, sf)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// Update applies a partial update to a customer
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, email, phone, address := customer.Name, customer.Email, customer.Phone, customer.Address
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Address != nil {
		address = *req.Address
	}
	if err := customer.Update(name, email, phone, address); err != nil {
		return nil, err
	}
	if req.Status != nil {
		if err := customer.SetStatus(partner.CustomerStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete deletes a customer together with its sales and payments
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("customer deleted", zap.String("customer_id", id.String()))
	return nil
}
