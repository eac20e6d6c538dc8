package finance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/application/partner"
	"github.com/retailpos/backend/internal/domain/finance"
	domainPartner "github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var paymentOrderFields = []string{"payment_date", "amount", "method", "status"}

// PaymentService handles payment record operations. Payments produced by
// sale processing are created by the trade PaymentProcessor, not here.
type PaymentService struct {
	paymentRepo  finance.PaymentRepository
	customerRepo domainPartner.CustomerRepository
	logger       *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo finance.PaymentRepository,
	customerRepo domainPartner.CustomerRepository,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create records a payment
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	if req.Customer.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer is required").
			WithDetail("customer", "This field is required.")
	}
	customer, err := s.findCustomer(ctx, req.Customer.ID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureTransactionIDAvailable(ctx, req.TransactionID, uuid.Nil); err != nil {
		return nil, err
	}

	payment, err := finance.NewPayment(
		req.TransactionID,
		req.OrderID,
		customer.ID,
		*req.Amount,
		finance.PaymentMethod(req.Method),
		finance.PaymentStatus(req.Status),
	)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		s.logger.Error("failed to create payment",
			zap.String("transaction_id", payment.TransactionID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("transaction_id", payment.TransactionID),
	)

	customerResp := partner.ToCustomerResponse(customer)
	response := ToPaymentResponse(payment, &customerResp)
	return &response, nil
}

// GetByID retrieves a payment by ID with its customer
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withCustomer(ctx, payment)
}

// List retrieves a paginated list of payments, newest first by default
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	orderDir := filter.OrderDir
	if filter.OrderBy == "" && orderDir == "" {
		orderDir = "desc"
	}
	sf := shared.NewListFilter(filter.Page, filter.PageSize, filter.OrderBy, orderDir, "",
		"payment_date", paymentOrderFields...)
	if filter.CustomerID != nil {
		sf.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Method != "" {
		sf.Filters["method"] = filter.Method
	}
	if filter.Status != "" {
		sf.Filters["status"] = filter.Status
	}

	payments, err := s.paymentRepo.FindAll(ctx, sf)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.Count(ctx, sf)
	if err != nil {
		return nil, 0, err
	}

	customers, err := s.customersFor(ctx, payments)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i], customers[payments[i].CustomerID])
	}
	return responses, total, nil
}

// Update applies a partial update to a payment record
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	txID, orderID, customerID := payment.TransactionID, payment.OrderID, payment.CustomerID
	amount, method, status := payment.Amount, payment.Method, payment.Status

	if req.TransactionID != nil && *req.TransactionID != payment.TransactionID {
		if err := s.ensureTransactionIDAvailable(ctx, *req.TransactionID, payment.ID); err != nil {
			return nil, err
		}
		txID = *req.TransactionID
	}
	if req.OrderID != nil {
		orderID = *req.OrderID
	}
	if req.Customer != nil && !req.Customer.IsZero() && req.Customer.ID != customerID {
		customer, err := s.findCustomer(ctx, req.Customer.ID)
		if err != nil {
			return nil, err
		}
		customerID = customer.ID
	}
	if req.Amount != nil {
		amount = *req.Amount
	}
	if req.Method != nil {
		method = finance.PaymentMethod(*req.Method)
	}
	if req.Status != nil {
		status = finance.PaymentStatus(*req.Status)
	}

	if err := payment.Update(txID, orderID, customerID, amount, method, status); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	return s.withCustomer(ctx, payment)
}

// Delete deletes a payment record
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("payment deleted", zap.String("payment_id", id.String()))
	return nil
}

func (s *PaymentService) withCustomer(ctx context.Context, payment *finance.Payment) (*PaymentResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, payment.CustomerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	var customerResp *partner.CustomerResponse
	if customer != nil {
		c := partner.ToCustomerResponse(customer)
		customerResp = &c
	}
	response := ToPaymentResponse(payment, customerResp)
	return &response, nil
}

func (s *PaymentService) customersFor(ctx context.Context, payments []finance.Payment) (map[uuid.UUID]*partner.CustomerResponse, error) {
	result := make(map[uuid.UUID]*partner.CustomerResponse)
	if len(payments) == 0 {
		return result, nil
	}

	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0, len(payments))
	for _, p := range payments {
		if !seen[p.CustomerID] {
			seen[p.CustomerID] = true
			ids = append(ids, p.CustomerID)
		}
	}

	customers, err := s.customerRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		resp := partner.ToCustomerResponse(&customers[i])
		result[customers[i].ID] = &resp
	}
	return result, nil
}

func (s *PaymentService) findCustomer(ctx context.Context, id uuid.UUID) (*domainPartner.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer not found").
				WithDetail("customer", "Invalid pk - object does not exist.")
		}
		return nil, err
	}
	return customer, nil
}

func (s *PaymentService) ensureTransactionIDAvailable(ctx context.Context, txID string, excludeID uuid.UUID) error {
	exists, err := s.paymentRepo.ExistsByTransactionID(ctx, txID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("ALREADY_EXISTS", "Payment with this transaction ID already exists").
			WithDetail("transaction_id", "payment with this transaction id already exists.")
	}
	return nil
}
