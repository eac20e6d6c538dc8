package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"go.uber.org/zap"
)

var saleOrderFields = []string{"sale_date", "total_price", "quantity", "payment_status"}

// SaleService handles sale CRUD and hands payment to the PaymentProcessor
type SaleService struct {
	saleRepo     trade.SaleRepository
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
	processor    *PaymentProcessor
	logger       *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo trade.SaleRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	processor *PaymentProcessor,
	logger *zap.Logger,
) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		processor:    processor,
		logger:       logger,
	}
}

// Create inserts a pending sale priced at the product's current price and,
// unless payment is skipped, processes payment right away. When payment
// fails the sale stays persisted and the *PaymentError is returned.
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	method, pay := req.Method()
	if pay && !finance.PaymentMethod(method).IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid payment method").
			WithDetail("payment_method", "\""+method+"\" is not a valid choice.")
	}

	customerID, err := s.resolveCustomer(ctx, req.Customer)
	if err != nil {
		return nil, err
	}
	product, err := s.resolveProduct(ctx, req.Product)
	if err != nil {
		return nil, err
	}

	sale, err := trade.NewSale(customerID, product.ID, req.Quantity, product.Price)
	if err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		s.logger.Error("failed to create sale", zap.Error(err))
		return nil, err
	}

	s.logger.Info("sale created",
		zap.String("sale_id", sale.ID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("quantity", sale.Quantity),
		zap.String("total_price", sale.TotalPrice.StringFixed(2)),
	)

	if !pay {
		response := ToSaleResponse(sale)
		return &response, nil
	}

	completed, err := s.processor.Process(ctx, sale.ID, finance.PaymentMethod(method))
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(completed)
	return &response, nil
}

// ProcessPayment settles payment for an existing pending sale
func (s *SaleService) ProcessPayment(ctx context.Context, id uuid.UUID, req ProcessPaymentRequest) (*SaleResponse, error) {
	method := req.PaymentMethod
	if method == "" {
		method = string(finance.DefaultPaymentMethod)
	}

	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sale.IsPending() {
		return nil, newPaymentError(PaymentErrorInvalidState, id,
			shared.NewDomainError("INVALID_STATE", "Payment already processed or cancelled"))
	}

	completed, err := s.processor.Process(ctx, id, finance.PaymentMethod(method))
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(completed)
	return &response, nil
}

// GetByID retrieves a sale by ID
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves a paginated list of sales, newest first by default
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
	orderDir := filter.OrderDir
	if filter.OrderBy == "" && orderDir == "" {
		orderDir = "desc"
	}
	sf := shared.NewListFilter(filter.Page, filter.PageSize, filter.OrderBy, orderDir, "",
		"sale_date", saleOrderFields...)
	if filter.CustomerID != nil {
		sf.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.ProductID != nil {
		sf.Filters["product_id"] = *filter.ProductID
	}
	if filter.PaymentStatus != "" {
		sf.Filters["payment_status"] = filter.PaymentStatus
	}
	if filter.PaymentMethod != "" {
		sf.Filters["payment_method"] = filter.PaymentMethod
	}

	sales, err := s.saleRepo.FindAll(ctx, sf)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.saleRepo.Count(ctx, sf)
	if err != nil {
		return nil, 0, err
	}
	return ToSaleResponses(sales), total, nil
}

// Update changes customer, product or quantity of a pending sale and
// reprices it at the product's current price
func (s *SaleService) Update(ctx context.Context, id uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	customerID := sale.CustomerID
	if req.Customer != nil && req.Customer.ID != customerID {
		if customerID, err = s.resolveCustomer(ctx, *req.Customer); err != nil {
			return nil, err
		}
	}

	productID := sale.ProductID
	if req.Product != nil {
		productID = req.Product.ID
	}
	product, err := s.resolveProduct(ctx, shared.Ref{ID: productID})
	if err != nil {
		return nil, err
	}

	quantity := sale.Quantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := sale.ChangeLine(customerID, product.ID, quantity, product.Price); err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// Delete deletes a sale
func (s *SaleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.saleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("sale deleted", zap.String("sale_id", id.String()))
	return nil
}

func (s *SaleService) resolveCustomer(ctx context.Context, ref shared.Ref) (uuid.UUID, error) {
	if ref.IsZero() {
		return uuid.Nil, shared.NewDomainError("INVALID_INPUT", "Customer is required").
			WithDetail("customer", "This field is required.")
	}
	customer, err := s.customerRepo.FindByID(ctx, ref.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer not found").
				WithDetail("customer", "Invalid pk - object does not exist.")
		}
		return uuid.Nil, err
	}
	return customer.ID, nil
}

func (s *SaleService) resolveProduct(ctx context.Context, ref shared.Ref) (*catalog.Product, error) {
	if ref.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product is required").
			WithDetail("product", "This field is required.")
	}
	product, err := s.productRepo.FindByID(ctx, ref.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found").
				WithDetail("product", "Invalid pk - object does not exist.")
		}
		return nil, err
	}
	return product, nil
}
