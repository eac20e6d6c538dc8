package handler

import (
	"context"

	"github.com/google/uuid"
	catalogapp "github.com/retailpos/backend/internal/application/catalog"
	financeapp "github.com/retailpos/backend/internal/application/finance"
	identityapp "github.com/retailpos/backend/internal/application/identity"
	partnerapp "github.com/retailpos/backend/internal/application/partner"
	reportapp "github.com/retailpos/backend/internal/application/report"
	tradeapp "github.com/retailpos/backend/internal/application/trade"
)

// The interfaces below are the slices of the application services each
// handler calls. The application package types satisfy them.

// ProductService manages products
type ProductService interface {
	Create(ctx context.Context, req catalogapp.CreateProductRequest, image catalogapp.ImageInput) (*catalogapp.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)
	List(ctx context.Context, filter catalogapp.ProductListFilter) ([]catalogapp.ProductResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest, image catalogapp.ImageInput) (*catalogapp.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerService manages customers
type CustomerService interface {
	Create(ctx context.Context, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*partnerapp.CustomerResponse, error)
	List(ctx context.Context, filter partnerapp.CustomerListFilter) ([]partnerapp.CustomerResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req partnerapp.UpdateCustomerRequest) (*partnerapp.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SupplierService manages suppliers
type SupplierService interface {
	Create(ctx context.Context, req partnerapp.CreateSupplierRequest) (*partnerapp.SupplierResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*partnerapp.SupplierResponse, error)
	List(ctx context.Context, filter partnerapp.SupplierListFilter) ([]partnerapp.SupplierResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req partnerapp.UpdateSupplierRequest) (*partnerapp.SupplierResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StaffService manages staff members
type StaffService interface {
	Create(ctx context.Context, req identityapp.CreateStaffRequest) (*identityapp.StaffResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*identityapp.StaffResponse, error)
	List(ctx context.Context, filter identityapp.StaffListFilter) ([]identityapp.StaffResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req identityapp.UpdateStaffRequest) (*identityapp.StaffResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SaleService manages sales and their payment
type SaleService interface {
	Create(ctx context.Context, req tradeapp.CreateSaleRequest) (*tradeapp.SaleResponse, error)
	ProcessPayment(ctx context.Context, id uuid.UUID, req tradeapp.ProcessPaymentRequest) (*tradeapp.SaleResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*tradeapp.SaleResponse, error)
	List(ctx context.Context, filter tradeapp.SaleListFilter) ([]tradeapp.SaleResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req tradeapp.UpdateSaleRequest) (*tradeapp.SaleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentService manages payment records
type PaymentService interface {
	Create(ctx context.Context, req financeapp.CreatePaymentRequest) (*financeapp.PaymentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*financeapp.PaymentResponse, error)
	List(ctx context.Context, filter financeapp.PaymentListFilter) ([]financeapp.PaymentResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req financeapp.UpdatePaymentRequest) (*financeapp.PaymentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReportService builds the aggregate views
type ReportService interface {
	Dashboard(ctx context.Context) (*reportapp.DashboardResponse, error)
	Reports(ctx context.Context) (*reportapp.ReportsResponse, error)
}

var (
	_ ProductService  = (*catalogapp.ProductService)(nil)
	_ CustomerService = (*partnerapp.CustomerService)(nil)
	_ SupplierService = (*partnerapp.SupplierService)(nil)
	_ StaffService    = (*identityapp.StaffService)(nil)
	_ SaleService     = (*tradeapp.SaleService)(nil)
	_ PaymentService  = (*financeapp.PaymentService)(nil)
	_ ReportService   = (*reportapp.ReportService)(nil)
)
