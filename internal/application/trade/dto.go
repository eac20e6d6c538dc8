package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
)

// CreateSaleRequest represents a request to create a sale and pay for it.
// Customer and product accept a bare id or {"id": ...}. A nil
// PaymentMethod means cash; an empty one leaves the sale pending.
// total_price, sale_date, payment_status are computed server-side.
type CreateSaleRequest struct {
	Customer      shared.Ref `json:"customer"`
	Product       shared.Ref `json:"product"`
	Quantity      int        `json:"quantity" binding:"required,min=1"`
	PaymentMethod *string    `json:"payment_method" binding:"omitempty,payment_method"`
}

// Method resolves the payment method to process the sale with.
// ok is false when payment should be skipped.
func (r CreateSaleRequest) Method() (method string, ok bool) {
	if r.PaymentMethod == nil {
		return "cash", true
	}
	return *r.PaymentMethod, *r.PaymentMethod != ""
}

// ToUpdate converts a full replacement into an update with every field set
func (r CreateSaleRequest) ToUpdate() UpdateSaleRequest {
	customer, product, quantity := r.Customer, r.Product, r.Quantity
	return UpdateSaleRequest{
		Customer: &customer,
		Product:  &product,
		Quantity: &quantity,
	}
}

// UpdateSaleRequest represents a partial update of a pending sale
type UpdateSaleRequest struct {
	Customer *shared.Ref `json:"customer"`
	Product  *shared.Ref `json:"product"`
	Quantity *int        `json:"quantity" binding:"omitempty,min=1"`
}

// ProcessPaymentRequest is the body of the process_payment action
type ProcessPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"omitempty,payment_method"`
}

// SaleListFilter represents filter options for sale list
type SaleListFilter struct {
	CustomerID    *uuid.UUID `form:"customer"`
	ProductID     *uuid.UUID `form:"product"`
	PaymentStatus string     `form:"payment_status" binding:"omitempty,payment_status"`
	PaymentMethod string     `form:"payment_method" binding:"omitempty,payment_method"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID            uuid.UUID     `json:"id"`
	Customer      uuid.UUID     `json:"customer"`
	Product       uuid.UUID     `json:"product"`
	Quantity      int           `json:"quantity"`
	TotalPrice    shared.Amount `json:"total_price"`
	SaleDate      time.Time     `json:"sale_date"`
	PaymentStatus string        `json:"payment_status"`
	PaymentMethod string        `json:"payment_method"`
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *trade.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		Customer:      s.CustomerID,
		Product:       s.ProductID,
		Quantity:      s.Quantity,
		TotalPrice:    shared.NewAmount(s.TotalPrice),
		SaleDate:      s.SaleDate,
		PaymentStatus: string(s.PaymentStatus),
		PaymentMethod: string(s.PaymentMethod),
	}
}

// ToSaleResponses converts a slice of domain Sales
func ToSaleResponses(sales []trade.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses
}
