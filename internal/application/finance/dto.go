package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/application/partner"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest represents a request to create or replace a payment record.
// Customer accepts a bare id or {"id": ...}.
type CreatePaymentRequest struct {
	TransactionID string           `json:"transaction_id" binding:"required,min=1,max=100"`
	OrderID       string           `json:"order_id" binding:"required,min=1,max=100"`
	Customer      shared.Ref       `json:"customer"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	Method        string           `json:"method" binding:"required,payment_method"`
	Status        string           `json:"status" binding:"omitempty,payment_status"`
}

// ToUpdate converts a full replacement into an update with every field set
func (r CreatePaymentRequest) ToUpdate() UpdatePaymentRequest {
	customer := r.Customer
	status := r.Status
	if status == "" {
		status = string(finance.PaymentStatusCompleted)
	}
	return UpdatePaymentRequest{
		TransactionID: &r.TransactionID,
		OrderID:       &r.OrderID,
		Customer:      &customer,
		Amount:        r.Amount,
		Method:        &r.Method,
		Status:        &status,
	}
}

// UpdatePaymentRequest represents a partial payment update
type UpdatePaymentRequest struct {
	TransactionID *string          `json:"transaction_id" binding:"omitempty,min=1,max=100"`
	OrderID       *string          `json:"order_id" binding:"omitempty,min=1,max=100"`
	Customer      *shared.Ref      `json:"customer"`
	Amount        *decimal.Decimal `json:"amount"`
	Method        *string          `json:"method" binding:"omitempty,payment_method"`
	Status        *string          `json:"status" binding:"omitempty,payment_status"`
}

// PaymentListFilter represents filter options for payment list
type PaymentListFilter struct {
	CustomerID *uuid.UUID `form:"customer"`
	Method     string     `form:"method" binding:"omitempty,payment_method"`
	Status     string     `form:"status" binding:"omitempty,payment_status"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PaymentResponse represents a payment in API responses.
// The customer is nested in full.
type PaymentResponse struct {
	ID            uuid.UUID                 `json:"id"`
	TransactionID string                    `json:"transaction_id"`
	OrderID       string                    `json:"order_id"`
	Customer      *partner.CustomerResponse `json:"customer"`
	Amount        shared.Amount             `json:"amount"`
	Method        string                    `json:"method"`
	Status        string                    `json:"status"`
	PaymentDate   time.Time                 `json:"payment_date"`
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *finance.Payment, customer *partner.CustomerResponse) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		OrderID:       p.OrderID,
		Customer:      customer,
		Amount:        shared.NewAmount(p.Amount),
		Method:        string(p.Method),
		Status:        string(p.Status),
		PaymentDate:   p.PaymentDate,
	}
}
