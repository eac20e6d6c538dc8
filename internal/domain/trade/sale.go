package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Sale links one customer, one product and a quantity, and moves through
// a payment lifecycle: pending -> completed or pending -> failed.
type Sale struct {
	shared.BaseAggregateRoot
	CustomerID    uuid.UUID
	ProductID     uuid.UUID
	Quantity      int
	TotalPrice    decimal.Decimal
	SaleDate      time.Time
	PaymentStatus finance.PaymentStatus
	PaymentMethod finance.PaymentMethod
}

// NewSale creates a pending sale. The total is always derived from the
// product's current unit price, never taken from the caller.
func NewSale(customerID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*Sale, error) {
	s := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PaymentStatus:     finance.PaymentStatusPending,
	}
	if err := s.setLine(customerID, productID, quantity, unitPrice); err != nil {
		return nil, err
	}
	s.SaleDate = s.CreatedAt
	return s, nil
}

// ChangeLine replaces customer, product and quantity on a pending sale and
// reprices it at the given unit price
func (s *Sale) ChangeLine(customerID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) error {
	if !s.IsPending() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify sale in %s status", s.PaymentStatus))
	}
	if err := s.setLine(customerID, productID, quantity, unitPrice); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Complete marks the sale as paid with the given method
func (s *Sale) Complete(method finance.PaymentMethod) error {
	if !s.PaymentStatus.CanTransitionTo(finance.PaymentStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete sale in %s status", s.PaymentStatus))
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_METHOD", "Payment method must be one of cash, card, mobile")
	}
	s.PaymentStatus = finance.PaymentStatusCompleted
	s.PaymentMethod = method
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// MarkFailed records that payment processing failed
func (s *Sale) MarkFailed() error {
	if !s.PaymentStatus.CanTransitionTo(finance.PaymentStatusFailed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot fail sale in %s status", s.PaymentStatus))
	}
	s.PaymentStatus = finance.PaymentStatusFailed
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// IsPending returns true if payment has not been processed yet
func (s *Sale) IsPending() bool {
	return s.PaymentStatus == finance.PaymentStatusPending
}

// IsCompleted returns true if the sale has been paid
func (s *Sale) IsCompleted() bool {
	return s.PaymentStatus == finance.PaymentStatusCompleted
}

func (s *Sale) setLine(customerID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	s.CustomerID = customerID
	s.ProductID = productID
	s.Quantity = quantity
	s.TotalPrice = shared.RoundMoney(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
	return nil
}
