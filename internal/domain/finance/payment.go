package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Payment is a record of money received from a customer. Records created
// by the payment routine are never mutated by it afterwards.
type Payment struct {
	shared.BaseEntity
	TransactionID string
	OrderID       string
	CustomerID    uuid.UUID
	Amount        decimal.Decimal
	Method        PaymentMethod
	Status        PaymentStatus
	PaymentDate   time.Time
}

// TransactionIDForSale derives the transaction id for a sale paid at the given time
func TransactionIDForSale(saleID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("PAY-%s-%d", saleID, at.Unix())
}

// OrderIDForSale derives the order id for a sale
func OrderIDForSale(saleID uuid.UUID) string {
	return fmt.Sprintf("ORD-%s", saleID)
}

// NewPaymentForSale creates the completed payment recorded when a sale is paid
func NewPaymentForSale(saleID, customerID uuid.UUID, amount decimal.Decimal, method PaymentMethod, at time.Time) (*Payment, error) {
	return NewPayment(
		TransactionIDForSale(saleID, at),
		OrderIDForSale(saleID),
		customerID,
		amount,
		method,
		PaymentStatusCompleted,
	)
}

// NewPayment creates a payment record
func NewPayment(transactionID, orderID string, customerID uuid.UUID, amount decimal.Decimal, method PaymentMethod, status PaymentStatus) (*Payment, error) {
	p := &Payment{
		BaseEntity: shared.NewBaseEntity(),
	}
	if err := p.Update(transactionID, orderID, customerID, amount, method, status); err != nil {
		return nil, err
	}
	p.PaymentDate = p.CreatedAt
	return p, nil
}

// Update replaces the payment's writable fields
func (p *Payment) Update(transactionID, orderID string, customerID uuid.UUID, amount decimal.Decimal, method PaymentMethod, status PaymentStatus) error {
	transactionID = strings.TrimSpace(transactionID)
	orderID = strings.TrimSpace(orderID)
	if transactionID == "" || len(transactionID) > 100 {
		return shared.NewDomainError("INVALID_TRANSACTION_ID", "Transaction ID is required and cannot exceed 100 characters")
	}
	if orderID == "" || len(orderID) > 100 {
		return shared.NewDomainError("INVALID_ORDER_ID", "Order ID is required and cannot exceed 100 characters")
	}
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_METHOD", "Payment method must be one of cash, card, mobile")
	}
	if status == "" {
		status = PaymentStatusCompleted
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid payment status")
	}

	p.TransactionID = transactionID
	p.OrderID = orderID
	p.CustomerID = customerID
	p.Amount = shared.RoundMoney(amount)
	p.Method = method
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}
