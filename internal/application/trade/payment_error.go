package trade

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PaymentErrorKind classifies why sale payment processing failed
type PaymentErrorKind string

const (
	PaymentErrorInsufficientStock PaymentErrorKind = "insufficient_stock"
	PaymentErrorInvalidState      PaymentErrorKind = "invalid_state"
	PaymentErrorNotFound          PaymentErrorKind = "not_found"
	PaymentErrorStorageFailure    PaymentErrorKind = "storage_failure"
)

// MarksSaleFailed reports whether a failure of this kind leaves the sale
// in failed status
func (k PaymentErrorKind) MarksSaleFailed() bool {
	return k == PaymentErrorInsufficientStock || k == PaymentErrorStorageFailure
}

// PaymentError is returned by PaymentProcessor.Process
type PaymentError struct {
	Kind   PaymentErrorKind
	SaleID uuid.UUID
	Err    error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment for sale %s failed (%s): %v", e.SaleID, e.Kind, e.Err)
	}
	return fmt.Sprintf("payment for sale %s failed (%s)", e.SaleID, e.Kind)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

func newPaymentError(kind PaymentErrorKind, saleID uuid.UUID, err error) *PaymentError {
	return &PaymentError{Kind: kind, SaleID: saleID, Err: err}
}

// AsPaymentError extracts a PaymentError from err
func AsPaymentError(err error) (*PaymentError, bool) {
	var pe *PaymentError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
