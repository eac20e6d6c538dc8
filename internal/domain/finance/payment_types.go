package finance

// PaymentMethod is how a customer paid
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodMobile PaymentMethod = "mobile"
)

// DefaultPaymentMethod is used when a sale is created without a method
const DefaultPaymentMethod = PaymentMethodCash

// IsValid reports whether the method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobile:
		return true
	}
	return false
}

// String returns the string representation
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus is shared by sales and payment records
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// IsValid reports whether the status is a known value
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s PaymentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	if s != PaymentStatusPending {
		return false // Terminal states
	}
	return target == PaymentStatusCompleted || target == PaymentStatusFailed
}
