package partner

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// IsValid reports whether the status is a known value
func (s CustomerStatus) IsValid() bool {
	return s == CustomerStatusActive || s == CustomerStatusInactive
}

// Customer represents a buyer at the point of sale.
// Purchase statistics are only changed through RecordPurchase.
type Customer struct {
	shared.BaseAggregateRoot
	Name           string
	Email          string
	Phone          string
	Address        string
	Status         CustomerStatus
	TotalPurchases int
	TotalSpent     decimal.Decimal
	LastVisit      *time.Time
}

// NewCustomer creates a new active customer
func NewCustomer(name, email string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if err := validateName("Customer name", name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Status:            CustomerStatusActive,
		TotalSpent:        decimal.Zero,
	}, nil
}

// Update replaces the customer's writable profile fields
func (c *Customer) Update(name, email, phone, address string) error {
	name = strings.TrimSpace(name)
	if err := validateName("Customer name", name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	c.Name = name
	c.Email = email
	c.Phone = phone
	c.Address = address
	c.touch()
	return nil
}

// SetStatus changes the customer status
func (c *Customer) SetStatus(status CustomerStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Customer status must be 'active' or 'inactive'")
	}
	c.Status = status
	c.touch()
	return nil
}

// RecordPurchase adds a completed sale to the customer's statistics
func (c *Customer) RecordPurchase(amount decimal.Decimal, at time.Time) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Purchase amount cannot be negative")
	}
	c.TotalPurchases++
	c.TotalSpent = shared.RoundMoney(c.TotalSpent.Add(amount))
	visit := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	c.LastVisit = &visit
	c.touch()
	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

func (c *Customer) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
