package partner

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusPending  SupplierStatus = "pending"
	SupplierStatusInactive SupplierStatus = "inactive"
)

// IsValid reports whether the status is a known value
func (s SupplierStatus) IsValid() bool {
	switch s {
	case SupplierStatusActive, SupplierStatusPending, SupplierStatusInactive:
		return true
	}
	return false
}

// Supplier is a vendor record. It is not linked to catalog.Product,
// whose supplier field is free text.
type Supplier struct {
	shared.BaseAggregateRoot
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	Status        SupplierStatus
}

// NewSupplier creates a new active supplier
func NewSupplier(name, contactPerson, email string) (*Supplier, error) {
	s := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            SupplierStatusActive,
	}
	if err := s.Update(name, contactPerson, email, "", ""); err != nil {
		return nil, err
	}
	s.Version = 1
	return s, nil
}

// Update replaces the supplier's writable fields
func (s *Supplier) Update(name, contactPerson, email, phone, address string) error {
	name = strings.TrimSpace(name)
	contactPerson = strings.TrimSpace(contactPerson)
	if err := validateName("Supplier name", name); err != nil {
		return err
	}
	if err := validateName("Contact person", contactPerson); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePhone(phone); err != nil {
		return err
	}

	s.Name = name
	s.ContactPerson = contactPerson
	s.Email = email
	s.Phone = phone
	s.Address = address
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetStatus changes the supplier status
func (s *Supplier) SetStatus(status SupplierStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Supplier status must be 'active', 'pending' or 'inactive'")
	}
	s.Status = status
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}
