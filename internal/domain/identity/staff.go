package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
)

// StaffRole is the job function of a staff member
type StaffRole string

const (
	StaffRoleManager    StaffRole = "manager"
	StaffRoleCashier    StaffRole = "cashier"
	StaffRoleInventory  StaffRole = "inventory"
	StaffRoleAccountant StaffRole = "accountant"
)

// IsValid reports whether the role is a known value
func (r StaffRole) IsValid() bool {
	switch r {
	case StaffRoleManager, StaffRoleCashier, StaffRoleInventory, StaffRoleAccountant:
		return true
	}
	return false
}

// StaffStatus represents the employment status of a staff member
type StaffStatus string

const (
	StaffStatusActive   StaffStatus = "active"
	StaffStatusInactive StaffStatus = "inactive"
)

// IsValid reports whether the status is a known value
func (s StaffStatus) IsValid() bool {
	return s == StaffStatusActive || s == StaffStatusInactive
}

var (
	staffEmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	staffPhonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
)

// Staff is an employee record. It carries no credentials.
type Staff struct {
	shared.BaseAggregateRoot
	Name       string
	Email      string
	Phone      string
	Role       StaffRole
	Department string
	Status     StaffStatus
	LastLogin  *time.Time
}

// NewStaff creates an active cashier
func NewStaff(name, email string) (*Staff, error) {
	s := &Staff{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Role:              StaffRoleCashier,
		Status:            StaffStatusActive,
	}
	if err := s.Update(name, email, "", ""); err != nil {
		return nil, err
	}
	s.Version = 1
	return s, nil
}

// Update replaces the staff member's profile fields
func (s *Staff) Update(name, email, phone, department string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Staff name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Staff name cannot exceed 100 characters")
	}
	if !staffEmailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if phone != "" && (len(phone) > 15 || !staffPhonePattern.MatchString(phone)) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	if len(department) > 50 {
		return shared.NewDomainError("INVALID_DEPARTMENT", "Department cannot exceed 50 characters")
	}

	s.Name = name
	s.Email = email
	s.Phone = phone
	s.Department = department
	s.touch()
	return nil
}

// AssignRole changes the staff member's role
func (s *Staff) AssignRole(role StaffRole) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be one of manager, cashier, inventory, accountant")
	}
	s.Role = role
	s.touch()
	return nil
}

// SetStatus activates or deactivates the staff member
func (s *Staff) SetStatus(status StaffStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Staff status must be 'active' or 'inactive'")
	}
	s.Status = status
	s.touch()
	return nil
}

func (s *Staff) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
