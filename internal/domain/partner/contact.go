package partner

import (
	"regexp"

	"github.com/retailpos/backend/internal/domain/shared"
)

const (
	maxNameLength  = 100
	maxPhoneLength = 15
	maxEmailLength = 254
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
)

func validateName(field, name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", field+" cannot be empty")
	}
	if len(name) > maxNameLength {
		return shared.NewDomainError("INVALID_NAME", field+" cannot exceed 100 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > maxEmailLength || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if len(phone) > maxPhoneLength {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 15 characters")
	}
	if !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}
