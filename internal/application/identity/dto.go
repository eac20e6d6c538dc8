package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/identity"
)

// CreateStaffRequest represents a request to create or replace a staff member
type CreateStaffRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"omitempty,max=15"`
	Role       string `json:"role" binding:"omitempty,oneof=manager cashier inventory accountant"`
	Department string `json:"department" binding:"max=50"`
	Status     string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ToUpdate converts a full replacement into an update with every field set
func (r CreateStaffRequest) ToUpdate() UpdateStaffRequest {
	role, status := r.Role, r.Status
	if role == "" {
		role = string(identity.StaffRoleCashier)
	}
	if status == "" {
		status = string(identity.StaffStatusActive)
	}
	return UpdateStaffRequest{
		Name:       &r.Name,
		Email:      &r.Email,
		Phone:      &r.Phone,
		Role:       &role,
		Department: &r.Department,
		Status:     &status,
	}
}

// UpdateStaffRequest represents a partial staff update
type UpdateStaffRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone" binding:"omitempty,max=15"`
	Role       *string `json:"role" binding:"omitempty,oneof=manager cashier inventory accountant"`
	Department *string `json:"department" binding:"omitempty,max=50"`
	Status     *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// StaffListFilter represents filter options for staff list
type StaffListFilter struct {
	Search   string `form:"search"`
	Role     string `form:"role" binding:"omitempty,oneof=manager cashier inventory accountant"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// StaffResponse represents a staff member in API responses
type StaffResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Role       string     `json:"role"`
	Department string     `json:"department"`
	Status     string     `json:"status"`
	LastLogin  *time.Time `json:"last_login"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToStaffResponse converts a domain Staff to StaffResponse
func ToStaffResponse(s *identity.Staff) StaffResponse {
	return StaffResponse{
		ID:         s.ID,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		Role:       string(s.Role),
		Department: s.Department,
		Status:     string(s.Status),
		LastLogin:  s.LastLogin,
		CreatedAt:  s.CreatedAt,
	}
}

// ToStaffResponses converts a slice of domain Staff
func ToStaffResponses(staff []identity.Staff) []StaffResponse {
	responses := make([]StaffResponse, len(staff))
	for i := range staff {
		responses[i] = ToStaffResponse(&staff[i])
	}
	return responses
}
