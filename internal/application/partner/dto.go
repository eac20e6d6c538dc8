package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create or replace a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=15"`
	Address string `json:"address"`
	Status  string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ToUpdate converts a full replacement into an update with every field set
func (r CreateCustomerRequest) ToUpdate() UpdateCustomerRequest {
	status := r.Status
	if status == "" {
		status = string(partner.CustomerStatusActive)
	}
	return UpdateCustomerRequest{
		Name:    &r.Name,
		Email:   &r.Email,
		Phone:   &r.Phone,
		Address: &r.Address,
		Status:  &status,
	}
}

// UpdateCustomerRequest represents a partial customer update.
// Purchase statistics are not writable.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=15"`
	Address *string `json:"address"`
	Status  *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	TotalPurchases int           `json:"total_purchases"`
	TotalSpent     shared.Amount `json:"total_spent"`
	LastVisit      *string       `json:"last_visit"`
	Status         string        `json:"status"`
	Address        string        `json:"address"`
	CreatedAt      time.Time     `json:"created_at"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	var lastVisit *string
	if c.LastVisit != nil {
		d := c.LastVisit.Format(time.DateOnly)
		lastVisit = &d
	}
	return CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		TotalPurchases: c.TotalPurchases,
		TotalSpent:     shared.NewAmount(c.TotalSpent),
		LastVisit:      lastVisit,
		Status:         string(c.Status),
		Address:        c.Address,
		CreatedAt:      c.CreatedAt,
	}
}

// ToCustomerResponses converts a slice of domain Customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

// =============================================================================
// Supplier DTOs
// =============================================================================

// CreateSupplierRequest represents a request to create or replace a supplier
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	ContactPerson string `json:"contact_person" binding:"required,min=1,max=100"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"omitempty,max=15"`
	Address       string `json:"address"`
	Status        string `json:"status" binding:"omitempty,oneof=active pending inactive"`
}

// ToUpdate converts a full replacement into an update with every field set
func (r CreateSupplierRequest) ToUpdate() UpdateSupplierRequest {
	status := r.Status
	if status == "" {
		status = string(partner.SupplierStatusActive)
	}
	return UpdateSupplierRequest{
		Name:          &r.Name,
		ContactPerson: &r.ContactPerson,
		Email:         &r.Email,
		Phone:         &r.Phone,
		Address:       &r.Address,
		Status:        &status,
	}
}

// UpdateSupplierRequest represents a partial supplier update
type UpdateSupplierRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=100"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,min=1,max=100"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone" binding:"omitempty,max=15"`
	Address       *string `json:"address"`
	Status        *string `json:"status" binding:"omitempty,oneof=active pending inactive"`
}

// SupplierListFilter represents filter options for supplier list
type SupplierListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active pending inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToSupplierResponse converts a domain Supplier to SupplierResponse
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
	}
}

// ToSupplierResponses converts a slice of domain Suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses
}
