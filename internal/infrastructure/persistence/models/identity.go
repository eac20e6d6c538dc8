package models

import (
	"time"

	"github.com/retailpos/backend/internal/domain/identity"
)

// StaffModel is the persistence model for the Staff aggregate
type StaffModel struct {
	AggregateModel
	Name       string               `gorm:"type:varchar(100);not null"`
	Email      string               `gorm:"type:varchar(254);not null;uniqueIndex:idx_staff_email"`
	Phone      string               `gorm:"type:varchar(20)"`
	Role       identity.StaffRole   `gorm:"type:varchar(20);not null;default:'cashier';index"`
	Department string               `gorm:"type:varchar(50)"`
	Status     identity.StaffStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	LastLogin  *time.Time
}

// TableName returns the table name for GORM
func (StaffModel) TableName() string {
	return "staff"
}

// ToDomain converts the persistence model to a domain Staff
func (m *StaffModel) ToDomain() *identity.Staff {
	return &identity.Staff{
		BaseAggregateRoot: m.ToDomainAggregate(),
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Role:              m.Role,
		Department:        m.Department,
		Status:            m.Status,
		LastLogin:         m.LastLogin,
	}
}

// StaffModelFromDomain creates a persistence model from a domain Staff
func StaffModelFromDomain(s *identity.Staff) *StaffModel {
	m := &StaffModel{
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		Role:       s.Role,
		Department: s.Department,
		Status:     s.Status,
		LastLogin:  s.LastLogin,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}
