package models

import (
	"time"

	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer aggregate
type CustomerModel struct {
	AggregateModel
	Name           string                 `gorm:"type:varchar(100);not null"`
	Email          string                 `gorm:"type:varchar(254);not null;index"`
	Phone          string                 `gorm:"type:varchar(20)"`
	Address        string                 `gorm:"type:text"`
	Status         partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	TotalPurchases int                    `gorm:"not null;default:0"`
	TotalSpent     decimal.Decimal        `gorm:"type:decimal(10,2);not null;default:0"`
	LastVisit      *time.Time             `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregate(),
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		Status:            m.Status,
		TotalPurchases:    m.TotalPurchases,
		TotalSpent:        m.TotalSpent,
		LastVisit:         m.LastVisit,
	}
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.Status = c.Status
	m.TotalPurchases = c.TotalPurchases
	m.TotalSpent = c.TotalSpent
	m.LastVisit = c.LastVisit
}

// CustomerModelFromDomain creates a persistence model from a domain Customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// SupplierModel is the persistence model for the Supplier aggregate
type SupplierModel struct {
	AggregateModel
	Name          string                 `gorm:"type:varchar(100);not null"`
	ContactPerson string                 `gorm:"type:varchar(100);not null"`
	Email         string                 `gorm:"type:varchar(254);not null;uniqueIndex:idx_suppliers_email"`
	Phone         string                 `gorm:"type:varchar(20)"`
	Address       string                 `gorm:"type:text"`
	Status        partner.SupplierStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseAggregateRoot: m.ToDomainAggregate(),
		Name:              m.Name,
		ContactPerson:     m.ContactPerson,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		Status:            m.Status,
	}
}

// SupplierModelFromDomain creates a persistence model from a domain Supplier
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		Status:        s.Status,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}
