package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate.
// customer_id and product_id cascade on delete in the SQL schema.
type SaleModel struct {
	AggregateModel
	CustomerID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	Quantity      int                   `gorm:"not null"`
	TotalPrice    decimal.Decimal       `gorm:"type:decimal(10,2);not null"`
	SaleDate      time.Time             `gorm:"not null;index"`
	PaymentStatus finance.PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod finance.PaymentMethod `gorm:"type:varchar(20);not null;default:''"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale
func (m *SaleModel) ToDomain() *trade.Sale {
	return &trade.Sale{
		BaseAggregateRoot: m.ToDomainAggregate(),
		CustomerID:        m.CustomerID,
		ProductID:         m.ProductID,
		Quantity:          m.Quantity,
		TotalPrice:        m.TotalPrice,
		SaleDate:          m.SaleDate,
		PaymentStatus:     m.PaymentStatus,
		PaymentMethod:     m.PaymentMethod,
	}
}

// SaleModelFromDomain creates a persistence model from a domain Sale
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{
		CustomerID:    s.CustomerID,
		ProductID:     s.ProductID,
		Quantity:      s.Quantity,
		TotalPrice:    s.TotalPrice,
		SaleDate:      s.SaleDate,
		PaymentStatus: s.PaymentStatus,
		PaymentMethod: s.PaymentMethod,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}
