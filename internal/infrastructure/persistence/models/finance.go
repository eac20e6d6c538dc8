package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for the Payment entity
type PaymentModel struct {
	BaseModel
	TransactionID string                `gorm:"type:varchar(100);not null;uniqueIndex:idx_payments_transaction_id"`
	OrderID       string                `gorm:"type:varchar(100);not null"`
	CustomerID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal       `gorm:"type:decimal(10,2);not null"`
	Method        finance.PaymentMethod `gorm:"type:varchar(20);not null"`
	Status        finance.PaymentStatus `gorm:"type:varchar(20);not null;default:'completed'"`
	PaymentDate   time.Time             `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		BaseEntity:    m.BaseModel.ToDomain(),
		TransactionID: m.TransactionID,
		OrderID:       m.OrderID,
		CustomerID:    m.CustomerID,
		Amount:        m.Amount,
		Method:        m.Method,
		Status:        m.Status,
		PaymentDate:   m.PaymentDate,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{
		TransactionID: p.TransactionID,
		OrderID:       p.OrderID,
		CustomerID:    p.CustomerID,
		Amount:        p.Amount,
		Method:        p.Method,
		Status:        p.Status,
		PaymentDate:   p.PaymentDate,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
