package models

import (
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate
type ProductModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(100);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	MinStock    int             `gorm:"not null;default:0"`
	Category    string          `gorm:"type:varchar(50);index"`
	SKU         string          `gorm:"column:sku;type:varchar(50);index:idx_products_sku,unique,where:sku <> ''"`
	Supplier    string          `gorm:"type:varchar(100)"`
	ImageURL    string          `gorm:"column:image_url;type:varchar(500)"`
	Description string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregate(),
		Name:              m.Name,
		Price:             m.Price,
		Stock:             m.Stock,
		MinStock:          m.MinStock,
		Category:          m.Category,
		SKU:               m.SKU,
		Supplier:          m.Supplier,
		ImageURL:          m.ImageURL,
		Description:       m.Description,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Price = p.Price
	m.Stock = p.Stock
	m.MinStock = p.MinStock
	m.Category = p.Category
	m.SKU = p.SKU
	m.Supplier = p.Supplier
	m.ImageURL = p.ImageURL
	m.Description = p.Description
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
