package catalog

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	maxNameLength     = 100
	maxCategoryLength = 50
	maxSKULength      = 50
	maxSupplierLength = 100
)

// Product represents a sellable item in the catalog.
// It is the aggregate root for stock-affecting operations and carries a
// version for optimistic locking.
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Price       decimal.Decimal
	Stock       int
	MinStock    int
	Category    string
	SKU         string
	Supplier    string
	ImageURL    string
	Description string
}

// NewProduct creates a new product with zero stock
func NewProduct(name string, price decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Price:             shared.RoundMoney(price),
	}, nil
}

// Update replaces the product's descriptive fields
func (p *Product) Update(name, category, supplier, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if len(category) > maxCategoryLength {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 50 characters")
	}
	if len(supplier) > maxSupplierLength {
		return shared.NewDomainError("INVALID_SUPPLIER", "Supplier cannot exceed 100 characters")
	}

	p.Name = strings.TrimSpace(name)
	p.Category = category
	p.Supplier = supplier
	p.Description = description
	p.touch()
	return nil
}

// SetPrice sets the unit price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	p.Price = shared.RoundMoney(price)
	p.touch()
	return nil
}

// SetSKU sets the stock keeping unit. An empty SKU is allowed and is not
// subject to uniqueness.
func (p *Product) SetSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if len(sku) > maxSKULength {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	p.SKU = sku
	p.touch()
	return nil
}

// SetStockLevels sets the on-hand quantity and the low stock threshold
func (p *Product) SetStockLevels(stock, minStock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	if minStock < 0 {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}
	p.Stock = stock
	p.MinStock = minStock
	p.touch()
	return nil
}

// SetImageURL sets the public image URL
func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
	p.touch()
}

// HasStock reports whether quantity units can be taken from stock
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}

// DeductStock removes quantity units from stock
func (p *Product) DeductStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !p.HasStock(quantity) {
		return shared.ErrInsufficientStock
	}
	p.Stock -= quantity
	p.touch()
	return nil
}

// IsLowStock returns true when stock is below the configured minimum
func (p *Product) IsLowStock() bool {
	return p.Stock < p.MinStock
}

// PriceFor returns the total price for the given quantity at the current price
func (p *Product) PriceFor(quantity int) decimal.Decimal {
	return shared.RoundMoney(p.Price.Mul(decimal.NewFromInt(int64(quantity))))
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > maxNameLength {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 100 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	// decimal(10,2) holds at most 8 integer digits
	if price.GreaterThanOrEqual(decimal.New(1, 8)) {
		return shared.NewDomainError("INVALID_PRICE", "Price exceeds the maximum allowed value")
	}
	return nil
}
