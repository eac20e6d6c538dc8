package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product.
// It binds from JSON or multipart form fields.
type CreateProductRequest struct {
	Name           string           `json:"name" form:"name" binding:"required,min=1,max=100"`
	Price          *decimal.Decimal `json:"price" form:"price" binding:"required"`
	Stock          *int             `json:"stock" form:"stock" binding:"omitempty,min=0"`
	MinStock       *int             `json:"min_stock" form:"min_stock" binding:"omitempty,min=0"`
	Category       string           `json:"category" form:"category" binding:"max=50"`
	SKU            string           `json:"sku" form:"sku" binding:"max=50"`
	Supplier       string           `json:"supplier" form:"supplier" binding:"max=100"`
	Image          string           `json:"image" form:"image" binding:"omitempty,url"`
	Description    string           `json:"description" form:"description"`
	ImageBase64    string           `json:"image_base64" form:"image_base64"`
	ImageSourceURL string           `json:"image_source_url" form:"image_source_url" binding:"omitempty,url"`
}

// ToUpdate converts a full replacement into an update with every field set
func (r CreateProductRequest) ToUpdate() UpdateProductRequest {
	stock, minStock := 0, 0
	if r.Stock != nil {
		stock = *r.Stock
	}
	if r.MinStock != nil {
		minStock = *r.MinStock
	}
	return UpdateProductRequest{
		Name:           &r.Name,
		Price:          r.Price,
		Stock:          &stock,
		MinStock:       &minStock,
		Category:       &r.Category,
		SKU:            &r.SKU,
		Supplier:       &r.Supplier,
		Image:          &r.Image,
		Description:    &r.Description,
		ImageBase64:    r.ImageBase64,
		ImageSourceURL: r.ImageSourceURL,
	}
}

// UpdateProductRequest represents a partial update of a product
type UpdateProductRequest struct {
	Name           *string          `json:"name" form:"name" binding:"omitempty,min=1,max=100"`
	Price          *decimal.Decimal `json:"price" form:"price"`
	Stock          *int             `json:"stock" form:"stock" binding:"omitempty,min=0"`
	MinStock       *int             `json:"min_stock" form:"min_stock" binding:"omitempty,min=0"`
	Category       *string          `json:"category" form:"category" binding:"omitempty,max=50"`
	SKU            *string          `json:"sku" form:"sku" binding:"omitempty,max=50"`
	Supplier       *string          `json:"supplier" form:"supplier" binding:"omitempty,max=100"`
	Image          *string          `json:"image" form:"image" binding:"omitempty"`
	Description    *string          `json:"description" form:"description"`
	ImageBase64    string           `json:"image_base64" form:"image_base64"`
	ImageSourceURL string           `json:"image_source_url" form:"image_source_url" binding:"omitempty,url"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	LowStock *bool  `form:"low_stock"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Price       shared.Amount `json:"price"`
	Stock       int           `json:"stock"`
	MinStock    int           `json:"min_stock"`
	Category    string        `json:"category"`
	SKU         string        `json:"sku"`
	Supplier    string        `json:"supplier"`
	Image       string        `json:"image"`
	Description string        `json:"description"`
	LowStock    bool          `json:"low_stock"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Version     int           `json:"version"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       shared.NewAmount(p.Price),
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Category:    p.Category,
		SKU:         p.SKU,
		Supplier:    p.Supplier,
		Image:       p.ImageURL,
		Description: p.Description,
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
