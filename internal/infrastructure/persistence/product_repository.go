package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var productListQuery = listQuery{
	sortFields:    ProductSortFields,
	defaultSort:   "created_at",
	defaultDir:    "ASC",
	searchColumns: []string{"name", "sku", "category", "supplier"},
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate loads a product with SELECT ... FOR UPDATE. Only
// meaningful inside a transaction.
func (r *GormProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormProductRepository) find(db *gorm.DB, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	query = productListQuery.applyOrderAndPage(query, filter)

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}
	products := make([]catalog.Product, len(productModels))
	for i := range productModels {
		products[i] = *productModels[i].ToDomain()
	}
	return products, nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product without a version check
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(models.ProductModelFromDomain(product)).Error
}

// SaveWithLock writes every column of the product only if the stored version
// is still loadedVersion
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product, loadedVersion int) error {
	model := models.ProductModelFromDomain(product)
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND version = ?", product.ID, loadedVersion).
		Updates(map[string]any{
			"name":        model.Name,
			"price":       model.Price,
			"stock":       model.Stock,
			"min_stock":   model.MinStock,
			"category":    model.Category,
			"sku":         model.SKU,
			"supplier":    model.Supplier,
			"image_url":   model.ImageURL,
			"description": model.Description,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a product together with the sales that reference it
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.SaleModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ProductModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsBySKU checks if a product other than excludeID uses the SKU.
// An empty SKU never conflicts.
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string, excludeID uuid.UUID) (bool, error) {
	if sku == "" {
		return false, nil
	}
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("sku = ?", sku)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = productListQuery.applySearch(query, filter.Search)

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "low_stock":
			if low, ok := value.(bool); ok {
				if low {
					query = query.Where("stock < min_stock")
				} else {
					query = query.Where("stock >= min_stock")
				}
			}
		}
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
