package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var saleListQuery = listQuery{
	sortFields:  SaleSortFields,
	defaultSort: "sale_date",
	defaultDir:  "DESC",
}

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate loads a sale with SELECT ... FOR UPDATE
func (r *GormSaleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Sale, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormSaleRepository) find(db *gorm.DB, id uuid.UUID) (*trade.Sale, error) {
	var model models.SaleModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds sales matching the filter, newest first by default
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Sale, error) {
	var saleModels []models.SaleModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SaleModel{}), filter)
	query = saleListQuery.applyOrderAndPage(query, filter)

	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}
	sales := make([]trade.Sale, len(saleModels))
	for i := range saleModels {
		sales[i] = *saleModels[i].ToDomain()
	}
	return sales, nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SaleModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *trade.Sale) error {
	return r.db.WithContext(ctx).Save(models.SaleModelFromDomain(sale)).Error
}

// Delete deletes a sale
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SaleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "customer_id", "product_id", "payment_status", "payment_method":
			query = query.Where(key+" = ?", value)
		}
	}
	return query
}

// Ensure GormSaleRepository implements SaleRepository
var _ trade.SaleRepository = (*GormSaleRepository)(nil)
