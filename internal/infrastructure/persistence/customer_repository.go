package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var customerListQuery = listQuery{
	sortFields:    CustomerSortFields,
	defaultSort:   "created_at",
	defaultDir:    "ASC",
	searchColumns: []string{"name", "email", "phone"},
}

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate loads a customer with SELECT ... FOR UPDATE
func (r *GormCustomerRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormCustomerRepository) find(db *gorm.DB, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple customers by their IDs. Unknown IDs are skipped.
func (r *GormCustomerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]partner.Customer, error) {
	if len(ids) == 0 {
		return []partner.Customer{}, nil
	}
	var customerModels []models.CustomerModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&customerModels).Error; err != nil {
		return nil, err
	}
	customers := make([]partner.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = *customerModels[i].ToDomain()
	}
	return customers, nil
}

// FindAll finds all customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var customerModels []models.CustomerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)
	query = customerListQuery.applyOrderAndPage(query, filter)

	if err := query.Find(&customerModels).Error; err != nil {
		return nil, err
	}
	customers := make([]partner.Customer, len(customerModels))
	for i := range customerModels {
		customers[i] = *customerModels[i].ToDomain()
	}
	return customers, nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Save(models.CustomerModelFromDomain(customer)).Error
}

// Delete deletes a customer along with its sales and payments
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", id).Delete(&models.SaleModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.CustomerModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = customerListQuery.applySearch(query, filter.Search)
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
