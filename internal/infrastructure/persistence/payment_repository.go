package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var paymentListQuery = listQuery{
	sortFields:    PaymentSortFields,
	defaultSort:   "payment_date",
	defaultDir:    "DESC",
	searchColumns: []string{"transaction_id", "order_id"},
}

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Payment, error) {
	var paymentModels []models.PaymentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter)
	query = paymentListQuery.applyOrderAndPage(query, filter)

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]finance.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments, nil
}

func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PaymentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	return r.db.WithContext(ctx).Save(models.PaymentModelFromDomain(payment)).Error
}

func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByTransactionID checks if another payment already carries the transaction id
func (r *GormPaymentRepository) ExistsByTransactionID(ctx context.Context, transactionID string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PaymentModel{}).Where("transaction_id = ?", transactionID)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = paymentListQuery.applySearch(query, filter.Search)
	for key, value := range filter.Filters {
		switch key {
		case "customer_id", "method", "status":
			query = query.Where(key+" = ?", value)
		}
	}
	return query
}

var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)
