package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var staffListQuery = listQuery{
	sortFields:    StaffSortFields,
	defaultSort:   "created_at",
	defaultDir:    "ASC",
	searchColumns: []string{"name", "email", "phone"},
}

// GormStaffRepository implements StaffRepository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

func (r *GormStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Staff, error) {
	var model models.StaffModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormStaffRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Staff, error) {
	var staffModels []models.StaffModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StaffModel{}), filter)
	query = staffListQuery.applyOrderAndPage(query, filter)

	if err := query.Find(&staffModels).Error; err != nil {
		return nil, err
	}
	members := make([]identity.Staff, len(staffModels))
	for i := range staffModels {
		members[i] = *staffModels[i].ToDomain()
	}
	return members, nil
}

func (r *GormStaffRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.StaffModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStaffRepository) Save(ctx context.Context, staff *identity.Staff) error {
	return r.db.WithContext(ctx).Save(models.StaffModelFromDomain(staff)).Error
}

func (r *GormStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StaffModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormStaffRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.StaffModel{}).
		Where("LOWER(email) = ?", strings.ToLower(email))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormStaffRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = staffListQuery.applySearch(query, filter.Search)
	if role, ok := filter.Filters["role"]; ok {
		query = query.Where("role = ?", role)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

var _ identity.StaffRepository = (*GormStaffRepository)(nil)
