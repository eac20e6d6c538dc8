package persistence

import (
	"strings"

	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder normalizes a sort direction to ASC or DESC.
// Anything other than "desc" (case-insensitive) sorts ascending.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "desc") {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField returns sortField if it is whitelisted, otherwise defaultField.
// Column names cannot be bound as parameters, so every ORDER BY column must
// pass through this check.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Sortable columns per table
var (
	ProductSortFields = map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
		"price":      true,
		"stock":      true,
		"category":   true,
	}

	CustomerSortFields = map[string]bool{
		"created_at":      true,
		"name":            true,
		"email":           true,
		"total_purchases": true,
		"total_spent":     true,
		"last_visit":      true,
	}

	StaffSortFields = map[string]bool{
		"created_at": true,
		"name":       true,
		"email":      true,
		"role":       true,
		"department": true,
		"last_login": true,
	}

	SupplierSortFields = map[string]bool{
		"created_at":     true,
		"name":           true,
		"contact_person": true,
		"email":          true,
		"status":         true,
	}

	SaleSortFields = map[string]bool{
		"sale_date":      true,
		"total_price":    true,
		"quantity":       true,
		"payment_status": true,
	}

	PaymentSortFields = map[string]bool{
		"payment_date": true,
		"amount":       true,
		"method":       true,
		"status":       true,
	}
)

// listQuery describes how a table is searched and ordered
type listQuery struct {
	sortFields    map[string]bool
	defaultSort   string
	defaultDir    string
	searchColumns []string
}

// applySearch adds a case-insensitive substring match over the search columns
func (q listQuery) applySearch(db *gorm.DB, search string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(q.searchColumns) == 0 {
		return db
	}
	pattern := "%" + strings.ToLower(search) + "%"
	conds := make([]string, len(q.searchColumns))
	args := make([]any, len(q.searchColumns))
	for i, col := range q.searchColumns {
		conds[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return db.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// applyOrderAndPage adds a whitelisted ORDER BY with id as tie breaker, then
// LIMIT/OFFSET when the filter is paginated
func (q listQuery) applyOrderAndPage(db *gorm.DB, filter shared.Filter) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, q.sortFields, q.defaultSort)
	dir := q.defaultDir
	if filter.OrderBy != "" || filter.OrderDir != "" {
		dir = ValidateSortOrder(filter.OrderDir)
	}
	db = db.Order(field + " " + dir).Order("id " + dir)

	if filter.Page > 0 && filter.PageSize > 0 {
		db = db.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return db
}
