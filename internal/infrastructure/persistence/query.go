package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inventory/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so the term matches literally
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// applySearch adds a case-insensitive substring match over the given columns.
// LOWER(..) LIKE keeps the query portable between postgres and sqlite.
func applySearch(query *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(EscapeLike(term)) + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = fmt.Sprintf(`LOWER(COALESCE(%s, '')) LIKE ? ESCAPE '\'`, col)
		args[i] = pattern
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// applyOrderAndPage orders by a whitelisted column and applies pagination.
// The id tiebreaker keeps pages stable when the sort column has duplicates.
func applyOrderAndPage(query *gorm.DB, filter shared.Filter, allowed map[string]string, defaultField, defaultDir, idColumn string) *gorm.DB {
	column := ValidateSortField(filter.OrderBy, allowed, defaultField)
	dir := ValidateSortOrder(filter.OrderDir, defaultDir)
	query = query.Order(column + " " + dir)
	if column != idColumn {
		query = query.Order(idColumn + " " + dir)
	}
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// listSpec describes how a reference table is listed
type listSpec struct {
	searchColumns []string
	sortable      map[string]string
	defaultSort   string
	defaultDir    string
}

// findPage counts the rows matched by query, then loads the requested page
func findPage[T any](query *gorm.DB, filter shared.Filter, spec listSpec) ([]T, int64, error) {
	query = applySearch(query, filter.Search, spec.searchColumns...)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []T
	err := applyOrderAndPage(query, filter, spec.sortable, spec.defaultSort, spec.defaultDir, "id").
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// firstByID loads a T by primary key, shared.ErrNotFound when absent
func firstByID[T any](ctx context.Context, db *gorm.DB, id int64) (*T, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &row, nil
}

// existsOther reports whether a T other than excludeID matches cond
func existsOther[T any](ctx context.Context, db *gorm.DB, excludeID int64, cond string, args ...any) (bool, error) {
	query := db.WithContext(ctx).Model(new(T)).Where(cond, args...)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// deleteByID hard-deletes a T, shared.ErrNotFound when no row matched
func deleteByID[T any](ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// filterInt64 reads an int64 filter value set by the handlers
func filterInt64(filter shared.Filter, key string) (int64, bool) {
	if filter.Filters == nil {
		return 0, false
	}
	switch v := filter.Filters[key].(type) {
	case int64:
		return v, v != 0
	case int:
		return int64(v), v != 0
	}
	return 0, false
}

func filterString(filter shared.Filter, key string) (string, bool) {
	if filter.Filters == nil {
		return "", false
	}
	v, ok := filter.Filters[key].(string)
	return v, ok && v != ""
}

func filterBool(filter shared.Filter, key string) (bool, bool) {
	if filter.Filters == nil {
		return false, false
	}
	v, ok := filter.Filters[key].(bool)
	return v, ok
}

// translateError maps gorm errors onto domain sentinels
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return shared.ErrAlreadyExists
	}
	return err
}

// isUniqueViolation recognises unique violations from drivers that gorm does not translate
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
