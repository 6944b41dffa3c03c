package shared

import (
	"strings"
	"unicode/utf8"
)

// Pagination bounds applied to every list query
const (
	DefaultPage      = 1
	DefaultPageSize  = 50
	MaxPageSize      = 100
	MaxSearchLength  = 100
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
	DefaultSortField = "id"
)

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
		OrderBy:  DefaultSortField,
		OrderDir: SortOrderAsc,
		Filters:  make(map[string]interface{}),
	}
}

// Normalize clamps pagination, trims the search term and lowercases the sort direction.
// Unknown directions fall back to defaultDir. The HTTP layer already rejects
// page sizes above MaxPageSize; the clamp covers internal callers.
func (f Filter) Normalize(defaultField, defaultDir string) Filter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	f.Search = truncateRunes(strings.TrimSpace(f.Search), MaxSearchLength)
	if f.OrderBy == "" {
		f.OrderBy = defaultField
	}
	dir := strings.ToLower(strings.TrimSpace(f.OrderDir))
	if dir != SortOrderAsc && dir != SortOrderDesc {
		dir = defaultDir
	}
	f.OrderDir = dir
	if f.Filters == nil {
		f.Filters = make(map[string]interface{})
	}
	return f
}

// truncateRunes keeps at most n characters of s without splitting one
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Offset returns the row offset for the current page
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// WithFilter sets a keyed filter value, ignoring nil and zero ids
func (f Filter) WithFilter(key string, value interface{}) Filter {
	if f.Filters == nil {
		f.Filters = make(map[string]interface{})
	}
	switch v := value.(type) {
	case nil:
		return f
	case int64:
		if v == 0 {
			return f
		}
	case string:
		if v == "" {
			return f
		}
	}
	f.Filters[key] = value
	return f
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
