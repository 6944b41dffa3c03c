package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inventory/backend/internal/domain/shared"
)

type queryKind int

const (
	queryInt64 queryKind = iota
	queryString
	queryBool
	queryTime
	queryTimeUntil
)

// queryParam maps one query string parameter onto a repository filter key
type queryParam struct {
	name string
	kind queryKind
}

func int64Query(name string) queryParam  { return queryParam{name: name, kind: queryInt64} }
func stringQuery(name string) queryParam { return queryParam{name: name, kind: queryString} }
func boolQuery(name string) queryParam   { return queryParam{name: name, kind: queryBool} }
func timeQuery(name string) queryParam   { return queryParam{name: name, kind: queryTime} }

// untilQuery is an upper time bound; a bare date covers the whole day
func untilQuery(name string) queryParam { return queryParam{name: name, kind: queryTimeUntil} }

// ParseList reads page, page_size, search, sort_by and sort_order plus the
// typed filters in params. Unknown sort columns are left for the repository
// to replace with its default. A malformed filter value is answered with 400.
func (h *BaseHandler) ParseList(c *gin.Context, params ...queryParam) (shared.Filter, bool) {
	filter := shared.Filter{
		Search:   c.Query("search"),
		OrderBy:  strings.TrimSpace(c.Query("sort_by")),
		OrderDir: c.Query("sort_order"),
		Filters:  make(map[string]interface{}),
	}

	var ok bool
	if filter.Page, ok = h.queryInt(c, "page"); !ok {
		return filter, false
	}
	if filter.PageSize, ok = h.queryInt(c, "page_size"); !ok {
		return filter, false
	}
	if filter.PageSize > shared.MaxPageSize {
		h.BadRequest(c, "Page size must be between 1 and "+strconv.Itoa(shared.MaxPageSize))
		return filter, false
	}

	for _, p := range params {
		raw := strings.TrimSpace(c.Query(p.name))
		if raw == "" {
			continue
		}
		value, err := parseQueryValue(p.kind, raw)
		if err != nil {
			h.BadRequest(c, "Invalid "+p.name+": "+err.Error())
			return filter, false
		}
		filter = filter.WithFilter(p.name, value)
	}
	return filter, true
}

func (h *BaseHandler) queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		h.BadRequest(c, "Invalid "+name+": must be a positive integer")
		return 0, false
	}
	return n, true
}

type queryError string

func (e queryError) Error() string { return string(e) }

func parseQueryValue(kind queryKind, raw string) (interface{}, error) {
	switch kind {
	case queryInt64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, queryError("must be a positive integer")
		}
		return n, nil
	case queryBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, queryError("must be true or false")
		}
		return b, nil
	case queryTime, queryTimeUntil:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		if t, err := time.Parse(time.DateOnly, raw); err == nil {
			if kind == queryTimeUntil {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			return t, nil
		}
		return nil, queryError("must be an RFC 3339 timestamp or a YYYY-MM-DD date")
	default:
		return raw, nil
	}
}
