package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bindTarget struct {
	Name  string `json:"name" binding:"required,max=5"`
	Count int    `json:"count" binding:"gte=0"`
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		detail string
	}{
		{"not found", shared.NewNotFoundError("Item", 9), http.StatusNotFound, "ERR_NOT_FOUND", "Item 9 not found"},
		{"already exists", shared.NewDomainError(shared.CodeAlreadyExists, "Category with this name already exists"), http.StatusConflict, "ERR_ALREADY_EXISTS", "Category with this name already exists"},
		{"conflict", shared.NewDomainError(shared.CodeConflict, "in use"), http.StatusConflict, "ERR_CONFLICT", "in use"},
		{"invalid state", shared.NewDomainError(shared.CodeInvalidState, "User is already inactive"), http.StatusUnprocessableEntity, "ERR_INVALID_STATE", "User is already inactive"},
		{"insufficient stock", shared.NewDomainError(shared.CodeInsufficientStock, "Insufficient stock for transaction"), http.StatusUnprocessableEntity, "ERR_INSUFFICIENT_STOCK", "Insufficient stock for transaction"},
		{"service unavailable", shared.NewDomainError(shared.CodeServiceUnavailable, "Label printing is disabled"), http.StatusServiceUnavailable, "ERR_SERVICE_UNAVAILABLE", "Label printing is disabled"},
		{"wrapped domain error", errors.Join(errors.New("context"), shared.NewNotFoundError("Issue", 2)), http.StatusNotFound, "ERR_NOT_FOUND", "Issue 2 not found"},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError, "ERR_INTERNAL", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newBaseHandler(zap.NewNop())
			engine := newTestEngine(nil)
			engine.GET("/fail", func(c *gin.Context) { h.HandleError(c, tt.err) })

			w := testutil.Do(t, engine, testutil.Request{Path: "/fail"})

			detail := testutil.AssertError(t, w, tt.status, tt.code)
			assert.Equal(t, tt.detail, detail)
			env := testutil.Decode[any](t, w)
			assert.NotEmpty(t, env.Error.RequestID)
		})
	}
}

func TestBaseHandler_BindJSON(t *testing.T) {
	h := newBaseHandler(nil)
	engine := newTestEngine(nil)
	engine.POST("/bind", func(c *gin.Context) {
		var req bindTarget
		if !h.BindJSON(c, &req) {
			return
		}
		h.Success(c, req)
	})

	t.Run("valid body", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{Method: http.MethodPost, Path: "/bind", Body: bindTarget{Name: "abc", Count: 2}})
		data := testutil.AssertSuccess[bindTarget](t, w, http.StatusOK)
		assert.Equal(t, "abc", data.Name)
	})

	t.Run("validation details use json names", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{Method: http.MethodPost, Path: "/bind", Body: `{"name":"too long name","count":-1}`})
		testutil.AssertError(t, w, http.StatusBadRequest, "ERR_INVALID_INPUT")

		env := testutil.Decode[any](t, w)
		fields := make([]string, 0, len(env.Error.Details))
		for _, d := range env.Error.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"name", "count"}, fields)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{Method: http.MethodPost, Path: "/bind", Body: `{"name":`})
		testutil.AssertError(t, w, http.StatusBadRequest, "ERR_INVALID_JSON")
	})
}

func TestBaseHandler_ParseID(t *testing.T) {
	h := newBaseHandler(nil)
	engine := newTestEngine(nil)
	engine.GET("/things/:id", func(c *gin.Context) {
		id, ok := h.ParseID(c, "id")
		if !ok {
			return
		}
		h.Success(c, id)
	})

	for _, raw := range []string{"abc", "0", "-3", "1.5"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			w := testutil.Do(t, engine, testutil.Request{Path: "/things/" + raw})
			detail := testutil.AssertError(t, w, http.StatusBadRequest, "ERR_INVALID_INPUT")
			assert.Equal(t, "Invalid id: must be a positive integer", detail)
		})
	}

	w := testutil.Do(t, engine, testutil.Request{Path: "/things/42"})
	assert.Equal(t, int64(42), testutil.AssertSuccess[int64](t, w, http.StatusOK))
}

func TestBaseHandler_ParseList(t *testing.T) {
	h := newBaseHandler(nil)

	var got shared.Filter
	engine := newTestEngine(nil)
	engine.GET("/list", func(c *gin.Context) {
		filter, ok := h.ParseList(c,
			int64Query("item_id"),
			stringQuery("tx_type"),
			boolQuery("below_min"),
			timeQuery("from"),
			untilQuery("to"),
		)
		if !ok {
			return
		}
		got = filter
		h.Success(c, "ok")
	})

	t.Run("typed filters", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{
			Path: "/list?page=2&page_size=10&search=bolt&sort_by=tx_at&sort_order=desc" +
				"&item_id=7&tx_type=out&below_min=true&from=2024-01-01&to=2024-01-31",
		})
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, 2, got.Page)
		assert.Equal(t, 10, got.PageSize)
		assert.Equal(t, "bolt", got.Search)
		assert.Equal(t, "tx_at", got.OrderBy)
		assert.Equal(t, "desc", got.OrderDir)
		assert.Equal(t, int64(7), got.Filters["item_id"])
		assert.Equal(t, "out", got.Filters["tx_type"])
		assert.Equal(t, true, got.Filters["below_min"])
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got.Filters["from"])

		to, ok := got.Filters["to"].(time.Time)
		require.True(t, ok)
		assert.Equal(t, 31, to.Day())
		assert.Equal(t, 23, to.Hour())
	})

	t.Run("absent filters are not set", func(t *testing.T) {
		w := testutil.Do(t, engine, testutil.Request{Path: "/list"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, got.Filters)
		assert.Zero(t, got.Page)
	})

	tests := []struct {
		query  string
		detail string
	}{
		{"page=0", "Invalid page: must be a positive integer"},
		{"page_size=x", "Invalid page_size: must be a positive integer"},
		{"page_size=101", "Page size must be between 1 and 100"},
		{"item_id=abc", "Invalid item_id: must be a positive integer"},
		{"below_min=maybe", "Invalid below_min: must be true or false"},
		{"from=yesterday", "Invalid from: must be an RFC 3339 timestamp or a YYYY-MM-DD date"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := testutil.Do(t, engine, testutil.Request{Path: "/list?" + tt.query})
			detail := testutil.AssertError(t, w, http.StatusBadRequest, "ERR_INVALID_INPUT")
			assert.Equal(t, tt.detail, detail)
		})
	}
}

func TestPaginated_EmptyPageIsArray(t *testing.T) {
	engine := newTestEngine(nil)
	engine.GET("/empty", func(c *gin.Context) {
		page := shared.NewPaginated[string](nil, 0, 1, 50)
		Paginated(c, &page)
	})

	w := testutil.Do(t, engine, testutil.Request{Path: "/empty"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"meta":{"total":0,"page":1,"page_size":50,"total_pages":0}}`, w.Body.String())
}

func TestBaseHandler_CallerID(t *testing.T) {
	h := newBaseHandler(nil)
	handle := func(c *gin.Context) {
		id, ok := h.CallerID(c)
		if !ok {
			return
		}
		h.Success(c, id)
	}

	anonymous := newTestEngine(nil)
	anonymous.GET("/me", handle)
	w := testutil.Do(t, anonymous, testutil.Request{Path: "/me"})
	testutil.AssertError(t, w, http.StatusUnauthorized, "ERR_UNAUTHORIZED")

	signedIn := newTestEngine(staffPrincipal())
	signedIn.GET("/me", handle)
	w = testutil.Do(t, signedIn, testutil.Request{Path: "/me"})
	assert.Equal(t, int64(2), testutil.AssertSuccess[int64](t, w, http.StatusOK))
}
