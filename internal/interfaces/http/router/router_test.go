package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	appidentity "github.com/inventory/backend/internal/application/identity"
	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/interfaces/http/handler"
	"github.com/inventory/backend/internal/interfaces/http/middleware"
	"github.com/inventory/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-API", "v1")
		c.Next()
	})

	locations := NewDomainGroup("locations", "/locations")
	locations.GET("", func(c *gin.Context) { c.String(http.StatusOK, "locations") })
	r.Register(locations).Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "locations", w.Body.String())
	assert.Equal(t, "v1", w.Header().Get("X-API"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("items", "/items")
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		g.GET("/:id", ok).POST("", ok).PUT("/:id", ok).PATCH("/:id", ok).DELETE("/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		tests := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/v1/items/1"},
			{http.MethodPost, "/api/v1/items"},
			{http.MethodPut, "/api/v1/items/1"},
			{http.MethodPatch, "/api/v1/items/1"},
			{http.MethodDelete, "/api/v1/items/1"},
		}
		for _, tt := range tests {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
			assert.Equal(t, tt.method, w.Body.String())
		}
	})

	t.Run("applies middleware before handlers", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("units", "/units").Use(func(c *gin.Context) {
			c.Header("X-Group", "units")
			c.Next()
		})
		g.GET("", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/units", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "units", w.Header().Get("X-Group"))
	})

	t.Run("subgroups and route listing", func(t *testing.T) {
		g := NewDomainGroup("issues", "/issues")
		g.GET("", func(*gin.Context) {})
		g.Group("lines", "/lines").POST("/bulk", func(*gin.Context) {})

		assert.Equal(t, "issues", g.Name())
		assert.Equal(t, "/issues", g.Prefix())
		assert.Equal(t, []string{"GET /issues", "POST /issues/lines/bulk"}, g.Routes())
	})
}

type tokenTable map[string]*appidentity.Principal

func (tt tokenTable) Authenticate(_ context.Context, token string) (*appidentity.Principal, error) {
	p, ok := tt[token]
	if !ok {
		return nil, appidentity.ErrInvalidToken
	}
	return p, nil
}

// newAPI mounts the real route table over handlers without services; the
// requests below stop at a guard or at request binding.
func newAPI(t *testing.T) *gin.Engine {
	t.Helper()
	log := zap.NewNop()
	engine := gin.New()
	engine.Use(middleware.RequestID())

	tokens := tokenTable{
		"admin":   {UserID: 1, Role: identity.RoleAdmin},
		"staff":   {UserID: 2, Role: identity.RoleStaff},
		"auditor": {UserID: 3, Role: identity.RoleAuditor},
	}
	h := Handlers{
		Auth:      handler.NewAuthHandler(nil, log),
		User:      handler.NewUserHandler(nil, log),
		Category:  handler.NewCategoryHandler(nil, log),
		Unit:      handler.NewUnitHandler(nil, log),
		Item:      handler.NewItemHandler(nil, log),
		Location:  handler.NewLocationHandler(nil, log),
		Stock:     handler.NewStockHandler(nil, log),
		Issue:     handler.NewIssueHandler(nil, log),
		IssueItem: handler.NewIssueItemHandler(nil, log),
		Label:     handler.NewLabelHandler(nil, log),
		Dashboard: handler.NewDashboardHandler(nil, log),
		System:    handler.NewSystemHandler(nil, nil, nil, log),
	}
	r := NewRouter(engine)
	RegisterAPI(r, h, Guards{Authenticate: middleware.Authenticate(tokens, log)})
	r.Setup()
	RegisterHealth(engine, handler.NewHealthHandler("test", nil))
	return engine
}

func TestRoleGuards(t *testing.T) {
	engine := newAPI(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
		code   string
	}{
		{"missing token", http.MethodGet, "/api/v1/items", "", http.StatusUnauthorized, "ERR_UNAUTHORIZED"},
		{"unknown token", http.MethodGet, "/api/v1/items", "forged", http.StatusUnauthorized, "ERR_TOKEN_INVALID"},
		{"auditor cannot list items", http.MethodGet, "/api/v1/items", "auditor", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"auditor cannot read an item", http.MethodGet, "/api/v1/items/1", "auditor", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"auditor cannot list categories", http.MethodGet, "/api/v1/categories", "auditor", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"auditor cannot read a category", http.MethodGet, "/api/v1/categories/1", "auditor", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"auditor cannot create items", http.MethodPost, "/api/v1/items", "auditor", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"staff cannot delete items", http.MethodDelete, "/api/v1/items/1", "staff", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"staff cannot write units", http.MethodPost, "/api/v1/units", "staff", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"staff cannot write locations", http.MethodPut, "/api/v1/locations/1", "staff", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"staff cannot manage users", http.MethodGet, "/api/v1/users", "staff", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"staff cannot delete issues", http.MethodDelete, "/api/v1/issues/1", "staff", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"staff cannot change settings", http.MethodPut, "/api/v1/settings", "staff", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"auditor cannot post transactions", http.MethodPost, "/api/v1/transactions", "auditor", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"auditor cannot print labels", http.MethodPost, "/api/v1/labels/qr-sheet", "auditor", http.StatusForbidden, "ERR_FORBIDDEN"},
		{"staff reaches item binding", http.MethodPost, "/api/v1/items", "staff", http.StatusBadRequest, "ERR_INVALID_INPUT"},
		{"staff reaches transaction binding", http.MethodPost, "/api/v1/transactions", "staff", http.StatusBadRequest, "ERR_INVALID_INPUT"},
		{"admin reaches unit binding", http.MethodPost, "/api/v1/units", "admin", http.StatusBadRequest, "ERR_INVALID_INPUT"},
		{"admin reaches user binding", http.MethodPost, "/api/v1/users", "admin", http.StatusBadRequest, "ERR_INVALID_INPUT"},
		{"login is public", http.MethodPost, "/api/v1/auth/login", "", http.StatusBadRequest, "ERR_INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.token != "" {
				headers["Authorization"] = "Bearer " + tt.token
			}
			var body interface{}
			if tt.method == http.MethodPost || tt.method == http.MethodPut {
				body = map[string]any{}
			}
			w := testutil.Do(t, engine, testutil.Request{Method: tt.method, Path: tt.path, Body: body, Headers: headers})
			testutil.AssertError(t, w, tt.status, tt.code)
		})
	}
}

func TestCatalogReadsNeedWriterRole(t *testing.T) {
	engine := newAPI(t)
	headers := map[string]string{"Authorization": "Bearer auditor"}

	for _, path := range []string{"/api/v1/categories", "/api/v1/items"} {
		w := testutil.Do(t, engine, testutil.Request{Method: http.MethodGet, Path: path, Headers: headers})
		testutil.AssertError(t, w, http.StatusForbidden, "ERR_FORBIDDEN")
		assert.Contains(t, w.Body.String(), "Insufficient permissions", path)
	}
}

func TestHealthRoutes(t *testing.T) {
	engine := newAPI(t)

	w := testutil.Do(t, engine, testutil.Request{Path: "/health"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, engine, testutil.Request{Path: "/health/ready"})
	assert.Equal(t, http.StatusOK, w.Code)
}
