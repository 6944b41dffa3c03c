package router

import (
	"github.com/gin-gonic/gin"
	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/interfaces/http/handler"
	"github.com/inventory/backend/internal/interfaces/http/middleware"
)

// Handlers are the HTTP handlers served under the versioned API
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Category  *handler.CategoryHandler
	Unit      *handler.UnitHandler
	Item      *handler.ItemHandler
	Location  *handler.LocationHandler
	Stock     *handler.StockHandler
	Issue     *handler.IssueHandler
	IssueItem *handler.IssueItemHandler
	Label     *handler.LabelHandler
	Dashboard *handler.DashboardHandler
	System    *handler.SystemHandler
}

// Guards are the middleware that protect API routes
type Guards struct {
	// Authenticate resolves the bearer token; required on every route but login and refresh
	Authenticate gin.HandlerFunc
	// LoginLimit throttles login and refresh; optional
	LoginLimit gin.HandlerFunc
}

var (
	adminOnly = middleware.RequireAdmin
	writers   = middleware.RequireWriter
	anyRole   = func() gin.HandlerFunc {
		return middleware.RequireRoles(identity.RoleAdmin, identity.RoleStaff, identity.RoleAuditor)
	}
)

// Groups builds the API route groups. Category and item reads and inventory
// writes need ADMIN or STAFF; other reads are open to every role. Reference
// data, users and settings are managed by ADMIN.
func Groups(h Handlers, g Guards) []*DomainGroup {
	public := NewDomainGroup("auth", "/auth")
	if g.LoginLimit != nil {
		public.Use(g.LoginLimit)
	}
	public.POST("/login", h.Auth.Login)
	public.POST("/refresh", h.Auth.Refresh)

	session := NewDomainGroup("session", "/auth").Use(g.Authenticate)
	session.POST("/logout", h.Auth.Logout)
	session.GET("/me", h.Auth.Me)

	users := NewDomainGroup("users", "/users").Use(g.Authenticate, adminOnly())
	users.GET("", h.User.List)
	users.POST("", h.User.Register)
	users.POST("/bulk", h.User.BulkRegister)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", h.User.Delete)
	users.POST("/:id/deactivate", h.User.Deactivate)
	users.POST("/:id/activate", h.User.Activate)

	categories := NewDomainGroup("categories", "/categories").Use(g.Authenticate)
	categories.GET("", writers(), h.Category.List)
	categories.GET("/:id", writers(), h.Category.GetByID)
	categories.POST("", writers(), h.Category.Create)
	categories.PUT("/:id", writers(), h.Category.Update)
	categories.DELETE("/:id", adminOnly(), h.Category.Delete)

	units := NewDomainGroup("units", "/units").Use(g.Authenticate)
	units.GET("", anyRole(), h.Unit.List)
	units.GET("/:id", anyRole(), h.Unit.GetByID)
	units.POST("", adminOnly(), h.Unit.Create)
	units.PUT("/:id", adminOnly(), h.Unit.Update)
	units.DELETE("/:id", adminOnly(), h.Unit.Delete)

	items := NewDomainGroup("items", "/items").Use(g.Authenticate)
	items.GET("", writers(), h.Item.List)
	items.GET("/:id", writers(), h.Item.GetByID)
	items.POST("", writers(), h.Item.Create)
	items.PUT("/:id", writers(), h.Item.Update)
	items.POST("/:id/image-upload-url", writers(), h.Item.CreateImageUpload)
	items.DELETE("/:id", adminOnly(), h.Item.Delete)

	locations := NewDomainGroup("locations", "/locations").Use(g.Authenticate)
	locations.GET("", anyRole(), h.Location.List)
	locations.GET("/:id", anyRole(), h.Location.GetByID)
	locations.POST("", adminOnly(), h.Location.Create)
	locations.PUT("/:id", adminOnly(), h.Location.Update)
	locations.DELETE("/:id", adminOnly(), h.Location.Delete)

	levels := NewDomainGroup("stock-levels", "/stock-levels").Use(g.Authenticate, anyRole())
	levels.GET("", h.Stock.ListLevels)

	transactions := NewDomainGroup("transactions", "/transactions").Use(g.Authenticate)
	transactions.GET("", anyRole(), h.Stock.ListTransactions)
	transactions.GET("/:id", anyRole(), h.Stock.GetTransaction)
	transactions.POST("", writers(), h.Stock.CreateTransaction)
	transactions.PUT("/:id", writers(), h.Stock.UpdateTransaction)
	transactions.DELETE("/:id", writers(), h.Stock.DeleteTransaction)

	issues := NewDomainGroup("issues", "/issues").Use(g.Authenticate)
	issues.GET("", anyRole(), h.Issue.List)
	issues.GET("/stats", anyRole(), h.Issue.Stats)
	issues.GET("/advanced-stats", anyRole(), h.Issue.AdvancedStats)
	issues.GET("/code/:code", anyRole(), h.Issue.GetByCode)
	issues.GET("/:id", anyRole(), h.Issue.GetByID)
	issues.GET("/:id/items", anyRole(), h.Issue.Items)
	issues.POST("", writers(), h.Issue.Create)
	issues.PUT("/:id", writers(), h.Issue.Update)
	issues.PATCH("/:id/approve", writers(), h.Issue.Approve)
	issues.PATCH("/:id/status", writers(), h.Issue.ChangeStatus)
	issues.DELETE("/:id", adminOnly(), h.Issue.Delete)

	issueItems := NewDomainGroup("issue-items", "/issue-items").Use(g.Authenticate)
	issueItems.GET("", anyRole(), h.IssueItem.List)
	issueItems.GET("/issue/:issue_id", anyRole(), h.IssueItem.ListByIssue)
	issueItems.GET("/:id", anyRole(), h.IssueItem.GetByID)
	issueItems.POST("", writers(), h.IssueItem.Create)
	issueItems.POST("/bulk", writers(), h.IssueItem.BulkCreate)
	issueItems.PUT("/:id", writers(), h.IssueItem.Update)
	issueItems.DELETE("/:id", writers(), h.IssueItem.Delete)

	labels := NewDomainGroup("labels", "/labels").Use(g.Authenticate, writers())
	labels.POST("/qr-sheet", h.Label.QRSheet)

	dashboard := NewDomainGroup("dashboard", "/dashboard").Use(g.Authenticate, anyRole())
	dashboard.GET("/summary", h.Dashboard.Summary)

	settings := NewDomainGroup("settings", "/settings").Use(g.Authenticate)
	settings.GET("", anyRole(), h.System.GetSettings)
	settings.PUT("", adminOnly(), h.System.UpdateSettings)
	settings.POST("/backup", adminOnly(), h.System.Backup)
	settings.GET("/system-info", adminOnly(), h.System.SystemInfo)

	return []*DomainGroup{
		public, session, users,
		categories, units, items,
		locations, levels, transactions,
		issues, issueItems, labels,
		dashboard, settings,
	}
}

// RegisterAPI mounts every API group on r
func RegisterAPI(r *Router, h Handlers, g Guards) {
	for _, group := range Groups(h, g) {
		r.Register(group)
	}
}

// RegisterHealth mounts the unversioned probes
func RegisterHealth(engine *gin.Engine, h *handler.HealthHandler) {
	engine.GET("/health", h.Live)
	engine.GET("/health/ready", h.Ready)
}
