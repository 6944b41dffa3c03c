package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/inventory/backend/internal/application/identity"
	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func adminPrincipal() *appidentity.Principal {
	return &appidentity.Principal{UserID: 1, Email: "admin@example.com", Name: "Admin", Role: identity.RoleAdmin}
}

func staffPrincipal() *appidentity.Principal {
	return &appidentity.Principal{UserID: 2, Email: "staff@example.com", Name: "Staff", Role: identity.RoleStaff}
}

// newTestEngine returns an engine whose requests are authenticated as p.
// A nil principal leaves the request anonymous.
func newTestEngine(p *appidentity.Principal) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID(), func(c *gin.Context) {
		if p != nil {
			c.Set(middleware.PrincipalKey, p)
			c.Set(middleware.JWTUserIDKey, p.UserID)
		}
		c.Next()
	})
	return engine
}
