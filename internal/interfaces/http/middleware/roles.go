package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inventory/backend/internal/domain/identity"
	"github.com/inventory/backend/internal/interfaces/http/dto"
)

// RequireRoles allows the request through only when the principal holds one of roles.
// It must run after Authenticate.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !principal.HasRole(roles...) {
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// RequireAdmin restricts a route to ADMIN users
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(identity.RoleAdmin)
}

// RequireWriter restricts a route to users who may modify inventory data
func RequireWriter() gin.HandlerFunc {
	return RequireRoles(identity.RoleAdmin, identity.RoleStaff)
}
