package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appidentity "github.com/inventory/backend/internal/application/identity"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/infrastructure/logger"
	"github.com/inventory/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Auth context keys
const (
	PrincipalKey  = "principal"
	JWTUserIDKey  = "jwt_user_id"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Authenticator resolves a bearer token to the calling user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*appidentity.Principal, error)
}

// Authenticate requires a valid bearer token. The principal is stored in the
// gin context under PrincipalKey and the user ID under JWTUserIDKey.
func Authenticate(authenticator Authenticator, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		if len(header) < len(BearerPrefix) || !strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Invalid authorization header format")
			return
		}
		token := strings.TrimSpace(header[len(BearerPrefix):])
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Missing token")
			return
		}

		principal, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Debug("Authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			status, code, message := authFailure(err)
			abortWithError(c, status, code, message)
			return
		}

		c.Set(PrincipalKey, principal)
		c.Set(JWTUserIDKey, principal.UserID)
		ctx, _ := logger.WithUserID(c.Request.Context(), logger.FromContext(c.Request.Context()), principal.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func authFailure(err error) (int, string, string) {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		return http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, "Authentication is temporarily unavailable"
	}
	switch {
	case de == appidentity.ErrTokenExpired:
		return http.StatusUnauthorized, dto.ErrCodeTokenExpired, de.Message
	case de.Code == shared.CodeForbidden:
		return http.StatusForbidden, dto.ErrCodeForbidden, de.Message
	case de.Code == shared.CodeUnauthorized:
		return http.StatusUnauthorized, dto.ErrCodeTokenInvalid, de.Message
	}
	code := dto.NormalizeErrorCode(de.Code)
	return dto.GetHTTPStatus(code), code, de.Message
}

// GetPrincipal returns the authenticated caller, if any
func GetPrincipal(c *gin.Context) (*appidentity.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*appidentity.Principal)
	return p, ok && p != nil
}

// GetUserID returns the authenticated user ID or 0
func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(JWTUserIDKey)
}
