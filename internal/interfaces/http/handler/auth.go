package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appidentity "github.com/inventory/backend/internal/application/identity"
	"github.com/inventory/backend/internal/domain/shared"
	"github.com/inventory/backend/internal/interfaces/http/dto"
	"github.com/inventory/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *appidentity.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: newBaseHandler(logger),
		authService: authService,
	}
}

// Login godoc
// @ID           login
// @Summary      Local login
// @Description  Exchanges email and password for an access and refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.LoginRequest true "Credentials"
// @Success      200 {object} dto.Response{data=appidentity.TokenResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}
	tokens, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	h.Success(c, tokens)
}

// Refresh godoc
// @ID           refreshToken
// @Summary      Refresh the token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.RefreshTokenRequest true "Refresh token"
// @Success      200 {object} dto.Response{data=appidentity.TokenResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshTokenRequest
	if !h.BindJSON(c, &req) {
		return
	}
	tokens, err := h.authService.RefreshToken(c.Request.Context(), req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	h.Success(c, tokens)
}

// Logout godoc
// @ID           logout
// @Summary      Revoke the current access token
// @Description  The optional refresh token in the body is revoked as well
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.LogoutRequest false "Refresh token to revoke"
// @Success      200 {object} dto.Response{data=dto.MessageData}
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req appidentity.LogoutRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), principal, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageData{Message: "Logged out"})
}

// Me godoc
// @ID           currentUser
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=appidentity.UserResponse}
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.CallerID(c)
	if !ok {
		return
	}
	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// handleAuthError reports an expired refresh token with its own code so the
// console can send the user back to the login page.
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	var de *shared.DomainError
	if errors.As(err, &de) && de == appidentity.ErrTokenExpired {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeTokenExpired, de.Message)
		return
	}
	h.HandleError(c, err)
}
