package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	appidentity "github.com/inventory/backend/internal/application/identity"
	"go.uber.org/zap"
)

// UserHandler handles user administration endpoints
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *appidentity.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: newBaseHandler(logger),
		userService: userService,
	}
}

// List godoc
// @ID           listUsers
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        search query string false "Search over name and email"
// @Param        role query string false "Role filter" Enums(ADMIN, STAFF, AUDITOR)
// @Param        active query bool false "Active filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Param        sort_by query string false "Sort field" Enums(id, name, email, role, created_at, last_login_at)
// @Param        sort_order query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]appidentity.UserResponse,meta=dto.Meta}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	filter, ok := h.ParseList(c, stringQuery("role"), boolQuery("active"))
	if !ok {
		return
	}
	page, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetByID godoc
// @ID           getUser
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} dto.Response{data=appidentity.UserResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Register godoc
// @ID           registerUser
// @Summary      Register a user
// @Description  Role defaults to STAFF; a password enables local login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body appidentity.RegisterUserRequest true "User"
// @Success      201 {object} dto.Response{data=appidentity.UserResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req appidentity.RegisterUserRequest
	if !h.BindJSON(c, &req) {
		return
	}
	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// BulkRegister godoc
// @ID           bulkRegisterUsers
// @Summary      Register several users at once
// @Description  Atomic; every duplicate email is reported in one error
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body appidentity.BulkRegisterRequest true "Users"
// @Success      201 {object} dto.Response{data=appidentity.BulkRegisterResult}
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/bulk [post]
func (h *UserHandler) BulkRegister(c *gin.Context) {
	var req appidentity.BulkRegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}
	result, err := h.userService.BulkRegister(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update godoc
// @ID           updateUser
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        request body appidentity.UpdateUserRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=appidentity.UserResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req appidentity.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}
	user, err := h.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete godoc
// @ID           deleteUser
// @Summary      Deactivate a user
// @Description  Users are never removed; delete deactivates and revokes their tokens
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} dto.Response{data=appidentity.UserResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	h.deactivate(c, h.userService.Delete)
}

// Deactivate godoc
// @ID           deactivateUser
// @Summary      Deactivate a user
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} dto.Response{data=appidentity.UserResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.deactivate(c, h.userService.Deactivate)
}

// Activate godoc
// @ID           activateUser
// @Summary      Activate a user
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} dto.Response{data=appidentity.UserResponse}
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/activate [post]
func (h *UserHandler) Activate(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

type deactivateFunc func(ctx context.Context, id, actorID int64) (*appidentity.UserResponse, error)

func (h *UserHandler) deactivate(c *gin.Context, fn deactivateFunc) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.CallerID(c)
	if !ok {
		return
	}
	user, err := fn(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
