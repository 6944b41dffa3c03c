package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/inventory/backend/internal/application/catalog"
	"github.com/inventory/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// UnitHandler handles unit of measure endpoints
type UnitHandler struct {
	BaseHandler
	unitService *catalogapp.UnitService
}

// NewUnitHandler creates a new UnitHandler
func NewUnitHandler(unitService *catalogapp.UnitService, logger *zap.Logger) *UnitHandler {
	return &UnitHandler{
		BaseHandler: newBaseHandler(logger),
		unitService: unitService,
	}
}

// List godoc
// @ID           listUnits
// @Summary      List units of measure
// @Tags         units
// @Produce      json
// @Param        search query string false "Search over name and symbol"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Param        sort_by query string false "Sort field" Enums(id, name, symbol, multiplier, created_at)
// @Param        sort_order query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]catalogapp.UnitResponse,meta=dto.Meta}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /units [get]
func (h *UnitHandler) List(c *gin.Context) {
	filter, ok := h.ParseList(c)
	if !ok {
		return
	}
	page, err := h.unitService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetByID godoc
// @ID           getUnit
// @Summary      Get unit by ID
// @Tags         units
// @Produce      json
// @Param        id path int true "Unit ID"
// @Success      200 {object} dto.Response{data=catalogapp.UnitResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /units/{id} [get]
func (h *UnitHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	unit, err := h.unitService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

// Create godoc
// @ID           createUnit
// @Summary      Create a unit of measure
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateUnitRequest true "Unit"
// @Success      201 {object} dto.Response{data=catalogapp.UnitResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	var req catalogapp.CreateUnitRequest
	if !h.BindJSON(c, &req) {
		return
	}
	unit, err := h.unitService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, unit)
}

// Update godoc
// @ID           updateUnit
// @Summary      Update a unit of measure
// @Tags         units
// @Accept       json
// @Produce      json
// @Param        id path int true "Unit ID"
// @Param        request body catalogapp.UpdateUnitRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=catalogapp.UnitResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /units/{id} [put]
func (h *UnitHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateUnitRequest
	if !h.BindJSON(c, &req) {
		return
	}
	unit, err := h.unitService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, unit)
}

// Delete godoc
// @ID           deleteUnit
// @Summary      Delete a unit of measure
// @Tags         units
// @Produce      json
// @Param        id path int true "Unit ID"
// @Success      200 {object} dto.Response{data=dto.MessageData}
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /units/{id} [delete]
func (h *UnitHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.unitService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageData{Message: "Unit deleted"})
}
