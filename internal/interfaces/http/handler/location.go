package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/inventory/backend/internal/application/inventory"
	"github.com/inventory/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// LocationHandler handles stock location endpoints
type LocationHandler struct {
	BaseHandler
	locationService *inventoryapp.LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *inventoryapp.LocationService, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		BaseHandler:     newBaseHandler(logger),
		locationService: locationService,
	}
}

// List godoc
// @ID           listLocations
// @Summary      List locations
// @Tags         locations
// @Produce      json
// @Param        search query string false "Search over name and code"
// @Param        active_only query bool false "Only active locations"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Param        sort_by query string false "Sort field" Enums(id, name, code, created_at)
// @Param        sort_order query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]inventoryapp.LocationResponse,meta=dto.Meta}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	filter, ok := h.ParseList(c, boolQuery("active_only"))
	if !ok {
		return
	}
	page, err := h.locationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetByID godoc
// @ID           getLocation
// @Summary      Get location by ID
// @Tags         locations
// @Produce      json
// @Param        id path int true "Location ID"
// @Success      200 {object} dto.Response{data=inventoryapp.LocationResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id} [get]
func (h *LocationHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	location, err := h.locationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// Create godoc
// @ID           createLocation
// @Summary      Create a location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateLocationRequest true "Location"
// @Success      201 {object} dto.Response{data=inventoryapp.LocationResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	location, err := h.locationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, location)
}

// Update godoc
// @ID           updateLocation
// @Summary      Update a location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id path int true "Location ID"
// @Param        request body inventoryapp.UpdateLocationRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=inventoryapp.LocationResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.UpdateLocationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	location, err := h.locationService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// Delete godoc
// @ID           deleteLocation
// @Summary      Delete a location
// @Description  Refused with 409 once the location has stock history
// @Tags         locations
// @Produce      json
// @Param        id path int true "Location ID"
// @Success      200 {object} dto.Response{data=dto.MessageData}
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.locationService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.MessageData{Message: "Location deleted"})
}
