package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/inventory/backend/internal/application/catalog"
	"go.uber.org/zap"
)

// ItemHandler handles item endpoints
type ItemHandler struct {
	BaseHandler
	itemService *catalogapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *catalogapp.ItemService, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{
		BaseHandler: newBaseHandler(logger),
		itemService: itemService,
	}
}

// List godoc
// @ID           listItems
// @Summary      List items
// @Description  Inactive items are hidden unless active_only=false
// @Tags         items
// @Produce      json
// @Param        search query string false "Search over sku, name and barcode"
// @Param        active_only query bool false "Only active items" default(true)
// @Param        category_id query int false "Category filter"
// @Param        unit_id query int false "Unit filter"
// @Param        owner_user_id query int false "Owner filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Param        sort_by query string false "Sort field" Enums(id, sku, name, min_stock, created_at, updated_at)
// @Param        sort_order query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]catalogapp.ItemResponse,meta=dto.Meta}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	filter, ok := h.ParseList(c,
		boolQuery("active_only"),
		int64Query("category_id"),
		int64Query("unit_id"),
		int64Query("owner_user_id"),
	)
	if !ok {
		return
	}
	page, err := h.itemService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetByID godoc
// @ID           getItem
// @Summary      Get item by ID
// @Tags         items
// @Produce      json
// @Param        id path int true "Item ID"
// @Success      200 {object} dto.Response{data=catalogapp.ItemResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items/{id} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	item, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Create godoc
// @ID           createItem
// @Summary      Create an item
// @Description  The SKU is stored uppercased; category, unit and owner must exist
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateItemRequest true "Item"
// @Success      201 {object} dto.Response{data=catalogapp.ItemResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req catalogapp.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update godoc
// @ID           updateItem
// @Summary      Update an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path int true "Item ID"
// @Param        request body catalogapp.UpdateItemRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=catalogapp.ItemResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.itemService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @ID           deleteItem
// @Summary      Delete an item
// @Description  Items with stock history are deactivated instead of removed
// @Tags         items
// @Produce      json
// @Param        id path int true "Item ID"
// @Success      200 {object} dto.Response{data=catalogapp.DeleteItemResult}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	result, err := h.itemService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CreateImageUpload godoc
// @ID           createItemImageUpload
// @Summary      Presign an item image upload
// @Description  Returns a presigned PUT URL and the image_url to store on the item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path int true "Item ID"
// @Param        request body catalogapp.ImageUploadRequest true "Image"
// @Success      200 {object} dto.Response{data=catalogapp.ImageUploadResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /items/{id}/image-upload-url [post]
func (h *ItemHandler) CreateImageUpload(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.ImageUploadRequest
	if !h.BindJSON(c, &req) {
		return
	}
	upload, err := h.itemService.CreateImageUpload(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, upload)
}
