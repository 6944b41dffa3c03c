package handler

import (
	"github.com/gin-gonic/gin"
	issuanceapp "github.com/inventory/backend/internal/application/issuance"
	"go.uber.org/zap"
)

// IssueItemHandler handles issue line endpoints
type IssueItemHandler struct {
	BaseHandler
	lineService *issuanceapp.IssueItemService
}

// NewIssueItemHandler creates a new IssueItemHandler
func NewIssueItemHandler(lineService *issuanceapp.IssueItemService, logger *zap.Logger) *IssueItemHandler {
	return &IssueItemHandler{
		BaseHandler: newBaseHandler(logger),
		lineService: lineService,
	}
}

// List godoc
// @ID           listIssueItems
// @Summary      List issue lines
// @Tags         issue-items
// @Produce      json
// @Param        issue_id query int false "Issue filter"
// @Param        item_id query int false "Item filter"
// @Param        search query string false "Search over item sku and name"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Success      200 {object} dto.Response{data=[]issuance.IssueItemView,meta=dto.Meta}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issue-items [get]
func (h *IssueItemHandler) List(c *gin.Context) {
	filter, ok := h.ParseList(c, int64Query("issue_id"), int64Query("item_id"))
	if !ok {
		return
	}
	page, err := h.lineService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// ListByIssue godoc
// @ID           listIssueItemsByIssue
// @Summary      All lines of one issue
// @Tags         issue-items
// @Produce      json
// @Param        issue_id path int true "Issue ID"
// @Success      200 {object} dto.Response{data=[]issuance.IssueItemView}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issue-items/issue/{issue_id} [get]
func (h *IssueItemHandler) ListByIssue(c *gin.Context) {
	issueID, ok := h.ParseID(c, "issue_id")
	if !ok {
		return
	}
	lines, err := h.lineService.ListByIssue(c.Request.Context(), issueID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}

// GetByID godoc
// @ID           getIssueItem
// @Summary      Get issue line by ID
// @Tags         issue-items
// @Produce      json
// @Param        id path int true "Issue line ID"
// @Success      200 {object} dto.Response{data=issuanceapp.IssueItemResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issue-items/{id} [get]
func (h *IssueItemHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	line, err := h.lineService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}

// Create godoc
// @ID           createIssueItem
// @Summary      Add a line to a draft issue
// @Tags         issue-items
// @Accept       json
// @Produce      json
// @Param        request body issuanceapp.CreateIssueItemRequest true "Line"
// @Success      201 {object} dto.Response{data=issuanceapp.IssueItemResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issue-items [post]
func (h *IssueItemHandler) Create(c *gin.Context) {
	var req issuanceapp.CreateIssueItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	line, err := h.lineService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, line)
}

// BulkCreate godoc
// @ID           bulkCreateIssueItems
// @Summary      Add several lines to a draft issue
// @Description  All lines are written or none; repeated items in the payload are rejected
// @Tags         issue-items
// @Accept       json
// @Produce      json
// @Param        request body issuanceapp.BulkCreateIssueItemsRequest true "Lines"
// @Success      201 {object} dto.Response{data=[]issuanceapp.IssueItemResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issue-items/bulk [post]
func (h *IssueItemHandler) BulkCreate(c *gin.Context) {
	var req issuanceapp.BulkCreateIssueItemsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	lines, err := h.lineService.BulkCreate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, lines)
}

// Update godoc
// @ID           updateIssueItem
// @Summary      Change a line of a draft issue
// @Tags         issue-items
// @Accept       json
// @Produce      json
// @Param        id path int true "Issue line ID"
// @Param        request body issuanceapp.UpdateIssueItemRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=issuanceapp.IssueItemResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issue-items/{id} [put]
func (h *IssueItemHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req issuanceapp.UpdateIssueItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	line, err := h.lineService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, line)
}

// Delete godoc
// @ID           deleteIssueItem
// @Summary      Remove a line from a draft issue
// @Tags         issue-items
// @Produce      json
// @Param        id path int true "Issue line ID"
// @Success      200 {object} dto.Response{data=issuanceapp.DeleteResult}
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issue-items/{id} [delete]
func (h *IssueItemHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	result, err := h.lineService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
