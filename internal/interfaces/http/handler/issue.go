package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	issuanceapp "github.com/inventory/backend/internal/application/issuance"
	"go.uber.org/zap"
)

// IssueHandler handles stock issue endpoints
type IssueHandler struct {
	BaseHandler
	issueService *issuanceapp.IssueService
}

// NewIssueHandler creates a new IssueHandler
func NewIssueHandler(issueService *issuanceapp.IssueService, logger *zap.Logger) *IssueHandler {
	return &IssueHandler{
		BaseHandler:  newBaseHandler(logger),
		issueService: issueService,
	}
}

// List godoc
// @ID           listIssues
// @Summary      List issues
// @Tags         issues
// @Produce      json
// @Param        search query string false "Search over code and note"
// @Param        status query string false "Status filter" Enums(DRAFT, APPROVED, ISSUED, CANCELLED)
// @Param        requested_by query int false "Requester filter"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(50)
// @Param        sort_by query string false "Sort field" Enums(id, code, status, issued_at, created_at)
// @Param        sort_order query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]issuanceapp.IssueResponse,meta=dto.Meta}
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issues [get]
func (h *IssueHandler) List(c *gin.Context) {
	filter, ok := h.ParseList(c, stringQuery("status"), int64Query("requested_by"))
	if !ok {
		return
	}
	page, err := h.issueService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetByID godoc
// @ID           getIssue
// @Summary      Get issue by ID
// @Tags         issues
// @Produce      json
// @Param        id path int true "Issue ID"
// @Success      200 {object} dto.Response{data=issuanceapp.IssueResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issues/{id} [get]
func (h *IssueHandler) GetByID(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	issue, err := h.issueService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, issue)
}

// GetByCode godoc
// @ID           getIssueByCode
// @Summary      Get issue by code
// @Tags         issues
// @Produce      json
// @Param        code path string true "Issue code"
// @Success      200 {object} dto.Response{data=issuanceapp.IssueResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issues/code/{code} [get]
func (h *IssueHandler) GetByCode(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		h.BadRequest(c, "Issue code is required")
		return
	}
	issue, err := h.issueService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, issue)
}

// Create godoc
// @ID           createIssue
// @Summary      Open a draft issue
// @Description  requested_by defaults to the caller
// @Tags         issues
// @Accept       json
// @Produce      json
// @Param        request body issuanceapp.CreateIssueRequest true "Issue"
// @Success      201 {object} dto.Response{data=issuanceapp.IssueResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issues [post]
func (h *IssueHandler) Create(c *gin.Context) {
	actorID, ok := h.CallerID(c)
	if !ok {
		return
	}
	var req issuanceapp.CreateIssueRequest
	if !h.BindJSON(c, &req) {
		return
	}
	issue, err := h.issueService.Create(c.Request.Context(), req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, issue)
}

// Update godoc
// @ID           updateIssue
// @Summary      Edit a draft issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Param        id path int true "Issue ID"
// @Param        request body issuanceapp.UpdateIssueRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=issuanceapp.IssueResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issues/{id} [put]
func (h *IssueHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req issuanceapp.UpdateIssueRequest
	if !h.BindJSON(c, &req) {
		return
	}
	issue, err := h.issueService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, issue)
}

// Approve godoc
// @ID           approveIssue
// @Summary      Approve a draft issue
// @Tags         issues
// @Produce      json
// @Param        id path int true "Issue ID"
// @Success      200 {object} dto.Response{data=issuanceapp.IssueResponse}
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issues/{id}/approve [patch]
func (h *IssueHandler) Approve(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	approverID, ok := h.CallerID(c)
	if !ok {
		return
	}
	issue, err := h.issueService.Approve(c.Request.Context(), id, approverID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, issue)
}

// ChangeStatus godoc
// @ID           changeIssueStatus
// @Summary      Move an issue through its lifecycle
// @Description  ISSUED needs location_id and posts one OUT transaction per line
// @Tags         issues
// @Accept       json
// @Produce      json
// @Param        id path int true "Issue ID"
// @Param        request body issuanceapp.ChangeStatusRequest true "Target status"
// @Success      200 {object} dto.Response{data=issuanceapp.StatusChangeResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issues/{id}/status [patch]
func (h *IssueHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.CallerID(c)
	if !ok {
		return
	}
	var req issuanceapp.ChangeStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.issueService.ChangeStatus(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteIssue
// @Summary      Delete a draft or cancelled issue
// @Tags         issues
// @Produce      json
// @Param        id path int true "Issue ID"
// @Success      200 {object} dto.Response{data=issuanceapp.DeleteResult}
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issues/{id} [delete]
func (h *IssueHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	result, err := h.issueService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Stats godoc
// @ID           issueStats
// @Summary      Issue counts per status
// @Tags         issues
// @Produce      json
// @Success      200 {object} dto.Response{data=issuance.IssueStats}
// @Security     BearerAuth
// @Router       /issues/stats [get]
func (h *IssueHandler) Stats(c *gin.Context) {
	stats, err := h.issueService.Stats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// AdvancedStats godoc
// @ID           issueAdvancedStats
// @Summary      Issue line statistics and completion rate
// @Tags         issues
// @Produce      json
// @Success      200 {object} dto.Response{data=issuance.AdvancedIssueStats}
// @Security     BearerAuth
// @Router       /issues/advanced-stats [get]
func (h *IssueHandler) AdvancedStats(c *gin.Context) {
	stats, err := h.issueService.AdvancedStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Items godoc
// @ID           issueItems
// @Summary      Issue header with its enriched lines
// @Tags         issues
// @Produce      json
// @Param        id path int true "Issue ID"
// @Success      200 {object} dto.Response{data=issuanceapp.IssueItemsResponse}
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /issues/{id}/items [get]
func (h *IssueHandler) Items(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.issueService.Items(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
