package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/inventory/backend/internal/application/dashboard"
	"go.uber.org/zap"
)

// DashboardHandler serves the console landing page figures
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboard.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboard.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      newBaseHandler(logger),
		dashboardService: dashboardService,
	}
}

// Summary godoc
// @ID           dashboardSummary
// @Summary      Dashboard counters
// @Description  Cached for a short time; stock writes below threshold refresh it
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=dashboard.Summary}
// @Security     BearerAuth
// @Router       /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
