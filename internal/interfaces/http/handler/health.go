package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	systemapp "github.com/inventory/backend/internal/application/system"
	"github.com/inventory/backend/internal/interfaces/http/dto"
)

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	version string
	checks  map[string]systemapp.DependencyCheck
	timeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. Nil checks are skipped.
func NewHealthHandler(version string, checks map[string]systemapp.DependencyCheck) *HealthHandler {
	return &HealthHandler{
		version: version,
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

// Live godoc
// @ID           health
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthData}
// @Router       /health [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(HealthData{Status: "ok", Version: h.version}))
}

// Ready godoc
// @ID           healthReady
// @Summary      Readiness probe
// @Description  503 while any backing service is unreachable
// @Tags         health
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthData}
// @Failure      503 {object} dto.Response{data=HealthData}
// @Router       /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	data := HealthData{Status: "ok", Version: h.version, Dependencies: make(map[string]string, len(h.checks))}
	status := http.StatusOK

	for name, check := range h.checks {
		if check == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		err := check(ctx)
		cancel()
		if err != nil {
			data.Dependencies[name] = "down"
			data.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		data.Dependencies[name] = "up"
	}

	c.JSON(status, dto.Response{Success: status == http.StatusOK, Data: data})
}
