package handler

import (
	"github.com/gin-gonic/gin"
	systemapp "github.com/inventory/backend/internal/application/system"
	"github.com/inventory/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// SystemHandler serves the settings singleton, manual backups and the runtime report
type SystemHandler struct {
	BaseHandler
	settingsService *systemapp.SettingsService
	backupService   *systemapp.BackupService
	infoService     *systemapp.SystemInfoService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(
	settingsService *systemapp.SettingsService,
	backupService *systemapp.BackupService,
	infoService *systemapp.SystemInfoService,
	logger *zap.Logger,
) *SystemHandler {
	return &SystemHandler{
		BaseHandler:     newBaseHandler(logger),
		settingsService: settingsService,
		backupService:   backupService,
		infoService:     infoService,
	}
}

// GetSettings godoc
// @ID           getSettings
// @Summary      Get application settings
// @Tags         settings
// @Produce      json
// @Success      200 {object} dto.Response{data=systemapp.SettingsResponse}
// @Security     BearerAuth
// @Router       /settings [get]
func (h *SystemHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// UpdateSettings godoc
// @ID           updateSettings
// @Summary      Update application settings
// @Description  Partial update; omitted fields keep their value
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body systemapp.UpdateSettingsRequest true "Changed settings"
// @Success      200 {object} dto.Response{data=systemapp.SettingsResponse}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings [put]
func (h *SystemHandler) UpdateSettings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req systemapp.UpdateSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}
	settings, err := h.settingsService.Update(c.Request.Context(), req, principal.Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, settings)
}

// Backup godoc
// @ID           runBackup
// @Summary      Back up all tables to object storage
// @Description  Writes a gzipped JSON export and prunes backups past the retention period
// @Tags         settings
// @Produce      json
// @Success      201 {object} dto.Response{data=systemapp.BackupResult}
// @Failure      403 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/backup [post]
func (h *SystemHandler) Backup(c *gin.Context) {
	result, err := h.backupService.Run(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.logger.Info("manual backup written",
		zap.String("key", result.Key),
		zap.Int64("size", result.Size),
		zap.Int64("user_id", middleware.GetUserID(c)),
	)
	h.Created(c, result)
}

// SystemInfo godoc
// @ID           getSystemInfo
// @Summary      Runtime and dependency report
// @Tags         settings
// @Produce      json
// @Success      200 {object} dto.Response{data=systemapp.SystemInfo}
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/system-info [get]
func (h *SystemHandler) SystemInfo(c *gin.Context) {
	h.Success(c, h.infoService.Info(c.Request.Context()))
}
