package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inventory/backend/internal/application/labels"
	"go.uber.org/zap"
)

// ArchiveKeyHeader carries the object key of an archived label sheet
const ArchiveKeyHeader = "X-Archive-Key"

// LabelHandler renders printable label sheets
type LabelHandler struct {
	BaseHandler
	labelService *labels.LabelService
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(labelService *labels.LabelService, logger *zap.Logger) *LabelHandler {
	return &LabelHandler{
		BaseHandler:  newBaseHandler(logger),
		labelService: labelService,
	}
}

// QRSheet godoc
// @ID           qrLabelSheet
// @Summary      QR label sheet PDF
// @Description  A4 grid of QR codes encoding item SKUs; an empty item_ids prints every active item.
// @Description  With archive=true the PDF is also stored and its key returned in X-Archive-Key.
// @Tags         labels
// @Accept       json
// @Produce      application/pdf
// @Param        request body labels.QRSheetRequest true "Sheet layout"
// @Success      200 {file} file
// @Header       200 {string} X-Archive-Key "Object key of the archived sheet"
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /labels/qr-sheet [post]
func (h *LabelHandler) QRSheet(c *gin.Context) {
	var req labels.QRSheetRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}
	sheet, err := h.labelService.QRSheet(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if sheet.ArchiveKey != "" {
		c.Header(ArchiveKeyHeader, sheet.ArchiveKey)
	}
	c.Header("X-Label-Count", strconv.Itoa(sheet.LabelCount))
	c.Header("X-Page-Count", strconv.Itoa(sheet.PageCount))
	c.Header("Content-Disposition", `attachment; filename="`+sheet.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", sheet.PDF)
}
