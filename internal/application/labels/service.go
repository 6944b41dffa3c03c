package labels

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/inventory/backend/internal/domain/catalog"
	"github.com/inventory/backend/internal/domain/shared"
	infra "github.com/inventory/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// ArchivePrefix is the object key prefix for archived label sheets
const ArchivePrefix = "labels/"

// ArchiveStore stores rendered sheets
type ArchiveStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

// SheetMetrics records label sheet renders
type SheetMetrics interface {
	RecordLabelSheet(ctx context.Context, labels int, duration time.Duration, err error)
}

// LabelService renders QR label sheets for items
type LabelService struct {
	itemRepo catalog.ItemRepository
	builder  *infra.LabelSheetBuilder
	renderer infra.PDFRenderer
	archive  ArchiveStore
	metrics  SheetMetrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewLabelService creates a new LabelService. A nil renderer disables printing;
// a nil archive disables archiving.
func NewLabelService(
	itemRepo catalog.ItemRepository,
	builder *infra.LabelSheetBuilder,
	renderer infra.PDFRenderer,
	archive ArchiveStore,
	logger *zap.Logger,
) *LabelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabelService{
		itemRepo: itemRepo,
		builder:  builder,
		renderer: renderer,
		archive:  archive,
		logger:   logger,
		now:      time.Now,
	}
}

// SetMetrics sets the telemetry recorder
func (s *LabelService) SetMetrics(metrics SheetMetrics) {
	s.metrics = metrics
}

// Enabled reports whether label printing is available
func (s *LabelService) Enabled() bool {
	return s.renderer != nil && s.builder != nil
}

// QRSheet renders the requested items as an A4 grid of QR labels
func (s *LabelService) QRSheet(ctx context.Context, req QRSheetRequest) (*QRSheetResult, error) {
	if !s.Enabled() {
		return nil, shared.NewDomainError(shared.CodeServiceUnavailable, "Label printing is disabled")
	}

	opts := infra.LabelSheetOptions{
		Columns:     infra.DefaultLabelColumns,
		Rows:        infra.DefaultLabelRows,
		IncludeName: true,
		Title:       "QR labels",
		GeneratedAt: s.now(),
	}
	if req.Columns != nil {
		opts.Columns = *req.Columns
	}
	if req.Rows != nil {
		opts.Rows = *req.Rows
	}
	if req.IncludeName != nil {
		opts.IncludeName = *req.IncludeName
	}
	if err := opts.Validate(); err != nil {
		return nil, s.mapRenderError(err)
	}

	items, err := s.selectItems(ctx, req.ItemIDs)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "No items to print")
	}

	labels := make([]infra.Label, len(items))
	for i, item := range items {
		labels[i] = infra.Label{SKU: item.SKU, Name: item.Name}
	}

	renderReq, err := s.builder.Build(ctx, labels, opts)
	if err != nil {
		return nil, s.mapRenderError(err)
	}
	started := time.Now()
	rendered, err := s.renderer.Render(ctx, renderReq)
	if s.metrics != nil {
		s.metrics.RecordLabelSheet(ctx, len(labels), time.Since(started), err)
	}
	if err != nil {
		return nil, s.mapRenderError(err)
	}

	date := opts.GeneratedAt.Format("2006-01-02")
	result := &QRSheetResult{
		PDF:        rendered.PDFData,
		Filename:   fmt.Sprintf("qr-labels-%s.pdf", date),
		LabelCount: len(labels),
		PageCount:  rendered.PageCount,
	}

	if req.Archive {
		result.ArchiveKey = s.store(ctx, date, rendered.PDFData)
	}

	s.logger.Info("QR label sheet rendered",
		zap.Int("labels", result.LabelCount),
		zap.Int("pages", result.PageCount),
		zap.Int("columns", opts.Columns),
		zap.Int("rows", opts.Rows),
		zap.String("archive_key", result.ArchiveKey),
	)
	return result, nil
}

// selectItems returns the requested items in request order, or every active item
func (s *LabelService) selectItems(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	if len(ids) == 0 {
		return s.itemRepo.FindActive(ctx)
	}

	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	found, err := s.itemRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]catalog.Item, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}

	items := make([]catalog.Item, 0, len(unique))
	for _, id := range unique {
		item, ok := byID[id]
		if !ok {
			return nil, shared.NewNotFoundError("Item", id)
		}
		items = append(items, item)
	}
	return items, nil
}

// store archives the sheet; failures are logged and the sheet is still returned
func (s *LabelService) store(ctx context.Context, date string, pdf []byte) string {
	if s.archive == nil {
		s.logger.Warn("label sheet archive requested but object storage is disabled")
		return ""
	}
	key := fmt.Sprintf("%sqr-labels-%s-%s.pdf", ArchivePrefix, date, uuid.NewString())
	if err := s.archive.Put(ctx, key, bytes.NewReader(pdf), int64(len(pdf)), "application/pdf"); err != nil {
		s.logger.Error("failed to archive label sheet", zap.String("key", key), zap.Error(err))
		return ""
	}
	return key
}

func (s *LabelService) mapRenderError(err error) error {
	var renderErr *infra.RenderError
	if !errors.As(err, &renderErr) {
		return err
	}
	switch renderErr.Code {
	case infra.ErrCodeInvalidLayout:
		return shared.NewDomainError(shared.CodeInvalidInput, renderErr.Message)
	case infra.ErrCodeRenderTimeout:
		s.logger.Error("label sheet rendering timed out", zap.Error(err))
		return shared.NewDomainError(shared.CodeServiceUnavailable, "PDF renderer is busy or unavailable, try again later")
	default:
		return fmt.Errorf("render label sheet: %w", err)
	}
}
