package printing

import (
	"context"
	"io"
	"time"
)

// PageSize is a portrait sheet size in millimeters.
type PageSize struct {
	Name     string
	WidthMM  float64
	HeightMM float64
}

var PageSizeA4 = PageSize{Name: "A4", WidthMM: 210, HeightMM: 297}

func (p PageSize) IsValid() bool { return p.WidthMM > 0 && p.HeightMM > 0 }

// Margins are in millimeters.
type Margins struct {
	Top, Right, Bottom, Left float64
}

func UniformMargins(mm float64) Margins { return Margins{Top: mm, Right: mm, Bottom: mm, Left: mm} }

// RenderRequest is one HTML document to print. A zero Timeout uses the
// renderer's default.
type RenderRequest struct {
	HTML      string
	Title     string
	PageSize  PageSize
	Landscape bool
	Margins   Margins
	Timeout   time.Duration
}

type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// PDFRenderer prints HTML to PDF. Implementations hold a browser and must be
// closed.
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	io.Closer
}

// RenderErrorCode classifies printing failures so callers can map them to
// API errors.
type RenderErrorCode string

const (
	ErrCodeRenderTimeout    RenderErrorCode = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     RenderErrorCode = "RENDER_FAILED"
	ErrCodeInvalidHTML      RenderErrorCode = "INVALID_HTML"
	ErrCodeInvalidPaperSize RenderErrorCode = "INVALID_PAPER_SIZE"
	ErrCodeInvalidLayout    RenderErrorCode = "INVALID_LAYOUT"
)

type RenderError struct {
	Code    RenderErrorCode
	Message string
	Cause   error
}

func NewRenderError(code RenderErrorCode, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RenderError) Unwrap() error { return e.Cause }
