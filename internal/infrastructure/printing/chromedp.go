package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 30 * time.Second
	defaultScale         = 1.0
	defaultMaxConcurrent = 2
	mmPerInch            = 25.4
)

// ChromedpConfig configures the headless Chrome renderer. With RemoteURL set
// the renderer attaches to that DevTools endpoint instead of launching Chrome;
// ExecPath and NoSandbox only apply to a local browser.
type ChromedpConfig struct {
	DefaultTimeout time.Duration
	ExecPath       string
	RemoteURL      string
	NoSandbox      bool
	MaxConcurrent  int
	Scale          float64
	Logger         *zap.Logger
}

func (c ChromedpConfig) withDefaults() ChromedpConfig {
	if c.DefaultTimeout <= 0 {
		c.DefaultTimeout = defaultChromeTimeout
	}
	if c.Scale == 0 {
		c.Scale = defaultScale
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = defaultMaxConcurrent
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// ChromedpRenderer prints each request in its own tab of a shared browser.
// At most MaxConcurrent tabs are open at a time.
type ChromedpRenderer struct {
	cfg   ChromedpConfig
	slots chan struct{}

	alloc     context.Context
	stopAlloc context.CancelFunc
}

// NewChromedpRenderer prepares the allocator. Chrome itself starts with the
// first Render.
func NewChromedpRenderer(config *ChromedpConfig) (*ChromedpRenderer, error) {
	var cfg ChromedpConfig
	if config != nil {
		cfg = *config
	}
	cfg = cfg.withDefaults()

	r := &ChromedpRenderer{cfg: cfg, slots: make(chan struct{}, cfg.MaxConcurrent)}
	r.alloc, r.stopAlloc = newAllocator(cfg)
	return r, nil
}

func newAllocator(cfg ChromedpConfig) (context.Context, context.CancelFunc) {
	if cfg.RemoteURL != "" {
		return chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	return chromedp.NewExecAllocator(context.Background(), opts...)
}

func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if err := validateRenderRequest(req); err != nil {
		return nil, err
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.cfg.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case r.slots <- struct{}{}:
		defer func() { <-r.slots }()
	case <-ctx.Done():
		return nil, NewRenderError(ErrCodeRenderTimeout, "no renderer became free in time", ctx.Err())
	}

	start := time.Now()
	pdf, err := r.print(ctx, wrapDocument(req), r.pdfParams(req))
	if err != nil {
		return nil, r.classify(ctx, timeout, err)
	}
	if len(pdf) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "browser returned an empty PDF", nil)
	}

	result := &RenderResult{PDFData: pdf, PageCount: countPages(pdf), RenderDuration: time.Since(start)}
	r.cfg.Logger.Info("PDF rendered",
		zap.String("title", req.Title),
		zap.Int("bytes", len(pdf)),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration))
	return result, nil
}

// print loads document into a fresh tab and prints it. The tab is closed
// when ctx ends.
func (r *ChromedpRenderer) print(ctx context.Context, document string, params *page.PrintToPDFParams) ([]byte, error) {
	tab, closeTab := chromedp.NewContext(r.alloc, chromedp.WithLogf(r.cfg.Logger.Sugar().Debugf))
	defer closeTab()
	stop := context.AfterFunc(ctx, closeTab)
	defer stop()

	var pdf []byte
	err := chromedp.Run(tab,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, document).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) (err error) {
			pdf, _, err = params.Do(ctx)
			return err
		}),
	)
	return pdf, err
}

func (r *ChromedpRenderer) classify(ctx context.Context, timeout time.Duration, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return NewRenderError(ErrCodeRenderTimeout, fmt.Sprintf("PDF rendering timed out after %v", timeout), err)
	case errors.Is(ctx.Err(), context.Canceled):
		return NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", err)
	}
	r.cfg.Logger.Error("Chrome failed to print", zap.Error(err))
	return NewRenderError(ErrCodeRenderFailed, "chrome failed to print the document", err)
}

func validateRenderRequest(req *RenderRequest) error {
	switch {
	case req == nil:
		return NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	case strings.TrimSpace(req.HTML) == "":
		return NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	case !req.PageSize.IsValid():
		size := req.PageSize
		return NewRenderError(ErrCodeInvalidPaperSize,
			fmt.Sprintf("invalid page size %q (%.1fx%.1fmm)", size.Name, size.WidthMM, size.HeightMM), nil)
	}
	return nil
}

// pdfParams converts the millimeter layout to DevTools print parameters,
// which are in inches.
func (r *ChromedpRenderer) pdfParams(req *RenderRequest) *page.PrintToPDFParams {
	m := req.Margins
	return page.PrintToPDF().
		WithPrintBackground(true).
		WithLandscape(req.Landscape).
		WithScale(r.cfg.Scale).
		WithPaperWidth(mmToInches(req.PageSize.WidthMM)).
		WithPaperHeight(mmToInches(req.PageSize.HeightMM)).
		WithMarginTop(mmToInches(m.Top)).
		WithMarginRight(mmToInches(m.Right)).
		WithMarginBottom(mmToInches(m.Bottom)).
		WithMarginLeft(mmToInches(m.Left))
}

// wrapDocument turns an HTML fragment into a UTF-8 document. Input that
// already has a doctype or <html> element is used as is.
func wrapDocument(req *RenderRequest) string {
	lower := strings.ToLower(req.HTML)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return req.HTML
	}

	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html><html><head><meta charset="UTF-8">`)
	if req.Title != "" {
		fmt.Fprintf(&sb, "<title>%s</title>", html.EscapeString(req.Title))
	}
	sb.WriteString("</head><body>")
	sb.WriteString(req.HTML)
	sb.WriteString("</body></html>")
	return sb.String()
}

func (r *ChromedpRenderer) Close() error {
	if r.stopAlloc != nil {
		r.stopAlloc()
	}
	return nil
}

func mmToInches(mm float64) float64 { return mm / mmPerInch }

// countPages counts page objects. "/Type /Pages" tree nodes share the
// prefix and are subtracted.
func countPages(pdf []byte) int {
	n := bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
	return max(n, 1)
}

var _ PDFRenderer = (*ChromedpRenderer)(nil)
