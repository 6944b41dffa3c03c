package printing

import (
	"context"
	"fmt"
	"html/template"
	"math"
	"time"
)

// Grid bounds for a label sheet
const (
	MinLabelColumns     = 1
	MaxLabelColumns     = 6
	MinLabelRows        = 1
	MaxLabelRows        = 10
	DefaultLabelColumns = 3
	DefaultLabelRows    = 8
)

const (
	labelSheetMarginMM = 8.0
	labelPaddingMM     = 2.0
	// vertical room reserved under the code for the SKU and name lines
	labelCaptionMM     = 9.0
	labelCaptionSKUMM  = 4.5
	labelNameMaxRunes  = 40
)

// Label is one item on the sheet; the QR code encodes SKU
type Label struct {
	SKU  string
	Name string
}

// LabelSheetOptions controls the grid layout
type LabelSheetOptions struct {
	Columns     int
	Rows        int
	IncludeName bool
	Title       string
	GeneratedAt time.Time
}

// PerPage is the number of labels on one page
func (o LabelSheetOptions) PerPage() int {
	return o.Columns * o.Rows
}

// Validate checks the grid bounds
func (o LabelSheetOptions) Validate() error {
	if o.Columns < MinLabelColumns || o.Columns > MaxLabelColumns {
		return NewRenderError(ErrCodeInvalidLayout,
			fmt.Sprintf("columns must be between %d and %d", MinLabelColumns, MaxLabelColumns), nil)
	}
	if o.Rows < MinLabelRows || o.Rows > MaxLabelRows {
		return NewRenderError(ErrCodeInvalidLayout,
			fmt.Sprintf("rows must be between %d and %d", MinLabelRows, MaxLabelRows), nil)
	}
	return nil
}

// LabelLayout holds the computed cell geometry in millimeters
type LabelLayout struct {
	CellWidth  float64
	CellHeight float64
	QRSize     float64
}

// ComputeLabelLayout divides the printable area of an A4 portrait page into
// columns x rows cells and fits a square code into each.
func ComputeLabelLayout(opts LabelSheetOptions) LabelLayout {
	width := PageSizeA4.WidthMM - 2*labelSheetMarginMM
	height := PageSizeA4.HeightMM - 2*labelSheetMarginMM
	cellW := width / float64(opts.Columns)
	cellH := height / float64(opts.Rows)

	caption := labelCaptionSKUMM
	if opts.IncludeName {
		caption = labelCaptionMM
	}
	qr := math.Min(cellW, cellH-caption) - 2*labelPaddingMM
	return LabelLayout{
		CellWidth:  floor2(cellW),
		CellHeight: floor2(cellH),
		QRSize:     floor2(math.Max(qr, 0)),
	}
}

type labelCell struct {
	SKU  string
	Name string
	QR   template.URL
}

type labelPage struct {
	Cells []labelCell
}

type labelSheetData struct {
	Title       string
	GeneratedAt time.Time
	IncludeName bool
	Columns     int
	Rows        int
	Layout      LabelLayout
	Pages       []labelPage
	MarginMM    float64
	PaddingMM   float64
}

// LabelSheetBuilder lays out QR labels and produces the render request
type LabelSheetBuilder struct {
	engine *TemplateEngine
	qr     *QREncoder
	tmpl   *template.Template
}

// NewLabelSheetBuilder compiles the sheet template
func NewLabelSheetBuilder(engine *TemplateEngine, qr *QREncoder) (*LabelSheetBuilder, error) {
	tmpl, err := engine.Parse("label-sheet", labelSheetTemplate)
	if err != nil {
		return nil, err
	}
	return &LabelSheetBuilder{engine: engine, qr: qr, tmpl: tmpl}, nil
}

// Build renders the labels into an A4 document ready for a PDFRenderer
func (b *LabelSheetBuilder) Build(ctx context.Context, labels []Label, opts LabelSheetOptions) (*RenderRequest, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, NewRenderError(ErrCodeInvalidLayout, "no labels to print", nil)
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	perPage := opts.PerPage()
	pages := make([]labelPage, 0, (len(labels)+perPage-1)/perPage)
	for start := 0; start < len(labels); start += perPage {
		end := min(start+perPage, len(labels))
		page := labelPage{Cells: make([]labelCell, 0, end-start)}
		for _, l := range labels[start:end] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			uri, err := b.qr.DataURI(l.SKU)
			if err != nil {
				return nil, fmt.Errorf("label %s: %w", l.SKU, err)
			}
			page.Cells = append(page.Cells, labelCell{
				SKU:  l.SKU,
				Name: truncate(l.Name, labelNameMaxRunes),
				QR:   uri,
			})
		}
		pages = append(pages, page)
	}

	html, err := b.engine.Execute(ctx, b.tmpl, labelSheetData{
		Title:       opts.Title,
		GeneratedAt: opts.GeneratedAt,
		IncludeName: opts.IncludeName,
		Columns:     opts.Columns,
		Rows:        opts.Rows,
		Layout:      ComputeLabelLayout(opts),
		Pages:       pages,
		MarginMM:    labelSheetMarginMM,
		PaddingMM:   labelPaddingMM,
	})
	if err != nil {
		return nil, err
	}

	return &RenderRequest{
		HTML:     html,
		PageSize: PageSizeA4,
		Margins:  UniformMargins(0),
		Title:    opts.Title,
	}, nil
}

func floor2(v float64) float64 {
	return math.Floor(v*100) / 100
}

// page margins live in CSS so every page of the grid lines up exactly
const labelSheetTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
@page { size: A4 portrait; margin: 0; }
* { box-sizing: border-box; }
body { margin: 0; font-family: "DejaVu Sans", Arial, sans-serif; color: #000; }
.page { width: 210mm; height: 297mm; padding: {{mm .MarginMM}}; page-break-after: always; overflow: hidden; }
.page:last-child { page-break-after: auto; }
.grid { display: grid; grid-template-columns: repeat({{.Columns}}, {{mm .Layout.CellWidth}}); grid-auto-rows: {{mm .Layout.CellHeight}}; }
.label { padding: {{mm .PaddingMM}}; text-align: center; overflow: hidden; border: 0.1mm dashed #bbb; }
.label img { width: {{mm .Layout.QRSize}}; height: {{mm .Layout.QRSize}}; display: block; margin: 0 auto; image-rendering: pixelated; }
.sku { font-size: 9pt; font-weight: bold; font-family: "DejaVu Sans Mono", monospace; white-space: nowrap; }
.name { font-size: 7pt; white-space: nowrap; overflow: hidden; text-overflow: ellipsis; }
</style>
</head>
<body>
{{- range .Pages}}
<div class="page">
<div class="grid">
{{- range .Cells}}
<div class="label">
<img src="{{.QR}}" alt="{{.SKU}}">
<div class="sku">{{.SKU}}</div>
{{- if $.IncludeName}}
<div class="name">{{.Name}}</div>
{{- end}}
</div>
{{- end}}
</div>
</div>
{{- end}}
</body>
</html>
`
