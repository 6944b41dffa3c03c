// Package printing renders printable documents to PDF with headless Chrome.
//
// The package contains:
//   - PDFRenderer, the port used by the application layer, and ChromedpRenderer
//     which drives Chrome through the DevTools protocol
//   - TemplateEngine, html/template with the helpers used by printable pages
//   - QREncoder, PNG QR codes embedded as data URIs
//   - LabelSheetBuilder, the A4 grid of item QR labels
//
// Example usage:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    return err
//	}
//	defer renderer.Close()
//
//	builder, err := NewLabelSheetBuilder(NewTemplateEngine(), NewQREncoder(0))
//	if err != nil {
//	    return err
//	}
//	req, err := builder.Build(ctx, labels, LabelSheetOptions{Columns: 3, Rows: 8, IncludeName: true})
//	if err != nil {
//	    return err
//	}
//	result, err := renderer.Render(ctx, req)
package printing
