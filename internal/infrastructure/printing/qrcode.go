package printing

import (
	"encoding/base64"
	"html/template"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

// QREncoder produces PNG QR codes
type QREncoder struct {
	size  int
	level qrcode.RecoveryLevel
}

// NewQREncoder returns an encoder producing size x size pixel images with
// medium error correction. A size <= 0 selects 256.
func NewQREncoder(size int) *QREncoder {
	if size <= 0 {
		size = defaultQRSize
	}
	return &QREncoder{size: size, level: qrcode.Medium}
}

// PNG encodes content as a PNG image
func (e *QREncoder) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, NewRenderError(ErrCodeInvalidLayout, "QR content is empty", nil)
	}
	png, err := qrcode.Encode(content, e.level, e.size)
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to encode QR code", err)
	}
	return png, nil
}

// DataURI encodes content as an inline "data:image/png;base64," URL
func (e *QREncoder) DataURI(content string) (template.URL, error) {
	png, err := e.PNG(content)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}
