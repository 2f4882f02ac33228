package qrcode

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/campuscred/campuscred/internal/domain/sharing"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

type pngRenderer struct {
	level qr.ErrorCorrectionLevel
}

// NewPNGRenderer creates a QRRenderer with medium error correction
func NewPNGRenderer() sharing.QRRenderer {
	return &pngRenderer{level: qr.M}
}

func (r *pngRenderer) Render(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("empty QR content")
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid QR size %d", size)
	}

	code, err := qr.Encode(content, r.level, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("failed to scale QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
