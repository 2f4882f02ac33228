//go:build unit
// +build unit

package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/campuscred/campuscred/internal/domain/sharing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNGRenderer_Render(t *testing.T) {
	data, err := NewPNGRenderer().Render("https://api.campus.edu/api/v1/campuscred/share/abc?src=qr", sharing.QRCodeSize)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, sharing.QRCodeSize, img.Bounds().Dx())
	assert.Equal(t, sharing.QRCodeSize, img.Bounds().Dy())
}

func TestPNGRenderer_InvalidInput(t *testing.T) {
	r := NewPNGRenderer()

	_, err := r.Render("", sharing.QRCodeSize)
	assert.Error(t, err)

	_, err = r.Render("https://x", 0)
	assert.Error(t, err)

	_, err = r.Render("https://x", 5)
	assert.Error(t, err, "smaller than the symbol")
}
