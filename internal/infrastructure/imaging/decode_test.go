package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stylefinder/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestDecodeBase64_PNG(t *testing.T) {
	raw := pngBytes(t, 4, 3)
	encoded := base64.StdEncoding.EncodeToString(raw)

	img, err := DecodeBase64(encoded)

	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, 3, img.Height)
	assert.Equal(t, raw, img.Data)
}

func TestDecodeBase64_JPEG(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(jpegBytes(t, 8, 8))

	img, err := DecodeBase64(encoded)

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.MIMEType)
	assert.Equal(t, 8, img.Width)
}

func TestDecodeBase64_DataURI(t *testing.T) {
	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 2, 2))

	img, err := DecodeBase64(encoded)

	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
}

func TestDecodeBase64_Unpadded(t *testing.T) {
	encoded := base64.RawStdEncoding.EncodeToString(pngBytes(t, 5, 1))

	img, err := DecodeBase64(encoded)

	require.NoError(t, err)
	assert.Equal(t, 5, img.Width)
}

func TestDecodeBase64_Errors(t *testing.T) {
	truncatedPNG := pngBytes(t, 2, 2)[:12]

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty string", "", domain.ErrInvalidImage},
		{"corrupt base64", "not base64 at all!!", domain.ErrInvalidImage},
		{"data URI without payload separator", "data:image/png;base64", domain.ErrInvalidImage},
		{"text payload", base64.StdEncoding.EncodeToString([]byte("hello, this is plain text")), domain.ErrUnsupportedImageType},
		{"truncated png", base64.StdEncoding.EncodeToString(truncatedPNG), domain.ErrInvalidImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeBase64(tt.input)
			assert.Nil(t, img)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDataURI(t *testing.T) {
	img := &domain.Image{Data: []byte{1, 2, 3}, MIMEType: "image/png"}

	assert.Equal(t, "data:image/png;base64,AQID", DataURI(img))
	assert.Equal(t, "AQID", EncodeBase64(img))
}
