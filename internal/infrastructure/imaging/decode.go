package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/stylefinder/backend/internal/domain"
)

// supportedTypes are the raster formats both providers accept and we can validate
var supportedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// DecodeBase64 turns a base64 payload (bare or as a data URI) into a validated image
func DecodeBase64(encoded string) (*domain.Image, error) {
	payload := strings.TrimSpace(encoded)
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, fmt.Errorf("%w: malformed data URI", domain.ErrInvalidImage)
		}
		payload = payload[idx+1:]
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrInvalidImage)
	}

	mimeType := mimetype.Detect(data).String()
	if !supportedTypes[mimeType] {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedImageType, mimeType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	return &domain.Image{
		Data:     data,
		MIMEType: mimeType,
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

// EncodeBase64 is the inverse of DecodeBase64 for the raw image bytes
func EncodeBase64(img *domain.Image) string {
	return base64.StdEncoding.EncodeToString(img.Data)
}

// DataURI renders the image as a data URI, the form OpenAI-compatible APIs expect
func DataURI(img *domain.Image) string {
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, EncodeBase64(img))
}

// decodeBase64 accepts padded and unpadded standard encodings
func decodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}
