package domain

import "context"

// GenerationConfig holds the sampling parameters used for every generation call
type GenerationConfig struct {
	ModelIdentifier string
	Temperature     float64
	TopP            float64
	MaxOutputTokens int
}

// Image is a decoded user image ready to be sent to a vision model
type Image struct {
	Data     []byte
	MIMEType string // e.g. "image/jpeg"
	Width    int
	Height   int
}

// VisionProvider defines the interface for a remote vision-capable generative model.
// Implementations must be safe for concurrent use.
type VisionProvider interface {
	// Generate submits the prompt and image as one multimodal request and returns the model text.
	Generate(ctx context.Context, image *Image, prompt string, cfg GenerationConfig) (string, error)
	// Name returns a short provider label for logs and metrics (e.g. "gemini").
	Name() string
}
