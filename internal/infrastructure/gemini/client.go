package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stylefinder/backend/internal/domain"
	"go.uber.org/zap"
)

const (
	providerName   = "gemini"
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultTimeout = 60 * time.Second
)

// Client calls the Gemini generateContent REST endpoint
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *zap.Logger
}

// NewClient creates a new Gemini API client
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(zap.String("provider", providerName)),
	}
}

// Name implements domain.VisionProvider
func (c *Client) Name() string {
	return providerName
}

// Generate sends the prompt and image to the configured model and returns the text answer
func (c *Client) Generate(ctx context.Context, img *domain.Image, prompt string, cfg domain.GenerationConfig) (string, error) {
	if img == nil {
		return "", fmt.Errorf("%w: no image", domain.ErrInvalidImage)
	}

	body, err := json.Marshal(buildRequest(img, prompt, cfg))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, cfg.ModelIdentifier)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("User-Agent", "StyleFinder/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", domain.ErrProviderFailure, err)
	}

	var parsed generateResponse
	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("gemini API error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Error != nil {
			return "", fmt.Errorf("%w: status %d: %s", domain.ErrProviderFailure, resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	text, finishReason, err := extractText(&parsed)
	if err != nil {
		return "", err
	}
	if finishReason == "MAX_TOKENS" {
		c.logger.Debug("gemini stopped at the output token limit",
			zap.Int("maxOutputTokens", cfg.MaxOutputTokens),
		)
	}

	return text, nil
}
