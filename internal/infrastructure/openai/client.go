package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/stylefinder/backend/internal/domain"
	"github.com/stylefinder/backend/internal/infrastructure/imaging"
	"go.uber.org/zap"
)

const (
	providerName   = "openai"
	defaultTimeout = 60 * time.Second
)

// Client sends vision prompts to an OpenAI-compatible chat completions API
type Client struct {
	client openai.Client
	logger *zap.Logger
}

// NewClient creates a client for the given API key and base URL.
// An empty base URL keeps the SDK default.
func NewClient(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		client: openai.NewClient(opts...),
		logger: logger.With(zap.String("provider", providerName)),
	}
}

// Name implements domain.VisionProvider
func (c *Client) Name() string {
	return providerName
}

// Generate sends the prompt and the image (as a data URI) in a single user message
func (c *Client) Generate(ctx context.Context, img *domain.Image, prompt string, cfg domain.GenerationConfig) (string, error) {
	if img == nil {
		return "", fmt.Errorf("%w: no image", domain.ErrInvalidImage)
	}

	response, err := c.client.Chat.Completions.New(ctx, makePromptParams(img, prompt, cfg))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}

	if len(response.Choices) == 0 {
		return "", domain.ErrEmptyResponse
	}

	choice := response.Choices[0]
	if choice.Message.Content == "" {
		if choice.FinishReason == "content_filter" {
			return "", fmt.Errorf("%w: %s", domain.ErrContentBlocked, choice.FinishReason)
		}
		return "", domain.ErrEmptyResponse
	}

	c.logger.Debug("chat completion received",
		zap.String("model", response.Model),
		zap.String("finishReason", choice.FinishReason),
		zap.Int64("completionTokens", response.Usage.CompletionTokens),
	)

	return choice.Message.Content, nil
}

func makePromptParams(img *domain.Image, prompt string, cfg domain.GenerationConfig) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(cfg.ModelIdentifier),
		Temperature:         openai.Float(cfg.Temperature),
		TopP:                openai.Float(cfg.TopP),
		MaxCompletionTokens: openai.Int(int64(cfg.MaxOutputTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
							{OfText: &openai.ChatCompletionContentPartTextParam{
								Text: prompt,
							}},
							{OfImageURL: &openai.ChatCompletionContentPartImageParam{
								ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
									URL:    imaging.DataURI(img),
									Detail: "auto",
								},
							}},
						},
					},
				},
			},
		},
	}
}
