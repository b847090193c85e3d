package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/stylefinder/backend/internal/domain"
	"github.com/stylefinder/backend/internal/infrastructure/imaging"
	"github.com/stylefinder/backend/internal/infrastructure/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrorPrefix marks strings produced by ModelClient in place of model output
const ErrorPrefix = "Error generating response: "

const defaultTruncationWarnLength = 7900

// maxDiagnosticLength bounds the cause carried in a degraded string, in characters.
// Together with ErrorPrefix it stays below the minimum response length.
const maxDiagnosticLength = 48

// diagnosticSentinels are reported by their own message, without provider detail
var diagnosticSentinels = []error{
	domain.ErrInvalidImage,
	domain.ErrUnsupportedImageType,
	domain.ErrContentBlocked,
	domain.ErrEmptyResponse,
	domain.ErrProviderFailure,
}

// ModelClientConfig holds configuration for the model client
type ModelClientConfig struct {
	Generation           domain.GenerationConfig
	TruncationWarnLength int
	RequestsPerSecond    float64
	Burst                int
}

// ModelClient wraps a vision provider and never lets a failure escape as an error
type ModelClient struct {
	provider             domain.VisionProvider
	generation           domain.GenerationConfig
	truncationWarnLength int
	rateLimiter          *rate.Limiter
	logger               *zap.Logger
}

// NewModelClient creates a model client. Sampling parameters are fixed for its lifetime.
func NewModelClient(provider domain.VisionProvider, config ModelClientConfig, logger *zap.Logger) *ModelClient {
	warnLength := config.TruncationWarnLength
	if warnLength <= 0 {
		warnLength = defaultTruncationWarnLength
	}

	// A zero rate means no limit
	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 1
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("provider", provider.Name()))

	logger.Info("initialized vision model",
		zap.String("model", config.Generation.ModelIdentifier),
		zap.Float64("temperature", config.Generation.Temperature),
		zap.Float64("topP", config.Generation.TopP),
		zap.Int("maxOutputTokens", config.Generation.MaxOutputTokens),
	)

	return &ModelClient{
		provider:             provider,
		generation:           config.Generation,
		truncationWarnLength: warnLength,
		rateLimiter:          rate.NewLimiter(limit, burst),
		logger:               logger,
	}
}

// Generate sends the base64 image and prompt to the model and returns its text.
// Any failure comes back as a short string starting with ErrorPrefix.
func (c *ModelClient) Generate(ctx context.Context, encodedImage, prompt string) (text string) {
	start := time.Now()
	providerName := c.provider.Name()

	defer func() {
		if r := recover(); r != nil {
			text = c.fail(providerName, start, fmt.Errorf("provider panic: %v", r))
		}
	}()

	c.logger.Info("sending request to vision model", zap.Int("promptLength", len(prompt)))

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return c.fail(providerName, start, fmt.Errorf("rate limiter: %w", err))
	}

	img, err := imaging.DecodeBase64(encodedImage)
	if err != nil {
		return c.fail(providerName, start, err)
	}

	text, err = c.provider.Generate(ctx, img, prompt, c.generation)
	if err != nil {
		return c.fail(providerName, start, err)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(providerName, metrics.OutcomeSuccess).Inc()
	metrics.GenerationDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())

	c.logger.Info("received response from vision model",
		zap.Int("responseLength", utf8.RuneCountInString(text)),
		zap.Int("imageBytes", len(img.Data)),
		zap.Duration("latency", time.Since(start)),
	)

	if length := utf8.RuneCountInString(text); length >= c.truncationWarnLength {
		metrics.TruncationWarningsTotal.WithLabelValues(providerName).Inc()
		c.logger.Warn("response may be truncated", zap.Int("responseLength", length))
	}

	return text
}

// fail logs and counts a failed call and turns the error into the degraded string.
// The full cause goes to the log only.
func (c *ModelClient) fail(providerName string, start time.Time, err error) string {
	metrics.GenerationRequestsTotal.WithLabelValues(providerName, metrics.OutcomeError).Inc()
	metrics.GenerationDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	c.logger.Error("error generating response", zap.Error(err))
	return ErrorPrefix + diagnostic(err)
}

// diagnostic reduces err to a short cause: the domain sentinel message when one is
// wrapped, otherwise the error text cut to maxDiagnosticLength characters.
func diagnostic(err error) string {
	for _, sentinel := range diagnosticSentinels {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}

	msg := err.Error()
	if utf8.RuneCountInString(msg) > maxDiagnosticLength {
		msg = string([]rune(msg)[:maxDiagnosticLength])
	}
	return msg
}
