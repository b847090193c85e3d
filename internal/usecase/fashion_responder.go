package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/stylefinder/backend/internal/domain"
	"github.com/stylefinder/backend/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

const defaultMinResponseLength = 100

// TextGenerator turns an image and a prompt into model text. *ModelClient implements it.
type TextGenerator interface {
	Generate(ctx context.Context, encodedImage, prompt string) string
}

// FashionResponderConfig holds configuration for the fashion responder
type FashionResponderConfig struct {
	// MinResponseLength is the length below which a model answer is treated as incomplete
	MinResponseLength int
}

// FashionResponder builds the prompt for a match, calls the model and repairs its answer
type FashionResponder struct {
	generator         TextGenerator
	minResponseLength int
	logger            *zap.Logger
}

// NewFashionResponder creates a new fashion responder with dependencies
func NewFashionResponder(generator TextGenerator, config FashionResponderConfig, logger *zap.Logger) *FashionResponder {
	minLength := config.MinResponseLength
	if minLength <= 0 {
		minLength = defaultMinResponseLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FashionResponder{
		generator:         generator,
		minResponseLength: minLength,
		logger:            logger,
	}
}

// Compose returns a fashion description for the user image that always contains
// the rendered items under the section header matching the similarity score.
func (r *FashionResponder) Compose(
	ctx context.Context,
	userImage string,
	matched domain.MatchResult,
	items []domain.CatalogItem,
	similarityScore, threshold float64,
) string {
	return r.Respond(ctx, userImage, matched, items, similarityScore, threshold).Text
}

// Respond is Compose with the match classification and repair state attached.
// Flow: render items -> choose prompt -> generate -> classify -> repair
func (r *FashionResponder) Respond(
	ctx context.Context,
	userImage string,
	matched domain.MatchResult,
	items []domain.CatalogItem,
	similarityScore, threshold float64,
) *domain.FashionResponse {
	itemsBlock := RenderItems(items)
	exact := domain.IsExactMatch(similarityScore, threshold)
	header := domain.SectionHeader(exact)

	raw := r.generator.Generate(ctx, userImage, buildPrompt(exact, itemsBlock))

	state := classify(raw, r.minResponseLength)
	var text string
	switch state {
	case domain.StateIncomplete:
		text = synthesizeResponse(header, itemsBlock)
	case domain.StateMissingSection:
		text = appendSection(raw, header, itemsBlock)
	case domain.StateComplete:
		text = raw
	}

	metrics.ResponseRepairsTotal.WithLabelValues(state.String()).Inc()
	r.logger.Info("fashion response resolved",
		zap.String("matchedItemId", matched.MatchedItemID),
		zap.Float64("similarityScore", similarityScore),
		zap.Bool("exactMatch", exact),
		zap.Int("itemCount", len(items)),
		zap.Int("rawLength", utf8.RuneCountInString(raw)),
		zap.Stringer("state", state),
	)

	return &domain.FashionResponse{
		Text:       text,
		Header:     header,
		ExactMatch: exact,
		State:      state,
	}
}

// classify decides how a raw model answer must be repaired.
// Length is counted in characters and checked before headers, so a short answer
// is never kept even if it has one.
func classify(raw string, minLength int) domain.ResponseState {
	if utf8.RuneCountInString(raw) < minLength {
		return domain.StateIncomplete
	}
	if !strings.Contains(raw, domain.HeaderItemDetails) && !strings.Contains(raw, domain.HeaderSimilarItems) {
		return domain.StateMissingSection
	}
	return domain.StateComplete
}
