package main

import (
	"fmt"
	"log"

	"github.com/stylefinder/backend/config"
	httpDelivery "github.com/stylefinder/backend/internal/delivery/http"
	"github.com/stylefinder/backend/internal/domain"
	"github.com/stylefinder/backend/internal/infrastructure/gemini"
	"github.com/stylefinder/backend/internal/infrastructure/logging"
	"github.com/stylefinder/backend/internal/infrastructure/openai"
	"github.com/stylefinder/backend/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting StyleFinder backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize infrastructure dependencies
	provider, err := newVisionProvider(cfg.Model, logger)
	if err != nil {
		logger.Fatal("failed to create vision provider", zap.Error(err))
	}

	logger.Info("vision provider configured",
		zap.String("provider", provider.Name()),
		zap.String("baseURL", cfg.Model.BaseURL),
		zap.String("apiKey", maskKey(cfg.Model.APIKey)),
	)

	// Initialize usecase layer
	modelClient := usecase.NewModelClient(provider, usecase.ModelClientConfig{
		Generation: domain.GenerationConfig{
			ModelIdentifier: cfg.Model.Name,
			Temperature:     cfg.Model.Temperature,
			TopP:            cfg.Model.TopP,
			MaxOutputTokens: cfg.Model.MaxOutputTokens,
		},
		TruncationWarnLength: cfg.Model.TruncationWarnLength,
		RequestsPerSecond:    cfg.Model.RequestsPerSecond,
		Burst:                cfg.Model.Burst,
	}, logger)

	responder := usecase.NewFashionResponder(modelClient, usecase.FashionResponderConfig{
		MinResponseLength: cfg.Responder.MinResponseLength,
	}, logger)

	logger.Info("responder configured",
		zap.Float64("similarityThreshold", cfg.Responder.SimilarityThreshold),
		zap.Int("minResponseLength", cfg.Responder.MinResponseLength),
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(responder, httpDelivery.HandlerConfig{
		DefaultThreshold: cfg.Responder.SimilarityThreshold,
		RequestTimeout:   cfg.Server.RequestTimeout,
	}, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

// newVisionProvider builds the provider client selected by model.provider
func newVisionProvider(cfg config.ModelConfig, logger *zap.Logger) (domain.VisionProvider, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.NewClient(cfg.APIKey, cfg.BaseURL, cfg.Timeout, logger), nil
	case "openai":
		return openai.NewClient(cfg.APIKey, cfg.BaseURL, cfg.Timeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Provider)
	}
}

// maskKey keeps only a short prefix of the API key for logs
func maskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:8] + "..."
}
