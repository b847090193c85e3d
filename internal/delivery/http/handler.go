package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stylefinder/backend/internal/domain"
	"go.uber.org/zap"
)

// FashionResponder produces a repaired fashion description for a match
type FashionResponder interface {
	Respond(
		ctx context.Context,
		userImage string,
		matched domain.MatchResult,
		items []domain.CatalogItem,
		similarityScore, threshold float64,
	) *domain.FashionResponse
}

// HandlerConfig holds request-level settings for the HTTP handlers
type HandlerConfig struct {
	DefaultThreshold float64
	RequestTimeout   time.Duration
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	responder        FashionResponder
	defaultThreshold float64
	requestTimeout   time.Duration
	logger           *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(responder FashionResponder, config HandlerConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		responder:        responder,
		defaultThreshold: config.DefaultThreshold,
		requestTimeout:   config.RequestTimeout,
		logger:           logger,
	}
}

// DescribeRequest is the body of POST /api/v1/fashion/describe
type DescribeRequest struct {
	Image     string               `json:"image" binding:"required"`
	Match     domain.MatchResult   `json:"match"`
	Items     []domain.CatalogItem `json:"items"`
	Threshold *float64             `json:"threshold"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stylefinder-backend",
		"version": "1.0.0",
	})
}

// DescribeOutfit handles fashion description requests
func (h *Handler) DescribeOutfit(c *gin.Context) {
	var req DescribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}

	threshold := h.defaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if err := validateDescribeRequest(&req, threshold); err != nil {
		h.badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	resp := h.responder.Respond(ctx, req.Image, req.Match, req.Items, req.Match.SimilarityScore, threshold)

	c.JSON(http.StatusOK, resp)
}

// validateDescribeRequest checks the ranges the responder relies on
func validateDescribeRequest(req *DescribeRequest, threshold float64) error {
	if req.Match.SimilarityScore < 0 || req.Match.SimilarityScore > 1 {
		return fmt.Errorf("%w: similarityScore must be between 0 and 1", domain.ErrInvalidRequest)
	}
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: threshold must be between 0 and 1", domain.ErrInvalidRequest)
	}
	return nil
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	h.logger.Warn("rejected describe request",
		zap.String("requestId", c.GetString(requestIDKey)),
		zap.Error(err),
	)
	message := err.Error()
	if !errors.Is(err, domain.ErrInvalidRequest) {
		message = domain.ErrInvalidRequest.Error()
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
