package gemini

import (
	"fmt"
	"strings"

	"github.com/stylefinder/backend/internal/domain"
	"github.com/stylefinder/backend/internal/infrastructure/imaging"
)

// generateRequest is the body of a generateContent call
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64 encoded
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// generateResponse is the subset of the generateContent response we read
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// buildRequest puts the prompt first and the image second, in one user turn
func buildRequest(img *domain.Image, prompt string, cfg domain.GenerationConfig) generateRequest {
	return generateRequest{
		Contents: []content{
			{
				Role: "user",
				Parts: []part{
					{Text: prompt},
					{InlineData: &inlineData{
						MimeType: img.MIMEType,
						Data:     imaging.EncodeBase64(img),
					}},
				},
			},
		},
		GenerationConfig: generationConfig{
			Temperature:     cfg.Temperature,
			TopP:            cfg.TopP,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
	}
}

// extractText joins the text parts of the first candidate
func extractText(resp *generateResponse) (string, string, error) {
	if resp.Error != nil {
		return "", "", fmt.Errorf("%w: %d %s", domain.ErrProviderFailure, resp.Error.Code, resp.Error.Message)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", "", fmt.Errorf("%w: %s", domain.ErrContentBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", "", domain.ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	var sb strings.Builder
	for _, p := range candidate.Content.Parts {
		sb.WriteString(p.Text)
	}

	if sb.Len() == 0 {
		if candidate.FinishReason == "SAFETY" || candidate.FinishReason == "PROHIBITED_CONTENT" {
			return "", candidate.FinishReason, fmt.Errorf("%w: %s", domain.ErrContentBlocked, candidate.FinishReason)
		}
		return "", candidate.FinishReason, domain.ErrEmptyResponse
	}

	return sb.String(), candidate.FinishReason, nil
}
