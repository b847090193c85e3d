package gemini

import (
	"encoding/json"
	"testing"

	"github.com/stylefinder/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest(t *testing.T) {
	req := buildRequest(testImage(), "prompt text", testConfig)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	genCfg := decoded["generationConfig"].(map[string]interface{})
	assert.Equal(t, 0.2, genCfg["temperature"])
	assert.Equal(t, 0.6, genCfg["topP"])
	assert.Equal(t, float64(2000), genCfg["maxOutputTokens"])

	parts := decoded["contents"].([]interface{})[0].(map[string]interface{})["parts"].([]interface{})
	require.Len(t, parts, 2)
	assert.Equal(t, "prompt text", parts[0].(map[string]interface{})["text"])
	_, hasInline := parts[0].(map[string]interface{})["inline_data"]
	assert.False(t, hasInline, "text part must not carry inline data")
	inline := parts[1].(map[string]interface{})["inline_data"].(map[string]interface{})
	assert.Equal(t, "image/png", inline["mime_type"])
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantText   string
		wantReason string
		wantErr    error
	}{
		{
			name:       "single part",
			body:       `{"candidates":[{"content":{"parts":[{"text":"hello"}]},"finishReason":"STOP"}]}`,
			wantText:   "hello",
			wantReason: "STOP",
		},
		{
			name:     "joins parts",
			body:     `{"candidates":[{"content":{"parts":[{"text":"a"},{"text":"b"}]}}]}`,
			wantText: "ab",
		},
		{
			name:    "embedded error",
			body:    `{"error":{"code":429,"message":"quota"}}`,
			wantErr: domain.ErrProviderFailure,
		},
		{
			name:    "no candidates",
			body:    `{"candidates":[]}`,
			wantErr: domain.ErrEmptyResponse,
		},
		{
			name:    "prompt blocked",
			body:    `{"promptFeedback":{"blockReason":"OTHER"}}`,
			wantErr: domain.ErrContentBlocked,
		},
		{
			name:       "candidate stopped for safety",
			body:       `{"candidates":[{"content":{"parts":[]},"finishReason":"SAFETY"}]}`,
			wantReason: "SAFETY",
			wantErr:    domain.ErrContentBlocked,
		},
		{
			name:       "empty text",
			body:       `{"candidates":[{"content":{"parts":[{"text":""}]},"finishReason":"STOP"}]}`,
			wantReason: "STOP",
			wantErr:    domain.ErrEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp generateResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &resp))

			text, reason, err := extractText(&resp)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}
