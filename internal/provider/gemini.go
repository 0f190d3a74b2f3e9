package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"app/internal/apperr"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewGeminiProvider creates a GenerativeTextProvider backed by the
// Gemini REST API.
func NewGeminiProvider(apiKey, model string) GenerativeTextProvider {
	return &geminiProvider{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		baseURL: geminiBaseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

// NewGeminiProviderWithBaseURL is used by tests to point the client at a
// local server.
func NewGeminiProviderWithBaseURL(apiKey, model, baseURL string) GenerativeTextProvider {
	p := NewGeminiProvider(apiKey, model).(*geminiProvider)
	p.baseURL = baseURL
	return p
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Complete sends a single-turn prompt and returns the concatenated text
// of the first candidate. 429 maps to RateLimitError (never retried),
// 5xx to TransientError (retryable).
func (p *geminiProvider) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenConfig{
			MaxOutputTokens: maxTokens,
			Temperature:     temperature,
		},
	}
	bodyJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyJSON))
	if err != nil {
		return "", fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &apperr.TransientError{Provider: "gemini", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generation response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &apperr.RateLimitError{Provider: "gemini", Err: apiError(body, resp.StatusCode)}
	case resp.StatusCode >= http.StatusInternalServerError:
		return "", &apperr.TransientError{Provider: "gemini", Err: apiError(body, resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("gemini request failed: %w", apiError(body, resp.StatusCode))
	}

	var genResp geminiResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("invalid response format from gemini: %w", err)
	}
	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// apiError extracts the provider's error message from a non-OK body.
func apiError(body []byte, status int) error {
	var errorResp struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
		return fmt.Errorf("HTTP %d: %s", status, errorResp.Error.Message)
	}
	return fmt.Errorf("HTTP %d", status)
}
