package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"app/internal/apperr"
)

const tavilyBaseURL = "https://api.tavily.com"

type tavilySearch struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewTavilySearch creates a WebSearchProvider backed by the Tavily
// search API.
func NewTavilySearch(apiKey string) WebSearchProvider {
	return &tavilySearch{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: tavilyBaseURL,
		apiKey:  apiKey,
	}
}

// Search runs a web search and returns at most maxResults hits.
func (s *tavilySearch) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	requestBody := map[string]interface{}{
		"api_key":     s.apiKey,
		"query":       query,
		"max_results": maxResults,
	}
	bodyJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(bodyJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &apperr.ProviderUnavailableError{Provider: "tavily", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &apperr.ProviderUnavailableError{
			Provider: "tavily",
			Err:      fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	var payload struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("invalid search response format: %w", err)
	}
	if len(payload.Results) > maxResults {
		payload.Results = payload.Results[:maxResults]
	}
	return payload.Results, nil
}
