package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"app/internal/apperr"
)

type transcriptClient struct {
	client  *http.Client
	baseURL string
}

// NewTranscriptClient creates a TranscriptProvider backed by the
// transcript sidecar service.
func NewTranscriptClient(baseURL string) TranscriptProvider {
	return &transcriptClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GetTranscript fetches the transcript segments for one video.
func (c *transcriptClient) GetTranscript(ctx context.Context, videoID string) ([]TranscriptSegment, error) {
	url := fmt.Sprintf("%s/transcripts/%s", c.baseURL, videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcript request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &apperr.ProviderUnavailableError{Provider: "transcripts", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &apperr.ProviderUnavailableError{
			Provider: "transcripts",
			Err:      fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var payload struct {
		Segments []TranscriptSegment `json:"segments"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("invalid transcript response format: %w", err)
	}
	return payload.Segments, nil
}
