package provider

import "context"

// GenerativeTextProvider produces natural-language/JSON text from a prompt.
type GenerativeTextProvider interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// PlaylistRef identifies an external video collection.
type PlaylistRef struct {
	ID    string
	Title string
}

// PlaylistItem is one video inside a collection, in collection order.
type PlaylistItem struct {
	VideoID string
	Title   string
}

// VideoCatalogProvider exposes the subset of a video catalog the
// pipeline needs: collection search, paged item listing, durations.
type VideoCatalogProvider interface {
	SearchPlaylists(ctx context.Context, query string) ([]PlaylistRef, error)
	ListPlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) ([]PlaylistItem, string, error)
	VideoDurations(ctx context.Context, videoIDs []string) (map[string]string, error)
}

// TranscriptSegment is one chunk of spoken text.
type TranscriptSegment struct {
	Text string `json:"text"`
}

// TranscriptProvider fetches per-video transcripts. Failures are
// per-video and never fatal to the pipeline.
type TranscriptProvider interface {
	GetTranscript(ctx context.Context, videoID string) ([]TranscriptSegment, error)
}

// SearchResult is one hit from the web-search provider.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// WebSearchProvider queries an external search service.
type WebSearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}
