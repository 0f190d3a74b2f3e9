package provider

import (
	"context"
	"fmt"

	"app/internal/apperr"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// videoDurationBatch is the maximum number of IDs the videos.list
// endpoint accepts per call.
const videoDurationBatch = 50

type youtubeCatalog struct {
	svc *youtube.Service
}

// NewYouTubeCatalog creates a VideoCatalogProvider backed by the YouTube
// Data API v3.
func NewYouTubeCatalog(ctx context.Context, apiKey string) (VideoCatalogProvider, error) {
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &youtubeCatalog{svc: svc}, nil
}

// SearchPlaylists returns playlists matching the query, best match first.
func (c *youtubeCatalog) SearchPlaylists(ctx context.Context, query string) ([]PlaylistRef, error) {
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("playlist").
		MaxResults(5).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &apperr.ProviderUnavailableError{Provider: "youtube search", Err: err}
	}

	var refs []PlaylistRef
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.PlaylistId == "" {
			continue
		}
		title := ""
		if item.Snippet != nil {
			title = item.Snippet.Title
		}
		refs = append(refs, PlaylistRef{ID: item.Id.PlaylistId, Title: title})
	}
	return refs, nil
}

// ListPlaylistItems returns one page of playlist items plus the token
// for the next page ("" when exhausted).
func (c *youtubeCatalog) ListPlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) ([]PlaylistItem, string, error) {
	call := c.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(pageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	resp, err := call.Do()
	if err != nil {
		return nil, "", &apperr.ProviderUnavailableError{Provider: "youtube playlist", Err: err}
	}

	var items []PlaylistItem
	for _, it := range resp.Items {
		if it.ContentDetails == nil || it.ContentDetails.VideoId == "" {
			continue
		}
		title := ""
		if it.Snippet != nil {
			title = it.Snippet.Title
		}
		items = append(items, PlaylistItem{VideoID: it.ContentDetails.VideoId, Title: title})
	}
	return items, resp.NextPageToken, nil
}

// VideoDurations returns ISO-8601 durations keyed by video ID, batching
// requests at the API limit.
func (c *youtubeCatalog) VideoDurations(ctx context.Context, videoIDs []string) (map[string]string, error) {
	durations := make(map[string]string, len(videoIDs))
	for start := 0; start < len(videoIDs); start += videoDurationBatch {
		end := start + videoDurationBatch
		if end > len(videoIDs) {
			end = len(videoIDs)
		}
		resp, err := c.svc.Videos.List([]string{"contentDetails"}).
			Id(videoIDs[start:end]...).
			Context(ctx).
			Do()
		if err != nil {
			return nil, &apperr.ProviderUnavailableError{Provider: "youtube videos", Err: err}
		}
		for _, v := range resp.Items {
			if v.ContentDetails != nil {
				durations[v.Id] = v.ContentDetails.Duration
			}
		}
	}
	return durations, nil
}
