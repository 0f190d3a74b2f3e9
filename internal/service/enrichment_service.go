package service

import (
	"context"
	"fmt"
	"strings"

	"app/internal/config"
	"app/internal/model"
	"app/internal/provider"
	"app/internal/util"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Sentinel transcript stored when the transcript provider fails or
// returns nothing. Lectures carrying it are flagged for backfill.
const transcriptUnavailable = "Transcript not available."

const videoURLPrefix = "https://www.youtube.com/watch?v="

// EnrichmentService resolves a topic to a playlist of videos and
// enriches each video into a lecture draft with duration, transcript
// and, for selected videos, an embedded quiz.
type EnrichmentService interface {
	// BuildLectures returns lecture drafts ordered by playlist
	// position. A missing playlist yields zero lectures, and per-video
	// enrichment failures degrade the lecture instead of failing the
	// call.
	BuildLectures(ctx context.Context, topic string) ([]model.LectureDraft, error)
}

type enrichmentService struct {
	catalog      provider.VideoCatalogProvider
	transcripts  provider.TranscriptProvider
	gen          GenerationService
	pageSize     int64
	concurrency  int
	quizInterval int
	enrichLogger zerolog.Logger
}

// NewEnrichmentService creates a new EnrichmentService.
func NewEnrichmentService(catalog provider.VideoCatalogProvider, transcripts provider.TranscriptProvider, gen GenerationService, cfg *config.Config, logger zerolog.Logger) EnrichmentService {
	return &enrichmentService{
		catalog:      catalog,
		transcripts:  transcripts,
		gen:          gen,
		pageSize:     cfg.PlaylistPageSize,
		concurrency:  cfg.EnrichmentConcurrency,
		quizInterval: cfg.EmbeddedQuizInterval,
		enrichLogger: logger.With().Str("service", "EnrichmentService").Logger(),
	}
}

func (s *enrichmentService) BuildLectures(ctx context.Context, topic string) ([]model.LectureDraft, error) {
	items := s.resolvePlaylist(ctx, topic)
	if len(items) == 0 {
		s.enrichLogger.Warn().Str("topic", topic).Msg("No playlist videos found, course will have no lectures")
		return []model.LectureDraft{}, nil
	}

	durations, err := s.catalog.VideoDurations(ctx, videoIDs(items))
	if err != nil {
		s.enrichLogger.Warn().Err(err).Str("topic", topic).Msg("Failed to fetch video durations")
		durations = map[string]string{}
	}

	drafts := make([]model.LectureDraft, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, item := range items {
		g.Go(func() error {
			drafts[i] = s.enrich(gctx, i, len(items), item, durations[item.VideoID])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to enrich lectures for %q: %w", topic, err)
	}
	return drafts, nil
}

// resolvePlaylist searches for "{topic} playlist" and pages through the
// first result. Catalog failures degrade to an empty lecture list
// rather than failing course generation.
func (s *enrichmentService) resolvePlaylist(ctx context.Context, topic string) []provider.PlaylistItem {
	playlists, err := s.catalog.SearchPlaylists(ctx, topic+" playlist")
	if err != nil {
		s.enrichLogger.Warn().Err(err).Str("topic", topic).Msg("Playlist search failed")
		return nil
	}
	if len(playlists) == 0 {
		return nil
	}

	chosen := playlists[0]
	s.enrichLogger.Info().Str("playlistId", chosen.ID).Str("playlistTitle", chosen.Title).Msg("Resolved playlist")

	var items []provider.PlaylistItem
	pageToken := ""
	for {
		page, next, err := s.catalog.ListPlaylistItems(ctx, chosen.ID, pageToken, s.pageSize)
		if err != nil {
			s.enrichLogger.Warn().Err(err).Str("playlistId", chosen.ID).Msg("Listing playlist failed")
			return nil
		}
		items = append(items, page...)
		if next == "" {
			break
		}
		pageToken = next
	}
	return items
}

// enrich builds the draft for one video. idx is the zero-based playlist
// position; the returned draft carries the 1-based order.
func (s *enrichmentService) enrich(ctx context.Context, idx, total int, item provider.PlaylistItem, duration string) model.LectureDraft {
	draft := model.LectureDraft{
		Title:    item.Title,
		Duration: util.HumanDuration(duration),
		Position: idx + 1,
		Content: model.LectureContent{
			VideoID:  item.VideoID,
			VideoURL: videoURLPrefix + item.VideoID,
		},
	}

	transcript, ok := s.fetchTranscript(ctx, item.VideoID)
	draft.Content.Transcript = transcript
	draft.TranscriptMissing = !ok

	if s.wantsQuiz(idx, total) {
		questions, err := s.gen.GenerateEmbeddedQuiz(ctx, item.Title)
		if err != nil {
			s.enrichLogger.Warn().Err(err).Str("videoId", item.VideoID).Msg("Embedded quiz generation failed, continuing without")
		} else {
			draft.Content.EmbeddedQuiz = questions
		}
	}
	return draft
}

func (s *enrichmentService) fetchTranscript(ctx context.Context, videoID string) (string, bool) {
	segments, err := s.transcripts.GetTranscript(ctx, videoID)
	if err != nil {
		s.enrichLogger.Warn().Err(err).Str("videoId", videoID).Msg("Transcript fetch failed")
		return transcriptUnavailable, false
	}
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return transcriptUnavailable, false
	}
	return strings.Join(parts, " "), true
}

// wantsQuiz marks every quizInterval-th video and the last one.
func (s *enrichmentService) wantsQuiz(idx, total int) bool {
	if idx == total-1 {
		return true
	}
	return s.quizInterval > 0 && (idx+1)%s.quizInterval == 0
}

func videoIDs(items []provider.PlaylistItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.VideoID
	}
	return ids
}
