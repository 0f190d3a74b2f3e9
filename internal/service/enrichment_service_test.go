package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"app/internal/config"
	"app/internal/model"
	"app/internal/provider"

	"github.com/rs/zerolog"
)

type fakeCatalog struct {
	playlists []provider.PlaylistRef
	items     []provider.PlaylistItem
	durations map[string]string
	searchErr error
	pages     int
}

func (f *fakeCatalog) SearchPlaylists(ctx context.Context, query string) ([]provider.PlaylistRef, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.playlists, nil
}

func (f *fakeCatalog) ListPlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) ([]provider.PlaylistItem, string, error) {
	f.pages++
	start := 0
	if pageToken != "" {
		fmt.Sscanf(pageToken, "page-%d", &start)
	}
	end := start + int(pageSize)
	if end >= len(f.items) {
		return f.items[start:], "", nil
	}
	return f.items[start:end], fmt.Sprintf("page-%d", end), nil
}

func (f *fakeCatalog) VideoDurations(ctx context.Context, videoIDs []string) (map[string]string, error) {
	return f.durations, nil
}

type fakeTranscripts struct {
	segments map[string][]provider.TranscriptSegment
	errs     map[string]error
}

func (f *fakeTranscripts) GetTranscript(ctx context.Context, videoID string) ([]provider.TranscriptSegment, error) {
	if err := f.errs[videoID]; err != nil {
		return nil, err
	}
	return f.segments[videoID], nil
}

type fakeQuizGen struct {
	quizTitles []string
}

func (f *fakeQuizGen) GenerateCourseContent(ctx context.Context, topic string) (*CourseContent, error) {
	return nil, errors.New("not used")
}

func (f *fakeQuizGen) GenerateEmbeddedQuiz(ctx context.Context, videoTitle string) ([]model.QuestionDraft, error) {
	f.quizTitles = append(f.quizTitles, videoTitle)
	return []model.QuestionDraft{
		{Text: "Q about " + videoTitle, Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0, Explanation: "x"},
	}, nil
}

func enrichTestConfig() *config.Config {
	return &config.Config{
		PlaylistPageSize:      25,
		EnrichmentConcurrency: 4,
		EmbeddedQuizInterval:  10,
	}
}

func buildCatalog(n int) *fakeCatalog {
	catalog := &fakeCatalog{
		playlists: []provider.PlaylistRef{{ID: "PL1", Title: "Best Playlist"}},
		durations: map[string]string{},
	}
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("vid%02d", i)
		catalog.items = append(catalog.items, provider.PlaylistItem{VideoID: id, Title: fmt.Sprintf("Video %d", i)})
		catalog.durations[id] = "PT10M"
	}
	return catalog
}

func TestBuildLecturesOrderingAndQuizPlacement(t *testing.T) {
	catalog := buildCatalog(12)
	transcripts := &fakeTranscripts{segments: map[string][]provider.TranscriptSegment{}}
	for _, item := range catalog.items {
		transcripts.segments[item.VideoID] = []provider.TranscriptSegment{{Text: "hello from " + item.VideoID}}
	}
	gen := &fakeQuizGen{}

	svc := NewEnrichmentService(catalog, transcripts, gen, enrichTestConfig(), zerolog.Nop())
	drafts, err := svc.BuildLectures(context.Background(), "Go")
	if err != nil {
		t.Fatalf("BuildLectures returned error: %v", err)
	}
	if len(drafts) != 12 {
		t.Fatalf("expected 12 drafts, got %d", len(drafts))
	}

	for i, draft := range drafts {
		if draft.Position != i+1 {
			t.Errorf("draft %d has position %d", i, draft.Position)
		}
		wantID := fmt.Sprintf("vid%02d", i+1)
		if draft.Content.VideoID != wantID {
			t.Errorf("draft %d has video %s, want %s", i, draft.Content.VideoID, wantID)
		}
		if draft.Duration != "10m" {
			t.Errorf("draft %d has duration %q", i, draft.Duration)
		}
		if draft.TranscriptMissing {
			t.Errorf("draft %d unexpectedly flagged for backfill", i)
		}

		// Embedded quizzes go on every 10th video and the last one.
		wantQuiz := i == 9 || i == 11
		if (len(draft.Content.EmbeddedQuiz) > 0) != wantQuiz {
			t.Errorf("draft %d quiz presence = %v, want %v", i, len(draft.Content.EmbeddedQuiz) > 0, wantQuiz)
		}
	}
	if len(gen.quizTitles) != 2 {
		t.Errorf("expected 2 quiz generations, got %d", len(gen.quizTitles))
	}
}

func TestBuildLecturesTranscriptFallback(t *testing.T) {
	catalog := buildCatalog(3)
	transcripts := &fakeTranscripts{
		segments: map[string][]provider.TranscriptSegment{
			"vid01": {{Text: "first video transcript"}},
			"vid03": {{Text: "  "}}, // whitespace only counts as missing
		},
		errs: map[string]error{
			"vid02": errors.New("transcript service down"),
		},
	}

	svc := NewEnrichmentService(catalog, transcripts, &fakeQuizGen{}, enrichTestConfig(), zerolog.Nop())
	drafts, err := svc.BuildLectures(context.Background(), "Go")
	if err != nil {
		t.Fatalf("BuildLectures returned error: %v", err)
	}

	if drafts[0].TranscriptMissing || drafts[0].Content.Transcript != "first video transcript" {
		t.Errorf("draft 0 transcript wrong: %+v", drafts[0])
	}
	for _, i := range []int{1, 2} {
		if !drafts[i].TranscriptMissing {
			t.Errorf("draft %d should be flagged for backfill", i)
		}
		if drafts[i].Content.Transcript != transcriptUnavailable {
			t.Errorf("draft %d transcript = %q, want sentinel", i, drafts[i].Content.Transcript)
		}
	}
}

func TestBuildLecturesNoPlaylist(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := NewEnrichmentService(catalog, &fakeTranscripts{}, &fakeQuizGen{}, enrichTestConfig(), zerolog.Nop())

	drafts, err := svc.BuildLectures(context.Background(), "Something Obscure")
	if err != nil {
		t.Fatalf("missing playlist must not fail the build: %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("expected no lectures, got %d", len(drafts))
	}
}

func TestBuildLecturesSearchFailure(t *testing.T) {
	catalog := &fakeCatalog{searchErr: errors.New("catalog down")}
	svc := NewEnrichmentService(catalog, &fakeTranscripts{}, &fakeQuizGen{}, enrichTestConfig(), zerolog.Nop())

	drafts, err := svc.BuildLectures(context.Background(), "Go")
	if err != nil {
		t.Fatalf("catalog failure must not fail the build: %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("expected no lectures, got %d", len(drafts))
	}
}

func TestBuildLecturesPagesThroughPlaylist(t *testing.T) {
	catalog := buildCatalog(40)
	transcripts := &fakeTranscripts{segments: map[string][]provider.TranscriptSegment{}}

	svc := NewEnrichmentService(catalog, transcripts, &fakeQuizGen{}, enrichTestConfig(), zerolog.Nop())
	drafts, err := svc.BuildLectures(context.Background(), "Go")
	if err != nil {
		t.Fatalf("BuildLectures returned error: %v", err)
	}
	if len(drafts) != 40 {
		t.Errorf("expected all 40 lectures across pages, got %d", len(drafts))
	}
	if catalog.pages != 2 {
		t.Errorf("expected 2 page fetches, got %d", catalog.pages)
	}
	if drafts[39].Position != 40 {
		t.Errorf("last draft has position %d", drafts[39].Position)
	}
}
