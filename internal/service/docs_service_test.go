package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"app/internal/config"
	"app/internal/model"
	"app/internal/provider"

	"github.com/rs/zerolog"
)

type fakeSearch struct {
	results []provider.SearchResult
	err     error
	queries []string
}

func (f *fakeSearch) Search(ctx context.Context, query string, maxResults int) ([]provider.SearchResult, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func TestSearchDocumentationWithResults(t *testing.T) {
	search := &fakeSearch{results: []provider.SearchResult{
		{Title: "Go Docs", URL: "https://go.dev/doc", Content: "Official documentation."},
		{Title: "Effective Go", URL: "https://go.dev/doc/effective_go", Content: "Style guide."},
	}}
	svc := NewDocumentationService(search, &config.Config{DocsMaxResults: 5}, zerolog.Nop())

	drafts := svc.SearchDocumentation(context.Background(), "Go")
	if len(drafts) != 1 {
		t.Fatalf("expected a single reference draft, got %d", len(drafts))
	}
	if drafts[0].Category != model.CategoryReference || drafts[0].Position != 1 {
		t.Errorf("reference draft wrong: %+v", drafts[0])
	}
	if !strings.Contains(drafts[0].Content, "[Go Docs](https://go.dev/doc)") {
		t.Errorf("reference content missing link: %q", drafts[0].Content)
	}
	if len(search.queries) != 1 || search.queries[0] != "Documentation on Go" {
		t.Errorf("unexpected search queries: %v", search.queries)
	}
}

func TestSearchDocumentationFailure(t *testing.T) {
	search := &fakeSearch{err: errors.New("tavily down")}
	svc := NewDocumentationService(search, &config.Config{DocsMaxResults: 5}, zerolog.Nop())

	drafts := svc.SearchDocumentation(context.Background(), "Go")
	if len(drafts) != 1 {
		t.Fatalf("expected a single placeholder draft, got %d", len(drafts))
	}
	if !strings.Contains(drafts[0].Content, "could not be retrieved") {
		t.Errorf("placeholder content wrong: %q", drafts[0].Content)
	}
	if drafts[0].Category != model.CategoryReference {
		t.Errorf("placeholder category wrong: %q", drafts[0].Category)
	}
}

func TestMergeSeedPrependsGuidelines(t *testing.T) {
	svc := NewDocumentationService(&fakeSearch{}, &config.Config{DocsMaxResults: 5}, zerolog.Nop())

	sections := svc.SearchDocumentation(context.Background(), "Go")
	drafts := svc.MergeSeed("Go", "Start at go.dev.", sections)
	if len(drafts) != 2 {
		t.Fatalf("expected seed + placeholder, got %d", len(drafts))
	}
	if drafts[0].Category != model.CategoryGuidelines || drafts[0].Position != 1 {
		t.Errorf("seed draft wrong: %+v", drafts[0])
	}
	if drafts[0].Content != "Start at go.dev." {
		t.Errorf("seed content wrong: %q", drafts[0].Content)
	}
	if drafts[1].Category != model.CategoryReference || drafts[1].Position != 2 {
		t.Errorf("reference draft not renumbered: %+v", drafts[1])
	}
}

func TestMergeSeedEmptySeed(t *testing.T) {
	svc := NewDocumentationService(&fakeSearch{}, &config.Config{DocsMaxResults: 5}, zerolog.Nop())

	sections := []model.DocumentationDraft{{Title: "Ref", Category: model.CategoryReference, Position: 1}}
	drafts := svc.MergeSeed("Go", "  ", sections)
	if len(drafts) != 1 || drafts[0].Title != "Ref" {
		t.Errorf("blank seed should leave sections unchanged: %+v", drafts)
	}
}
