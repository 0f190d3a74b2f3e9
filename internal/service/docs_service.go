package service

import (
	"context"
	"fmt"
	"strings"

	"app/internal/config"
	"app/internal/model"
	"app/internal/provider"

	"github.com/rs/zerolog"
)

// DocumentationService aggregates external documentation links into
// course documentation drafts.
type DocumentationService interface {
	// SearchDocumentation never fails: when the search provider errors
	// or returns nothing, a placeholder entry is produced so the course
	// always has a documentation section. It is safe to run concurrently
	// with the rest of the pipeline.
	SearchDocumentation(ctx context.Context, topic string) []model.DocumentationDraft
	// MergeSeed prepends a guidelines section built from the generated
	// seed text and renumbers positions. An empty seed returns the
	// sections unchanged.
	MergeSeed(topic, seed string, sections []model.DocumentationDraft) []model.DocumentationDraft
}

type documentationService struct {
	search     provider.WebSearchProvider
	maxResults int
	docsLogger zerolog.Logger
}

// NewDocumentationService creates a new DocumentationService.
func NewDocumentationService(search provider.WebSearchProvider, cfg *config.Config, logger zerolog.Logger) DocumentationService {
	return &documentationService{
		search:     search,
		maxResults: cfg.DocsMaxResults,
		docsLogger: logger.With().Str("service", "DocumentationService").Logger(),
	}
}

func (s *documentationService) SearchDocumentation(ctx context.Context, topic string) []model.DocumentationDraft {
	results, err := s.search.Search(ctx, "Documentation on "+topic, s.maxResults)
	if err != nil {
		s.docsLogger.Warn().Err(err).Str("topic", topic).Msg("Documentation search failed, using placeholder")
		results = nil
	}

	if len(results) == 0 {
		return []model.DocumentationDraft{placeholderDocumentation(topic, 1)}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Documentation on %s\n\n", topic)
	for _, r := range results {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = r.URL
		}
		fmt.Fprintf(&b, "## [%s](%s)\n\n", title, r.URL)
		if content := strings.TrimSpace(r.Content); content != "" {
			b.WriteString(content)
			b.WriteString("\n\n")
		}
	}

	return []model.DocumentationDraft{{
		Title:    fmt.Sprintf("%s Reference Material", topic),
		Category: model.CategoryReference,
		Position: 1,
		Content:  strings.TrimSpace(b.String()),
	}}
}

func (s *documentationService) MergeSeed(topic, seed string, sections []model.DocumentationDraft) []model.DocumentationDraft {
	if strings.TrimSpace(seed) == "" {
		return sections
	}
	drafts := make([]model.DocumentationDraft, 0, len(sections)+1)
	drafts = append(drafts, model.DocumentationDraft{
		Title:    fmt.Sprintf("Getting Started with %s", topic),
		Category: model.CategoryGuidelines,
		Content:  seed,
	})
	drafts = append(drafts, sections...)
	for i := range drafts {
		drafts[i].Position = i + 1
	}
	return drafts
}

func placeholderDocumentation(topic string, position int) model.DocumentationDraft {
	return model.DocumentationDraft{
		Title:    fmt.Sprintf("%s Reference Material", topic),
		Category: model.CategoryReference,
		Position: position,
		Content:  fmt.Sprintf("Documentation for %s could not be retrieved at this time. Please check back later.", topic),
	}
}
