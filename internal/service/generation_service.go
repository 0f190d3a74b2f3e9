package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"app/internal/apperr"
	"app/internal/config"
	"app/internal/model"
	"app/internal/provider"
	"app/internal/retry"
	"app/internal/util"

	"github.com/rs/zerolog"
)

// Fallback used when the provider omits a question explanation.
const defaultExplanation = "No explanation provided."

const embeddedQuizSize = 5

// CourseContent is the primary generation output: metadata, the course
// quiz and a documentation seed paragraph.
type CourseContent struct {
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Quiz              model.QuizDraft `json:"quiz"`
	DocumentationSeed string          `json:"documentationSeed"`
}

// GenerationService talks to the generative-text provider and converts
// its loosely-typed output into validated drafts.
type GenerationService interface {
	// GenerateCourseContent produces course metadata, one quiz and a
	// documentation seed in a single provider call. A degraded quiz
	// (fewer valid questions than requested, or none) is not an error.
	GenerateCourseContent(ctx context.Context, topic string) (*CourseContent, error)
	// GenerateEmbeddedQuiz produces a small per-lecture quiz from the
	// video title. Failures are returned to the caller, which degrades
	// the lecture rather than the request.
	GenerateEmbeddedQuiz(ctx context.Context, videoTitle string) ([]model.QuestionDraft, error)
}

type generationService struct {
	gen       provider.GenerativeTextProvider
	artifacts ArtifactStore
	policy    retry.Policy
	maxTokens int
	temp      float64
	quizGoal  int
	genLogger zerolog.Logger
}

// NewGenerationService creates a new GenerationService.
func NewGenerationService(gen provider.GenerativeTextProvider, artifacts ArtifactStore, cfg *config.Config, logger zerolog.Logger) GenerationService {
	return &generationService{
		gen:       gen,
		artifacts: artifacts,
		policy: retry.Policy{
			MaxAttempts: cfg.GenMaxAttempts,
			BaseDelay:   time.Duration(cfg.GenBaseDelaySec) * time.Second,
			IsTransient: apperr.IsTransient,
			IsFatal:     apperr.IsRateLimit,
		},
		maxTokens: cfg.GeminiMaxTokens,
		temp:      cfg.GeminiTemp,
		quizGoal:  cfg.QuizQuestionGoal,
		genLogger: logger.With().Str("service", "GenerationService").Logger(),
	}
}

func (s *generationService) GenerateCourseContent(ctx context.Context, topic string) (*CourseContent, error) {
	prompt := fmt.Sprintf(`Generate course content for the topic: %q. Include:
- Course metadata (title, description)
- 1 quiz with %d hard multiple-choice questions (question, exactly 4 options, correctAnswer index, explanation)
- a documentationSeed: one Markdown paragraph introducing the topic's official documentation
Return exactly one raw JSON object without Markdown, backticks, or code fences:
{
  "title": "Course Title",
  "description": "Course Description",
  "quiz": {
    "title": "Quiz Title",
    "questions": [
      {"question": "Question text", "options": ["Option 1", "Option 2", "Option 3", "Option 4"], "correctAnswer": 0, "explanation": "Explanation here"}
    ]
  },
  "documentationSeed": "..."
}`, topic, s.quizGoal)

	raw, err := retry.Do(ctx, s.genLogger, s.policy, func(ctx context.Context) (string, error) {
		return s.gen.Complete(ctx, prompt, s.maxTokens, s.temp)
	})
	if err != nil {
		return nil, fmt.Errorf("primary generation for %q: %w", topic, err)
	}
	s.archive(ctx, topic, raw)

	cleaned, err := util.ExtractJSONObject(raw)
	if err != nil {
		s.genLogger.Error().Err(err).Str("topic", topic).Msg("Primary generation output failed sanitization")
		return nil, err
	}

	var content CourseContent
	if err := json.Unmarshal(cleaned, &content); err != nil {
		return nil, &apperr.MalformedOutputError{Snippet: previewOf(cleaned), Err: err}
	}

	kept := sanitizeQuestions(content.Quiz.Questions)
	if dropped := len(content.Quiz.Questions) - len(kept); dropped > 0 {
		s.genLogger.Warn().Int("dropped", dropped).Str("topic", topic).Msg("Dropped malformed quiz questions")
	}
	content.Quiz.Questions = kept
	if content.Quiz.Title == "" {
		content.Quiz.Title = fmt.Sprintf("%s Fundamentals Quiz", topic)
	}
	if content.Title == "" {
		content.Title = fmt.Sprintf("Complete %s Course", topic)
	}
	if content.Description == "" {
		content.Description = fmt.Sprintf("A comprehensive course on %s.", topic)
	}
	return &content, nil
}

func (s *generationService) GenerateEmbeddedQuiz(ctx context.Context, videoTitle string) ([]model.QuestionDraft, error) {
	prompt := fmt.Sprintf(`Generate a short knowledge check for a lecture video titled %q.
Return exactly one raw JSON object without Markdown, backticks, or code fences:
{"questions": [{"question": "...", "options": ["...", "...", "...", "..."], "correctAnswer": 0, "explanation": "..."}]}
Include %d multiple-choice questions with exactly 4 options each.`, videoTitle, embeddedQuizSize)

	raw, err := retry.Do(ctx, s.genLogger, s.policy, func(ctx context.Context) (string, error) {
		return s.gen.Complete(ctx, prompt, 1500, s.temp)
	})
	if err != nil {
		return nil, fmt.Errorf("embedded quiz generation for %q: %w", videoTitle, err)
	}

	cleaned, err := util.ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Questions []model.QuestionDraft `json:"questions"`
	}
	if err := json.Unmarshal(cleaned, &payload); err != nil {
		return nil, &apperr.MalformedOutputError{Snippet: previewOf(cleaned), Err: err}
	}
	return sanitizeQuestions(payload.Questions), nil
}

// archive stores the raw provider response for post-hoc diagnosis.
// Failures only log; archiving never blocks generation.
func (s *generationService) archive(ctx context.Context, topic, raw string) {
	key, err := s.artifacts.StoreRawResponse(ctx, topic, []byte(raw))
	if err != nil {
		s.genLogger.Warn().Err(err).Str("topic", topic).Msg("Failed to archive raw generation response")
		return
	}
	if key != "" {
		s.genLogger.Debug().Str("key", key).Msg("Archived raw generation response")
	}
}

// sanitizeQuestions keeps only questions with a non-empty text, exactly
// 4 non-empty options and an in-range answer index. Malformed questions
// are dropped, never coerced; a missing explanation gets a fixed
// fallback.
func sanitizeQuestions(qs []model.QuestionDraft) []model.QuestionDraft {
	kept := make([]model.QuestionDraft, 0, len(qs))
	for _, q := range qs {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		if len(q.Options) != 4 {
			continue
		}
		valid := true
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			continue
		}
		if strings.TrimSpace(q.Explanation) == "" {
			q.Explanation = defaultExplanation
		}
		kept = append(kept, q)
	}
	return kept
}

func previewOf(b []byte) string {
	const max = 200
	s := string(b)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
