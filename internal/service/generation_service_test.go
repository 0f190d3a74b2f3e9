package service

import (
	"context"
	"errors"
	"testing"

	"app/internal/apperr"
	"app/internal/config"

	"github.com/rs/zerolog"
)

type fakeTextProvider struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (f *fakeTextProvider) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	f.prompts = append(f.prompts, prompt)
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return f.responses[len(f.responses)-1], nil
}

type recordingArtifactStore struct {
	topics []string
	raws   [][]byte
}

func (r *recordingArtifactStore) StoreRawResponse(ctx context.Context, topic string, raw []byte) (string, error) {
	r.topics = append(r.topics, topic)
	r.raws = append(r.raws, raw)
	return "key", nil
}

func genTestConfig() *config.Config {
	return &config.Config{
		GenMaxAttempts:   3,
		GenBaseDelaySec:  0,
		GeminiMaxTokens:  4000,
		GeminiTemp:       0.7,
		QuizQuestionGoal: 15,
	}
}

const validCourseJSON = "```json\n" + `{
  "title": "Complete Go Course",
  "description": "Learn Go from scratch.",
  "quiz": {
    "title": "Go Fundamentals Quiz",
    "questions": [
      {"question": "What is a goroutine?", "options": ["A thread", "A lightweight thread", "A process", "A channel"], "correctAnswer": 1, "explanation": "Goroutines are lightweight."},
      {"question": "Missing options", "options": ["only", "three", "options"], "correctAnswer": 0, "explanation": "x"},
      {"question": "Bad answer index", "options": ["a", "b", "c", "d"], "correctAnswer": 7, "explanation": "x"},
      {"question": "", "options": ["a", "b", "c", "d"], "correctAnswer": 0, "explanation": "x"},
      {"question": "No explanation", "options": ["a", "b", "c", "d"], "correctAnswer": 2, "explanation": ""}
    ]
  },
  "documentationSeed": "The official docs live at go.dev."
}` + "\n```"

func TestGenerateCourseContentFiltersMalformedQuestions(t *testing.T) {
	provider := &fakeTextProvider{responses: []string{validCourseJSON}}
	store := &recordingArtifactStore{}
	svc := NewGenerationService(provider, store, genTestConfig(), zerolog.Nop())

	content, err := svc.GenerateCourseContent(context.Background(), "Go")
	if err != nil {
		t.Fatalf("GenerateCourseContent returned error: %v", err)
	}
	if content.Title != "Complete Go Course" {
		t.Errorf("unexpected title %q", content.Title)
	}
	if got := len(content.Quiz.Questions); got != 2 {
		t.Fatalf("expected 2 valid questions, got %d", got)
	}
	if content.Quiz.Questions[0].Explanation != "Goroutines are lightweight." {
		t.Errorf("explanation was rewritten: %q", content.Quiz.Questions[0].Explanation)
	}
	if content.Quiz.Questions[1].Explanation != defaultExplanation {
		t.Errorf("expected fallback explanation, got %q", content.Quiz.Questions[1].Explanation)
	}
	if content.DocumentationSeed == "" {
		t.Error("documentation seed was dropped")
	}
	if len(store.topics) != 1 || store.topics[0] != "Go" {
		t.Errorf("raw response was not archived: %v", store.topics)
	}
}

func TestGenerateCourseContentMalformedJSON(t *testing.T) {
	provider := &fakeTextProvider{responses: []string{"I am sorry, I cannot do that."}}
	svc := NewGenerationService(provider, NopArtifactStore{}, genTestConfig(), zerolog.Nop())

	_, err := svc.GenerateCourseContent(context.Background(), "Go")
	var malformed *apperr.MalformedOutputError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedOutputError, got %v", err)
	}
}

func TestGenerateCourseContentRateLimitIsFatal(t *testing.T) {
	provider := &fakeTextProvider{
		errs:      []error{&apperr.RateLimitError{Provider: "gemini"}},
		responses: []string{validCourseJSON},
	}
	svc := NewGenerationService(provider, NopArtifactStore{}, genTestConfig(), zerolog.Nop())

	_, err := svc.GenerateCourseContent(context.Background(), "Go")
	if !apperr.IsRateLimit(err) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("rate limit should not be retried, got %d calls", provider.calls)
	}
}

func TestGenerateCourseContentRetriesTransient(t *testing.T) {
	provider := &fakeTextProvider{
		errs:      []error{&apperr.TransientError{Err: errors.New("503")}, nil},
		responses: []string{"", validCourseJSON},
	}
	svc := NewGenerationService(provider, NopArtifactStore{}, genTestConfig(), zerolog.Nop())

	content, err := svc.GenerateCourseContent(context.Background(), "Go")
	if err != nil {
		t.Fatalf("expected recovery after transient error, got %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("expected 2 calls, got %d", provider.calls)
	}
	if content.Title == "" {
		t.Error("content missing after retry")
	}
}

func TestGenerateEmbeddedQuiz(t *testing.T) {
	provider := &fakeTextProvider{responses: []string{`{
		"questions": [
			{"question": "Q1", "options": ["a", "b", "c", "d"], "correctAnswer": 0, "explanation": "because"},
			{"question": "Q2", "options": ["a", "b"], "correctAnswer": 0, "explanation": "short"}
		]
	}`}}
	svc := NewGenerationService(provider, NopArtifactStore{}, genTestConfig(), zerolog.Nop())

	questions, err := svc.GenerateEmbeddedQuiz(context.Background(), "Intro to Go")
	if err != nil {
		t.Fatalf("GenerateEmbeddedQuiz returned error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 valid question, got %d", len(questions))
	}
	if questions[0].Text != "Q1" {
		t.Errorf("unexpected question %q", questions[0].Text)
	}
}
