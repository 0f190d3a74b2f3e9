package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port               string `envconfig:"PORT" default:"8080"`
	Environment        string `envconfig:"ENV" default:"development"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	JWTSecret          string `envconfig:"JWT_SECRET" required:"true"`
	AllowedOrigins     string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173"`

	// Generative provider settings
	GeminiAPIKey     string  `envconfig:"GEMINI_API_KEY"`
	GeminiModel      string  `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	GeminiMaxTokens  int     `envconfig:"GEMINI_MAX_OUTPUT_TOKENS" default:"4000"`
	GeminiTemp       float64 `envconfig:"GEMINI_TEMPERATURE" default:"0.7"`
	GenMaxAttempts   int     `envconfig:"GENERATION_MAX_ATTEMPTS" default:"3"`
	GenBaseDelaySec  int     `envconfig:"GENERATION_BASE_DELAY_SEC" default:"5"`
	QuizQuestionGoal int     `envconfig:"QUIZ_QUESTION_GOAL" default:"15"`

	// Video catalog / transcript settings
	YouTubeAPIKey         string `envconfig:"YOUTUBE_API_KEY"`
	TranscriptServiceURL  string `envconfig:"TRANSCRIPT_SERVICE_URL"`
	PlaylistPageSize      int64  `envconfig:"PLAYLIST_PAGE_SIZE" default:"25"`
	EnrichmentConcurrency int    `envconfig:"ENRICHMENT_CONCURRENCY" default:"4"`
	EmbeddedQuizInterval  int    `envconfig:"EMBEDDED_QUIZ_INTERVAL" default:"10"`

	// Web search settings
	TavilyAPIKey   string `envconfig:"TAVILY_API_KEY"`
	DocsMaxResults int    `envconfig:"DOCS_MAX_RESULTS" default:"5"`

	// GCP settings
	GCPProjectID      string `envconfig:"GCP_PROJECT_ID"`
	CourseEventsTopic string `envconfig:"COURSE_EVENTS_TOPIC" default:"course-events"`
	UseSecretManager  bool   `envconfig:"USE_SECRET_MANAGER" default:"false"`

	// S3 artifact archive (raw generative responses)
	S3URL       string `envconfig:"S3_URL"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`

	// Transcript backfill orchestrator settings
	TranscriptQueueName           string `envconfig:"TRANSCRIPT_QUEUE_NAME" default:"transcript_backfill"`
	TranscriptPollTimeoutSec      int    `envconfig:"TRANSCRIPT_POLL_TIMEOUT_SEC" default:"30"`
	TranscriptPollMaxMsg          int    `envconfig:"TRANSCRIPT_POLL_MAX_MSG" default:"1"`
	TranscriptMaxRetries          int    `envconfig:"TRANSCRIPT_MAX_RETRIES" default:"5"`
	TranscriptBackoffInitialSec   int    `envconfig:"TRANSCRIPT_BACKOFF_INITIAL_SEC" default:"1"`
	TranscriptBackoffMaxSec       int    `envconfig:"TRANSCRIPT_BACKOFF_MAX_SEC" default:"60"`
	TranscriptDeadLetterQueueName string `envconfig:"TRANSCRIPT_DEAD_LETTER_QUEUE_NAME" default:"transcript_backfill_dlq"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
