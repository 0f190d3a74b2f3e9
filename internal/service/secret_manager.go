package service

import (
	"context"
	"fmt"

	"app/internal/config"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/rs/zerolog"
)

// SecretManagerService loads provider API keys from Google Secret
// Manager so that production deployments don't carry them in the
// environment.
type SecretManagerService interface {
	// ResolveProviderKeys fills empty provider keys on cfg from Secret
	// Manager. Keys already set in the environment win.
	ResolveProviderKeys(ctx context.Context, cfg *config.Config) error
	Close() error
}

type secretManagerService struct {
	client       *secretmanager.Client
	projectID    string
	secretLogger zerolog.Logger
}

// NewSecretManagerService creates a new SecretManagerService.
func NewSecretManagerService(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (SecretManagerService, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP project ID is not set")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}

	return &secretManagerService{
		client:       client,
		projectID:    cfg.GCPProjectID,
		secretLogger: logger.With().Str("service", "SecretManagerService").Logger(),
	}, nil
}

func (s *secretManagerService) ResolveProviderKeys(ctx context.Context, cfg *config.Config) error {
	targets := []struct {
		name string
		dst  *string
	}{
		{"gemini-api-key", &cfg.GeminiAPIKey},
		{"youtube-api-key", &cfg.YouTubeAPIKey},
		{"tavily-api-key", &cfg.TavilyAPIKey},
	}

	for _, t := range targets {
		if *t.dst != "" {
			continue
		}
		value, err := s.access(ctx, t.name)
		if err != nil {
			return fmt.Errorf("failed to resolve secret %s: %w", t.name, err)
		}
		*t.dst = value
		s.secretLogger.Info().Str("secret", t.name).Msg("Loaded provider key from Secret Manager")
	}
	return nil
}

func (s *secretManagerService) access(ctx context.Context, name string) (string, error) {
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, name),
	})
	if err != nil {
		return "", err
	}
	return string(result.Payload.Data), nil
}

func (s *secretManagerService) Close() error {
	return s.client.Close()
}
