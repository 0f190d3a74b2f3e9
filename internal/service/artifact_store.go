package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	appconfig "app/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ArtifactStore archives raw provider responses so that malformed or
// surprising output can be inspected after the fact.
type ArtifactStore interface {
	// StoreRawResponse persists the raw payload and returns the object
	// key it was stored under.
	StoreRawResponse(ctx context.Context, topic string, raw []byte) (string, error)
}

type s3ArtifactStore struct {
	client   *s3.Client
	bucket   string
	s3Logger zerolog.Logger
}

// NewS3ArtifactStore creates an ArtifactStore backed by an S3-compatible
// bucket. A custom endpoint (MinIO and friends) is honored when set.
func NewS3ArtifactStore(ctx context.Context, cfg *appconfig.Config, logger zerolog.Logger) (ArtifactStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3URL != "" {
			o.BaseEndpoint = aws.String(cfg.S3URL)
			o.UsePathStyle = true
		}
	})

	return &s3ArtifactStore{
		client:   client,
		bucket:   cfg.S3Bucket,
		s3Logger: logger.With().Str("service", "ArtifactStore").Logger(),
	}, nil
}

func (s *s3ArtifactStore) StoreRawResponse(ctx context.Context, topic string, raw []byte) (string, error) {
	key := fmt.Sprintf("raw-responses/%s/%s/%s.txt",
		slugify(topic), time.Now().UTC().Format("2006-01-02"), uuid.NewString())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store raw response: %w", err)
	}

	s.s3Logger.Debug().Str("bucket", s.bucket).Str("key", key).Msg("Stored raw response")
	return key, nil
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "topic"
	}
	return b.String()
}

// removeDisableGzip is a workaround for S3 signature errors with some
// S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}

// NopArtifactStore discards payloads. Used when no bucket is configured.
type NopArtifactStore struct{}

func (NopArtifactStore) StoreRawResponse(ctx context.Context, topic string, raw []byte) (string, error) {
	return "", nil
}
