// Package transcripts backfills lecture transcripts that could not be
// fetched during course generation.
package transcripts

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/model"
	"app/internal/pgmq"
	"app/internal/provider"
	"app/internal/repository"
	"app/internal/service"

	"github.com/rs/zerolog"
)

// Run starts the transcript backfill orchestrator. It drains the
// backfill queue one message at a time until the context is cancelled.
func Run(ctx context.Context, logger zerolog.Logger, client *pgmq.Client, db *sql.DB) error {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config in transcript orchestrator: %v", err)
	}
	queue := cfg.TranscriptQueueName
	dlq := cfg.TranscriptDeadLetterQueueName

	courseRepo := repository.NewCourseRepo(db)
	dlqSvc := service.NewDLQService(repository.NewDLQRepository(db))
	transcripts := provider.NewTranscriptClient(cfg.TranscriptServiceURL)

	logger.Info().Str("queue", queue).Msg("Starting transcript orchestrator")
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Shutting down transcript orchestrator")
			return nil
		default:
		}

		msgs, err := client.ReadWithPoll(ctx, queue, cfg.TranscriptPollTimeoutSec, cfg.TranscriptPollMaxMsg)
		if err != nil {
			logger.Error().Err(err).Msg("Error reading transcript queue")
			time.Sleep(time.Second)
			continue
		}
		if len(msgs) == 0 {
			continue
		}

		msg := msgs[0]
		logger.Info().Int64("msg_id", msg.ID).Msgf("Received transcript job: %s", string(msg.Data))

		var job service.BackfillJob
		if err := json.Unmarshal(msg.Data, &job); err != nil {
			logger.Error().Err(err).Msg("Failed to unmarshal transcript payload; deleting message")
			client.Delete(ctx, queue, []int64{msg.ID})
			continue
		}

		transcript, fetchErr := fetchWithBackoff(ctx, logger, transcripts, cfg, job.VideoID)
		if fetchErr != nil {
			// Keep a copy in both the pgmq DLQ and the dead letter table
			// so the job can be replayed later.
			if err := client.Send(ctx, dlq, msg.Data); err != nil {
				logger.Error().Err(err).Str("dlq", dlq).Msg("Failed to send message to dead-letter queue")
			}
			if err := dlqSvc.RecordFailure(ctx, queue, strconv.FormatInt(msg.ID, 10), msg.Data, fetchErr.Error()); err != nil {
				logger.Error().Err(err).Msg("Failed to record dead letter message")
			}
			if err := client.Delete(ctx, queue, []int64{msg.ID}); err != nil {
				logger.Error().Err(err).Msg("Error deleting transcript message after failure")
			}
			logger.Warn().
				Int("attempts", cfg.TranscriptMaxRetries).
				Str("lecture_id", job.LectureID).
				Err(fetchErr).
				Msg("Exhausted all transcript retries; moving job to DLQ")
			continue
		}

		if err := applyTranscript(ctx, courseRepo, job.LectureID, transcript); err != nil {
			logger.Error().Err(err).Str("lecture_id", job.LectureID).Msg("Failed to store transcript; will retry")
			time.Sleep(time.Second)
			continue
		}

		if err := client.Delete(ctx, queue, []int64{msg.ID}); err != nil {
			logger.Error().Err(err).Msg("Error deleting transcript message")
		}
		logger.Info().Str("lecture_id", job.LectureID).Msg("Transcript backfilled")
	}
}

// fetchWithBackoff retries the transcript service with exponential
// backoff capped at the configured maximum.
func fetchWithBackoff(ctx context.Context, logger zerolog.Logger, transcripts provider.TranscriptProvider, cfg *config.Config, videoID string) (string, error) {
	backoff := time.Duration(cfg.TranscriptBackoffInitialSec) * time.Second
	var lastErr error
	for attempt := 1; attempt <= cfg.TranscriptMaxRetries; attempt++ {
		segments, err := transcripts.GetTranscript(ctx, videoID)
		if err == nil {
			if transcript := joinSegments(segments); transcript != "" {
				return transcript, nil
			}
			err = &emptyTranscriptError{videoID: videoID}
		}
		lastErr = err
		logger.Error().Err(err).Int("attempt", attempt).Str("video_id", videoID).Msg("Transcript fetch failed, retrying")

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if maxBackoff := time.Duration(cfg.TranscriptBackoffMaxSec) * time.Second; backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
	return "", lastErr
}

// applyTranscript merges the transcript into the lecture's content blob.
func applyTranscript(ctx context.Context, courseRepo repository.CourseRepository, lectureID, transcript string) error {
	raw, err := courseRepo.GetLectureContent(ctx, lectureID)
	if err != nil {
		return err
	}
	content, err := model.DecodeLectureContent(raw)
	if err != nil {
		return err
	}
	content.Transcript = transcript
	updated, err := content.Encode()
	if err != nil {
		return err
	}
	return courseRepo.UpdateLectureContent(ctx, lectureID, updated)
}

func joinSegments(segments []provider.TranscriptSegment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

type emptyTranscriptError struct {
	videoID string
}

func (e *emptyTranscriptError) Error() string {
	return "empty transcript for video " + e.videoID
}
