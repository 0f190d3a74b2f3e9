package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"app/internal/api/v1/dto"
	"app/internal/model"
	"app/internal/repository"
)

// DLQService records failed background work so it can be inspected and
// replayed by hand.
type DLQService interface {
	// ProcessPush stores a dead-lettered Pub/Sub push delivery.
	ProcessPush(ctx context.Context, req *dto.PubSubPushRequest) error
	// RecordFailure stores a background job that exhausted its retries.
	RecordFailure(ctx context.Context, source, messageID string, payload []byte, reason string) error
}

type dlqService struct {
	repo repository.DLQRepository
}

// NewDLQService creates a new DLQService.
func NewDLQService(repo repository.DLQRepository) DLQService {
	return &dlqService{repo: repo}
}

func (s *dlqService) ProcessPush(ctx context.Context, req *dto.PubSubPushRequest) error {
	decodedPayload, err := base64.StdEncoding.DecodeString(req.Message.Data)
	if err != nil {
		// Undecodable data is stored raw rather than dropped.
		decodedPayload = []byte(req.Message.Data)
	}

	var attributesJSON *string
	if len(req.Message.Attributes) > 0 {
		attrBytes, err := json.Marshal(req.Message.Attributes)
		if err == nil {
			attrStr := string(attrBytes)
			attributesJSON = &attrStr
		}
	}

	return s.repo.Create(ctx, &model.DeadLetterMessage{
		Source:     req.Subscription,
		MessageID:  req.Message.MessageID,
		Payload:    string(decodedPayload),
		Attributes: attributesJSON,
		Status:     "unprocessed",
	})
}

func (s *dlqService) RecordFailure(ctx context.Context, source, messageID string, payload []byte, reason string) error {
	attrBytes, err := json.Marshal(map[string]string{"reason": reason})
	if err != nil {
		return fmt.Errorf("marshaling failure reason: %w", err)
	}
	attrStr := string(attrBytes)

	return s.repo.Create(ctx, &model.DeadLetterMessage{
		Source:     source,
		MessageID:  messageID,
		Payload:    string(payload),
		Attributes: &attrStr,
		Status:     "unprocessed",
	})
}
