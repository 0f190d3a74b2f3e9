package model

import "time"

// DeadLetterMessage is a failed background job (transcript backfill or a
// Pub/Sub push that exhausted delivery) persisted for manual inspection.
type DeadLetterMessage struct {
	ID         string    `db:"id"`
	Source     string    `db:"source"` // queue or subscription the message came from
	MessageID  string    `db:"message_id"`
	Payload    string    `db:"payload"`    // JSON string
	Attributes *string   `db:"attributes"` // nullable JSON string
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
