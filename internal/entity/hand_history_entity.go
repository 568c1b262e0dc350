package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// HandHistory stores one analyzed hand. Snapshot, evaluation and conversation
// are opaque blobs produced by the client and the analysis model; this service
// never interprets them.
type HandHistory struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	HandId       string
	Title        string
	Snapshot     json.RawMessage
	Evaluation   json.RawMessage
	Conversation json.RawMessage
	Markdown     string
	CreatedAt    time.Time
}
