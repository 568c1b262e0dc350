package contract

import (
	"context"
	"encoding/json"

	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/repository/specification"

	"github.com/google/uuid"
)

type HandHistoryRepository interface {
	Create(ctx context.Context, history *entity.HandHistory) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.HandHistory, error)
	// FindAllSummaries returns the list projection (no snapshot/conversation
	// payloads) ordered newest first.
	FindAllSummaries(ctx context.Context, userId uuid.UUID) ([]*entity.HandHistory, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) (int64, error)
	UpdateConversation(ctx context.Context, id uuid.UUID, conversation json.RawMessage) (int64, error)
	DeleteAllByUser(ctx context.Context, userId uuid.UUID) (int64, error)
}
