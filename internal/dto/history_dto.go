package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SaveHistoryRequest struct {
	UserId       string          `json:"user_id" validate:"required,uuid"`
	HandId       string          `json:"hand_id" validate:"required"`
	Title        string          `json:"title"`
	Snapshot     json.RawMessage `json:"snapshot,omitempty"`
	Evaluation   json.RawMessage `json:"evaluation,omitempty"`
	Conversation json.RawMessage `json:"conversation,omitempty"`
	Markdown     string          `json:"markdown,omitempty"`
}

type SaveHistoryResponse struct {
	Ok bool      `json:"ok"`
	Id uuid.UUID `json:"id"`
}

// HistorySummaryDTO is the list projection; heavy payloads stay out of it.
type HistorySummaryDTO struct {
	Id         uuid.UUID       `json:"id"`
	HandId     string          `json:"hand_id"`
	Title      string          `json:"title"`
	Evaluation json.RawMessage `json:"evaluation,omitempty"`
	Markdown   string          `json:"markdown,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type HistoryListResponse struct {
	Ok        bool                `json:"ok"`
	Histories []HistorySummaryDTO `json:"histories"`
}

type HistoryDetailDTO struct {
	Id           uuid.UUID       `json:"id"`
	UserId       uuid.UUID       `json:"user_id"`
	HandId       string          `json:"hand_id"`
	Title        string          `json:"title"`
	Snapshot     json.RawMessage `json:"snapshot,omitempty"`
	Evaluation   json.RawMessage `json:"evaluation,omitempty"`
	Conversation json.RawMessage `json:"conversation,omitempty"`
	Markdown     string          `json:"markdown,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type HistoryDetailResponse struct {
	Ok      bool             `json:"ok"`
	History HistoryDetailDTO `json:"history"`
}

type RenameHistoryRequest struct {
	UserId string `json:"user_id" validate:"required,uuid"`
	Id     string `json:"id" validate:"required,uuid"`
	Title  string `json:"title" validate:"required"`
}

type UpdateConversationRequest struct {
	UserId       string          `json:"user_id" validate:"required,uuid"`
	Id           string          `json:"id" validate:"required,uuid"`
	Conversation json.RawMessage `json:"conversation" validate:"required"`
}

type SimpleOkResponse struct {
	Ok bool `json:"ok"`
}

type DeleteAllHistoryResponse struct {
	Ok      bool  `json:"ok"`
	Deleted int64 `json:"deleted"`
}
