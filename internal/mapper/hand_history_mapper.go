package mapper

import (
	"encoding/json"

	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/model"

	"gorm.io/datatypes"
)

type HandHistoryMapper struct{}

func NewHandHistoryMapper() *HandHistoryMapper {
	return &HandHistoryMapper{}
}

func (m *HandHistoryMapper) ToEntity(h *model.HandHistory) *entity.HandHistory {
	if h == nil {
		return nil
	}
	return &entity.HandHistory{
		Id:           h.Id,
		UserId:       h.UserId,
		HandId:       h.HandId,
		Title:        h.Title,
		Snapshot:     json.RawMessage(h.Snapshot),
		Evaluation:   json.RawMessage(h.Evaluation),
		Conversation: json.RawMessage(h.Conversation),
		Markdown:     h.Markdown,
		CreatedAt:    h.CreatedAt,
	}
}

func (m *HandHistoryMapper) ToModel(h *entity.HandHistory) *model.HandHistory {
	if h == nil {
		return nil
	}
	return &model.HandHistory{
		Id:           h.Id,
		UserId:       h.UserId,
		HandId:       h.HandId,
		Title:        h.Title,
		Snapshot:     datatypes.JSON(h.Snapshot),
		Evaluation:   datatypes.JSON(h.Evaluation),
		Conversation: datatypes.JSON(h.Conversation),
		Markdown:     h.Markdown,
		CreatedAt:    h.CreatedAt,
	}
}
