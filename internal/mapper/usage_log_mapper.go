package mapper

import (
	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/model"
)

type UsageLogMapper struct{}

func NewUsageLogMapper() *UsageLogMapper {
	return &UsageLogMapper{}
}

func (m *UsageLogMapper) ToEntity(u *model.UsageLog) *entity.UsageLogEntry {
	if u == nil {
		return nil
	}
	return &entity.UsageLogEntry{
		Id:         u.Id,
		UserId:     u.UserId,
		ActionType: entity.UsageAction(u.ActionType),
		HandId:     u.HandId,
		CreatedAt:  u.CreatedAt,
	}
}

func (m *UsageLogMapper) ToModel(u *entity.UsageLogEntry) *model.UsageLog {
	if u == nil {
		return nil
	}
	return &model.UsageLog{
		Id:         u.Id,
		UserId:     u.UserId,
		ActionType: string(u.ActionType),
		HandId:     u.HandId,
		CreatedAt:  u.CreatedAt,
	}
}
