package mapper

import (
	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) ToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:            s.Id,
		UserId:        s.UserId,
		Plan:          entity.Plan(s.Plan),
		Status:        entity.SubscriptionStatus(s.Status),
		Store:         s.Store,
		LimitPerMonth: s.LimitPerMonth,
		StartedAt:     s.StartedAt,
		ExpiresAt:     s.ExpiresAt,
		PurchaseToken: s.PurchaseToken,
	}
}

func (m *SubscriptionMapper) ToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:            s.Id,
		UserId:        s.UserId,
		Plan:          string(s.Plan),
		Status:        string(s.Status),
		Store:         s.Store,
		LimitPerMonth: s.LimitPerMonth,
		StartedAt:     s.StartedAt,
		ExpiresAt:     s.ExpiresAt,
		PurchaseToken: s.PurchaseToken,
	}
}
