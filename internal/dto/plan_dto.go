package dto

import (
	"time"

	"hand-analysis-be/internal/entity"
)

// PlanStatusResponse is the full entitlement snapshot returned by GET /me/plan.
// limit_per_month / followups_per_hand encode as null when unlimited.
type PlanStatusResponse struct {
	Ok                 bool                      `json:"ok"`
	UserId             string                    `json:"user_id"`
	Plan               entity.Plan               `json:"plan"`
	Status             entity.SubscriptionStatus `json:"status"`
	Store              *string                   `json:"store"`
	StartedAt          *time.Time                `json:"started_at"`
	ExpiresAt          *time.Time                `json:"expires_at"`
	LimitPerMonth      entity.Limit              `json:"limit_per_month"`
	UsedThisMonth      int                       `json:"used_this_month"`
	RemainingThisMonth *int                      `json:"remaining_this_month"`
	FollowupsPerHand   entity.Limit              `json:"followups_per_hand"`
	CanFollowup        bool                      `json:"can_followup"`
	AdsEnabled         bool                      `json:"ads_enabled"`
}

type PlanChangeRequest struct {
	UserId  string `json:"user_id" validate:"required,uuid"`
	NewPlan string `json:"new_plan" validate:"required"`
}

const (
	PlanChangeActionNoop               = "noop"
	PlanChangeActionUpgraded           = "upgraded"
	PlanChangeActionDowngradeScheduled = "downgrade_scheduled"
)

type PlanChangeResponse struct {
	Ok     bool        `json:"ok"`
	Action string      `json:"action"`
	Plan   entity.Plan `json:"plan,omitempty"`
	From   entity.Plan `json:"from,omitempty"`
	To     entity.Plan `json:"to,omitempty"`
	// Unix seconds, as reported by the billing provider.
	CurrentPeriodEnd int64 `json:"current_period_end,omitempty"`
	EffectiveAt      int64 `json:"effective_at,omitempty"`
}
