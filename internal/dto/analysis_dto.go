package dto

import (
	"encoding/json"

	"hand-analysis-be/internal/entity"
)

type AnalyzeRequest struct {
	UserId string  `json:"user_id" validate:"required,uuid"`
	HandId *string `json:"hand_id,omitempty"`
	// Hand is the free-form hand description forwarded to the model verbatim.
	Hand json.RawMessage `json:"hand" validate:"required"`
}

// MonthlyUsageDTO is the post-action usage tuple attached to analyze replies.
type MonthlyUsageDTO struct {
	Plan          entity.Plan  `json:"plan"`
	LimitPerMonth entity.Limit `json:"limit_per_month"`
	UsedThisMonth int          `json:"used_this_month"`
}

type AnalyzeResponse struct {
	Ok     bool    `json:"ok"`
	HandId *string `json:"hand_id,omitempty"`
	// Evaluation is set when the model reply parsed as JSON; otherwise the
	// raw text lands in AnalysisText.
	Evaluation   json.RawMessage `json:"evaluation,omitempty"`
	AnalysisText string          `json:"analysis_text,omitempty"`
	Usage        MonthlyUsageDTO `json:"usage"`
}

type FollowupRequest struct {
	UserId     string          `json:"user_id" validate:"required,uuid"`
	HandId     string          `json:"hand_id" validate:"required"`
	Question   string          `json:"question" validate:"required"`
	Snapshot   json.RawMessage `json:"snapshot,omitempty"`
	Evaluation json.RawMessage `json:"evaluation,omitempty"`
}

type HandUsageDTO struct {
	Plan             entity.Plan  `json:"plan"`
	FollowupsPerHand entity.Limit `json:"followups_per_hand"`
	UsedForThisHand  int          `json:"used_for_this_hand"`
}

type FollowupResponse struct {
	Ok     bool         `json:"ok"`
	HandId string       `json:"hand_id"`
	Answer string       `json:"answer"`
	Usage  HandUsageDTO `json:"usage"`
}
