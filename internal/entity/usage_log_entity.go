package entity

import (
	"time"

	"github.com/google/uuid"
)

type UsageAction string

const (
	UsageActionAnalyze  UsageAction = "analyze"
	UsageActionFollowup UsageAction = "followup"
)

// UsageLogEntry is one billable action. The ledger is append-only and only
// ever read in aggregate (counted per user / per hand).
type UsageLogEntry struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	ActionType UsageAction
	HandId     *string
	CreatedAt  time.Time
}
