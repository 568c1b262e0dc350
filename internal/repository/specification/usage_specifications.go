package specification

import (
	"time"

	"gorm.io/gorm"
)

// ActionKind filters usage-log rows by action type (analyze / followup).
type ActionKind struct {
	Kind string
}

func (s ActionKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("action_type = ?", s.Kind)
}

// CreatedWithin is the half-open window [Start, End) used for monthly counts.
type CreatedWithin struct {
	Start time.Time
	End   time.Time
}

func (s CreatedWithin) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ? AND created_at < ?", s.Start, s.End)
}

// ForHand filters usage-log rows for one exact hand.
type ForHand struct {
	HandID string
}

func (s ForHand) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("hand_id = ?", s.HandID)
}

// ByGoogleSub locates a user by the Google-side subject id.
type ByGoogleSub struct {
	Sub string
}

func (s ByGoogleSub) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("google_sub = ?", s.Sub)
}
