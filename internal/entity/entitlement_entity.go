package entity

import "time"

// EffectiveEntitlement is the resolved plan + usage snapshot for one user at
// one instant. It is derived on every request and never persisted or cached.
type EffectiveEntitlement struct {
	Plan   Plan
	Status SubscriptionStatus
	Store  *string
	// StartedAt/ExpiresAt come from the authoritative subscription row; nil
	// for implicit free users.
	StartedAt *time.Time
	ExpiresAt *time.Time

	LimitPerMonth      Limit
	UsedThisMonth      int
	RemainingThisMonth *int
	FollowupsPerHand   Limit
	CanFollowup        bool
	AdsEnabled         bool
}
