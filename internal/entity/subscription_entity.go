package entity

import (
	"time"

	"github.com/google/uuid"
)

type Plan string
type SubscriptionStatus string

const (
	PlanFree    Plan = "free"
	PlanBasic   Plan = "basic"
	PlanPro     Plan = "pro"
	PlanPremium Plan = "premium"

	SubscriptionStatusActive SubscriptionStatus = "active"
	// SubscriptionStatusNone is never stored; it is the reported status for a
	// user with no active subscription row (implicit free plan).
	SubscriptionStatusNone SubscriptionStatus = "none"

	StoreStripe = "stripe"
)

// Subscription rows are append-only: a status transition shows up as a new row
// (or an external update from the billing provider), never as an in-place edit
// by this service. The authoritative row for a user is the active one with the
// latest started_at.
type Subscription struct {
	Id     uuid.UUID
	UserId uuid.UUID
	Plan   Plan
	Status SubscriptionStatus
	Store  string
	// LimitPerMonth overrides the plan's monthly limit when non-nil.
	LimitPerMonth *int
	StartedAt     time.Time
	ExpiresAt     *time.Time
	// PurchaseToken holds the external billing reference (a Stripe sub_... id
	// for store=stripe rows).
	PurchaseToken string
}
