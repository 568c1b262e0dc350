// Error types shared across services and mapped to wire codes by the
// serverutils error handler. Codes are snake_case strings the clients
// already key on.
package dto

import (
	"fmt"

	"hand-analysis-be/internal/entity"
)

// QuotaExceededError denies a monthly analyze action. It carries the numbers
// the client shows the user; it is an entitlement denial, not a server fault.
type QuotaExceededError struct {
	Plan  entity.Plan
	Limit int
	Used  int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("monthly quota exceeded: plan=%s used=%d limit=%d", e.Plan, e.Used, e.Limit)
}

// FollowupLimitExceededError denies a follow-up for one specific hand.
type FollowupLimitExceededError struct {
	Plan   entity.Plan
	Limit  int
	Used   int
	HandId string
}

func (e *FollowupLimitExceededError) Error() string {
	return fmt.Sprintf("followup limit exceeded: plan=%s hand=%s used=%d limit=%d", e.Plan, e.HandId, e.Used, e.Limit)
}

// UpstreamError marks a failure of an external collaborator (billing or the
// text-generation API). Never retried at this layer.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s error: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// CodedError carries an HTTP status and a stable machine-readable code.
type CodedError struct {
	Status int
	Code   string
}

func (e *CodedError) Error() string {
	return e.Code
}

func NewCodedError(status int, code string) *CodedError {
	return &CodedError{Status: status, Code: code}
}

var (
	ErrBadRequest                  = NewCodedError(400, "bad_request")
	ErrMissingUserId               = NewCodedError(400, "missing_user_id")
	ErrMissingId                   = NewCodedError(400, "missing_id")
	ErrUnknownPlan                 = NewCodedError(400, "unknown_plan")
	ErrNoActiveSubscription        = NewCodedError(400, "no_active_subscription")
	ErrMissingStripeSubscriptionId = NewCodedError(400, "missing_stripe_subscription_id")
	ErrAuthFailed                  = NewCodedError(401, "auth_failed")
	ErrNotFound                    = NewCodedError(404, "not_found")
	ErrStripeNotConfigured         = NewCodedError(500, "stripe_not_configured")
	ErrMissingSubscriptionItem     = NewCodedError(500, "missing_subscription_item")
	ErrMissingPhaseEndDate         = NewCodedError(500, "missing_phase_end_date")
)
