// Package billing wraps the payment provider behind a small interface so
// services can be tested without real Stripe calls.
package billing

import (
	"context"
	"errors"
)

var (
	ErrMissingSubscriptionItem = errors.New("subscription has no items")
	ErrMissingPhaseEndDate     = errors.New("schedule phase has no end date")
)

// Subscription is the slice of provider state plan changes need.
type Subscription struct {
	ID     string
	ItemID string
	// PriceID is the price attached to the first subscription item.
	PriceID string
	// CurrentPeriodEnd is unix seconds.
	CurrentPeriodEnd int64
}

type CheckoutParams struct {
	PriceID string
	// ClientReferenceID carries our user id through the hosted checkout.
	ClientReferenceID string
	SuccessURL        string
	CancelURL         string
	Metadata          map[string]string
}

// CheckoutCompleted is the payload extracted from a finished checkout event.
type CheckoutCompleted struct {
	ClientReferenceID string
	SubscriptionID    string
	Metadata          map[string]string
}

type WebhookEvent struct {
	ID   string
	Type string
	// Checkout is non-nil only for checkout.session.completed events.
	Checkout *CheckoutCompleted
}

type Client interface {
	GetSubscription(ctx context.Context, id string) (*Subscription, error)

	// UpdateSubscriptionPrice swaps the item's price in place with prorations,
	// taking effect immediately.
	UpdateSubscriptionPrice(ctx context.Context, subscriptionID, itemID, priceID string) (*Subscription, error)

	// ScheduleDowngrade keeps the current price until the period end and
	// switches to newPriceID afterwards. Returns the switch time in unix
	// seconds.
	ScheduleDowngrade(ctx context.Context, subscriptionID, newPriceID string) (int64, error)

	// NewCheckoutSession returns the hosted checkout URL.
	NewCheckoutSession(ctx context.Context, p CheckoutParams) (string, error)

	// ConstructWebhookEvent verifies the signature and decodes the event.
	ConstructWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}
