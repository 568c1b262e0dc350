package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/subscription"
	"github.com/stripe/stripe-go/v79/subscriptionschedule"
	"github.com/stripe/stripe-go/v79/webhook"
)

type stripeClient struct {
	webhookSecret string
}

// NewStripeClient wires the global Stripe API key and returns a Client.
func NewStripeClient(secretKey, webhookSecret string) Client {
	stripe.Key = secretKey
	return &stripeClient{webhookSecret: webhookSecret}
}

func (c *stripeClient) GetSubscription(ctx context.Context, id string) (*Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := subscription.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe subscription retrieve: %w", err)
	}
	return mapSubscription(sub)
}

func (c *stripeClient) UpdateSubscriptionPrice(ctx context.Context, subscriptionID, itemID, priceID string) (*Subscription, error) {
	params := &stripe.SubscriptionParams{
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(itemID),
				Price: stripe.String(priceID),
			},
		},
		ProrationBehavior: stripe.String("create_prorations"),
	}
	params.Context = ctx

	sub, err := subscription.Update(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe subscription update: %w", err)
	}
	return mapSubscription(sub)
}

func (c *stripeClient) ScheduleDowngrade(ctx context.Context, subscriptionID, newPriceID string) (int64, error) {
	createParams := &stripe.SubscriptionScheduleParams{
		FromSubscription: stripe.String(subscriptionID),
	}
	createParams.Context = ctx

	sched, err := subscriptionschedule.New(createParams)
	if err != nil {
		return 0, fmt.Errorf("stripe schedule create: %w", err)
	}

	if len(sched.Phases) == 0 || len(sched.Phases[0].Items) == 0 || sched.Phases[0].Items[0].Price == nil {
		return 0, ErrMissingSubscriptionItem
	}
	current := sched.Phases[0]
	if current.EndDate == 0 {
		return 0, ErrMissingPhaseEndDate
	}

	updateParams := &stripe.SubscriptionScheduleParams{
		Phases: []*stripe.SubscriptionSchedulePhaseParams{
			{
				Items: []*stripe.SubscriptionSchedulePhaseItemParams{
					{
						Price:    stripe.String(current.Items[0].Price.ID),
						Quantity: stripe.Int64(1),
					},
				},
				StartDate: stripe.Int64(current.StartDate),
				EndDate:   stripe.Int64(current.EndDate),
			},
			{
				Items: []*stripe.SubscriptionSchedulePhaseItemParams{
					{
						Price:    stripe.String(newPriceID),
						Quantity: stripe.Int64(1),
					},
				},
				StartDate: stripe.Int64(current.EndDate),
			},
		},
	}
	updateParams.Context = ctx

	if _, err := subscriptionschedule.Update(sched.ID, updateParams); err != nil {
		return 0, fmt.Errorf("stripe schedule update: %w", err)
	}

	return current.EndDate, nil
}

func (c *stripeClient) NewCheckoutSession(ctx context.Context, p CheckoutParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(p.ClientReferenceID),
		SuccessURL:        stripe.String(p.SuccessURL),
		CancelURL:         stripe.String(p.CancelURL),
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session: %w", err)
	}
	return sess.URL, nil
}

func (c *stripeClient) ConstructWebhookEvent(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		c.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("stripe webhook signature: %w", err)
	}

	out := &WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	if out.Type == "checkout.session.completed" {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("stripe session unmarshal: %w", err)
		}
		completed := &CheckoutCompleted{
			ClientReferenceID: sess.ClientReferenceID,
			Metadata:          sess.Metadata,
		}
		if sess.Subscription != nil {
			completed.SubscriptionID = sess.Subscription.ID
		}
		out.Checkout = completed
	}

	return out, nil
}

func mapSubscription(sub *stripe.Subscription) (*Subscription, error) {
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return nil, ErrMissingSubscriptionItem
	}
	item := sub.Items.Data[0]

	out := &Subscription{
		ID:               sub.ID,
		ItemID:           item.ID,
		CurrentPeriodEnd: sub.CurrentPeriodEnd,
	}
	if item.Price != nil {
		out.PriceID = item.Price.ID
	}
	return out, nil
}
