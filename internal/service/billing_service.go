package service

import (
	"context"
	"time"

	"hand-analysis-be/internal/constant"
	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/pkg/logger"
	"hand-analysis-be/internal/repository/memory"
	"hand-analysis-be/internal/repository/unitofwork"
	"hand-analysis-be/pkg/billing"

	"github.com/google/uuid"
)

type IBillingService interface {
	// CreateCheckout returns a hosted checkout URL for a paid tier.
	CreateCheckout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)

	// HandleWebhook verifies and applies one billing event. Duplicate
	// deliveries are acknowledged without side effects.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type billingService struct {
	uowFactory    unitofwork.RepositoryFactory
	billingClient billing.Client
	events        *memory.ProcessedEventCache
	prices        map[entity.Plan]string
	successURL    string
	cancelURL     string
	log           logger.ILogger
}

func NewBillingService(
	uowFactory unitofwork.RepositoryFactory,
	billingClient billing.Client,
	events *memory.ProcessedEventCache,
	prices map[entity.Plan]string,
	successURL string,
	cancelURL string,
	log logger.ILogger,
) IBillingService {
	return &billingService{
		uowFactory:    uowFactory,
		billingClient: billingClient,
		events:        events,
		prices:        prices,
		successURL:    successURL,
		cancelURL:     cancelURL,
		log:           log,
	}
}

func (s *billingService) CreateCheckout(ctx context.Context, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	plan := entity.Plan(req.Plan)
	// Free is not purchasable.
	if !constant.KnownPlan(plan) || plan == entity.PlanFree {
		return nil, dto.ErrUnknownPlan
	}

	if s.billingClient == nil {
		return nil, dto.ErrStripeNotConfigured
	}
	priceId, ok := s.prices[plan]
	if !ok || priceId == "" {
		return nil, dto.ErrStripeNotConfigured
	}

	url, err := s.billingClient.NewCheckoutSession(ctx, billing.CheckoutParams{
		PriceID:           priceId,
		ClientReferenceID: req.UserId,
		SuccessURL:        s.successURL,
		CancelURL:         s.cancelURL,
		Metadata: map[string]string{
			"plan":    string(plan),
			"user_id": req.UserId,
		},
	})
	if err != nil {
		return nil, &dto.UpstreamError{Source: "stripe", Err: err}
	}

	return &dto.CheckoutResponse{Ok: true, Url: url}, nil
}

func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.billingClient == nil {
		return dto.ErrStripeNotConfigured
	}

	event, err := s.billingClient.ConstructWebhookEvent(payload, signature)
	if err != nil {
		s.log.Warn("billing", "webhook signature rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return dto.ErrBadRequest
	}

	if !s.events.FirstSeen(event.ID) {
		s.log.Info("billing", "duplicate webhook delivery ignored", map[string]interface{}{
			"event_id": event.ID,
			"type":     event.Type,
		})
		return nil
	}

	if event.Checkout == nil {
		// Not a checkout completion; acknowledge and move on.
		return nil
	}

	if err := s.applyCheckoutCompleted(ctx, event.Checkout); err != nil {
		// Let the provider retry this delivery.
		s.events.Forget(event.ID)
		return err
	}
	return nil
}

func (s *billingService) applyCheckoutCompleted(ctx context.Context, checkout *billing.CheckoutCompleted) error {
	userId, err := uuid.Parse(checkout.ClientReferenceID)
	if err != nil {
		// Malformed reference can never succeed on retry; acknowledge it.
		s.log.Warn("billing", "checkout completed without usable user reference", map[string]interface{}{
			"client_reference_id": checkout.ClientReferenceID,
		})
		return nil
	}

	plan := entity.Plan(checkout.Metadata["plan"])
	if !constant.KnownPlan(plan) || plan == entity.PlanFree {
		s.log.Warn("billing", "checkout completed with unknown plan metadata", map[string]interface{}{
			"user_id": userId.String(),
			"plan":    checkout.Metadata["plan"],
		})
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubscriptionRepository().Create(ctx, &entity.Subscription{
		Id:            uuid.New(),
		UserId:        userId,
		Plan:          plan,
		Status:        entity.SubscriptionStatusActive,
		Store:         entity.StoreStripe,
		StartedAt:     time.Now().UTC(),
		PurchaseToken: checkout.SubscriptionID,
	}); err != nil {
		return err
	}

	s.log.Info("billing", "subscription activated from checkout", map[string]interface{}{
		"user_id": userId.String(),
		"plan":    string(plan),
	})
	return nil
}
