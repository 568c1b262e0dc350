package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"hand-analysis-be/internal/constant"
	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/pkg/logger"
	"hand-analysis-be/internal/repository/specification"
	"hand-analysis-be/internal/repository/unitofwork"
	"hand-analysis-be/pkg/billing"

	"github.com/google/uuid"
)

type IPlanService interface {
	GetStatus(ctx context.Context, userId uuid.UUID) (*dto.PlanStatusResponse, error)

	// ChangePlan moves a paid subscriber between tiers. Upgrades apply
	// immediately with prorations; downgrades are scheduled for the end of
	// the current billing period.
	ChangePlan(ctx context.Context, req *dto.PlanChangeRequest) (*dto.PlanChangeResponse, error)
}

type planService struct {
	uowFactory         unitofwork.RepositoryFactory
	entitlementService IEntitlementService
	billingClient      billing.Client
	prices             map[entity.Plan]string
	log                logger.ILogger
}

func NewPlanService(
	uowFactory unitofwork.RepositoryFactory,
	entitlementService IEntitlementService,
	billingClient billing.Client,
	prices map[entity.Plan]string,
	log logger.ILogger,
) IPlanService {
	return &planService{
		uowFactory:         uowFactory,
		entitlementService: entitlementService,
		billingClient:      billingClient,
		prices:             prices,
		log:                log,
	}
}

func (s *planService) GetStatus(ctx context.Context, userId uuid.UUID) (*dto.PlanStatusResponse, error) {
	ent, err := s.entitlementService.Resolve(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &dto.PlanStatusResponse{
		Ok:                 true,
		UserId:             userId.String(),
		Plan:               ent.Plan,
		Status:             ent.Status,
		Store:              ent.Store,
		StartedAt:          ent.StartedAt,
		ExpiresAt:          ent.ExpiresAt,
		LimitPerMonth:      ent.LimitPerMonth,
		UsedThisMonth:      ent.UsedThisMonth,
		RemainingThisMonth: ent.RemainingThisMonth,
		FollowupsPerHand:   ent.FollowupsPerHand,
		CanFollowup:        ent.CanFollowup,
		AdsEnabled:         ent.AdsEnabled,
	}, nil
}

func (s *planService) ChangePlan(ctx context.Context, req *dto.PlanChangeRequest) (*dto.PlanChangeResponse, error) {
	newPlan := entity.Plan(req.NewPlan)
	if !constant.KnownPlan(newPlan) {
		return nil, dto.ErrUnknownPlan
	}

	userId, err := uuid.Parse(req.UserId)
	if err != nil {
		return nil, dto.ErrBadRequest
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Filter("status", entity.SubscriptionStatusActive),
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, dto.ErrNoActiveSubscription
	}

	if sub.Plan == newPlan {
		return &dto.PlanChangeResponse{
			Ok:     true,
			Action: dto.PlanChangeActionNoop,
			Plan:   sub.Plan,
		}, nil
	}

	if s.billingClient == nil {
		return nil, dto.ErrStripeNotConfigured
	}
	priceId, ok := s.prices[newPlan]
	if !ok || priceId == "" {
		return nil, dto.ErrStripeNotConfigured
	}

	// Only Stripe-managed rows carry a sub_... token we can act on.
	if !strings.HasPrefix(sub.PurchaseToken, "sub_") {
		return nil, dto.ErrMissingStripeSubscriptionId
	}

	stripeSub, err := s.billingClient.GetSubscription(ctx, sub.PurchaseToken)
	if err != nil {
		return nil, mapBillingError(err)
	}

	if constant.PlanRank(newPlan) > constant.PlanRank(sub.Plan) {
		return s.upgrade(ctx, sub, newPlan, priceId, stripeSub)
	}
	return s.downgrade(ctx, sub, newPlan, priceId, stripeSub)
}

func (s *planService) upgrade(ctx context.Context, sub *entity.Subscription, newPlan entity.Plan, priceId string, stripeSub *billing.Subscription) (*dto.PlanChangeResponse, error) {
	updated, err := s.billingClient.UpdateSubscriptionPrice(ctx, stripeSub.ID, stripeSub.ItemID, priceId)
	if err != nil {
		return nil, mapBillingError(err)
	}

	// Record the new tier as a fresh row; the latest started_at wins, so the
	// old row is shadowed without being touched.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubscriptionRepository().Create(ctx, &entity.Subscription{
		Id:            uuid.New(),
		UserId:        sub.UserId,
		Plan:          newPlan,
		Status:        entity.SubscriptionStatusActive,
		Store:         entity.StoreStripe,
		StartedAt:     time.Now().UTC(),
		PurchaseToken: sub.PurchaseToken,
	}); err != nil {
		return nil, err
	}

	s.log.Info("plan", "subscription upgraded", map[string]interface{}{
		"user_id": sub.UserId.String(),
		"from":    string(sub.Plan),
		"to":      string(newPlan),
	})

	return &dto.PlanChangeResponse{
		Ok:               true,
		Action:           dto.PlanChangeActionUpgraded,
		From:             sub.Plan,
		To:               newPlan,
		CurrentPeriodEnd: updated.CurrentPeriodEnd,
	}, nil
}

func (s *planService) downgrade(ctx context.Context, sub *entity.Subscription, newPlan entity.Plan, priceId string, stripeSub *billing.Subscription) (*dto.PlanChangeResponse, error) {
	effectiveAt, err := s.billingClient.ScheduleDowngrade(ctx, stripeSub.ID, priceId)
	if err != nil {
		return nil, mapBillingError(err)
	}

	// The current tier stays until the period ends; the switch arrives later
	// through the billing webhook.
	s.log.Info("plan", "downgrade scheduled", map[string]interface{}{
		"user_id":      sub.UserId.String(),
		"from":         string(sub.Plan),
		"to":           string(newPlan),
		"effective_at": effectiveAt,
	})

	return &dto.PlanChangeResponse{
		Ok:          true,
		Action:      dto.PlanChangeActionDowngradeScheduled,
		From:        sub.Plan,
		To:          newPlan,
		EffectiveAt: effectiveAt,
	}, nil
}

func mapBillingError(err error) error {
	switch {
	case errors.Is(err, billing.ErrMissingSubscriptionItem):
		return dto.ErrMissingSubscriptionItem
	case errors.Is(err, billing.ErrMissingPhaseEndDate):
		return dto.ErrMissingPhaseEndDate
	default:
		return &dto.UpstreamError{Source: "stripe", Err: err}
	}
}
