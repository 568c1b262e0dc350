package service

import (
	"context"
	"time"

	"hand-analysis-be/internal/constant"
	"hand-analysis-be/internal/dto"
	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/repository/specification"
	"hand-analysis-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IEntitlementService interface {
	// Resolve derives the effective plan and usage snapshot for a user. Users
	// without an active subscription row resolve to the implicit free plan.
	Resolve(ctx context.Context, userId uuid.UUID) (*entity.EffectiveEntitlement, error)

	// CheckAnalyze resolves entitlements and denies with QuotaExceededError
	// when the monthly analyze budget is spent.
	CheckAnalyze(ctx context.Context, userId uuid.UUID) (*entity.EffectiveEntitlement, error)

	// CheckFollowup additionally counts follow-ups already spent on the given
	// hand and denies with FollowupLimitExceededError. Returns the per-hand
	// used count on success.
	CheckFollowup(ctx context.Context, userId uuid.UUID, handId string) (*entity.EffectiveEntitlement, int, error)

	// RecordUsage appends one row to the usage ledger.
	RecordUsage(ctx context.Context, userId uuid.UUID, action entity.UsageAction, handId *string) error
}

type entitlementService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewEntitlementService(uowFactory unitofwork.RepositoryFactory) IEntitlementService {
	return &entitlementService{
		uowFactory: uowFactory,
	}
}

func (s *entitlementService) Resolve(ctx context.Context, userId uuid.UUID) (*entity.EffectiveEntitlement, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Authoritative row: the active subscription with the latest started_at.
	sub, err := uow.SubscriptionRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Filter("status", entity.SubscriptionStatusActive),
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	ent := &entity.EffectiveEntitlement{
		Plan:   entity.PlanFree,
		Status: entity.SubscriptionStatusNone,
	}
	if sub != nil {
		ent.Plan = sub.Plan
		ent.Status = sub.Status
		ent.Store = &sub.Store
		startedAt := sub.StartedAt
		ent.StartedAt = &startedAt
		ent.ExpiresAt = sub.ExpiresAt
	}

	cfg := constant.PlanConfigFor(ent.Plan)
	ent.LimitPerMonth = cfg.LimitPerMonth
	if sub != nil && sub.LimitPerMonth != nil {
		// Per-row override, e.g. a grandfathered or comped account.
		ent.LimitPerMonth = entity.FiniteLimit(*sub.LimitPerMonth)
	}
	ent.FollowupsPerHand = cfg.FollowupsPerHand
	ent.CanFollowup = cfg.FollowupsPerHand.Unlimited() || cfg.FollowupsPerHand.Value() > 0
	ent.AdsEnabled = cfg.AdsEnabled

	start, end := monthWindow(time.Now())
	used, err := uow.UsageLogRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ActionKind{Kind: string(entity.UsageActionAnalyze)},
		specification.CreatedWithin{Start: start, End: end},
	)
	if err != nil {
		return nil, err
	}
	ent.UsedThisMonth = int(used)
	ent.RemainingThisMonth = ent.LimitPerMonth.Remaining(ent.UsedThisMonth)

	return ent, nil
}

func (s *entitlementService) CheckAnalyze(ctx context.Context, userId uuid.UUID) (*entity.EffectiveEntitlement, error) {
	ent, err := s.Resolve(ctx, userId)
	if err != nil {
		return nil, err
	}

	if !ent.LimitPerMonth.Allows(ent.UsedThisMonth) {
		return nil, &dto.QuotaExceededError{
			Plan:  ent.Plan,
			Limit: ent.LimitPerMonth.Value(),
			Used:  ent.UsedThisMonth,
		}
	}

	return ent, nil
}

func (s *entitlementService) CheckFollowup(ctx context.Context, userId uuid.UUID, handId string) (*entity.EffectiveEntitlement, int, error) {
	ent, err := s.Resolve(ctx, userId)
	if err != nil {
		return nil, 0, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Follow-ups are budgeted per hand for its lifetime, not per month.
	used, err := uow.UsageLogRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ActionKind{Kind: string(entity.UsageActionFollowup)},
		specification.ForHand{HandID: handId},
	)
	if err != nil {
		return nil, 0, err
	}

	if !ent.FollowupsPerHand.Allows(int(used)) {
		return nil, 0, &dto.FollowupLimitExceededError{
			Plan:   ent.Plan,
			Limit:  ent.FollowupsPerHand.Value(),
			Used:   int(used),
			HandId: handId,
		}
	}

	return ent, int(used), nil
}

func (s *entitlementService) RecordUsage(ctx context.Context, userId uuid.UUID, action entity.UsageAction, handId *string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	return uow.UsageLogRepository().Create(ctx, &entity.UsageLogEntry{
		Id:         uuid.New(),
		UserId:     userId,
		ActionType: action,
		HandId:     handId,
		CreatedAt:  time.Now().UTC(),
	})
}

// monthWindow returns the half-open [start, end) of the UTC calendar month
// containing the given instant.
func monthWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
