package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/pkg/googleauth"
	"hand-analysis-be/internal/repository/contract"
	"hand-analysis-be/internal/repository/specification"
	"hand-analysis-be/internal/repository/unitofwork"
	"hand-analysis-be/pkg/billing"
	"hand-analysis-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory repository fakes. They interpret the same specifications the real
// gorm implementations do, so service queries behave the same way.

type fakeUow struct {
	users *fakeUserRepo
	subs  *fakeSubscriptionRepo
	usage *fakeUsageRepo
	hist  *fakeHistoryRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		users: &fakeUserRepo{},
		subs:  &fakeSubscriptionRepo{},
		usage: &fakeUsageRepo{},
		hist:  &fakeHistoryRepo{items: map[uuid.UUID]*entity.HandHistory{}},
	}
}

func (f *fakeUow) Begin(_ context.Context) error { return nil }
func (f *fakeUow) Commit() error                 { return nil }
func (f *fakeUow) Rollback() error               { return nil }

func (f *fakeUow) UserRepository() contract.UserRepository                 { return f.users }
func (f *fakeUow) SubscriptionRepository() contract.SubscriptionRepository { return f.subs }
func (f *fakeUow) UsageLogRepository() contract.UsageLogRepository         { return f.usage }
func (f *fakeUow) HandHistoryRepository() contract.HandHistoryRepository   { return f.hist }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// --- users ---

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	copied := *user
	r.users = append(r.users, &copied)
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	for i, u := range r.users {
		if u.Id == user.Id {
			copied := *user
			r.users[i] = &copied
			return nil
		}
	}
	return errors.New("user not found")
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		if userMatches(u, specs) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func userMatches(u *entity.User, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByGoogleSub:
			if u.GoogleSub != sp.Sub {
				return false
			}
		case specification.ByID:
			if u.Id != sp.ID {
				return false
			}
		}
	}
	return true
}

// --- subscriptions ---

type fakeSubscriptionRepo struct {
	subs      []*entity.Subscription
	createErr error
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *entity.Subscription) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *sub
	r.subs = append(r.subs, &copied)
	return nil
}

func (r *fakeSubscriptionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	matched := r.filter(specs)
	if len(matched) == 0 {
		return nil, nil
	}
	// Honor OrderBy started_at desc the way the real repo does.
	desc := false
	for _, s := range specs {
		if ob, ok := s.(specification.OrderBy); ok && ob.Field == "started_at" {
			desc = ob.Desc
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if desc {
			return matched[i].StartedAt.After(matched[j].StartedAt)
		}
		return matched[i].StartedAt.Before(matched[j].StartedAt)
	})
	copied := *matched[0]
	return &copied, nil
}

func (r *fakeSubscriptionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	return r.filter(specs), nil
}

func (r *fakeSubscriptionRepo) filter(specs []specification.Specification) []*entity.Subscription {
	var out []*entity.Subscription
	for _, sub := range r.subs {
		if subscriptionMatches(sub, specs) {
			out = append(out, sub)
		}
	}
	return out
}

func subscriptionMatches(sub *entity.Subscription, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.UserOwnedBy:
			if sub.UserId != sp.UserID {
				return false
			}
		case specification.FilterBy:
			if sp.Field == "status" && sub.Status != sp.Value.(entity.SubscriptionStatus) {
				return false
			}
		}
	}
	return true
}

// --- usage ledger ---

type fakeUsageRepo struct {
	entries   []*entity.UsageLogEntry
	createErr error
	countErr  error
}

func (r *fakeUsageRepo) Create(_ context.Context, entry *entity.UsageLogEntry) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *fakeUsageRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var count int64
	for _, e := range r.entries {
		if usageMatches(e, specs) {
			count++
		}
	}
	return count, nil
}

func usageMatches(e *entity.UsageLogEntry, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.UserOwnedBy:
			if e.UserId != sp.UserID {
				return false
			}
		case specification.ActionKind:
			if string(e.ActionType) != sp.Kind {
				return false
			}
		case specification.ForHand:
			if e.HandId == nil || *e.HandId != sp.HandID {
				return false
			}
		case specification.CreatedWithin:
			if e.CreatedAt.Before(sp.Start) || !e.CreatedAt.Before(sp.End) {
				return false
			}
		}
	}
	return true
}

// --- hand histories ---

type fakeHistoryRepo struct {
	items map[uuid.UUID]*entity.HandHistory
}

func (r *fakeHistoryRepo) Create(_ context.Context, history *entity.HandHistory) error {
	copied := *history
	r.items[history.Id] = &copied
	return nil
}

func (r *fakeHistoryRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.HandHistory, error) {
	for _, h := range r.items {
		if historyMatches(h, specs) {
			copied := *h
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeHistoryRepo) FindAllSummaries(_ context.Context, userId uuid.UUID) ([]*entity.HandHistory, error) {
	var out []*entity.HandHistory
	for _, h := range r.items {
		if h.UserId == userId {
			out = append(out, &entity.HandHistory{
				Id:         h.Id,
				HandId:     h.HandId,
				Title:      h.Title,
				Evaluation: h.Evaluation,
				Markdown:   h.Markdown,
				CreatedAt:  h.CreatedAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeHistoryRepo) UpdateTitle(_ context.Context, id uuid.UUID, title string) (int64, error) {
	if h, ok := r.items[id]; ok {
		h.Title = title
		return 1, nil
	}
	return 0, nil
}

func (r *fakeHistoryRepo) UpdateConversation(_ context.Context, id uuid.UUID, conversation json.RawMessage) (int64, error) {
	if h, ok := r.items[id]; ok {
		h.Conversation = conversation
		return 1, nil
	}
	return 0, nil
}

func (r *fakeHistoryRepo) DeleteAllByUser(_ context.Context, userId uuid.UUID) (int64, error) {
	var deleted int64
	for id, h := range r.items {
		if h.UserId == userId {
			delete(r.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func historyMatches(h *entity.HandHistory, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if h.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if h.UserId != sp.UserID {
				return false
			}
		}
	}
	return true
}

// --- collaborators ---

type fakeLLM struct {
	reply string
	err   error

	calls       int
	lastHistory []llm.Message
}

func (f *fakeLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	f.calls++
	f.lastHistory = history
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type fakeVerifier struct {
	profile *googleauth.Profile
	err     error
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (*googleauth.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fakeBillingClient struct {
	sub    *billing.Subscription
	getErr error

	updated    *billing.Subscription
	updateErr  error
	updateArgs []string

	effectiveAt  int64
	scheduleErr  error
	scheduledSub string

	checkoutURL  string
	checkoutErr  error
	lastCheckout billing.CheckoutParams

	event        *billing.WebhookEvent
	constructErr error
}

func (f *fakeBillingClient) GetSubscription(_ context.Context, id string) (*billing.Subscription, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.sub, nil
}

func (f *fakeBillingClient) UpdateSubscriptionPrice(_ context.Context, subscriptionID, itemID, priceID string) (*billing.Subscription, error) {
	f.updateArgs = []string{subscriptionID, itemID, priceID}
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updated, nil
}

func (f *fakeBillingClient) ScheduleDowngrade(_ context.Context, subscriptionID, newPriceID string) (int64, error) {
	f.scheduledSub = subscriptionID
	if f.scheduleErr != nil {
		return 0, f.scheduleErr
	}
	return f.effectiveAt, nil
}

func (f *fakeBillingClient) NewCheckoutSession(_ context.Context, p billing.CheckoutParams) (string, error) {
	f.lastCheckout = p
	if f.checkoutErr != nil {
		return "", f.checkoutErr
	}
	return f.checkoutURL, nil
}

func (f *fakeBillingClient) ConstructWebhookEvent(_ []byte, _ string) (*billing.WebhookEvent, error) {
	if f.constructErr != nil {
		return nil, f.constructErr
	}
	return f.event, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func activeSub(userId uuid.UUID, plan entity.Plan, token string, startedAt time.Time) *entity.Subscription {
	return &entity.Subscription{
		Id:            uuid.New(),
		UserId:        userId,
		Plan:          plan,
		Status:        entity.SubscriptionStatusActive,
		Store:         entity.StoreStripe,
		StartedAt:     startedAt,
		PurchaseToken: token,
	}
}
