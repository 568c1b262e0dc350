package contract

import (
	"context"

	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/repository/specification"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	// FindOne respects OrderBy specs, so "latest active" is expressed as
	// FindOne(UserOwnedBy, Filter(status), OrderBy(started_at desc)).
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error)
}
