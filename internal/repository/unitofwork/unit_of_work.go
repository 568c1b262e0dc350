package unitofwork

import (
	"context"

	"hand-analysis-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SubscriptionRepository() contract.SubscriptionRepository
	UsageLogRepository() contract.UsageLogRepository
	HandHistoryRepository() contract.HandHistoryRepository
}
