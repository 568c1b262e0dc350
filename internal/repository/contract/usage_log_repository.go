package contract

import (
	"context"

	"hand-analysis-be/internal/entity"
	"hand-analysis-be/internal/repository/specification"
)

type UsageLogRepository interface {
	// Create appends one ledger row. The ledger is never updated or deleted.
	Create(ctx context.Context, entry *entity.UsageLogEntry) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
