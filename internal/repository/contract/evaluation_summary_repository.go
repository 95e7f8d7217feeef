package contract

import (
	"context"

	"broadcast-eval-be/internal/entity"
	"broadcast-eval-be/internal/repository/specification"

	"github.com/google/uuid"
)

type EvaluationSummaryRepository interface {
	Create(ctx context.Context, summary *entity.EvaluationSummary) error
	Update(ctx context.Context, summary *entity.EvaluationSummary) error
	// Upsert writes the summary keyed by employee id + submission time,
	// replacing the existing row when the record is relocated or
	// re-scored.
	Upsert(ctx context.Context, summary *entity.EvaluationSummary) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EvaluationSummary, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EvaluationSummary, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
