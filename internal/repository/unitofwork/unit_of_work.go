package unitofwork

import (
	"context"

	"broadcast-eval-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	EvaluationSummaryRepository() contract.EvaluationSummaryRepository
}
