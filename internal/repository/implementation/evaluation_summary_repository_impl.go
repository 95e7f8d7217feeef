package implementation

import (
	"context"
	"errors"

	"broadcast-eval-be/internal/entity"
	"broadcast-eval-be/internal/mapper"
	"broadcast-eval-be/internal/model"
	"broadcast-eval-be/internal/repository/contract"
	"broadcast-eval-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EvaluationSummaryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EvaluationSummaryMapper
}

func NewEvaluationSummaryRepository(db *gorm.DB) contract.EvaluationSummaryRepository {
	return &EvaluationSummaryRepositoryImpl{
		db:     db,
		mapper: mapper.NewEvaluationSummaryMapper(),
	}
}

func (r *EvaluationSummaryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EvaluationSummaryRepositoryImpl) Create(ctx context.Context, summary *entity.EvaluationSummary) error {
	m := r.mapper.ToModel(summary)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*summary = *r.mapper.ToEntity(m)
	return nil
}

func (r *EvaluationSummaryRepositoryImpl) Update(ctx context.Context, summary *entity.EvaluationSummary) error {
	m := r.mapper.ToModel(summary)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*summary = *r.mapper.ToEntity(m)
	return nil
}

func (r *EvaluationSummaryRepositoryImpl) Upsert(ctx context.Context, summary *entity.EvaluationSummary) error {
	m := r.mapper.ToModel(summary)
	// Relocation changes dropbox_path, so the submission identity is the
	// employee plus the immutable submission time.
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}, {Name: "submitted_at"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"dropbox_path", "status", "approved", "total_score", "grade",
			"scores", "evaluated_by", "evaluated_at", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*summary = *r.mapper.ToEntity(m)
	return nil
}

func (r *EvaluationSummaryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.EvaluationSummary{}, id).Error
}

func (r *EvaluationSummaryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.EvaluationSummary, error) {
	var m model.EvaluationSummary
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EvaluationSummaryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EvaluationSummary, error) {
	var models []*model.EvaluationSummary
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *EvaluationSummaryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.EvaluationSummary{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
