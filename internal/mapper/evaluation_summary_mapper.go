package mapper

import (
	"encoding/json"
	"time"

	"broadcast-eval-be/internal/entity"
	"broadcast-eval-be/internal/model"

	"gorm.io/datatypes"
)

type EvaluationSummaryMapper struct{}

func NewEvaluationSummaryMapper() *EvaluationSummaryMapper {
	return &EvaluationSummaryMapper{}
}

func (m *EvaluationSummaryMapper) ToEntity(s *model.EvaluationSummary) *entity.EvaluationSummary {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	var scores map[string]interface{}
	if len(s.Scores) > 0 {
		_ = json.Unmarshal(s.Scores, &scores)
	}

	return &entity.EvaluationSummary{
		Id:          s.Id,
		EmployeeID:  s.EmployeeID,
		Name:        s.Name,
		Language:    s.Language,
		Category:    s.Category,
		DropboxPath: s.DropboxPath,
		Status:      s.Status,
		Approved:    s.Approved,
		TotalScore:  s.TotalScore,
		Grade:       s.Grade,
		Scores:      scores,
		EvaluatedBy: s.EvaluatedBy,
		EvaluatedAt: s.EvaluatedAt,
		SubmittedAt: s.SubmittedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *EvaluationSummaryMapper) ToModel(s *entity.EvaluationSummary) *model.EvaluationSummary {
	if s == nil {
		return nil
	}

	var scores datatypes.JSON
	if s.Scores != nil {
		raw, err := json.Marshal(s.Scores)
		if err == nil {
			scores = datatypes.JSON(raw)
		}
	}

	ms := &model.EvaluationSummary{
		Id:          s.Id,
		EmployeeID:  s.EmployeeID,
		Name:        s.Name,
		Language:    s.Language,
		Category:    s.Category,
		DropboxPath: s.DropboxPath,
		Status:      s.Status,
		Approved:    s.Approved,
		TotalScore:  s.TotalScore,
		Grade:       s.Grade,
		Scores:      scores,
		EvaluatedBy: s.EvaluatedBy,
		EvaluatedAt: s.EvaluatedAt,
		SubmittedAt: s.SubmittedAt,
		CreatedAt:   s.CreatedAt,
	}
	if s.UpdatedAt != nil {
		ms.UpdatedAt = *s.UpdatedAt
	}
	return ms
}

func (m *EvaluationSummaryMapper) ToEntities(models []*model.EvaluationSummary) []*entity.EvaluationSummary {
	entities := make([]*entity.EvaluationSummary, 0, len(models))
	for _, ms := range models {
		entities = append(entities, m.ToEntity(ms))
	}
	return entities
}
