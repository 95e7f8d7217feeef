package mapper

import (
	"time"

	"broadcast-eval-be/internal/entity"
	"broadcast-eval-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var updatedAt *time.Time
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		updatedAt = &t
	}

	return &entity.User{
		Id:          u.Id,
		EmployeeID:  u.EmployeeID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        entity.UserRole(u.Role),
		IsTestUser:  u.IsTestUser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   updatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	mu := &model.User{
		Id:          u.Id,
		EmployeeID:  u.EmployeeID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        string(u.Role),
		IsTestUser:  u.IsTestUser,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
	if u.UpdatedAt != nil {
		mu.UpdatedAt = *u.UpdatedAt
	}
	return mu
}

func (m *UserMapper) ToEntities(models []*model.User) []*entity.User {
	entities := make([]*entity.User, 0, len(models))
	for _, mu := range models {
		entities = append(entities, m.ToEntity(mu))
	}
	return entities
}
