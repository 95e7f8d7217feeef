package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleCandidate  UserRole = "candidate"
	UserRoleInstructor UserRole = "instructor"
	UserRoleAdmin      UserRole = "admin"
)

type User struct {
	Id          uuid.UUID
	EmployeeID  string
	Email       string
	FullName    string
	Role        UserRole
	IsTestUser  bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	LastLoginAt *time.Time
}
