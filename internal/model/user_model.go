package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	Email       string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName    string     `gorm:"type:varchar(255);not null"`
	Role        string     `gorm:"type:varchar(32);not null;default:'candidate'"`
	IsTestUser  bool       `gorm:"not null;default:false"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
	LastLoginAt *time.Time `gorm:""`
}

func (User) TableName() string {
	return "users"
}
