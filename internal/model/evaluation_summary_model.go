package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EvaluationSummary struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  string         `gorm:"type:varchar(32);not null;uniqueIndex:idx_summary_submission"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Language    string         `gorm:"type:varchar(32);not null"`
	Category    string         `gorm:"type:varchar(32);not null"`
	DropboxPath string         `gorm:"type:varchar(512);not null;index"`
	Status      string         `gorm:"type:varchar(32);not null;index"`
	Approved    bool           `gorm:"not null;default:false"`
	TotalScore  *float64       `gorm:""`
	Grade       string         `gorm:"type:varchar(8)"`
	Scores      datatypes.JSON `gorm:"type:jsonb"`
	EvaluatedBy string         `gorm:"type:varchar(255)"`
	EvaluatedAt *time.Time     `gorm:""`
	SubmittedAt time.Time      `gorm:"not null;uniqueIndex:idx_summary_submission"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (EvaluationSummary) TableName() string {
	return "evaluation_summaries"
}
