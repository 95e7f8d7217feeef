package entity

import (
	"time"

	"github.com/google/uuid"
)

// EvaluationSummary is the relational mirror of an evaluation record used
// for admin reporting. The blob store stays the source of truth; this row
// is refreshed whenever the index entry changes.
type EvaluationSummary struct {
	Id          uuid.UUID
	EmployeeID  string
	Name        string
	Language    string
	Category    string
	DropboxPath string
	Status      string
	Approved    bool
	TotalScore  *float64
	Grade       string
	// Scores holds the per-criterion breakdown as it came from the record.
	Scores      map[string]interface{}
	EvaluatedBy string
	EvaluatedAt *time.Time
	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
