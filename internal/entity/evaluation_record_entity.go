package entity

// EvaluationRecord is the full per-submission document stored in the blob
// store (one JSON file per submission). The index entry mirrors a subset
// of these fields; this record stays the source of truth.
type EvaluationRecord struct {
	EmployeeID    string             `json:"employeeId"`
	Name          string             `json:"name"`
	Language      string             `json:"language"`
	Category      string             `json:"category"`
	Script        string             `json:"script"`
	RecordingPath string             `json:"recordingPath,omitempty"`
	SubmittedAt   string             `json:"submittedAt"`
	Status        string             `json:"status"`
	Approved      bool               `json:"approved"`
	Scores        map[string]float64 `json:"scores,omitempty"`
	TotalScore    *float64           `json:"totalScore,omitempty"`
	Grade         string             `json:"grade,omitempty"`
	Comments      string             `json:"comments,omitempty"`
	EvaluatedAt   string             `json:"evaluatedAt,omitempty"`
	EvaluatedBy   string             `json:"evaluatedBy,omitempty"`
}
