package dto

type SubmitEvaluationRequest struct {
	Language      string `json:"language" validate:"required"`
	Category      string `json:"category" validate:"required"`
	Script        string `json:"script" validate:"required"`
	RecordingPath string `json:"recording_path"`
}

type SubmitEvaluationResponse struct {
	DropboxPath string `json:"dropbox_path"`
	SubmittedAt string `json:"submitted_at"`
	// IndexSynced is false when the submission was stored but the shared
	// index could not be updated (degraded mode).
	IndexSynced bool `json:"index_synced"`
}

type SaveScoresRequest struct {
	Scores     map[string]float64 `json:"scores" validate:"required,min=1"`
	TotalScore float64            `json:"total_score" validate:"required"`
	Grade      string             `json:"grade" validate:"required"`
	Comments   string             `json:"comments"`
}

type ApproveEvaluationRequest struct {
	TotalScore float64            `json:"total_score" validate:"required"`
	Grade      string             `json:"grade" validate:"required"`
	Scores     map[string]float64 `json:"scores"`
	Comments   string             `json:"comments"`
}

type EvaluationItemResponse struct {
	EmployeeID  string   `json:"employee_id"`
	Name        string   `json:"name"`
	Language    string   `json:"language"`
	Category    string   `json:"category"`
	SubmittedAt string   `json:"submitted_at"`
	DropboxPath string   `json:"dropbox_path"`
	Status      string   `json:"status"`
	Approved    bool     `json:"approved"`
	TotalScore  *float64 `json:"total_score,omitempty"`
	Grade       string   `json:"grade,omitempty"`
	EvaluatedAt string   `json:"evaluated_at,omitempty"`
	EvaluatedBy string   `json:"evaluated_by,omitempty"`
}

type EvaluationRecordResponse struct {
	EvaluationItemResponse
	Script        string             `json:"script"`
	RecordingPath string             `json:"recording_path,omitempty"`
	Scores        map[string]float64 `json:"scores,omitempty"`
	Comments      string             `json:"comments,omitempty"`
}

type StatusUpdateResponse struct {
	DropboxPath string `json:"dropbox_path"`
	Status      string `json:"status"`
}
