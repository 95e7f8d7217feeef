package dto

type AdminUserItemResponse struct {
	EmployeeID  string `json:"employee_id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	IsTestUser  bool   `json:"is_test_user"`
	LastLoginAt string `json:"last_login_at,omitempty"`
}

type AdminSummaryItemResponse struct {
	EmployeeID  string   `json:"employee_id"`
	Name        string   `json:"name"`
	Language    string   `json:"language"`
	Category    string   `json:"category"`
	Status      string   `json:"status"`
	Approved    bool     `json:"approved"`
	TotalScore  *float64 `json:"total_score,omitempty"`
	Grade       string   `json:"grade,omitempty"`
	SubmittedAt string   `json:"submitted_at"`
}

type AdminStatsResponse struct {
	TotalSubmissions int64 `json:"total_submissions"`
	PendingReviews   int64 `json:"pending_reviews"`
	ApprovedCount    int64 `json:"approved_count"`
	UserCount        int64 `json:"user_count"`
}
