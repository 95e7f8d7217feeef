package events

import "time"

const (
	TypeEvaluationSubmitted   = "EVALUATION_SUBMITTED"
	TypeEvaluationApproved    = "EVALUATION_APPROVED"
	TypeEvaluationReopened    = "EVALUATION_REOPENED"
	TypeEvaluationDeleted     = "EVALUATION_DELETED"
	TypeRecordRelocated       = "RECORD_RELOCATED"
	TypeScheduleRequestPlaced = "SCHEDULE_REQUEST_PLACED"
)

// NewEvaluationSubmitted is raised when a candidate stores a new broadcast
// evaluation submission.
func NewEvaluationSubmitted(employeeID, name, language, category, dropboxPath string) Event {
	return BaseEvent{
		Type: TypeEvaluationSubmitted,
		Data: map[string]interface{}{
			"employee_id":  employeeID,
			"name":         name,
			"language":     language,
			"category":     category,
			"dropbox_path": dropboxPath,
		},
		OccurredAt: time.Now(),
	}
}

func NewEvaluationApproved(employeeID, dropboxPath, evaluatedBy string) Event {
	return BaseEvent{
		Type: TypeEvaluationApproved,
		Data: map[string]interface{}{
			"employee_id":  employeeID,
			"dropbox_path": dropboxPath,
			"evaluated_by": evaluatedBy,
		},
		OccurredAt: time.Now(),
	}
}

func NewEvaluationReopened(employeeID, dropboxPath string) Event {
	return BaseEvent{
		Type: TypeEvaluationReopened,
		Data: map[string]interface{}{
			"employee_id":  employeeID,
			"dropbox_path": dropboxPath,
		},
		OccurredAt: time.Now(),
	}
}

func NewRecordRelocated(employeeID, fromPath, toPath string) Event {
	return BaseEvent{
		Type: TypeRecordRelocated,
		Data: map[string]interface{}{
			"employee_id": employeeID,
			"from_path":   fromPath,
			"to_path":     toPath,
		},
		OccurredAt: time.Now(),
	}
}

func NewEvaluationDeleted(employeeID, dropboxPath string) Event {
	return BaseEvent{
		Type: TypeEvaluationDeleted,
		Data: map[string]interface{}{
			"employee_id":  employeeID,
			"dropbox_path": dropboxPath,
		},
		OccurredAt: time.Now(),
	}
}
