package dto

type CreateScheduleRequest struct {
	Language string `json:"language" validate:"required"`
	SlotDate string `json:"slot_date" validate:"required"`
	SlotTime string `json:"slot_time" validate:"required"`
}

type ScheduleItemResponse struct {
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	Language    string `json:"language"`
	SlotDate    string `json:"slot_date"`
	SlotTime    string `json:"slot_time"`
	RequestedAt string `json:"requested_at"`
}
