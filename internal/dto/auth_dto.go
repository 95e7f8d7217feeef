package dto

type TestLoginRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
}

type GateLoginRequest struct {
	Role     string `json:"role" validate:"required,oneof=instructor admin"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}
