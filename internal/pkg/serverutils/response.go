package serverutils

// BaseResponse is the envelope every route returns: success responses
// carry message/data, failures carry error and optional details.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(errMsg string, details ...string) BaseResponse[any] {
	resp := BaseResponse[any]{
		Success: false,
		Error:   errMsg,
	}
	if len(details) > 0 {
		resp.Details = details[0]
	}
	return resp
}
