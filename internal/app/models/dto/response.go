package dto

// Response is the success envelope returned by every endpoint
type Response struct {
	Success bool        `json:"success" example:"true"`
	Count   *int        `json:"count,omitempty" example:"2"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the failure envelope produced by the error handler
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"resource not found"`
}

// NewResponse wraps data in a success envelope
func NewResponse(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// NewListResponse wraps a list in a success envelope carrying its length
func NewListResponse(data interface{}, count int) Response {
	return Response{Success: true, Count: &count, Data: data}
}

// NewErrorResponse creates a failure envelope
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}
