package dto

// Response statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewError builds an error body
func NewError(message string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Message: message}
}
