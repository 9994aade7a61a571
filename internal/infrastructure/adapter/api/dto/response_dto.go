package dto

import "github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"

// Response wraps one successful result
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// PaginatedResponse wraps one page of a listing
type PaginatedResponse struct {
	Status     string            `json:"status"`
	Message    string            `json:"message"`
	Data       any               `json:"data"`
	Pagination entity.Pagination `json:"pagination"`
}

// NewResponse builds a success body
func NewResponse(message string, data any) Response {
	return Response{Status: StatusSuccess, Message: message, Data: data}
}

// NewPaginated builds a success body for a page
func NewPaginated[T any](message string, page *entity.Page[T]) PaginatedResponse {
	return PaginatedResponse{
		Status:     StatusSuccess,
		Message:    message,
		Data:       page.Items,
		Pagination: page.Pagination,
	}
}
