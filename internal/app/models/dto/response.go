package dto

// APIResponse is the envelope of every JSON response
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// PaginationInfo describes the page returned by a list endpoint
type PaginationInfo struct {
	CurrentPage int   `json:"current_page" example:"1"`
	TotalPages  int   `json:"total_pages" example:"3"`
	PageSize    int   `json:"page_size" example:"10"`
	TotalItems  int64 `json:"total_items" example:"27"`
}

// ErrorResponse documents the error envelope
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
