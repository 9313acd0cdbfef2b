package dto

// PaginationQuery holds the paging query parameters shared by list endpoints
type PaginationQuery struct {
	Page int `form:"page" binding:"omitempty,min=1" example:"1"`
	Size int `form:"size" binding:"omitempty,min=1,max=100" example:"10"`
}
