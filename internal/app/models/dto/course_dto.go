package dto

import (
	"time"

	"github.com/yigit/scholars/internal/app/models"
)

// CreateCourseRequest represents the payload for creating a course
type CreateCourseRequest struct {
	Name string  `json:"name" binding:"required,max=255" example:"Introduction to Algorithms"`
	GID  *string `json:"gid" binding:"omitempty,max=255" example:"1AbCdEfGhIjKlMnOpQrStUv"`
}

// CourseResponse is the full projection of a course
type CourseResponse struct {
	ID        int64     `json:"id" example:"1"`
	Name      string    `json:"name" example:"Introduction to Algorithms"`
	Owner     *int64    `json:"owner" example:"7"`
	GID       *string   `json:"gid" example:"1AbCdEfGhIjKlMnOpQrStUv"`
	Status    string    `json:"status" example:"generated"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourseListItem is the reduced projection used by course lists
type CourseListItem struct {
	ID     int64  `json:"id" example:"1"`
	Name   string `json:"name" example:"Introduction to Algorithms"`
	Status string `json:"status" example:"generated"`
	Owner  *int64 `json:"owner" example:"7"`
}

// CourseListResponse is a page of courses
type CourseListResponse struct {
	Courses        []CourseListItem `json:"courses"`
	PaginationInfo PaginationInfo   `json:"pagination"`
}

// NewCourseResponse builds the full projection of a course
func NewCourseResponse(c *models.Course) *CourseResponse {
	return &CourseResponse{
		ID:        c.ID,
		Name:      c.Name,
		Owner:     c.OwnerID,
		GID:       c.GID,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewCourseListItem builds the list projection of a course
func NewCourseListItem(c *models.Course) CourseListItem {
	return CourseListItem{
		ID:     c.ID,
		Name:   c.Name,
		Status: c.Status,
		Owner:  c.OwnerID,
	}
}
