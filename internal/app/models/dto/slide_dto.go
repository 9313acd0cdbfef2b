package dto

import (
	"github.com/yigit/scholars/internal/app/models"
)

// UpdateSlideRequest represents a generic slide update. Course is accepted for compatibility
// with older clients and ignored.
type UpdateSlideRequest struct {
	Position *int    `json:"position" form:"position" binding:"omitempty,min=0" example:"3"`
	Audio    *string `json:"audio" form:"audio" binding:"omitempty,max=1024" example:"http://localhost:8080/uploads/audio/a.mp3"`
	Course   *int64  `json:"course" form:"course" swaggerignore:"true"`
}

// SlideFilterRequest holds the query filters of the slide list
type SlideFilterRequest struct {
	PaginationQuery
	CourseID *int64 `form:"course" binding:"omitempty,min=1" example:"1"`
}

// SlideResponse is the full projection of a slide
type SlideResponse struct {
	ID         int64              `json:"id" example:"12"`
	Position   int                `json:"position" example:"0"`
	Course     int64              `json:"course" example:"1"`
	Status     models.SlideStatus `json:"status" example:"1"`
	StatusText string             `json:"status_text" example:"In progress"`
	AssignedTo *int64             `json:"assigned_to" example:"10"`
	Audio      *string            `json:"audio" example:"http://localhost:8080/uploads/audio/a.mp3"`
}

// SlideListItem is the reduced projection used by slide lists
type SlideListItem struct {
	ID         int64              `json:"id" example:"12"`
	Position   int                `json:"position" example:"0"`
	Course     int64              `json:"course" example:"1"`
	Status     models.SlideStatus `json:"status" example:"1"`
	StatusText string             `json:"status_text" example:"In progress"`
}

// SlideListResponse is a page of slides
type SlideListResponse struct {
	Slides         []SlideListItem `json:"slides"`
	PaginationInfo PaginationInfo  `json:"pagination"`
}

// NewSlideResponse builds the full projection of a slide
func NewSlideResponse(s *models.Slide) *SlideResponse {
	return &SlideResponse{
		ID:         s.ID,
		Position:   s.Position,
		Course:     s.CourseID,
		Status:     s.Status,
		StatusText: s.Status.Text(),
		AssignedTo: s.AssignedToID,
		Audio:      s.Audio,
	}
}

// NewSlideListItem builds the list projection of a slide
func NewSlideListItem(s *models.Slide) SlideListItem {
	return SlideListItem{
		ID:         s.ID,
		Position:   s.Position,
		Course:     s.CourseID,
		Status:     s.Status,
		StatusText: s.Status.Text(),
	}
}
