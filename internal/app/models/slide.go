package models

import (
	"time"
)

// SlideStatus is the workflow state of a slide. The integer values are persisted and exposed
// over the API, so they must not be renumbered.
type SlideStatus int

const (
	SlideStatusDraft           SlideStatus = 0
	SlideStatusInProgress      SlideStatus = 1
	SlideStatusPendingApproval SlideStatus = 2
	SlideStatusPublished       SlideStatus = 3
)

// Text returns the human readable label of the status
func (s SlideStatus) Text() string {
	switch s {
	case SlideStatusDraft:
		return "Draft"
	case SlideStatusInProgress:
		return "In progress"
	case SlideStatusPendingApproval:
		return "Pending approval"
	case SlideStatusPublished:
		return "Published"
	default:
		return "Unknown"
	}
}

// RequiresAssignee reports whether a slide in this status must have an assignee
func (s SlideStatus) RequiresAssignee() bool {
	return s == SlideStatusInProgress || s == SlideStatusPendingApproval
}

// Slide defines the slide model based on the 'slides' table
type Slide struct {
	ID           int64       `json:"id" db:"id" example:"12"`
	CourseID     int64       `json:"course" db:"course_id" example:"1"`
	Position     int         `json:"position" db:"position" example:"0"`
	Status       SlideStatus `json:"status" db:"status" example:"0"`
	AssignedToID *int64      `json:"assignedTo,omitempty" db:"assigned_to_id"`
	Audio        *string     `json:"audio,omitempty" db:"audio"`
	PageID       *string     `json:"pageId,omitempty" db:"page_id"` // Object id of the imported presentation page
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
}

// AssignmentConsistent reports whether the assignee is set exactly when the status requires one
func (s *Slide) AssignmentConsistent() bool {
	return (s.AssignedToID != nil) == s.Status.RequiresAssignee()
}
