package auth

import (
	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/pkg/apperrors"
)

// IsOwner reports whether the actor owns the course. Anonymous actors and ownerless courses
// never match.
func IsOwner(course *models.Course, actor models.Actor) bool {
	if course == nil {
		return false
	}
	return actor.Is(course.OwnerID)
}

// IsAssignee reports whether the actor is the user currently responsible for the slide
func IsAssignee(slide *models.Slide, actor models.Actor) bool {
	if slide == nil {
		return false
	}
	return actor.Is(slide.AssignedToID)
}

// ValidateCourseOwnership returns a permission error unless the actor owns the course
func ValidateCourseOwnership(course *models.Course, actor models.Actor) error {
	if !IsOwner(course, actor) {
		return apperrors.NewForbiddenError("Only the course owner can perform this action")
	}
	return nil
}
