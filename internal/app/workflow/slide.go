// Package workflow holds the slide review lifecycle. It performs no I/O: every operation takes
// a snapshot and returns the next snapshot together with whether anything changed.
package workflow

import (
	"strings"

	"github.com/yigit/scholars/internal/app/auth"
	"github.com/yigit/scholars/internal/app/models"
)

// Options tunes the state machine
type Options struct {
	// ClearAssigneeOnPublish clears assigned_to when a slide is approved. When false the
	// reviewing owner stays recorded as assignee of the published slide.
	ClearAssigneeOnPublish bool
}

// SlideMachine applies workflow operations to slide snapshots
type SlideMachine struct {
	opts Options
}

// NewSlideMachine creates a new SlideMachine
func NewSlideMachine(opts Options) *SlideMachine {
	return &SlideMachine{opts: opts}
}

// Transition is the outcome of a workflow operation. Applied is false when the guard did not
// hold and Slide is returned unchanged.
type Transition struct {
	Slide   models.Slide
	Applied bool
}

// Update carries the client-writable fields of a generic slide update
type Update struct {
	Position *int
	Audio    *string
}

// UpdateResult is the outcome of ApplyUpdate
type UpdateResult struct {
	Slide models.Slide
	// Submitted is true when the update handed the slide to the course owner for review
	Submitted bool
	// Changed is true when any field differs from the input snapshot
	Changed bool
	// AudioIgnored is true when audio was supplied outside a valid submission
	AudioIgnored bool
}

func unchanged(slide models.Slide) Transition {
	return Transition{Slide: slide}
}

// Assign takes a draft slide for the actor
func (m *SlideMachine) Assign(slide models.Slide, actor models.Actor) Transition {
	if slide.Status != models.SlideStatusDraft || actor.Anonymous {
		return unchanged(slide)
	}
	slide.AssignedToID = actor.Ref()
	slide.Status = models.SlideStatusInProgress
	return Transition{Slide: slide, Applied: true}
}

// Release hands an in-progress slide back to the pool. Only the assignee may release.
func (m *SlideMachine) Release(slide models.Slide, actor models.Actor) Transition {
	if slide.Status != models.SlideStatusInProgress || !auth.IsAssignee(&slide, actor) {
		return unchanged(slide)
	}
	slide.AssignedToID = nil
	slide.Status = models.SlideStatusDraft
	return Transition{Slide: slide, Applied: true}
}

// Approve publishes a slide awaiting review. Only the course owner may approve.
func (m *SlideMachine) Approve(slide models.Slide, course *models.Course, actor models.Actor) Transition {
	if slide.Status != models.SlideStatusPendingApproval || !auth.IsOwner(course, actor) {
		return unchanged(slide)
	}
	slide.Status = models.SlideStatusPublished
	if m.opts.ClearAssigneeOnPublish {
		slide.AssignedToID = nil
	}
	return Transition{Slide: slide, Applied: true}
}

// Reject sends a slide awaiting review back to work. assigned_to is kept as is, so the slide
// stays with the reviewing owner until someone else takes it.
func (m *SlideMachine) Reject(slide models.Slide, course *models.Course, actor models.Actor) Transition {
	if slide.Status != models.SlideStatusPendingApproval || !auth.IsOwner(course, actor) {
		return unchanged(slide)
	}
	slide.Status = models.SlideStatusInProgress
	return Transition{Slide: slide, Applied: true}
}

// CanSubmit reports whether an update from actor carrying audio would submit the slide
func CanSubmit(slide *models.Slide, course *models.Course, actor models.Actor) bool {
	return slide.Status == models.SlideStatusInProgress &&
		auth.IsAssignee(slide, actor) &&
		course.HasOwner()
}

// ApplyUpdate applies a generic update. Position is always applied. Audio is only accepted as
// part of a submission, which moves the slide to pending approval and reassigns it to the
// course owner. Blank audio is not an audio artifact and never submits. The course link is
// never taken from the update.
func (m *SlideMachine) ApplyUpdate(slide models.Slide, course *models.Course, actor models.Actor, upd Update) UpdateResult {
	before := slide
	res := UpdateResult{}

	if upd.Audio != nil {
		if strings.TrimSpace(*upd.Audio) != "" && CanSubmit(&slide, course, actor) {
			audio := *upd.Audio
			slide.Audio = &audio
			slide.Status = models.SlideStatusPendingApproval
			owner := *course.OwnerID
			slide.AssignedToID = &owner
			res.Submitted = true
		} else {
			res.AudioIgnored = true
		}
	}

	if upd.Position != nil {
		slide.Position = *upd.Position
	}

	if course != nil {
		slide.CourseID = course.ID
	}

	res.Slide = slide
	res.Changed = !sameSlide(before, slide)
	return res
}

func sameSlide(a, b models.Slide) bool {
	return a.Position == b.Position &&
		a.Status == b.Status &&
		a.CourseID == b.CourseID &&
		equalInt64(a.AssignedToID, b.AssignedToID) &&
		equalString(a.Audio, b.Audio)
}

func equalInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
