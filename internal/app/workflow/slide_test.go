package workflow

import (
	"testing"

	"github.com/yigit/scholars/internal/app/models"
)

const (
	ownerID = int64(1)
	userA   = int64(10)
	userB   = int64(20)
)

func int64Ptr(v int64) *int64    { return &v }
func strPtr(v string) *string    { return &v }
func intPtr(v int) *int          { return &v }
func ownedCourse() *models.Course { return &models.Course{ID: 5, OwnerID: int64Ptr(ownerID)} }

func draftSlide() models.Slide {
	return models.Slide{ID: 100, CourseID: 5, Position: 0, Status: models.SlideStatusDraft}
}

func inProgress(assignee int64) models.Slide {
	s := draftSlide()
	s.Status = models.SlideStatusInProgress
	s.AssignedToID = int64Ptr(assignee)
	return s
}

func pending(assignee int64) models.Slide {
	s := inProgress(assignee)
	s.Status = models.SlideStatusPendingApproval
	return s
}

func assigneeOf(s models.Slide) int64 {
	if s.AssignedToID == nil {
		return 0
	}
	return *s.AssignedToID
}

func TestAssign(t *testing.T) {
	m := NewSlideMachine(Options{})

	tests := []struct {
		name         string
		slide        models.Slide
		actor        models.Actor
		wantApplied  bool
		wantStatus   models.SlideStatus
		wantAssignee int64
	}{
		{"draft is taken", draftSlide(), models.UserActor(userA), true, models.SlideStatusInProgress, userA},
		{"in progress is untouched", inProgress(userB), models.UserActor(userA), false, models.SlideStatusInProgress, userB},
		{"pending is untouched", pending(ownerID), models.UserActor(userA), false, models.SlideStatusPendingApproval, ownerID},
		{"anonymous cannot take", draftSlide(), models.AnonymousActor(), false, models.SlideStatusDraft, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Assign(tt.slide, tt.actor)
			if got.Applied != tt.wantApplied {
				t.Fatalf("Applied = %v, want %v", got.Applied, tt.wantApplied)
			}
			if got.Slide.Status != tt.wantStatus {
				t.Fatalf("Status = %v, want %v", got.Slide.Status, tt.wantStatus)
			}
			if assigneeOf(got.Slide) != tt.wantAssignee {
				t.Fatalf("AssignedTo = %d, want %d", assigneeOf(got.Slide), tt.wantAssignee)
			}
		})
	}
}

func TestAssignIsIdempotent(t *testing.T) {
	m := NewSlideMachine(Options{})
	actor := models.UserActor(userA)

	once := m.Assign(draftSlide(), actor)
	twice := m.Assign(once.Slide, actor)

	if twice.Applied {
		t.Fatal("second assign should be a no-op")
	}
	if twice.Slide.Status != once.Slide.Status || assigneeOf(twice.Slide) != assigneeOf(once.Slide) {
		t.Fatalf("second assign changed state: %+v vs %+v", twice.Slide, once.Slide)
	}
}

func TestRelease(t *testing.T) {
	m := NewSlideMachine(Options{})

	t.Run("assignee releases", func(t *testing.T) {
		got := m.Release(inProgress(userA), models.UserActor(userA))
		if !got.Applied || got.Slide.Status != models.SlideStatusDraft || got.Slide.AssignedToID != nil {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("other user cannot release", func(t *testing.T) {
		assigned := m.Assign(draftSlide(), models.UserActor(userA)).Slide
		got := m.Release(assigned, models.UserActor(userB))
		if got.Applied {
			t.Fatal("release by non-assignee should be a no-op")
		}
		if got.Slide.Status != models.SlideStatusInProgress || assigneeOf(got.Slide) != userA {
			t.Fatalf("slide changed: %+v", got.Slide)
		}
	})

	t.Run("pending cannot be released", func(t *testing.T) {
		got := m.Release(pending(userA), models.UserActor(userA))
		if got.Applied {
			t.Fatal("release of pending slide should be a no-op")
		}
	})

	t.Run("anonymous cannot release", func(t *testing.T) {
		got := m.Release(inProgress(userA), models.AnonymousActor())
		if got.Applied {
			t.Fatal("anonymous release should be a no-op")
		}
	})
}

func TestApproveAndReject(t *testing.T) {
	course := ownedCourse()

	t.Run("owner approves", func(t *testing.T) {
		m := NewSlideMachine(Options{})
		got := m.Approve(pending(ownerID), course, models.UserActor(ownerID))
		if !got.Applied || got.Slide.Status != models.SlideStatusPublished {
			t.Fatalf("unexpected result: %+v", got)
		}
		if assigneeOf(got.Slide) != ownerID {
			t.Fatalf("approve should keep the reviewer as assignee, got %d", assigneeOf(got.Slide))
		}
	})

	t.Run("owner approves with assignee clearing", func(t *testing.T) {
		m := NewSlideMachine(Options{ClearAssigneeOnPublish: true})
		got := m.Approve(pending(ownerID), course, models.UserActor(ownerID))
		if !got.Applied || got.Slide.AssignedToID != nil {
			t.Fatalf("expected cleared assignee, got %+v", got.Slide)
		}
		if !got.Slide.AssignmentConsistent() {
			t.Fatal("published slide should have no assignee")
		}
	})

	t.Run("non owner cannot approve", func(t *testing.T) {
		m := NewSlideMachine(Options{})
		before := pending(ownerID)
		got := m.Approve(before, course, models.UserActor(userA))
		if got.Applied || got.Slide.Status != models.SlideStatusPendingApproval {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("approve requires pending", func(t *testing.T) {
		m := NewSlideMachine(Options{})
		got := m.Approve(inProgress(userA), course, models.UserActor(ownerID))
		if got.Applied {
			t.Fatal("approve of in-progress slide should be a no-op")
		}
	})

	t.Run("owner rejects", func(t *testing.T) {
		m := NewSlideMachine(Options{})
		got := m.Reject(pending(ownerID), course, models.UserActor(ownerID))
		if !got.Applied || got.Slide.Status != models.SlideStatusInProgress {
			t.Fatalf("unexpected result: %+v", got)
		}
		if assigneeOf(got.Slide) != ownerID {
			t.Fatalf("reject should keep the assignee, got %d", assigneeOf(got.Slide))
		}
	})

	t.Run("non owner cannot reject", func(t *testing.T) {
		m := NewSlideMachine(Options{})
		got := m.Reject(pending(ownerID), course, models.UserActor(userB))
		if got.Applied {
			t.Fatal("reject by non-owner should be a no-op")
		}
	})

	t.Run("ownerless course cannot be reviewed", func(t *testing.T) {
		m := NewSlideMachine(Options{})
		got := m.Approve(pending(userA), &models.Course{ID: 9}, models.AnonymousActor())
		if got.Applied {
			t.Fatal("approve on ownerless course should be a no-op")
		}
	})
}

func TestApplyUpdate(t *testing.T) {
	m := NewSlideMachine(Options{})
	course := ownedCourse()

	t.Run("assignee submits audio", func(t *testing.T) {
		res := m.ApplyUpdate(inProgress(userA), course, models.UserActor(userA), Update{Audio: strPtr("a.mp3")})
		if !res.Submitted || !res.Changed {
			t.Fatalf("expected submission, got %+v", res)
		}
		if res.Slide.Status != models.SlideStatusPendingApproval {
			t.Fatalf("Status = %v, want pending approval", res.Slide.Status)
		}
		if assigneeOf(res.Slide) != ownerID {
			t.Fatalf("AssignedTo = %d, want owner", assigneeOf(res.Slide))
		}
		if res.Slide.Audio == nil || *res.Slide.Audio != "a.mp3" {
			t.Fatalf("Audio = %v", res.Slide.Audio)
		}
	})

	t.Run("position applied alongside submission", func(t *testing.T) {
		res := m.ApplyUpdate(inProgress(userA), course, models.UserActor(userA), Update{Audio: strPtr("a.mp3"), Position: intPtr(4)})
		if !res.Submitted || res.Slide.Position != 4 {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("position applied without submission", func(t *testing.T) {
		res := m.ApplyUpdate(draftSlide(), course, models.UserActor(userB), Update{Position: intPtr(2)})
		if res.Submitted || !res.Changed || res.Slide.Position != 2 {
			t.Fatalf("unexpected result: %+v", res)
		}
		if res.Slide.Status != models.SlideStatusDraft {
			t.Fatalf("status changed: %v", res.Slide.Status)
		}
	})

	t.Run("audio from non assignee is ignored", func(t *testing.T) {
		res := m.ApplyUpdate(inProgress(userA), course, models.UserActor(userB), Update{Audio: strPtr("x.mp3")})
		if res.Submitted || res.Changed || !res.AudioIgnored {
			t.Fatalf("unexpected result: %+v", res)
		}
		if res.Slide.Audio != nil {
			t.Fatal("audio should not be written")
		}
	})

	t.Run("blank audio does not submit", func(t *testing.T) {
		for _, audio := range []string{"", "   "} {
			res := m.ApplyUpdate(inProgress(userA), course, models.UserActor(userA), Update{Audio: strPtr(audio)})
			if res.Submitted || res.Changed || !res.AudioIgnored {
				t.Fatalf("audio %q: unexpected result %+v", audio, res)
			}
			if res.Slide.Status != models.SlideStatusInProgress || assigneeOf(res.Slide) != userA {
				t.Fatalf("audio %q: slide moved to %v assigned to %d", audio, res.Slide.Status, assigneeOf(res.Slide))
			}
			if res.Slide.Audio != nil {
				t.Fatalf("audio %q: audio should not be written", audio)
			}
		}
	})

	t.Run("audio on draft is ignored", func(t *testing.T) {
		res := m.ApplyUpdate(draftSlide(), course, models.UserActor(userA), Update{Audio: strPtr("x.mp3")})
		if res.Submitted || !res.AudioIgnored {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("no submission on ownerless course", func(t *testing.T) {
		ownerless := &models.Course{ID: 5}
		res := m.ApplyUpdate(inProgress(userA), ownerless, models.UserActor(userA), Update{Audio: strPtr("x.mp3")})
		if res.Submitted {
			t.Fatal("submission requires a course owner")
		}
		if !res.Slide.AssignmentConsistent() {
			t.Fatal("assignment invariant broken")
		}
	})

	t.Run("course link is forced", func(t *testing.T) {
		s := draftSlide()
		s.CourseID = 999
		res := m.ApplyUpdate(s, course, models.UserActor(userA), Update{})
		if res.Slide.CourseID != course.ID {
			t.Fatalf("CourseID = %d, want %d", res.Slide.CourseID, course.ID)
		}
	})

	t.Run("empty update is unchanged", func(t *testing.T) {
		res := m.ApplyUpdate(draftSlide(), course, models.UserActor(userA), Update{})
		if res.Changed {
			t.Fatal("empty update should not change the slide")
		}
	})
}

func TestAssignmentInvariantHolds(t *testing.T) {
	m := NewSlideMachine(Options{ClearAssigneeOnPublish: true})
	course := ownedCourse()
	actors := []models.Actor{
		models.UserActor(ownerID),
		models.UserActor(userA),
		models.UserActor(userB),
		models.AnonymousActor(),
	}
	starts := []models.Slide{draftSlide(), inProgress(userA), pending(ownerID)}

	ops := map[string]func(models.Slide, models.Actor) models.Slide{
		"assign":  func(s models.Slide, a models.Actor) models.Slide { return m.Assign(s, a).Slide },
		"release": func(s models.Slide, a models.Actor) models.Slide { return m.Release(s, a).Slide },
		"approve": func(s models.Slide, a models.Actor) models.Slide { return m.Approve(s, course, a).Slide },
		"reject":  func(s models.Slide, a models.Actor) models.Slide { return m.Reject(s, course, a).Slide },
		"submit": func(s models.Slide, a models.Actor) models.Slide {
			return m.ApplyUpdate(s, course, a, Update{Audio: strPtr("a.mp3")}).Slide
		},
	}

	for name, op := range ops {
		for _, start := range starts {
			for _, actor := range actors {
				got := op(start, actor)
				if !got.AssignmentConsistent() {
					t.Fatalf("%s from %v by %+v broke invariant: %+v", name, start.Status, actor, got)
				}
			}
		}
	}
}

func TestPublishedIsTerminal(t *testing.T) {
	m := NewSlideMachine(Options{})
	course := ownedCourse()
	published := pending(ownerID)
	published.Status = models.SlideStatusPublished

	for _, actor := range []models.Actor{models.UserActor(ownerID), models.UserActor(userA)} {
		if m.Assign(published, actor).Applied ||
			m.Release(published, actor).Applied ||
			m.Approve(published, course, actor).Applied ||
			m.Reject(published, course, actor).Applied {
			t.Fatalf("published slide transitioned for %+v", actor)
		}
		if res := m.ApplyUpdate(published, course, actor, Update{Audio: strPtr("x")}); res.Submitted {
			t.Fatalf("published slide submitted for %+v", actor)
		}
	}
}

func TestReviewScenario(t *testing.T) {
	m := NewSlideMachine(Options{})
	course := ownedCourse()
	u1 := models.UserActor(userA)
	owner := models.UserActor(ownerID)

	slide := draftSlide()

	slide = m.Assign(slide, u1).Slide
	if slide.Status != models.SlideStatusInProgress || assigneeOf(slide) != userA {
		t.Fatalf("after assign: %+v", slide)
	}

	slide = m.ApplyUpdate(slide, course, u1, Update{Audio: strPtr("narration.mp3")}).Slide
	if slide.Status != models.SlideStatusPendingApproval || assigneeOf(slide) != ownerID {
		t.Fatalf("after submit: %+v", slide)
	}

	slide = m.Reject(slide, course, owner).Slide
	if slide.Status != models.SlideStatusInProgress || assigneeOf(slide) != ownerID {
		t.Fatalf("after reject: %+v", slide)
	}

	tr := m.Approve(slide, course, models.UserActor(userB))
	if tr.Applied || tr.Slide.Status != models.SlideStatusInProgress {
		t.Fatalf("after approve by non-owner: %+v", tr)
	}
}
