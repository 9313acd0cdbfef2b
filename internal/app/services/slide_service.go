package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/app/models/dto"
	"github.com/yigit/scholars/internal/app/repositories"
	"github.com/yigit/scholars/internal/app/workflow"
	"github.com/yigit/scholars/internal/pkg/filestorage"
	"github.com/yigit/scholars/internal/pkg/helpers"
)

// SlideResult is a slide projection plus whether the requested operation changed anything
type SlideResult struct {
	Slide   *dto.SlideResponse
	Applied bool
}

// SlideService handles slide operations
type SlideService struct {
	slides         SlideStore
	courses        CourseStore
	machine        *workflow.SlideMachine
	storage        filestorage.FileStorage
	compareAndSwap bool
	logger         zerolog.Logger
}

// NewSlideService creates a new SlideService. With compareAndSwap set every write is
// conditioned on the status that was read.
func NewSlideService(
	slides SlideStore,
	courses CourseStore,
	machine *workflow.SlideMachine,
	storage filestorage.FileStorage,
	compareAndSwap bool,
	logger zerolog.Logger,
) *SlideService {
	return &SlideService{
		slides:         slides,
		courses:        courses,
		machine:        machine,
		storage:        storage,
		compareAndSwap: compareAndSwap,
		logger:         logger,
	}
}

// GetSlide returns the full projection of a slide
func (s *SlideService) GetSlide(ctx context.Context, id int64) (*dto.SlideResponse, error) {
	slide, err := s.slides.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSlideResponse(slide), nil
}

// ListSlides returns one page of slide list items
func (s *SlideService) ListSlides(ctx context.Context, filter *dto.SlideFilterRequest) (*dto.SlideListResponse, error) {
	page, size := helpers.NormalizePage(filter.Page, filter.Size)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	slides, total, err := s.slides.List(ctx, repositories.SlideFilter{CourseID: filter.CourseID}, int(offset), limit)
	if err != nil {
		return nil, fmt.Errorf("error listing slides: %w", err)
	}

	items := make([]dto.SlideListItem, 0, len(slides))
	for _, sl := range slides {
		items = append(items, dto.NewSlideListItem(sl))
	}

	return &dto.SlideListResponse{
		Slides:         items,
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

func (s *SlideService) persist(ctx context.Context, next *models.Slide, before models.SlideStatus) error {
	var expected *models.SlideStatus
	if s.compareAndSwap {
		expected = &before
	}
	return s.slides.Update(ctx, next, expected)
}

// UpdateSlide applies a generic update. Audio, given inline or as an uploaded file, submits
// the slide for review when actor is its assignee; otherwise it is dropped.
func (s *SlideService) UpdateSlide(ctx context.Context, id int64, req *dto.UpdateSlideRequest, audioFile *multipart.FileHeader, actor models.Actor) (*SlideResult, error) {
	slide, err := s.slides.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	course, err := s.courses.GetByID(ctx, slide.CourseID)
	if err != nil {
		return nil, err
	}

	upd := workflow.Update{Position: req.Position, Audio: req.Audio}

	var stored string
	if audioFile != nil {
		if workflow.CanSubmit(slide, course, actor) && s.storage != nil {
			stored, err = s.storage.SaveFileWithPath(audioFile, filestorage.AudioDir)
			if err != nil {
				return nil, fmt.Errorf("error storing audio: %w", err)
			}
			upd.Audio = &stored
		} else {
			upd.Audio = new(string)
		}
	}

	res := s.machine.ApplyUpdate(*slide, course, actor, upd)
	if res.AudioIgnored {
		s.logger.Debug().Int64("slideID", id).Int64("actorID", actor.ID).Msg("Audio ignored outside of a submission")
	}

	if res.Changed {
		next := res.Slide
		if err := s.persist(ctx, &next, slide.Status); err != nil {
			if stored != "" {
				_ = s.storage.DeleteFile(stored)
			}
			return nil, err
		}
		res.Slide = next
	}

	if res.Submitted {
		s.logger.Info().Int64("slideID", id).Int64("actorID", actor.ID).Msg("Slide submitted for approval")
	}

	return &SlideResult{Slide: dto.NewSlideResponse(&res.Slide), Applied: res.Changed}, nil
}

type transitionFn func(slide models.Slide, course *models.Course) workflow.Transition

func (s *SlideService) transition(ctx context.Context, id int64, op string, needsCourse bool, actor models.Actor, fn transitionFn) (*SlideResult, error) {
	slide, err := s.slides.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var course *models.Course
	if needsCourse {
		if course, err = s.courses.GetByID(ctx, slide.CourseID); err != nil {
			return nil, err
		}
	}

	t := fn(*slide, course)
	if t.Applied {
		next := t.Slide
		if err := s.persist(ctx, &next, slide.Status); err != nil {
			return nil, err
		}
		t.Slide = next
	}

	s.logger.Info().
		Str("op", op).
		Int64("slideID", id).
		Int64("actorID", actor.ID).
		Bool("anonymous", actor.Anonymous).
		Bool("applied", t.Applied).
		Int("status", int(t.Slide.Status)).
		Msg("Slide workflow operation")

	return &SlideResult{Slide: dto.NewSlideResponse(&t.Slide), Applied: t.Applied}, nil
}

// AssignSlide takes a draft slide for actor
func (s *SlideService) AssignSlide(ctx context.Context, id int64, actor models.Actor) (*SlideResult, error) {
	return s.transition(ctx, id, "assign", false, actor, func(slide models.Slide, _ *models.Course) workflow.Transition {
		return s.machine.Assign(slide, actor)
	})
}

// ReleaseSlide returns an in-progress slide to draft when actor is its assignee
func (s *SlideService) ReleaseSlide(ctx context.Context, id int64, actor models.Actor) (*SlideResult, error) {
	return s.transition(ctx, id, "release", false, actor, func(slide models.Slide, _ *models.Course) workflow.Transition {
		return s.machine.Release(slide, actor)
	})
}

// ApproveSlide publishes a pending slide when actor owns the course
func (s *SlideService) ApproveSlide(ctx context.Context, id int64, actor models.Actor) (*SlideResult, error) {
	return s.transition(ctx, id, "approve", true, actor, func(slide models.Slide, course *models.Course) workflow.Transition {
		return s.machine.Approve(slide, course, actor)
	})
}

// RejectSlide sends a pending slide back to work when actor owns the course
func (s *SlideService) RejectSlide(ctx context.Context, id int64, actor models.Actor) (*SlideResult, error) {
	return s.transition(ctx, id, "reject", true, actor, func(slide models.Slide, course *models.Course) workflow.Transition {
		return s.machine.Reject(slide, course, actor)
	})
}
