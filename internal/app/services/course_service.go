package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/scholars/internal/app/auth"
	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/app/models/dto"
	"github.com/yigit/scholars/internal/pkg/apperrors"
	"github.com/yigit/scholars/internal/pkg/helpers"
	"github.com/yigit/scholars/internal/pkg/validation"
)

// CourseService handles course operations
type CourseService struct {
	courses      CourseStore
	orchestrator *CourseImportOrchestrator
	cache        CourseCache
	logger       zerolog.Logger
}

// NewCourseService creates a new CourseService. cache may be nil.
func NewCourseService(courses CourseStore, orchestrator *CourseImportOrchestrator, cache CourseCache, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courses:      courses,
		orchestrator: orchestrator,
		cache:        cache,
		logger:       logger,
	}
}

// CreateCourse creates a course owned by actor, importing its presentation when a gid is given
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest, actor models.Actor) (*dto.CourseResponse, error) {
	if errs := validation.ValidateCourse(req.Name, req.GID); !errs.Empty() {
		return nil, apperrors.NewValidationError(errs)
	}

	course := &models.Course{Name: strings.TrimSpace(req.Name)}
	if req.GID != nil && strings.TrimSpace(*req.GID) != "" {
		gid := strings.TrimSpace(*req.GID)
		course.GID = &gid
	}

	created, err := s.orchestrator.CreateWithOptionalImport(ctx, course, actor)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", created.ID).Bool("anonymous", actor.Anonymous).Msg("Course created")
	return dto.NewCourseResponse(created), nil
}

// ListCourses returns one page of course list items
func (s *CourseService) ListCourses(ctx context.Context, page, size int) (*dto.CourseListResponse, error) {
	page, size = helpers.NormalizePage(page, size)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	courses, total, err := s.courses.List(ctx, int(offset), limit)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	items := make([]dto.CourseListItem, 0, len(courses))
	for _, c := range courses {
		items = append(items, dto.NewCourseListItem(c))
	}

	return &dto.CourseListResponse{
		Courses:        items,
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

func (s *CourseService) loadCourse(ctx context.Context, id int64) (*models.Course, error) {
	if s.cache != nil {
		if course, ok := s.cache.Get(ctx, id); ok {
			return course, nil
		}
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, course)
	}
	return course, nil
}

// GetCourse returns the full projection of a course
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.loadCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCourseResponse(course), nil
}

// GenerateCourse re-imports the presentation of a course owned by actor. Import failures are
// only reported to operators; the course is returned either way.
func (s *CourseService) GenerateCourse(ctx context.Context, id int64, actor models.Actor) (*dto.CourseResponse, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := auth.ValidateCourseOwnership(course, actor); err != nil {
		return nil, err
	}

	course = s.orchestrator.Regenerate(ctx, course, actor)

	if s.cache != nil {
		s.cache.Invalidate(ctx, course.ID)
	}
	return dto.NewCourseResponse(course), nil
}
