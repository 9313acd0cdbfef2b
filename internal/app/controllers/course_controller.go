package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/app/models/dto"
	"github.com/yigit/scholars/internal/middleware"
	"github.com/yigit/scholars/internal/pkg/helpers"
)

// CourseService is the course surface used by CourseController
type CourseService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest, actor models.Actor) (*dto.CourseResponse, error)
	ListCourses(ctx context.Context, page, size int) (*dto.CourseListResponse, error)
	GetCourse(ctx context.Context, id int64) (*dto.CourseResponse, error)
	GenerateCourse(ctx context.Context, id int64, actor models.Actor) (*dto.CourseResponse, error)
}

// CourseController handles course endpoints
type CourseController struct {
	courseService CourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService CourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

// CreateCourse creates a course and imports its presentation when a gid is given
// @Summary Create a course
// @Description Creates a course owned by the caller. When gid is set the presentation is imported; if the import fails the course is removed again.
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid input or import failed"
// @Failure 401 {object} dto.ErrorResponse "Invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid course request payload")
		middleware.AbortWithBindingError(ctx, err)
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req, middleware.ActorFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Location", fmt.Sprintf("/api/v1/courses/%d", course.ID))
	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: course})
}

// ListCourses lists courses
// @Summary List courses
// @Tags courses
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.courseService.ListCourses(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetCourse returns a course
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: course})
}

// GenerateCourse re-imports the presentation of a course
// @Summary Regenerate course slides
// @Description Re-imports the presentation of a course the caller owns. Import failures are reported to operators and do not change the response.
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Security BearerAuth
// @Router /courses/{id}/generate [post]
func (c *CourseController) GenerateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GenerateCourse(ctx.Request.Context(), id, middleware.ActorFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: course})
}
