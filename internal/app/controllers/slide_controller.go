package controllers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"
	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/app/models/dto"
	"github.com/yigit/scholars/internal/app/services"
	"github.com/yigit/scholars/internal/middleware"
)

// SlideService is the slide surface used by SlideController
type SlideService interface {
	GetSlide(ctx context.Context, id int64) (*dto.SlideResponse, error)
	ListSlides(ctx context.Context, filter *dto.SlideFilterRequest) (*dto.SlideListResponse, error)
	UpdateSlide(ctx context.Context, id int64, req *dto.UpdateSlideRequest, audioFile *multipart.FileHeader, actor models.Actor) (*services.SlideResult, error)
	AssignSlide(ctx context.Context, id int64, actor models.Actor) (*services.SlideResult, error)
	ReleaseSlide(ctx context.Context, id int64, actor models.Actor) (*services.SlideResult, error)
	ApproveSlide(ctx context.Context, id int64, actor models.Actor) (*services.SlideResult, error)
	RejectSlide(ctx context.Context, id int64, actor models.Actor) (*services.SlideResult, error)
}

// SlideController handles slide endpoints
type SlideController struct {
	slideService SlideService
	logger       zerolog.Logger
}

// NewSlideController creates a new SlideController
func NewSlideController(slideService SlideService, logger zerolog.Logger) *SlideController {
	return &SlideController{
		slideService: slideService,
		logger:       logger,
	}
}

func writeSlideResult(ctx *gin.Context, result *services.SlideResult) {
	ctx.Header(WorkflowAppliedHeader, strconv.FormatBool(result.Applied))
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: result.Slide})
}

// ListSlides lists slides ordered by course and position
// @Summary List slides
// @Tags slides
// @Produce json
// @Param course query int false "Only slides of this course"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.SlideListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /slides [get]
func (c *SlideController) ListSlides(ctx *gin.Context) {
	var filter dto.SlideFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.AbortWithBindingError(ctx, err)
		return
	}

	resp, err := c.slideService.ListSlides(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetSlide returns a slide
// @Summary Get a slide
// @Tags slides
// @Produce json
// @Param id path int true "Slide ID"
// @Success 200 {object} dto.APIResponse{data=dto.SlideResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 404 {object} dto.ErrorResponse "Slide not found"
// @Security BearerAuth
// @Router /slides/{id} [get]
func (c *SlideController) GetSlide(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	slide, err := c.slideService.GetSlide(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: slide})
}

// UpdateSlide applies a generic update to a slide
// @Summary Update a slide
// @Description Updates position and audio. Setting audio on a slide the caller may submit moves it to review and hands it to the course owner. The course field is ignored.
// @Tags slides
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Slide ID"
// @Param request body dto.UpdateSlideRequest false "Slide fields"
// @Param audio formData file false "Audio recording"
// @Success 200 {object} dto.APIResponse{data=dto.SlideResponse}
// @Header 200 {string} X-Workflow-Applied "Whether a workflow transition was applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Slide not found"
// @Failure 409 {object} dto.ErrorResponse "Slide changed concurrently"
// @Security BearerAuth
// @Router /slides/{id} [put]
// @Router /slides/{id} [patch]
func (c *SlideController) UpdateSlide(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSlideRequest
	if err := ctx.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		c.logger.Warn().Err(err).Int64("slideID", id).Msg("Invalid slide update payload")
		middleware.AbortWithBindingError(ctx, err)
		return
	}

	var audioFile *multipart.FileHeader
	if ctx.ContentType() == binding.MIMEMultipartPOSTForm {
		file, err := ctx.FormFile("audio")
		switch {
		case err == nil:
			audioFile = file
		case !errors.Is(err, http.ErrMissingFile):
			middleware.AbortWithBindingError(ctx, err)
			return
		}
	}

	result, err := c.slideService.UpdateSlide(ctx.Request.Context(), id, &req, audioFile, middleware.ActorFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	writeSlideResult(ctx, result)
}

type slideOperation func(ctx context.Context, id int64, actor models.Actor) (*services.SlideResult, error)

func (c *SlideController) runOperation(ctx *gin.Context, op slideOperation) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := op(ctx.Request.Context(), id, middleware.ActorFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	writeSlideResult(ctx, result)
}

// AssignSlide assigns a slide to the caller
// @Summary Assign a slide
// @Description Takes a new slide and starts work on it. Slides in any other state are returned unchanged.
// @Tags slides
// @Produce json
// @Param id path int true "Slide ID"
// @Success 200 {object} dto.APIResponse{data=dto.SlideResponse}
// @Header 200 {string} X-Workflow-Applied "Whether a workflow transition was applied"
// @Failure 404 {object} dto.ErrorResponse "Slide not found"
// @Security BearerAuth
// @Router /slides/{id}/assign [put]
func (c *SlideController) AssignSlide(ctx *gin.Context) {
	c.runOperation(ctx, c.slideService.AssignSlide)
}

// ReleaseSlide gives a slide back
// @Summary Release a slide
// @Description Returns a slide the caller is working on to the pool.
// @Tags slides
// @Produce json
// @Param id path int true "Slide ID"
// @Success 200 {object} dto.APIResponse{data=dto.SlideResponse}
// @Header 200 {string} X-Workflow-Applied "Whether a workflow transition was applied"
// @Failure 404 {object} dto.ErrorResponse "Slide not found"
// @Security BearerAuth
// @Router /slides/{id}/release [put]
func (c *SlideController) ReleaseSlide(ctx *gin.Context) {
	c.runOperation(ctx, c.slideService.ReleaseSlide)
}

// ApproveSlide publishes a slide under review
// @Summary Approve a slide
// @Description Publishes a slide under review. Only the course owner can approve.
// @Tags slides
// @Produce json
// @Param id path int true "Slide ID"
// @Success 200 {object} dto.APIResponse{data=dto.SlideResponse}
// @Header 200 {string} X-Workflow-Applied "Whether a workflow transition was applied"
// @Failure 404 {object} dto.ErrorResponse "Slide not found"
// @Security BearerAuth
// @Router /slides/{id}/approve [put]
func (c *SlideController) ApproveSlide(ctx *gin.Context) {
	c.runOperation(ctx, c.slideService.ApproveSlide)
}

// RejectSlide sends a slide under review back to work
// @Summary Reject a slide
// @Description Sends a slide under review back to in progress. Only the course owner can reject.
// @Tags slides
// @Produce json
// @Param id path int true "Slide ID"
// @Success 200 {object} dto.APIResponse{data=dto.SlideResponse}
// @Header 200 {string} X-Workflow-Applied "Whether a workflow transition was applied"
// @Failure 404 {object} dto.ErrorResponse "Slide not found"
// @Security BearerAuth
// @Router /slides/{id}/reject [put]
func (c *SlideController) RejectSlide(ctx *gin.Context) {
	c.runOperation(ctx, c.slideService.RejectSlide)
}
