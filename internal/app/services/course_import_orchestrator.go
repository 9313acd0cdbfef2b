package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/pkg/apperrors"
	"github.com/yigit/scholars/internal/pkg/email"
	"github.com/yigit/scholars/internal/pkg/telemetry"
)

// notifyTimeout bounds a single operator report
const notifyTimeout = 30 * time.Second

// CourseImportOrchestrator ties course creation to the presentation import
type CourseImportOrchestrator struct {
	courses  CourseStore
	importer Importer
	notifier email.Notifier
	logger   zerolog.Logger
	reports  sync.WaitGroup
}

// NewCourseImportOrchestrator creates a new CourseImportOrchestrator
func NewCourseImportOrchestrator(courses CourseStore, importer Importer, notifier email.Notifier, logger zerolog.Logger) *CourseImportOrchestrator {
	return &CourseImportOrchestrator{
		courses:  courses,
		importer: importer,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateWithOptionalImport persists the course owned by actor and, when it references a
// presentation, imports it. If the import fails the course is deleted, the operator is
// notified in the background and an ImportFailed error is returned.
func (o *CourseImportOrchestrator) CreateWithOptionalImport(ctx context.Context, course *models.Course, actor models.Actor) (*models.Course, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "course.create")
	defer span.End()

	course.OwnerID = actor.Ref()
	if course.Status == "" {
		course.Status = models.CourseStatusNew
	}

	if err := o.courses.Create(ctx, course); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("course.id", course.ID))

	if !course.NeedsImport() {
		return course, nil
	}

	if err := o.importer.Import(ctx, course.ID, *course.GID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "import failed")

		o.logger.Error().Err(err).
			Int64("courseID", course.ID).
			Str("gid", *course.GID).
			Msg("Course import failed, rolling back")

		// The request may already be cancelled; the rollback must still happen.
		if delErr := o.courses.Delete(context.WithoutCancel(ctx), course.ID); delErr != nil {
			o.logger.Error().Err(delErr).Int64("courseID", course.ID).Msg("Failed to delete course after import failure")
		}
		o.notify(ctx, err)
		return nil, apperrors.NewImportFailedError(err)
	}

	return course, nil
}

// Regenerate re-runs the import of an existing course. Failures are reported to the operator
// and never returned; the course is left in place.
func (o *CourseImportOrchestrator) Regenerate(ctx context.Context, course *models.Course, actor models.Actor) *models.Course {
	if !course.NeedsImport() {
		return course
	}

	ctx, span := telemetry.Tracer().Start(ctx, "course.regenerate")
	defer span.End()
	span.SetAttributes(attribute.Int64("course.id", course.ID))

	if err := o.importer.Import(ctx, course.ID, *course.GID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "import failed")

		o.logger.Error().Err(err).
			Int64("courseID", course.ID).
			Str("gid", *course.GID).
			Int64("actorID", actor.ID).
			Msg("Course regeneration failed")
		o.notify(ctx, err)
	}

	return course
}

// notify reports cause to the operators without blocking the caller. The report keeps the
// request values of ctx but not its cancellation.
func (o *CourseImportOrchestrator) notify(ctx context.Context, cause error) {
	if o.notifier == nil {
		return
	}

	o.reports.Add(1)
	go func() {
		defer o.reports.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		if err := o.notifier.NotifyException(ctx, cause); err != nil {
			o.logger.Warn().Err(err).Msg("Failed to notify operators of import failure")
		}
	}()
}

// Drain waits for pending operator reports until ctx is done
func (o *CourseImportOrchestrator) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		o.reports.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
