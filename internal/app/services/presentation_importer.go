package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yigit/scholars/internal/pkg/presentation"
	"github.com/yigit/scholars/internal/pkg/telemetry"
)

// PresentationImporter implements Importer on top of a presentation source
type PresentationImporter struct {
	source  presentation.Source
	writer  PageWriter
	timeout time.Duration
	logger  zerolog.Logger
}

// NewPresentationImporter creates a new PresentationImporter. A zero timeout disables the deadline.
func NewPresentationImporter(source presentation.Source, writer PageWriter, timeout time.Duration, logger zerolog.Logger) *PresentationImporter {
	return &PresentationImporter{
		source:  source,
		writer:  writer,
		timeout: timeout,
		logger:  logger,
	}
}

// Import fetches the presentation and stores one slide per page
func (i *PresentationImporter) Import(ctx context.Context, courseID int64, gid string) (err error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	ctx, span := telemetry.Tracer().Start(ctx, "presentation.import", trace.WithAttributes(
		attribute.Int64("course.id", courseID),
		attribute.String("course.gid", gid),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	start := time.Now()

	deck, err := i.source.Fetch(ctx, gid)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("import of %s timed out after %s: %w", gid, i.timeout, err)
		}
		return err
	}
	span.SetAttributes(attribute.Int("presentation.pages", len(deck.PageIDs)))

	if err := i.writer.ApplyPages(ctx, courseID, deck.PageIDs); err != nil {
		return fmt.Errorf("failed to store pages of %s: %w", gid, err)
	}

	i.logger.Info().
		Int64("courseID", courseID).
		Str("gid", gid).
		Int("pages", len(deck.PageIDs)).
		Dur("elapsed", time.Since(start)).
		Msg("Presentation imported")
	return nil
}
