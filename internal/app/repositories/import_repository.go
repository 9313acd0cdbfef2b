package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/db"
	"github.com/yigit/scholars/internal/pkg/apperrors"
	"github.com/yigit/scholars/internal/pkg/logger"
)

// ImportRepository writes the result of a presentation import
type ImportRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewImportRepository creates a new ImportRepository
func NewImportRepository(database *db.PostgresDB) *ImportRepository {
	return &ImportRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// upsertPagesBuilder inserts one draft slide per page. Slides that already exist at a
// position only get their page reference refreshed so their workflow state survives.
func (r *ImportRepository) upsertPagesBuilder(courseID int64, pageIDs []string) squirrel.InsertBuilder {
	q := r.sb.Insert("slides").Columns("course_id", "position", "status", "page_id")
	for position, pageID := range pageIDs {
		q = q.Values(courseID, position, int(models.SlideStatusDraft), pageID)
	}
	return q.Suffix("ON CONFLICT (course_id, position) DO UPDATE SET page_id = EXCLUDED.page_id, updated_at = NOW()")
}

// pruneOrphansBuilder deletes untouched draft slides past the last imported page. Slides past
// it that already entered review or carry audio are kept.
func (r *ImportRepository) pruneOrphansBuilder(courseID int64, pageCount int) squirrel.DeleteBuilder {
	return r.sb.Delete("slides").
		Where(squirrel.Eq{"course_id": courseID}).
		Where(squirrel.GtOrEq{"position": pageCount}).
		Where(squirrel.Eq{"status": int(models.SlideStatusDraft)}).
		Where(squirrel.Eq{"assigned_to_id": nil}).
		Where(squirrel.Eq{"audio": nil})
}

// ApplyPages stores the imported pages, prunes orphaned draft slides and marks the course
// generated, atomically
func (r *ImportRepository) ApplyPages(ctx context.Context, courseID int64, pageIDs []string) error {
	if len(pageIDs) == 0 {
		return fmt.Errorf("no pages to import for course %d", courseID)
	}

	upsertSQL, upsertArgs, err := r.upsertPagesBuilder(courseID, pageIDs).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build slide upsert query: %w", err)
	}

	pruneSQL, pruneArgs, err := r.pruneOrphansBuilder(courseID, len(pageIDs)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build orphan prune query: %w", err)
	}

	statusSQL, statusArgs, err := r.sb.Update("courses").
		Set("status", models.CourseStatusGenerated).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build course status query: %w", err)
	}

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, upsertSQL, upsertArgs...); err != nil {
			logger.Error().Err(err).Int64("courseID", courseID).Msg("Error upserting imported slides")
			return fmt.Errorf("error storing imported slides: %w", err)
		}

		pruned, err := tx.Exec(ctx, pruneSQL, pruneArgs...)
		if err != nil {
			logger.Error().Err(err).Int64("courseID", courseID).Msg("Error pruning orphaned slides")
			return fmt.Errorf("error pruning orphaned slides: %w", err)
		}
		if n := pruned.RowsAffected(); n > 0 {
			logger.Info().Int64("courseID", courseID).Int64("pruned", n).Msg("Removed draft slides past the last page")
		}

		cmdTag, err := tx.Exec(ctx, statusSQL, statusArgs...)
		if err != nil {
			logger.Error().Err(err).Int64("courseID", courseID).Msg("Error updating course status")
			return fmt.Errorf("error updating course status: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrCourseNotFound
		}

		logger.Info().Int64("courseID", courseID).Int("pages", len(pageIDs)).Msg("Imported presentation pages")
		return nil
	})
}
