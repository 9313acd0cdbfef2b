package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/pkg/apperrors"
	"github.com/yigit/scholars/internal/pkg/dberrors"
	"github.com/yigit/scholars/internal/pkg/logger"
)

var slideColumns = []string{"id", "course_id", "position", "status", "assigned_to_id", "audio", "page_id", "created_at", "updated_at"}

// SlideFilter narrows slide listings
type SlideFilter struct {
	CourseID *int64
}

// SlideRepository handles slide database operations
type SlideRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSlideRepository creates a new SlideRepository
func NewSlideRepository(db *pgxpool.Pool) *SlideRepository {
	return &SlideRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSlide(row pgx.Row) (*models.Slide, error) {
	var s models.Slide
	var status int
	if err := row.Scan(&s.ID, &s.CourseID, &s.Position, &status, &s.AssignedToID, &s.Audio, &s.PageID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Status = models.SlideStatus(status)
	return &s, nil
}

// GetByID retrieves a slide by id
func (r *SlideRepository) GetByID(ctx context.Context, id int64) (*models.Slide, error) {
	sql, args, err := r.sb.Select(slideColumns...).
		From("slides").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get slide SQL")
		return nil, fmt.Errorf("failed to build get slide query: %w", err)
	}

	slide, err := scanSlide(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSlideNotFound
		}
		logger.Error().Err(err).Int64("slideID", id).Msg("Error scanning slide row")
		return nil, fmt.Errorf("error retrieving slide: %w", err)
	}

	return slide, nil
}

func (r *SlideRepository) listBuilders(filter SlideFilter, offset, limit int) (squirrel.SelectBuilder, squirrel.SelectBuilder) {
	count := r.sb.Select("COUNT(*)").From("slides")
	page := r.sb.Select(slideColumns...).
		From("slides").
		OrderBy("course_id ASC", "position ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if filter.CourseID != nil {
		count = count.Where(squirrel.Eq{"course_id": *filter.CourseID})
		page = page.Where(squirrel.Eq{"course_id": *filter.CourseID})
	}
	return count, page
}

// List returns one page of slides ordered by course and position along with the total count
func (r *SlideRepository) List(ctx context.Context, filter SlideFilter, offset, limit int) ([]*models.Slide, int64, error) {
	countQuery, pageQuery := r.listBuilders(filter, offset, limit)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count slides query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting slides")
		return nil, 0, fmt.Errorf("error counting slides: %w", err)
	}

	sql, args, err := pageQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list slides query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list slides query")
		return nil, 0, fmt.Errorf("error listing slides: %w", err)
	}
	defer rows.Close()

	slides := make([]*models.Slide, 0, limit)
	for rows.Next() {
		slide, err := scanSlide(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning slide row: %w", err)
		}
		slides = append(slides, slide)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating slide rows: %w", err)
	}

	return slides, total, nil
}

func (r *SlideRepository) updateBuilder(slide *models.Slide, expected *models.SlideStatus) squirrel.UpdateBuilder {
	where := squirrel.Eq{"id": slide.ID}
	if expected != nil {
		where["status"] = int(*expected)
	}

	return r.sb.Update("slides").
		Set("position", slide.Position).
		Set("status", int(slide.Status)).
		Set("assigned_to_id", slide.AssignedToID).
		Set("audio", slide.Audio).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(where).
		Suffix("RETURNING updated_at")
}

// Update writes the mutable slide fields. When expected is non-nil the write only
// applies if the stored status still equals it; otherwise ErrConflict is returned.
func (r *SlideRepository) Update(ctx context.Context, slide *models.Slide, expected *models.SlideStatus) error {
	sql, args, err := r.updateBuilder(slide, expected).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update slide SQL")
		return fmt.Errorf("failed to build update slide query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&slide.UpdatedAt)
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows) && expected != nil:
		logger.Warn().Int64("slideID", slide.ID).Int("expectedStatus", int(*expected)).Msg("Slide changed concurrently")
		return apperrors.NewConflictError("slide was modified concurrently")
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.ErrSlideNotFound
	case dberrors.IsUniqueViolation(err):
		return apperrors.NewConflictError("another slide already uses this position")
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.NewBadRequestError("assigned user does not exist")
	}

	logger.Error().Err(err).Int64("slideID", slide.ID).Msg("Error executing update slide query")
	return fmt.Errorf("error updating slide: %w", err)
}
