package services

import (
	"context"
	"time"

	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/app/repositories"
)

// Services defined in this package:
// - AuthService: registration, login and refresh token rotation
// - CourseImportOrchestrator: course creation tied to presentation import, with rollback
// - PresentationImporter: fetches a presentation and stores its pages as slides
// - CourseService: course creation, listing, retrieval and regeneration
// - SlideService: slide retrieval, listing, generic update and workflow transitions

// CourseStore persists courses
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset, limit int) ([]*models.Course, int64, error)
}

// SlideStore persists slides. Update honours expected as a compare-and-swap guard when non-nil.
type SlideStore interface {
	GetByID(ctx context.Context, id int64) (*models.Slide, error)
	List(ctx context.Context, filter repositories.SlideFilter, offset, limit int) ([]*models.Slide, int64, error)
	Update(ctx context.Context, slide *models.Slide, expected *models.SlideStatus) error
}

// PageWriter stores imported pages for a course
type PageWriter interface {
	ApplyPages(ctx context.Context, courseID int64, pageIDs []string) error
}

// Importer populates a course from external content
type Importer interface {
	Import(ctx context.Context, courseID int64, gid string) error
}

// CourseCache caches course reads
type CourseCache interface {
	Get(ctx context.Context, id int64) (*models.Course, bool)
	Set(ctx context.Context, course *models.Course)
	Invalidate(ctx context.Context, id int64)
}

// UserStore persists user accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// TokenStore persists refresh tokens
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetUserIDByToken(ctx context.Context, token string) (int64, error)
	Rotate(ctx context.Context, oldToken, newToken string, userID int64, expiresAt time.Time) error
}
