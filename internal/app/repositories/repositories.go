package repositories

import (
	"github.com/yigit/scholars/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository   *UserRepository
	TokenRepository  *TokenRepository
	CourseRepository *CourseRepository
	SlideRepository  *SlideRepository
	ImportRepository *ImportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:   NewUserRepository(database.Pool),
		TokenRepository:  NewTokenRepository(database),
		CourseRepository: NewCourseRepository(database.Pool),
		SlideRepository:  NewSlideRepository(database.Pool),
		ImportRepository: NewImportRepository(database),
	}
}
