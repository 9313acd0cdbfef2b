package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/app/models/dto"
	"github.com/yigit/scholars/internal/pkg/apperrors"
)

type courseServiceFixture struct {
	store        *fakeCourseStore
	importer     *fakeImporter
	notifier     *fakeNotifier
	cache        *fakeCache
	orchestrator *CourseImportOrchestrator
	service      *CourseService
}

func newCourseServiceFixture(courses ...*models.Course) *courseServiceFixture {
	f := &courseServiceFixture{
		store:    newFakeCourseStore(courses...),
		importer: &fakeImporter{},
		notifier: &fakeNotifier{},
		cache:    newFakeCache(),
	}
	f.orchestrator = NewCourseImportOrchestrator(f.store, f.importer, f.notifier, testLogger)
	f.service = NewCourseService(f.store, f.orchestrator, f.cache, testLogger)
	return f
}

func TestCourseService_CreateCourse(t *testing.T) {
	f := newCourseServiceFixture()

	resp, err := f.service.CreateCourse(context.Background(), &dto.CreateCourseRequest{Name: "  Algebra  ", GID: strPtr("")}, models.UserActor(5))
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	if resp.Name != "Algebra" || resp.GID != nil || resp.Owner == nil || *resp.Owner != 5 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(f.importer.calls) != 0 {
		t.Fatal("blank gid must not trigger import")
	}
}

func TestCourseService_CreateCourseValidation(t *testing.T) {
	f := newCourseServiceFixture()

	_, err := f.service.CreateCourse(context.Background(), &dto.CreateCourseRequest{Name: "Algebra", GID: strPtr("bad gid!")}, models.UserActor(5))
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("error = %v, want validation error", err)
	}
	if _, ok := apperrors.DetailsOf(err)["gid"]; !ok {
		t.Fatalf("expected gid field error, got %v", apperrors.DetailsOf(err))
	}
	if f.store.count() != 0 {
		t.Fatal("invalid input must not persist")
	}
}

func TestCourseService_CreateCourseImportFailure(t *testing.T) {
	f := newCourseServiceFixture()
	f.importer.err = errors.New("not found")

	_, err := f.service.CreateCourse(context.Background(), &dto.CreateCourseRequest{Name: "Algebra", GID: strPtr("deck-abc123")}, models.UserActor(5))
	if !errors.Is(err, apperrors.ErrImportFailed) {
		t.Fatalf("error = %v, want ErrImportFailed", err)
	}
	if f.store.count() != 0 {
		t.Fatal("course must be rolled back")
	}
}

func TestCourseService_ListCourses(t *testing.T) {
	f := newCourseServiceFixture(
		&models.Course{ID: 1, Name: "A", Status: "new"},
		&models.Course{ID: 2, Name: "B", Status: "generated", OwnerID: int64Ptr(3)},
		&models.Course{ID: 3, Name: "C", Status: "new"},
	)

	resp, err := f.service.ListCourses(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	if len(resp.Courses) != 1 || resp.Courses[0].ID != 3 {
		t.Fatalf("page 2 = %+v", resp.Courses)
	}
	if resp.PaginationInfo.TotalItems != 3 || resp.PaginationInfo.TotalPages != 2 || resp.PaginationInfo.CurrentPage != 2 {
		t.Fatalf("pagination = %+v", resp.PaginationInfo)
	}
}

func TestCourseService_GetCourseUsesCache(t *testing.T) {
	f := newCourseServiceFixture(&models.Course{ID: 1, Name: "A", Status: "new"})

	for i := 0; i < 3; i++ {
		resp, err := f.service.GetCourse(context.Background(), 1)
		if err != nil {
			t.Fatalf("GetCourse: %v", err)
		}
		if resp.ID != 1 {
			t.Fatalf("resp = %+v", resp)
		}
	}
	if f.store.gets != 1 {
		t.Fatalf("store reads = %d, want 1", f.store.gets)
	}
	if f.cache.hits != 2 {
		t.Fatalf("cache hits = %d, want 2", f.cache.hits)
	}

	if _, err := f.service.GetCourse(context.Background(), 99); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("error = %v, want ErrCourseNotFound", err)
	}
}

func TestCourseService_GenerateCourse(t *testing.T) {
	course := &models.Course{ID: 1, Name: "A", OwnerID: int64Ptr(7), GID: strPtr("deck-abc123"), Status: models.CourseStatusGenerated}

	t.Run("owner with failing import still succeeds", func(t *testing.T) {
		f := newCourseServiceFixture(course)
		f.importer.err = errors.New("remote unavailable")
		f.cache.Set(context.Background(), course)

		resp, err := f.service.GenerateCourse(context.Background(), 1, models.UserActor(7))
		if err != nil {
			t.Fatalf("GenerateCourse: %v", err)
		}
		if resp.ID != 1 {
			t.Fatalf("resp = %+v", resp)
		}
		if f.store.count() != 1 {
			t.Fatal("course must survive a failed regeneration")
		}
		drainReports(t, f.orchestrator)
		if len(f.notifier.errs) != 1 {
			t.Fatalf("notifier calls = %d, want 1", len(f.notifier.errs))
		}
		if len(f.cache.invalidations) != 1 {
			t.Fatal("cache entry should be invalidated")
		}
	})

	t.Run("non owner is forbidden", func(t *testing.T) {
		f := newCourseServiceFixture(course)
		_, err := f.service.GenerateCourse(context.Background(), 1, models.UserActor(8))
		if !errors.Is(err, apperrors.ErrPermissionDenied) {
			t.Fatalf("error = %v, want ErrPermissionDenied", err)
		}
		if len(f.importer.calls) != 0 {
			t.Fatal("import must not run for non owners")
		}
	})

	t.Run("missing course", func(t *testing.T) {
		f := newCourseServiceFixture()
		_, err := f.service.GenerateCourse(context.Background(), 1, models.UserActor(7))
		if !errors.Is(err, apperrors.ErrCourseNotFound) {
			t.Fatalf("error = %v, want ErrCourseNotFound", err)
		}
	})
}
