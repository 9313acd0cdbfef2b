package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/pkg/apperrors"
)

func newTestOrchestrator(store *fakeCourseStore, importer *fakeImporter, notifier *fakeNotifier) *CourseImportOrchestrator {
	return NewCourseImportOrchestrator(store, importer, notifier, testLogger)
}

func TestCreateWithOptionalImport_NoGID(t *testing.T) {
	store := newFakeCourseStore()
	importer := &fakeImporter{}
	o := newTestOrchestrator(store, importer, &fakeNotifier{})

	course, err := o.CreateWithOptionalImport(context.Background(), &models.Course{Name: "Algebra"}, models.UserActor(7))
	if err != nil {
		t.Fatalf("CreateWithOptionalImport: %v", err)
	}
	if course.ID == 0 || course.OwnerID == nil || *course.OwnerID != 7 {
		t.Fatalf("unexpected course %+v", course)
	}
	if course.Status != models.CourseStatusNew {
		t.Fatalf("status = %q, want %q", course.Status, models.CourseStatusNew)
	}
	if len(importer.calls) != 0 {
		t.Fatalf("import should not run without gid")
	}
	if store.count() != 1 {
		t.Fatalf("stored courses = %d, want 1", store.count())
	}
}

func TestCreateWithOptionalImport_ImportSucceeds(t *testing.T) {
	store := newFakeCourseStore()
	importer := &fakeImporter{}
	notifier := &fakeNotifier{}
	o := newTestOrchestrator(store, importer, notifier)

	course, err := o.CreateWithOptionalImport(context.Background(), &models.Course{Name: "Algebra", GID: strPtr("deck-abc123")}, models.UserActor(7))
	if err != nil {
		t.Fatalf("CreateWithOptionalImport: %v", err)
	}
	if len(importer.calls) != 1 || importer.calls[0].courseID != course.ID || importer.calls[0].gid != "deck-abc123" {
		t.Fatalf("import calls = %+v", importer.calls)
	}
	drainReports(t, o)
	if len(notifier.errs) != 0 {
		t.Fatalf("notifier should not run on success")
	}
	if store.count() != 1 {
		t.Fatalf("course should be kept")
	}
}

func TestCreateWithOptionalImport_ImportFailsRollsBack(t *testing.T) {
	store := newFakeCourseStore()
	cause := errors.New("presentation not found")
	importer := &fakeImporter{err: cause}
	notifier := &fakeNotifier{}
	o := newTestOrchestrator(store, importer, notifier)

	course, err := o.CreateWithOptionalImport(context.Background(), &models.Course{Name: "Algebra", GID: strPtr("deck-missing")}, models.UserActor(7))
	if course != nil {
		t.Fatalf("expected no course, got %+v", course)
	}
	if !errors.Is(err, apperrors.ErrImportFailed) {
		t.Fatalf("error = %v, want ErrImportFailed", err)
	}
	if err.Error() != apperrors.ImportFailedMessage {
		t.Fatalf("message = %q", err.Error())
	}
	details := apperrors.DetailsOf(err)
	msgs, ok := details[apperrors.NonFieldErrorsKey].([]string)
	if !ok || len(msgs) != 1 || msgs[0] != "Import failed" {
		t.Fatalf("details = %v", details)
	}

	if store.count() != 0 {
		t.Fatalf("failed import must leave zero courses, have %d", store.count())
	}
	if len(store.deleted) != 1 {
		t.Fatalf("deleted = %v", store.deleted)
	}
	drainReports(t, o)
	if len(notifier.errs) != 1 || !errors.Is(notifier.errs[0], cause) {
		t.Fatalf("notifier errs = %v", notifier.errs)
	}
}

func TestCreateWithOptionalImport_NotifierFailureIgnored(t *testing.T) {
	store := newFakeCourseStore()
	o := newTestOrchestrator(store, &fakeImporter{err: errors.New("boom")}, &fakeNotifier{result: errors.New("smtp down")})

	_, err := o.CreateWithOptionalImport(context.Background(), &models.Course{Name: "Algebra", GID: strPtr("deck-abc123")}, models.UserActor(1))
	if !errors.Is(err, apperrors.ErrImportFailed) {
		t.Fatalf("error = %v, want ErrImportFailed", err)
	}
	if store.count() != 0 {
		t.Fatalf("rollback must still happen")
	}
	drainReports(t, o)
}

func TestCreateWithOptionalImport_StalledNotifierDoesNotDelayRollback(t *testing.T) {
	store := newFakeCourseStore()
	notifier := &fakeNotifier{block: make(chan struct{})}
	o := newTestOrchestrator(store, &fakeImporter{err: errors.New("boom")}, notifier)

	done := make(chan error, 1)
	go func() {
		_, err := o.CreateWithOptionalImport(context.Background(), &models.Course{Name: "Algebra", GID: strPtr("deck-abc123")}, models.UserActor(1))
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, apperrors.ErrImportFailed) {
			t.Fatalf("error = %v, want ErrImportFailed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("create blocked on the operator report")
	}
	if store.count() != 0 {
		t.Fatal("course must be deleted while the report is still pending")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := o.Drain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Drain with a stalled report = %v, want deadline exceeded", err)
	}

	close(notifier.block)
	drainReports(t, o)
	if notifier.count() != 1 {
		t.Fatalf("notifier calls = %d, want 1", notifier.count())
	}
}

func TestRegenerate_StalledNotifierDoesNotBlock(t *testing.T) {
	existing := &models.Course{ID: 3, Name: "Algebra", OwnerID: int64Ptr(7), GID: strPtr("deck-abc123")}
	notifier := &fakeNotifier{block: make(chan struct{})}
	o := newTestOrchestrator(newFakeCourseStore(existing), &fakeImporter{err: errors.New("boom")}, notifier)

	done := make(chan struct{})
	go func() {
		o.Regenerate(context.Background(), existing, models.UserActor(7))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("regenerate blocked on the operator report")
	}

	close(notifier.block)
	drainReports(t, o)
	if notifier.count() != 1 {
		t.Fatalf("notifier calls = %d, want 1", notifier.count())
	}
}

func TestCreateWithOptionalImport_CancelledRequestStillRollsBack(t *testing.T) {
	store := newFakeCourseStore()
	o := newTestOrchestrator(store, &fakeImporter{err: context.Canceled}, &fakeNotifier{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := o.CreateWithOptionalImport(ctx, &models.Course{Name: "Algebra", GID: strPtr("deck-abc123")}, models.UserActor(1)); err == nil {
		t.Fatal("expected error")
	}
	if store.count() != 0 {
		t.Fatalf("rollback must survive cancellation")
	}
}

func TestCreateWithOptionalImport_Anonymous(t *testing.T) {
	store := newFakeCourseStore()
	o := newTestOrchestrator(store, &fakeImporter{}, &fakeNotifier{})

	course, err := o.CreateWithOptionalImport(context.Background(), &models.Course{Name: "Open"}, models.AnonymousActor())
	if err != nil {
		t.Fatalf("CreateWithOptionalImport: %v", err)
	}
	if course.OwnerID != nil {
		t.Fatalf("anonymous course should have no owner")
	}
}

func TestCreateWithOptionalImport_StoreError(t *testing.T) {
	store := newFakeCourseStore()
	store.createErr = errors.New("db down")
	importer := &fakeImporter{}
	o := newTestOrchestrator(store, importer, &fakeNotifier{})

	if _, err := o.CreateWithOptionalImport(context.Background(), &models.Course{Name: "x", GID: strPtr("deck-abc123")}, models.UserActor(1)); err == nil {
		t.Fatal("expected store error")
	}
	if len(importer.calls) != 0 {
		t.Fatal("import must not run when create fails")
	}
}

func TestRegenerate_FailureIsReportOnly(t *testing.T) {
	existing := &models.Course{ID: 3, Name: "Algebra", OwnerID: int64Ptr(7), GID: strPtr("deck-abc123"), Status: models.CourseStatusGenerated}
	store := newFakeCourseStore(existing)
	notifier := &fakeNotifier{}
	o := newTestOrchestrator(store, &fakeImporter{err: errors.New("quota exceeded")}, notifier)

	got := o.Regenerate(context.Background(), existing, models.UserActor(7))
	if got != existing {
		t.Fatal("Regenerate should return the course as-is")
	}
	if store.count() != 1 || len(store.deleted) != 0 {
		t.Fatal("regenerate must never delete the course")
	}
	drainReports(t, o)
	if len(notifier.errs) != 1 {
		t.Fatalf("notifier calls = %d, want 1", len(notifier.errs))
	}
}

func TestRegenerate_WithoutGIDSkipsImport(t *testing.T) {
	importer := &fakeImporter{}
	o := newTestOrchestrator(newFakeCourseStore(), importer, &fakeNotifier{})

	o.Regenerate(context.Background(), &models.Course{ID: 1, Name: "x"}, models.UserActor(1))
	if len(importer.calls) != 0 {
		t.Fatal("import should not run without gid")
	}
}
