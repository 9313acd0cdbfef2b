package services

import (
	"context"
	"mime/multipart"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/app/repositories"
	"github.com/yigit/scholars/internal/pkg/apperrors"
	"github.com/yigit/scholars/internal/pkg/presentation"
)

var testLogger = zerolog.Nop()

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

type fakeCourseStore struct {
	mu        sync.Mutex
	nextID    int64
	courses   map[int64]*models.Course
	createErr error
	deleted   []int64
	gets      int
}

func newFakeCourseStore(courses ...*models.Course) *fakeCourseStore {
	s := &fakeCourseStore{courses: map[int64]*models.Course{}}
	for _, c := range courses {
		cp := *c
		s.courses[c.ID] = &cp
		if c.ID > s.nextID {
			s.nextID = c.ID
		}
	}
	return s
}

func (s *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	course.ID = s.nextID
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	cp := *course
	s.courses[course.ID] = &cp
	return nil
}

func (s *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	c, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCourseStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(s.courses, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeCourseStore) List(_ context.Context, offset, limit int) ([]*models.Course, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.courses))
	for id := range s.courses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*models.Course
	for i := offset; i < len(ids) && len(out) < limit; i++ {
		cp := *s.courses[ids[i]]
		out = append(out, &cp)
	}
	return out, int64(len(ids)), nil
}

func (s *fakeCourseStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.courses)
}

type fakeSlideStore struct {
	mu      sync.Mutex
	slides  map[int64]*models.Slide
	updates int
	guards  []*models.SlideStatus
	// beforeUpdate runs before each update is applied, to simulate concurrent writers
	beforeUpdate func(stored *models.Slide)
}

func newFakeSlideStore(slides ...*models.Slide) *fakeSlideStore {
	s := &fakeSlideStore{slides: map[int64]*models.Slide{}}
	for _, sl := range slides {
		cp := *sl
		s.slides[sl.ID] = &cp
	}
	return s
}

func (s *fakeSlideStore) GetByID(_ context.Context, id int64) (*models.Slide, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slides[id]
	if !ok {
		return nil, apperrors.ErrSlideNotFound
	}
	cp := *sl
	return &cp, nil
}

func (s *fakeSlideStore) List(_ context.Context, filter repositories.SlideFilter, offset, limit int) ([]*models.Slide, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []*models.Slide
	for _, sl := range s.slides {
		if filter.CourseID != nil && sl.CourseID != *filter.CourseID {
			continue
		}
		cp := *sl
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CourseID != all[j].CourseID {
			return all[i].CourseID < all[j].CourseID
		}
		return all[i].Position < all[j].Position
	})

	end := offset + limit
	if offset > len(all) {
		offset = len(all)
	}
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], int64(len(all)), nil
}

func (s *fakeSlideStore) Update(_ context.Context, slide *models.Slide, expected *models.SlideStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.slides[slide.ID]
	if !ok {
		return apperrors.ErrSlideNotFound
	}
	if s.beforeUpdate != nil {
		s.beforeUpdate(stored)
	}
	s.guards = append(s.guards, expected)
	if expected != nil && stored.Status != *expected {
		return apperrors.NewConflictError("slide was modified concurrently")
	}
	s.updates++
	cp := *slide
	s.slides[slide.ID] = &cp
	return nil
}

func (s *fakeSlideStore) get(id int64) models.Slide {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.slides[id]
}

type importCall struct {
	courseID int64
	gid      string
}

type fakeImporter struct {
	mu    sync.Mutex
	err   error
	calls []importCall
}

func (f *fakeImporter) Import(_ context.Context, courseID int64, gid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, importCall{courseID, gid})
	return f.err
}

type fakeNotifier struct {
	mu     sync.Mutex
	errs   []error
	result error
	// block, when set, stalls every report until it is closed
	block chan struct{}
}

func (f *fakeNotifier) NotifyException(_ context.Context, err error) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, err)
	return f.result
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.errs)
}

// drainReports waits for the background operator reports of o
func drainReports(t *testing.T, o *CourseImportOrchestrator) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.Drain(ctx); err != nil {
		t.Fatalf("Drain: %v", err)
	}
}

type fakeCache struct {
	entries       map[int64]*models.Course
	hits, misses  int
	invalidations []int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[int64]*models.Course{}}
}

func (c *fakeCache) Get(_ context.Context, id int64) (*models.Course, bool) {
	course, ok := c.entries[id]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	cp := *course
	return &cp, true
}

func (c *fakeCache) Set(_ context.Context, course *models.Course) {
	cp := *course
	c.entries[course.ID] = &cp
}

func (c *fakeCache) Invalidate(_ context.Context, id int64) {
	delete(c.entries, id)
	c.invalidations = append(c.invalidations, id)
}

type fakeSource struct {
	deck  *presentation.Presentation
	err   error
	block bool
}

func (f *fakeSource) Fetch(ctx context.Context, gid string) (*presentation.Presentation, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.deck, nil
}

type fakePageWriter struct {
	courseID int64
	pageIDs  []string
	calls    int
	err      error
}

func (w *fakePageWriter) ApplyPages(_ context.Context, courseID int64, pageIDs []string) error {
	w.calls++
	w.courseID = courseID
	w.pageIDs = pageIDs
	return w.err
}

type fakeFileStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeFileStorage) SaveFileWithPath(fh *multipart.FileHeader, subPath string) (string, error) {
	ref := "uploads/" + subPath + "/" + fh.Filename
	f.saved = append(f.saved, ref)
	return ref, nil
}

func (f *fakeFileStorage) DeleteFile(fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func (f *fakeFileStorage) GetFullPath(fileURL string) string { return fileURL }

type fakeUserStore struct {
	nextID int64
	users  map[int64]*models.User
	logins []int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	s.nextID++
	user.ID = s.nextID
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	return err == nil, nil
}

func (s *fakeUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	s.logins = append(s.logins, userID)
	return nil
}

type storedToken struct {
	userID  int64
	revoked bool
}

type fakeTokenStore struct {
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*storedToken{}}
}

func (s *fakeTokenStore) CreateToken(_ context.Context, token string, userID int64, _ time.Time) error {
	s.tokens[token] = &storedToken{userID: userID}
	return nil
}

func (s *fakeTokenStore) GetUserIDByToken(_ context.Context, token string) (int64, error) {
	t, ok := s.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	if t.revoked {
		return 0, apperrors.ErrTokenRevoked
	}
	return t.userID, nil
}

func (s *fakeTokenStore) Rotate(ctx context.Context, oldToken, newToken string, userID int64, expiresAt time.Time) error {
	t, ok := s.tokens[oldToken]
	if !ok || t.revoked || t.userID != userID {
		return apperrors.ErrTokenRevoked
	}
	t.revoked = true
	return s.CreateToken(ctx, newToken, userID, expiresAt)
}
