package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/pkg/logger"
)

const courseKeyPrefix = "course:detail:"

// CourseCache is a read-through cache for course detail reads.
// A nil client disables caching; every method then becomes a no-op.
type CourseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCourseCache creates a new CourseCache
func NewCourseCache(client *redis.Client, ttl time.Duration) *CourseCache {
	return &CourseCache{client: client, ttl: ttl}
}

// NewRedisClient connects and pings redis
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// CourseKey returns the cache key for a course id
func CourseKey(id int64) string {
	return fmt.Sprintf("%s%d", courseKeyPrefix, id)
}

// Enabled reports whether a backing client is configured
func (c *CourseCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get returns the cached course. Misses and cache errors both report false.
func (c *CourseCache) Get(ctx context.Context, id int64) (*models.Course, bool) {
	if !c.Enabled() {
		return nil, false
	}

	raw, err := c.client.Get(ctx, CourseKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn().Err(err).Int64("courseID", id).Msg("Course cache read failed")
		}
		return nil, false
	}

	var course models.Course
	if err := json.Unmarshal(raw, &course); err != nil {
		logger.Warn().Err(err).Int64("courseID", id).Msg("Dropping undecodable course cache entry")
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &course, true
}

// Set stores a course snapshot
func (c *CourseCache) Set(ctx context.Context, course *models.Course) {
	if !c.Enabled() || course == nil {
		return
	}

	raw, err := json.Marshal(course)
	if err != nil {
		logger.Warn().Err(err).Int64("courseID", course.ID).Msg("Failed to encode course for cache")
		return
	}
	if err := c.client.Set(ctx, CourseKey(course.ID), raw, c.ttl).Err(); err != nil {
		logger.Warn().Err(err).Int64("courseID", course.ID).Msg("Course cache write failed")
	}
}

// Invalidate drops the cached course
func (c *CourseCache) Invalidate(ctx context.Context, id int64) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Del(ctx, CourseKey(id)).Err(); err != nil {
		logger.Warn().Err(err).Int64("courseID", id).Msg("Course cache invalidation failed")
	}
}
