package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"israa-academy/internal/domain/model"
	"israa-academy/internal/domain/ports/repository"
	"israa-academy/internal/infra/metrics"
	red "israa-academy/internal/infra/redis"
)

var _ repository.CourseRepository = (*courseRepoCacheDecorator)(nil)

// courseRepoCacheDecorator caches course reads in Redis. The catalog is small
// and nearly read-only, so a short TTL plus invalidation on writes is enough.
type courseRepoCacheDecorator struct {
	inner repository.CourseRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewCourseRepoCacheDecorator(inner repository.CourseRepository, cache red.RedisClient, ttl time.Duration) repository.CourseRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &courseRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func courseKey(id string) string { return fmt.Sprintf("course:%s", id) }

const (
	coursesAllKey       = "courses:all"
	coursesPublishedKey = "courses:published"
)

func (d *courseRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Course, error) {
	key := courseKey(id)
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("course", "hit")
		var course model.Course
		if json.Unmarshal([]byte(val), &course) == nil {
			return &course, nil
		}
	}

	metrics.IncCacheRequest("course", "miss")
	course, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if course != nil {
		bytes, _ := json.Marshal(course)
		d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return course, nil
}

// FindBySlug is not cached separately; slug lookups are admin-only.
func (d *courseRepoCacheDecorator) FindBySlug(ctx context.Context, tx repository.Tx, slug string) (*model.Course, error) {
	return d.inner.FindBySlug(ctx, tx, slug)
}

// Write operations invalidate both the entity and the list keys.
func (d *courseRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, course *model.Course) error {
	d.cache.Del(ctx, courseKey(course.ID), coursesAllKey, coursesPublishedKey)
	return d.inner.Save(ctx, tx, course)
}

func (d *courseRepoCacheDecorator) Delete(ctx context.Context, tx repository.Tx, id string) error {
	d.cache.Del(ctx, courseKey(id), coursesAllKey, coursesPublishedKey)
	return d.inner.Delete(ctx, tx, id)
}

func (d *courseRepoCacheDecorator) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Course, error) {
	return d.cachedList(ctx, tx, coursesAllKey, d.inner.ListAll)
}

func (d *courseRepoCacheDecorator) ListPublished(ctx context.Context, tx repository.Tx) ([]*model.Course, error) {
	return d.cachedList(ctx, tx, coursesPublishedKey, d.inner.ListPublished)
}

func (d *courseRepoCacheDecorator) cachedList(ctx context.Context, tx repository.Tx, key string, load func(context.Context, repository.Tx) ([]*model.Course, error)) ([]*model.Course, error) {
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		metrics.IncCacheRequest("course_list", "hit")
		var courses []*model.Course
		if json.Unmarshal([]byte(val), &courses) == nil {
			return courses, nil
		}
	}

	metrics.IncCacheRequest("course_list", "miss")
	courses, err := load(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(courses) > 0 {
		bytes, _ := json.Marshal(courses)
		d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return courses, nil
}
