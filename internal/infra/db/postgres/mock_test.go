//go:build !integration

package postgres

import (
	"context"
	"time"

	"israa-academy/internal/domain/model"
	"israa-academy/internal/domain/ports/repository"
	red "israa-academy/internal/infra/redis"
)

// --- Mocks for Cache Decorator Tests ---

// mockInnerCourseRepo mocks the database repository that the course decorator wraps.
type mockInnerCourseRepo struct {
	SaveFunc          func(ctx context.Context, tx repository.Tx, course *model.Course) error
	DeleteFunc        func(ctx context.Context, tx repository.Tx, id string) error
	FindByIDFunc      func(ctx context.Context, tx repository.Tx, id string) (*model.Course, error)
	FindBySlugFunc    func(ctx context.Context, tx repository.Tx, slug string) (*model.Course, error)
	ListAllFunc       func(ctx context.Context, tx repository.Tx) ([]*model.Course, error)
	ListPublishedFunc func(ctx context.Context, tx repository.Tx) ([]*model.Course, error)
}

func (m *mockInnerCourseRepo) Save(ctx context.Context, tx repository.Tx, course *model.Course) error {
	return m.SaveFunc(ctx, tx, course)
}
func (m *mockInnerCourseRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	return m.DeleteFunc(ctx, tx, id)
}
func (m *mockInnerCourseRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Course, error) {
	return m.FindByIDFunc(ctx, tx, id)
}
func (m *mockInnerCourseRepo) FindBySlug(ctx context.Context, tx repository.Tx, slug string) (*model.Course, error) {
	return m.FindBySlugFunc(ctx, tx, slug)
}
func (m *mockInnerCourseRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Course, error) {
	return m.ListAllFunc(ctx, tx)
}
func (m *mockInnerCourseRepo) ListPublished(ctx context.Context, tx repository.Tx) ([]*model.Course, error) {
	return m.ListPublishedFunc(ctx, tx)
}

// mockRedisClient mocks our Redis client wrapper.
type mockRedisClient struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DelFunc    func(ctx context.Context, keys ...string) error
	PingFunc   func(ctx context.Context) error
	IncrFunc   func(ctx context.Context, key string) (int64, error)
	ExpireFunc func(ctx context.Context, key string, expiration time.Duration) error
	CloseFunc  func() error
}

var _ red.RedisClient = &mockRedisClient{}

func (m *mockRedisClient) Get(ctx context.Context, key string) (string, error) {
	return m.GetFunc(ctx, key)
}
func (m *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.SetFunc(ctx, key, value, expiration)
}
func (m *mockRedisClient) Del(ctx context.Context, keys ...string) error {
	return m.DelFunc(ctx, keys...)
}
func (m *mockRedisClient) Ping(ctx context.Context) error { return m.PingFunc(ctx) }
func (m *mockRedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return m.IncrFunc(ctx, key)
}
func (m *mockRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return m.ExpireFunc(ctx, key, expiration)
}
func (m *mockRedisClient) Close() error { return m.CloseFunc() }
