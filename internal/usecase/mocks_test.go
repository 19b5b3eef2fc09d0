//go:build !integration

package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"israa-academy/internal/domain"
	"israa-academy/internal/domain/model"
	"israa-academy/internal/domain/ports/repository"
)

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}

// MockTxManager runs the callback without a real transaction. The in-memory
// repos below guard their maps with mutexes, so the conditional-update
// semantics the use case relies on still hold under concurrency.
type MockTxManager struct{}

func NewMockTxManager() *MockTxManager { return &MockTxManager{} }

func (m *MockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

// --- Activation codes ---

type MockActivationCodeRepo struct {
	mu    sync.Mutex
	byVal map[string]*model.ActivationCode

	SaveFunc       func(ctx context.Context, tx repository.Tx, code *model.ActivationCode) error
	FindByCodeFunc func(ctx context.Context, tx repository.Tx, code string) (*model.ActivationCode, error)
}

func NewMockActivationCodeRepo() *MockActivationCodeRepo {
	return &MockActivationCodeRepo{byVal: make(map[string]*model.ActivationCode)}
}

func (m *MockActivationCodeRepo) Save(ctx context.Context, tx repository.Tx, code *model.ActivationCode) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, code)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byVal[code.Code]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *code
	m.byVal[code.Code] = &cp
	return nil
}

func (m *MockActivationCodeRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.ActivationCode, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, tx, code)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ac, ok := m.byVal[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ac
	return &cp, nil
}

// MarkRedeemed mimics UPDATE ... WHERE status='unused': the check and the
// transition happen under one lock, so only one caller can win.
func (m *MockActivationCodeRepo) MarkRedeemed(ctx context.Context, tx repository.Tx, code, userID string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ac, ok := m.byVal[code]
	if !ok || ac.Status != model.CodeStatusUnused {
		return false, nil
	}
	ac.Status = model.CodeStatusRedeemed
	ac.RedeemedAt = &at
	uid := userID
	ac.RedeemedByUserID = &uid
	return true, nil
}

func (m *MockActivationCodeRepo) MarkRevoked(ctx context.Context, tx repository.Tx, code string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ac, ok := m.byVal[code]
	if !ok || ac.Status != model.CodeStatusUnused {
		return false, nil
	}
	ac.Status = model.CodeStatusRevoked
	ac.RevokedAt = &at
	return true, nil
}

func (m *MockActivationCodeRepo) List(ctx context.Context, tx repository.Tx, status string, offset, limit int) ([]*model.ActivationCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.ActivationCode
	for _, ac := range m.byVal {
		if status == "" || string(ac.Status) == status {
			cp := *ac
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockActivationCodeRepo) CountByStatus(ctx context.Context, tx repository.Tx) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, ac := range m.byVal {
		counts[string(ac.Status)]++
	}
	return counts, nil
}

// --- Access grants ---

type MockAccessGrantRepo struct {
	mu     sync.Mutex
	byPair map[string]*model.AccessGrant
}

func NewMockAccessGrantRepo() *MockAccessGrantRepo {
	return &MockAccessGrantRepo{byPair: make(map[string]*model.AccessGrant)}
}

func grantKey(userID, courseID string) string { return userID + "|" + courseID }

func (m *MockAccessGrantRepo) Insert(ctx context.Context, tx repository.Tx, grant *model.AccessGrant) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := grantKey(grant.UserID, grant.CourseID)
	if _, ok := m.byPair[key]; ok {
		return false, nil
	}
	cp := *grant
	m.byPair[key] = &cp
	return true, nil
}

func (m *MockAccessGrantRepo) FindByUserAndCourse(ctx context.Context, tx repository.Tx, userID, courseID string) (*model.AccessGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.byPair[grantKey(userID, courseID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *MockAccessGrantRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.AccessGrant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.AccessGrant
	for _, g := range m.byPair {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockAccessGrantRepo) CountByCourse(ctx context.Context, tx repository.Tx) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, g := range m.byPair {
		counts[g.CourseID]++
	}
	return counts, nil
}

// --- Courses ---

type MockCourseRepo struct {
	mu   sync.Mutex
	byID map[string]*model.Course

	FindByIDFunc func(ctx context.Context, tx repository.Tx, id string) (*model.Course, error)
}

func NewMockCourseRepo() *MockCourseRepo {
	return &MockCourseRepo{byID: make(map[string]*model.Course)}
}

func (m *MockCourseRepo) Save(ctx context.Context, tx repository.Tx, course *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *course
	m.byID[course.ID] = &cp
	return nil
}

func (m *MockCourseRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *MockCourseRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Course, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MockCourseRepo) FindBySlug(ctx context.Context, tx repository.Tx, slug string) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.byID {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockCourseRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Course
	for _, c := range m.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockCourseRepo) ListPublished(ctx context.Context, tx repository.Tx) ([]*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Course
	for _, c := range m.byID {
		if c.Published {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- Users ---

type MockUserRepo struct {
	mu   sync.Mutex
	byID map[string]*model.User
}

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{byID: make(map[string]*model.User)}
}

func (m *MockUserRepo) Save(ctx context.Context, tx repository.Tx, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *MockUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.User
	for _, u := range m.byID {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID), nil
}

// --- Comments ---

type MockCommentRepo struct {
	mu   sync.Mutex
	byID map[string]*model.Comment
}

func NewMockCommentRepo() *MockCommentRepo {
	return &MockCommentRepo{byID: make(map[string]*model.Comment)}
}

func (m *MockCommentRepo) Save(ctx context.Context, tx repository.Tx, comment *model.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *comment
	m.byID[comment.ID] = &cp
	return nil
}

func (m *MockCommentRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *MockCommentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MockCommentRepo) ListByCourse(ctx context.Context, tx repository.Tx, courseID string, offset, limit int) ([]*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Comment
	for _, c := range m.byID {
		if c.CourseID == courseID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockCommentRepo) ResetLikes(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Likes = 0
	return nil
}

func (m *MockCommentRepo) CountComments(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID), nil
}
