//go:build !integration

package web

import (
	"context"

	"israa-academy/internal/domain/model"
	"israa-academy/internal/usecase"
)

// --- Mock use cases (function-field style) ---

type mockActivationUC struct {
	RedeemFunc     func(ctx context.Context, code, userID string) (*usecase.RedemptionResult, error)
	IssueCodesFunc func(ctx context.Context, courseID *string, count int) ([]string, error)
	RevokeFunc     func(ctx context.Context, code string) error
	ListCodesFunc  func(ctx context.Context, status string, offset, limit int) ([]*model.ActivationCode, error)
	CodeTotalsFunc func(ctx context.Context) (map[string]int, error)
}

var _ usecase.ActivationUseCase = (*mockActivationUC)(nil)

func (m *mockActivationUC) ValidateFormat(raw string) (string, bool) {
	return model.NormalizeCode(raw)
}
func (m *mockActivationUC) Redeem(ctx context.Context, code, userID string) (*usecase.RedemptionResult, error) {
	return m.RedeemFunc(ctx, code, userID)
}
func (m *mockActivationUC) IssueCodes(ctx context.Context, courseID *string, count int) ([]string, error) {
	return m.IssueCodesFunc(ctx, courseID, count)
}
func (m *mockActivationUC) Revoke(ctx context.Context, code string) error {
	return m.RevokeFunc(ctx, code)
}
func (m *mockActivationUC) ListCodes(ctx context.Context, status string, offset, limit int) ([]*model.ActivationCode, error) {
	return m.ListCodesFunc(ctx, status, offset, limit)
}
func (m *mockActivationUC) CodeTotals(ctx context.Context) (map[string]int, error) {
	return m.CodeTotalsFunc(ctx)
}

type mockCourseUC struct {
	usecase.CourseUseCase // Embed interface for forward compatibility

	GetFunc  func(ctx context.Context, id string) (*model.Course, error)
	ListFunc func(ctx context.Context) ([]*model.Course, error)
}

func (m *mockCourseUC) Get(ctx context.Context, id string) (*model.Course, error) {
	return m.GetFunc(ctx, id)
}
func (m *mockCourseUC) List(ctx context.Context) ([]*model.Course, error) {
	return m.ListFunc(ctx)
}

type mockStatsUC struct {
	TotalsFunc func(ctx context.Context) (int, map[string]int, map[string]int, error)
}

var _ usecase.StatsUseCase = (*mockStatsUC)(nil)

func (m *mockStatsUC) Totals(ctx context.Context) (int, map[string]int, map[string]int, error) {
	return m.TotalsFunc(ctx)
}

// mockLimiter defaults to always-allow unless AllowFunc is set.
type mockLimiter struct {
	AllowFunc func(ctx context.Context, userRef string) (bool, error)
}

func (m *mockLimiter) Allow(ctx context.Context, userRef string) (bool, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, userRef)
	}
	return true, nil
}
