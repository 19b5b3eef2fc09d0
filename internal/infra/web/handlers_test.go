//go:build !integration

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"israa-academy/internal/domain/model"
	"israa-academy/internal/infra/i18n"
	"israa-academy/internal/usecase"
)

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}

func newTestRegistry(t *testing.T) *i18n.Registry {
	t.Helper()
	reg, err := i18n.NewRegistry(i18n.LocalesFS, "en")
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func newActivateServer(t *testing.T, activationUC usecase.ActivationUseCase, courseUC usecase.CourseUseCase, limiter AttemptLimiter) http.Handler {
	t.Helper()
	auth := NewAuthManager("test-admin-jwt-secret-please-change", false, "", time.Minute)
	if limiter == nil {
		limiter = &mockLimiter{}
	}
	s := NewServer(activationUC, courseUC, nil, nil, nil, auth, "test-admin-key", limiter, newTestRegistry(t), newTestLogger())
	return s.Router()
}

func postActivate(t *testing.T, router http.Handler, body string, headers map[string]string) (*httptest.ResponseRecorder, activateResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/activate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp activateResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	return rr, resp
}

func TestActivateHandler(t *testing.T) {
	course := &model.Course{ID: "c1", Slug: "work-money-foundations", Title: "Work & Money Foundations"}
	courseUC := &mockCourseUC{
		GetFunc: func(ctx context.Context, id string) (*model.Course, error) {
			return course, nil
		},
	}

	t.Run("activated -> 200 with courseRef slug", func(t *testing.T) {
		uc := &mockActivationUC{
			RedeemFunc: func(ctx context.Context, code, userID string) (*usecase.RedemptionResult, error) {
				if code != "ALN-1A2B-3C4D" {
					t.Errorf("expected normalized code, got %q", code)
				}
				return &usecase.RedemptionResult{Status: usecase.RedemptionActivated, CourseID: "c1"}, nil
			},
		}
		router := newActivateServer(t, uc, courseUC, nil)

		rr, resp := postActivate(t, router, `{"code":"  aln-1a2b-3c4d  ","userRef":"u1"}`, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if resp.Status != "activated" {
			t.Errorf("status = %q", resp.Status)
		}
		if resp.CourseRef != "work-money-foundations" {
			t.Errorf("courseRef = %q, want course slug", resp.CourseRef)
		}
	})

	t.Run("already_active -> 200", func(t *testing.T) {
		uc := &mockActivationUC{
			RedeemFunc: func(ctx context.Context, code, userID string) (*usecase.RedemptionResult, error) {
				return &usecase.RedemptionResult{Status: usecase.RedemptionAlreadyActive, CourseID: "c1"}, nil
			},
		}
		router := newActivateServer(t, uc, courseUC, nil)

		rr, resp := postActivate(t, router, `{"code":"ALN-1A2B-3C4D","userRef":"u1"}`, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if resp.Status != "already_active" {
			t.Errorf("status = %q", resp.Status)
		}
	})

	t.Run("invalid_code -> 404", func(t *testing.T) {
		uc := &mockActivationUC{
			RedeemFunc: func(ctx context.Context, code, userID string) (*usecase.RedemptionResult, error) {
				return &usecase.RedemptionResult{Status: usecase.RedemptionInvalidCode}, nil
			},
		}
		router := newActivateServer(t, uc, courseUC, nil)

		rr, resp := postActivate(t, router, `{"code":"ALN-9Z9Z-9Z9Z","userRef":"u1"}`, nil)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
		if resp.Status != "invalid_code" {
			t.Errorf("status = %q", resp.Status)
		}
		if resp.CourseRef != "" {
			t.Errorf("courseRef must be empty for invalid_code, got %q", resp.CourseRef)
		}
	})

	t.Run("malformed -> 400 before any lookup", func(t *testing.T) {
		uc := &mockActivationUC{
			RedeemFunc: func(ctx context.Context, code, userID string) (*usecase.RedemptionResult, error) {
				t.Fatal("Redeem must not be called for malformed input")
				return nil, nil
			},
		}
		router := newActivateServer(t, uc, courseUC, nil)

		rr, resp := postActivate(t, router, `{"code":"abc","userRef":"u1"}`, nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if resp.Status != "malformed" {
			t.Errorf("status = %q", resp.Status)
		}
		if resp.Hint == "" {
			t.Error("expected a format hint in the response")
		}
	})

	t.Run("store failure -> 500", func(t *testing.T) {
		uc := &mockActivationUC{
			RedeemFunc: func(ctx context.Context, code, userID string) (*usecase.RedemptionResult, error) {
				return nil, errors.New("connection refused")
			},
		}
		router := newActivateServer(t, uc, courseUC, nil)

		rr, _ := postActivate(t, router, `{"code":"ALN-1A2B-3C4D","userRef":"u1"}`, nil)
		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rr.Code)
		}
	})

	t.Run("rate limited -> 429", func(t *testing.T) {
		uc := &mockActivationUC{
			RedeemFunc: func(ctx context.Context, code, userID string) (*usecase.RedemptionResult, error) {
				t.Fatal("Redeem must not be called when rate limited")
				return nil, nil
			},
		}
		limiter := &mockLimiter{
			AllowFunc: func(ctx context.Context, userRef string) (bool, error) { return false, nil },
		}
		router := newActivateServer(t, uc, courseUC, limiter)

		rr, _ := postActivate(t, router, `{"code":"ALN-1A2B-3C4D","userRef":"u1"}`, nil)
		if rr.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", rr.Code)
		}
	})

	t.Run("missing userRef -> 400", func(t *testing.T) {
		uc := &mockActivationUC{
			RedeemFunc: func(ctx context.Context, code, userID string) (*usecase.RedemptionResult, error) {
				t.Fatal("Redeem must not be called without a user")
				return nil, nil
			},
		}
		router := newActivateServer(t, uc, courseUC, nil)

		rr, _ := postActivate(t, router, `{"code":"ALN-1A2B-3C4D"}`, nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("arabic Accept-Language localizes the message", func(t *testing.T) {
		uc := &mockActivationUC{
			RedeemFunc: func(ctx context.Context, code, userID string) (*usecase.RedemptionResult, error) {
				return &usecase.RedemptionResult{Status: usecase.RedemptionInvalidCode}, nil
			},
		}
		router := newActivateServer(t, uc, courseUC, nil)

		_, resp := postActivate(t, router, `{"code":"ALN-9Z9Z-9Z9Z","userRef":"u1"}`, map[string]string{"Accept-Language": "ar-IQ,ar;q=0.9"})
		if resp.Message != "كود التفعيل غير صالح." {
			t.Errorf("message = %q, want Arabic invalid_code text", resp.Message)
		}
	})
}

func TestHealthHandler(t *testing.T) {
	router := newActivateServer(t, &mockActivationUC{}, &mockCourseUC{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
