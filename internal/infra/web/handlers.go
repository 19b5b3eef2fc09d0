package web

import (
	"encoding/json"
	"net/http"

	"israa-academy/internal/infra/logging"
	"israa-academy/internal/infra/metrics"
	"israa-academy/internal/usecase"
)

type activateRequest struct {
	Code    string `json:"code"`
	UserRef string `json:"userRef"`
}

type activateResponse struct {
	Status    string `json:"status"`
	CourseRef string `json:"courseRef,omitempty"`
	Message   string `json:"message,omitempty"`
	Hint      string `json:"hint,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// activateHandler is the public redemption endpoint. Classification happens
// in the use case; this handler only maps the outcome to a status code and a
// localized message.
func (s *Server) activateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tr := s.translator(r)

	var req activateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserRef == "" {
		writeJSON(w, http.StatusBadRequest, activateResponse{
			Status:  string(usecase.RedemptionMalformed),
			Message: tr.T("activation.malformed"),
			Hint:    tr.T("activation.malformed_hint"),
		})
		return
	}
	ctx = logging.WithUserRef(ctx, req.UserRef)

	allowed, err := s.limiter.Allow(ctx, req.UserRef)
	if err != nil {
		logging.With(ctx, s.log).Error().Err(err).Msg("rate limiter unavailable")
		writeJSON(w, http.StatusInternalServerError, activateResponse{Message: tr.T("activation.server_error")})
		return
	}
	if !allowed {
		metrics.IncActivationRateLimited()
		writeJSON(w, http.StatusTooManyRequests, activateResponse{Message: tr.T("activation.rate_limited")})
		return
	}

	normalized, ok := s.activationUC.ValidateFormat(req.Code)
	if !ok {
		metrics.IncActivation(string(usecase.RedemptionMalformed))
		writeJSON(w, http.StatusBadRequest, activateResponse{
			Status:  string(usecase.RedemptionMalformed),
			Message: tr.T("activation.malformed"),
			Hint:    tr.T("activation.malformed_hint"),
		})
		return
	}

	result, err := s.activationUC.Redeem(ctx, normalized, req.UserRef)
	if err != nil {
		metrics.IncActivation("error")
		logging.With(ctx, s.log).Error().Err(err).Msg("redemption failed")
		writeJSON(w, http.StatusInternalServerError, activateResponse{Message: tr.T("activation.server_error")})
		return
	}
	metrics.IncActivation(string(result.Status))

	switch result.Status {
	case usecase.RedemptionActivated:
		writeJSON(w, http.StatusOK, activateResponse{
			Status:    string(result.Status),
			CourseRef: s.courseRef(r, result.CourseID),
			Message:   tr.T("activation.activated"),
		})
	case usecase.RedemptionAlreadyActive:
		writeJSON(w, http.StatusOK, activateResponse{
			Status:    string(result.Status),
			CourseRef: s.courseRef(r, result.CourseID),
			Message:   tr.T("activation.already_active"),
		})
	default:
		writeJSON(w, http.StatusNotFound, activateResponse{
			Status:  string(usecase.RedemptionInvalidCode),
			Message: tr.T("activation.invalid_code"),
		})
	}
}

// courseRef resolves an internal course ID to its public slug. Plan-level
// codes have no single course, so the reference stays empty.
func (s *Server) courseRef(r *http.Request, courseID string) string {
	if courseID == "" {
		return ""
	}
	course, err := s.courseUC.Get(r.Context(), courseID)
	if err != nil {
		logging.With(r.Context(), s.log).Warn().Err(err).Str("course_id", courseID).Msg("course lookup for response failed")
		return ""
	}
	return course.Slug
}

type loginRequest struct {
	APIKey string `json:"api_key"`
}

// loginHandler exchanges the configured admin API key for a session token.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	if s.apiKey == "" {
		s.log.Error().Msg("Admin API key is not configured")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.APIKey != s.apiKey {
		metrics.IncAdminRequest("login", "unauthorized")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	token, err := s.auth.Mint(w)
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}
	metrics.IncAdminRequest("login", "authorized")
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	s.auth.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
