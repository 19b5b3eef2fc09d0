package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"israa-academy/internal/domain"
	"israa-academy/internal/domain/model"
)

// ===== Activation codes =====

type codesIssueRequest struct {
	CourseID *string `json:"course_id"` // nil issues plan-level codes
	Count    int     `json:"count"`
}

func (s *Server) codesIssueHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req codesIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	codes, err := s.activationUC.IssueCodes(ctx, req.CourseID, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "Course not found", http.StatusNotFound)
		default:
			http.Error(w, "Failed to issue codes", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Codes []string `json:"codes"`
	}{Codes: codes})
}

func (s *Server) codesListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	offset, limit := pagination(r)
	status := r.URL.Query().Get("status")

	codes, err := s.activationUC.ListCodes(ctx, status, offset, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			http.Error(w, "Unknown status filter", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to list codes", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Data   []*model.ActivationCode `json:"data"`
		Limit  int                     `json:"limit"`
		Offset int                     `json:"offset"`
	}{Data: codes, Limit: limit, Offset: offset})
}

func (s *Server) codeRevokeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	normalized, ok := s.activationUC.ValidateFormat(chi.URLParam(r, "code"))
	if !ok {
		http.Error(w, "Malformed code", http.StatusBadRequest)
		return
	}

	err := s.activationUC.Revoke(ctx, normalized)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCodeNotFound):
			http.NotFound(w, r)
		case errors.Is(err, domain.ErrCodeAlreadyUsed):
			http.Error(w, "Code already redeemed", http.StatusConflict)
		default:
			http.Error(w, "Failed to revoke code", http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Courses =====

type courseRequest struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	TitleAR       string `json:"title_ar"`
	Description   string `json:"description"`
	DescriptionAR string `json:"description_ar"`
	PriceIQD      int64  `json:"price_iqd"`
	Level         string `json:"level"`
}

func (s *Server) courseCreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	course, err := s.courseUC.Create(ctx, req.Slug, req.Title, req.TitleAR, req.Description, req.DescriptionAR, req.PriceIQD, req.Level)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrAlreadyExists):
			http.Error(w, "Slug already in use", http.StatusConflict)
		default:
			http.Error(w, "Failed to create course", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, course)
}

func (s *Server) coursesListHandler(w http.ResponseWriter, r *http.Request) {
	courses, err := s.courseUC.List(r.Context())
	if err != nil {
		http.Error(w, "Failed to list courses", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Course `json:"data"`
	}{Data: courses})
}

func (s *Server) courseGetHandler(w http.ResponseWriter, r *http.Request) {
	course, err := s.courseUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to get course", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (s *Server) courseUpdateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	course, err := s.courseUC.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to get course", http.StatusInternalServerError)
		return
	}

	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	course.Slug = req.Slug
	course.Title = req.Title
	course.TitleAR = req.TitleAR
	course.Description = req.Description
	course.DescriptionAR = req.DescriptionAR
	course.PriceIQD = req.PriceIQD
	course.Level = model.CourseLevel(req.Level)

	if err := s.courseUC.Update(ctx, course); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to update course", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (s *Server) courseDeleteHandler(w http.ResponseWriter, r *http.Request) {
	err := s.courseUC.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to delete course", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type coursePublishRequest struct {
	Published bool `json:"published"`
}

func (s *Server) coursePublishHandler(w http.ResponseWriter, r *http.Request) {
	var req coursePublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := s.courseUC.Publish(r.Context(), chi.URLParam(r, "id"), req.Published)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to update course", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Users =====

func (s *Server) usersListHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	offset, limit := pagination(r)

	users, err := s.userUC.List(ctx, offset, limit)
	if err != nil {
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}
	total, err := s.userUC.Count(ctx)
	if err != nil {
		http.Error(w, "Failed to count users", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Data   []*model.User `json:"data"`
		Total  int           `json:"total"`
		Limit  int           `json:"limit"`
		Offset int           `json:"offset"`
	}{Data: users, Total: total, Limit: limit, Offset: offset})
}

func (s *Server) userGetHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	user, err := s.userUC.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to get user", http.StatusInternalServerError)
		return
	}

	grants, err := s.userUC.Grants(ctx, id)
	if err != nil {
		http.Error(w, "Failed to get user grants", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		User   *model.User          `json:"user"`
		Grants []*model.AccessGrant `json:"grants"`
	}{User: user, Grants: grants})
}

// ===== Comments =====

func (s *Server) commentsListHandler(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)

	comments, err := s.commentUC.ListByCourse(r.Context(), chi.URLParam(r, "id"), offset, limit)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to list comments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data   []*model.Comment `json:"data"`
		Limit  int              `json:"limit"`
		Offset int              `json:"offset"`
	}{Data: comments, Limit: limit, Offset: offset})
}

func (s *Server) commentDeleteHandler(w http.ResponseWriter, r *http.Request) {
	err := s.commentUC.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to delete comment", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) commentResetLikesHandler(w http.ResponseWriter, r *http.Request) {
	err := s.commentUC.ResetLikes(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to reset likes", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Stats =====

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	users, codesByStatus, grantsByCourse, err := s.statsUC.Totals(r.Context())
	if err != nil {
		http.Error(w, "Failed to get totals", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		TotalUsers     int            `json:"total_users"`
		CodesByStatus  map[string]int `json:"codes_by_status"`
		GrantsByCourse map[string]int `json:"grants_by_course"`
	}{TotalUsers: users, CodesByStatus: codesByStatus, GrantsByCourse: grantsByCourse})
}

func pagination(r *http.Request) (offset, limit int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 50 // Default page size
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
