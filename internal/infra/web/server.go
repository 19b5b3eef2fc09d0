package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"israa-academy/internal/infra/i18n"
	"israa-academy/internal/usecase"
)

// AttemptLimiter throttles activation attempts per user reference.
type AttemptLimiter interface {
	Allow(ctx context.Context, userRef string) (bool, error)
}

type Server struct {
	activationUC usecase.ActivationUseCase
	courseUC     usecase.CourseUseCase
	userUC       usecase.UserUseCase
	commentUC    usecase.CommentUseCase
	statsUC      usecase.StatsUseCase

	auth    *AuthManager
	apiKey  string
	limiter AttemptLimiter
	i18n    *i18n.Registry
	log     *zerolog.Logger
}

func NewServer(
	activationUC usecase.ActivationUseCase,
	courseUC usecase.CourseUseCase,
	userUC usecase.UserUseCase,
	commentUC usecase.CommentUseCase,
	statsUC usecase.StatsUseCase,
	auth *AuthManager,
	apiKey string,
	limiter AttemptLimiter,
	reg *i18n.Registry,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		activationUC: activationUC,
		courseUC:     courseUC,
		userUC:       userUC,
		commentUC:    commentUC,
		statsUC:      statsUC,
		auth:         auth,
		apiKey:       apiKey,
		limiter:      limiter,
		i18n:         reg,
		log:          logger,
	}
}

// Router builds the full route tree. The public surface is the activation
// endpoint plus health and metrics; everything else sits behind the admin
// session middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.traceMiddleware, s.recoverMiddleware, s.logMiddleware, s.localeMiddleware)

	r.Get("/health", s.healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/activate", s.activateHandler)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", s.loginHandler)
			r.Post("/logout", s.logoutHandler)

			r.Group(func(r chi.Router) {
				r.Use(s.adminAuthMiddleware)

				r.Get("/stats", s.statsHandler)

				r.Post("/codes", s.codesIssueHandler)
				r.Get("/codes", s.codesListHandler)
				r.Post("/codes/{code}/revoke", s.codeRevokeHandler)

				r.Post("/courses", s.courseCreateHandler)
				r.Get("/courses", s.coursesListHandler)
				r.Get("/courses/{id}", s.courseGetHandler)
				r.Put("/courses/{id}", s.courseUpdateHandler)
				r.Delete("/courses/{id}", s.courseDeleteHandler)
				r.Post("/courses/{id}/publish", s.coursePublishHandler)
				r.Get("/courses/{id}/comments", s.commentsListHandler)

				r.Get("/users", s.usersListHandler)
				r.Get("/users/{id}", s.userGetHandler)

				r.Delete("/comments/{id}", s.commentDeleteHandler)
				r.Post("/comments/{id}/reset-likes", s.commentResetLikesHandler)
			})
		})
	})
	return r
}

// adminAuthMiddleware admits requests carrying a valid admin session token,
// either as the cookie minted by login or as a bearer header.
func (s *Server) adminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
