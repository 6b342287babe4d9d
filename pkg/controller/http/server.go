package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resume-lab/vitae/pkg/usecase"
	"github.com/resume-lab/vitae/pkg/utils/errutil"
	"github.com/resume-lab/vitae/pkg/utils/logging"
	"github.com/resume-lab/vitae/pkg/utils/safe"
)

type Server struct {
	router  *chi.Mux
	uc      *usecase.UseCases
	version string
}

type Options func(*Server)

// WithVersion sets the version string reported by the health endpoint
func WithVersion(version string) Options {
	return func(s *Server) {
		s.version = version
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:  r,
		uc:      uc,
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.healthHandler)

	r.Route("/chat", func(r chi.Router) {
		r.Post("/", s.chatHandler)
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.listSessionsHandler)
			r.Post("/", s.createSessionHandler)
			r.Get("/{sessionID}", s.getSessionHandler)
			r.Delete("/{sessionID}", s.deleteSessionHandler)
		})
		r.Get("/stats", s.conversationStatsHandler)
	})

	r.Route("/changes", func(r chi.Router) {
		r.Post("/track", s.trackChangesHandler)
		r.Get("/history", s.changeHistoryHandler)
		r.Get("/diff/{changeID}", s.changeDiffHandler)
		r.Post("/revert/{changeID}", s.revertChangeHandler)
	})

	r.Route("/profiles", func(r chi.Router) {
		r.Post("/", s.createProfileHandler)
		r.Get("/{profileID}", s.getProfileHandler)
		r.Put("/{profileID}", s.updateProfileHandler)
	})

	r.Route("/resumes", func(r chi.Router) {
		r.Post("/", s.createResumeHandler)
		r.Get("/", s.listResumesHandler)
		r.Get("/latest", s.latestResumeHandler)
		r.Get("/{resumeID}", s.getResumeHandler)
		r.Put("/{resumeID}", s.updateResumeHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": s.version,
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// respondJSON marshals v and writes it with the given status code
func respondJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

// decodeJSON parses the request body into v
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "failed to decode request body")
	}
	return nil
}

// handleError maps use case errors onto HTTP status codes per the error
// taxonomy: validation 400, not-found 404, conflict 409, LLM missing 503.
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, statusFor(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrEmptyMessage),
		errors.Is(err, usecase.ErrMissingUserID),
		errors.Is(err, usecase.ErrInvalidSnapshot),
		errors.Is(err, usecase.ErrInvalidChangeType):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrProfileNotFound),
		errors.Is(err, usecase.ErrResumeNotFound),
		errors.Is(err, usecase.ErrChangeNotFound),
		errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, usecase.ErrRevertRejected):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrProfileExists):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrLLMNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
