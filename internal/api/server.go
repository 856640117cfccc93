// Package api exposes the mixture evaluator over HTTP: evaluation endpoints,
// the thresholds admin surface, and health.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/gasguard/gasguard/internal/audit"
	"github.com/gasguard/gasguard/internal/auth"
	"github.com/gasguard/gasguard/internal/telemetry"
)

// Options configures the API server.
type Options struct {
	AdminAPIKey    string // plain admin key, compared in constant time
	AdminKeyHash   string // bcrypt hash; takes precedence when set
	RateLimitPerIP int    // evaluation requests per IP per minute
}

type Server struct {
	opts    Options
	logger  zerolog.Logger
	auditor *audit.Service
}

func NewServer(logger zerolog.Logger, auditor *audit.Service, opts Options) *Server {
	return &Server{opts: opts, logger: logger, auditor: auditor}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))
	r.Use(telemetry.Middleware)
	r.Use(s.requestLogger)

	// health
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// evaluation (rate limited per IP)
	r.Group(func(r chi.Router) {
		if s.opts.RateLimitPerIP > 0 {
			r.Use(httprate.LimitByIP(s.opts.RateLimitPerIP, time.Minute))
		}
		r.Post("/v1/mixture/evaluate", s.handleEvaluate)
		r.Get("/v1/mixture/evaluate", s.handleEvaluateGET)
	})

	// thresholds
	r.Get("/v1/thresholds", s.handleGetThresholds)
	r.Put("/v1/thresholds", s.authAdmin(s.handleUpdateThresholds))

	return r
}

// ---- middleware & helpers ----

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

func (s *Server) authAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		got := auth.ExtractBearerToken(r.Header.Get("Authorization"))
		if got == "" {
			UnauthorizedError(w, r, "missing bearer token")
			return
		}

		ok := false
		if s.opts.AdminKeyHash != "" {
			ok = auth.VerifyHashedKey(got, s.opts.AdminKeyHash)
		} else {
			ok = auth.VerifyKeyConstantTime(got, s.opts.AdminAPIKey)
		}
		if !ok {
			ForbiddenError(w, r, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	}
}
