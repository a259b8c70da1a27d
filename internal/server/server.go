// Package server exposes quiz sessions over an HTTP JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"

	"github.com/abhisek/karuta/internal/logging"
	"github.com/abhisek/karuta/internal/poem"
	"github.com/abhisek/karuta/internal/session"
)

const (
	cookieName     = "karuta-session"
	cookieKey      = "id"
	sessionHeader  = "X-Session-ID"
	shutdownPeriod = 10 * time.Second
)

// Config holds the server settings.
type Config struct {
	Addr           string
	SessionKey     string
	SessionTTL     time.Duration
	AllowedOrigins []string
}

// DefaultConfig listens on :8080 with a one hour idle TTL.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		SessionTTL:     time.Hour,
		AllowedOrigins: []string{"*"},
	}
}

// Server serves the quiz API.
type Server struct {
	cfg      Config
	repo     *poem.Repository
	registry *registry
	cookies  *sessions.CookieStore
	router   *mux.Router
	logger   *slog.Logger
	now      func() time.Time
	ctrlOpts []session.Option
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock sets the time source used for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithControllerOptions passes options to every controller the server
// creates.
func WithControllerOptions(opts ...session.Option) Option {
	return func(s *Server) { s.ctrlOpts = append(s.ctrlOpts, opts...) }
}

// New builds a Server over the corpus. An empty session key gets a random
// one, so cookies do not survive a restart.
func New(repo *poem.Repository, cfg Config, opts ...Option) *Server {
	s := &Server{
		cfg:  cfg,
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}

	key := cfg.SessionKey
	if key == "" {
		key = session.NewID() + session.NewID()
		s.logger.Warn("no session key configured, using an ephemeral one")
	}
	s.cookies = sessions.NewCookieStore([]byte(key))
	s.cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	s.registry = newRegistry(cfg.SessionTTL, s.now, func() *session.Controller {
		copts := append([]session.Option{session.WithLogger(s.logger)}, s.ctrlOpts...)
		return session.NewController(s.repo, copts...)
	})
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/poems", s.handleListPoems).Methods(http.MethodGet)
	api.HandleFunc("/poems/stats", s.handlePoemStats).Methods(http.MethodGet)
	api.HandleFunc("/poems/{number:[0-9]+}", s.handleGetPoem).Methods(http.MethodGet)

	api.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	api.HandleFunc("/session", s.withSession(s.handleGetSession)).Methods(http.MethodGet)

	api.HandleFunc("/quiz/start", s.withSession(s.handleStartQuiz)).Methods(http.MethodPost)
	api.HandleFunc("/quiz/question", s.withSession(s.handleQuestion)).Methods(http.MethodGet)
	api.HandleFunc("/quiz/hint", s.withSession(s.handleHint)).Methods(http.MethodPost)
	api.HandleFunc("/quiz/answer", s.withSession(s.handleAnswer)).Methods(http.MethodPost)
	api.HandleFunc("/quiz/skip", s.withSession(s.handleSkip)).Methods(http.MethodPost)
	api.HandleFunc("/quiz/next", s.withSession(s.handleNext)).Methods(http.MethodPost)
	api.HandleFunc("/quiz/interrupt", s.withSession(s.handleInterrupt)).Methods(http.MethodPost)
	api.HandleFunc("/quiz/restart", s.withSession(s.handleRestart)).Methods(http.MethodPost)
	api.HandleFunc("/confirm", s.withSession(s.handleConfirm)).Methods(http.MethodPost)
	api.HandleFunc("/navigate", s.withSession(s.handleNavigate)).Methods(http.MethodPost)
	api.HandleFunc("/navigate/back", s.withSession(s.handleBack)).Methods(http.MethodPost)

	api.HandleFunc("/results", s.withSession(s.handleResults)).Methods(http.MethodGet)
	api.HandleFunc("/results/export", s.withSession(s.handleExportJSON)).Methods(http.MethodGet)
	api.HandleFunc("/results/export.xlsx", s.withSession(s.handleExportXLSX)).Methods(http.MethodGet)
	return r
}

// Handler returns the API with CORS applied. Credentialed cross-origin
// requests, which carry the session cookie, are only allowed for an explicit
// origin list; with a wildcard, browsers must send X-Session-ID instead.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", sessionHeader},
		ExposedHeaders:   []string{sessionHeader},
		AllowCredentials: s.cfg.credentialedCORS(),
	})
	return c.Handler(s.router)
}

// credentialedCORS reports whether every allowed origin is named explicitly.
func (c Config) credentialedCORS() bool {
	if len(c.AllowedOrigins) == 0 {
		return false
	}
	return !slices.ContainsFunc(c.AllowedOrigins, func(o string) bool {
		return strings.Contains(o, "*")
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr, "poems", s.repo.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()
	s.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Log(r.Context(), logging.RequestLevel(rec.status), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
