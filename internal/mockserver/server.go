// Package mockserver serves the in-memory mock backend over the same REST
// contract the live client speaks, so the live repositories can run end to end
// without a real backend.
package mockserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mekedron/city-discovery/internal/mock"
)

const (
	// PathPrefix matches the path of the default API base URL.
	PathPrefix = "/api"

	defaultSecret     = "citydiscovery-mock-secret"
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
	shutdownTimeout   = 5 * time.Second
)

type Option func(*Server)

func WithSecret(secret string) Option {
	return func(s *Server) {
		if secret != "" {
			s.tokens.secret = []byte(secret)
		}
	}
}

func WithTokenTTL(access, refresh time.Duration) Option {
	return func(s *Server) {
		if access > 0 {
			s.tokens.accessTTL = access
		}
		if refresh > 0 {
			s.tokens.refreshTTL = refresh
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.tokens.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry sets where request metrics are registered and read from for /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// Server exposes a mock.Backend over HTTP.
type Server struct {
	backend  *mock.Backend
	tokens   *tokenIssuer
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics
	router   *mux.Router
}

func New(backend *mock.Backend, opts ...Option) (*Server, error) {
	s := &Server{
		backend: backend,
		tokens: &tokenIssuer{
			secret:     []byte(defaultSecret),
			accessTTL:  defaultAccessTTL,
			refreshTTL: defaultRefreshTTL,
			now:        time.Now,
		},
		logger:   slog.Default(),
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	m, err := newMetrics(s.registry)
	if err != nil {
		return nil, fmt.Errorf("register mock server metrics: %w", err)
	}
	s.metrics = m
	s.router = mux.NewRouter()
	s.registerRoutes()
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := s.router.PathPrefix(PathPrefix).Subrouter()
	api.Use(s.instrument)

	api.HandleFunc("/Auth/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/Auth/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/Auth/refresh-token", s.refreshToken).Methods(http.MethodPost)
	api.HandleFunc("/Auth/logout", s.logout).Methods(http.MethodPost)

	api.Handle("/Users/{id}", s.authenticated(s.user)).Methods(http.MethodGet)
	api.Handle("/Users/{id}/profile", s.authenticated(s.updateProfile)).Methods(http.MethodPut)
	api.Handle("/Users/{id}/stats", s.authenticated(s.userStats)).Methods(http.MethodGet)

	// Literal venue paths first so {id} does not swallow them.
	api.HandleFunc("/venues/nearby", s.nearby).Methods(http.MethodGet)
	api.HandleFunc("/venues/search", s.search).Methods(http.MethodGet)
	api.Handle("/venues/saved", s.authenticated(s.savedVenues)).Methods(http.MethodGet)
	api.Handle("/venues/suggestions", s.authenticated(s.addSuggestion)).Methods(http.MethodPost)
	api.HandleFunc("/venues/{id}", s.venue).Methods(http.MethodGet)
	api.Handle("/venues/{id}", s.authenticated(s.updateVenue)).Methods(http.MethodPatch)
	api.Handle("/venues/{id}/claim", s.authenticated(s.claimVenue)).Methods(http.MethodPost)
	api.Handle("/venues/{id}/photos", s.authenticated(s.uploadPhoto)).Methods(http.MethodPost)
	api.Handle("/venues/{id}/favorite", s.authenticated(s.toggleFavorite)).Methods(http.MethodPost)
	api.Handle("/venues/{id}/save", s.authenticated(s.toggleSave)).Methods(http.MethodPost)
	api.HandleFunc("/venues/{id}/reviews", s.reviews).Methods(http.MethodGet)

	api.Handle("/favorites", s.authenticated(s.favorites)).Methods(http.MethodGet)
	api.Handle("/reviews", s.authenticated(s.addReview)).Methods(http.MethodPost)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mock server listening", "addr", addr, "prefix", PathPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serve mock backend: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown mock backend: %w", err)
	}
	s.logger.Info("mock server stopped")
	return nil
}
