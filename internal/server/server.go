package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server is the bot's HTTP surface: health check, metrics and, in webhook
// mode, the Telegram update route. None of it touches the pipeline directly.
type Server struct {
	addr            string
	healthUserAgent string
	webhookPath     string
	webhook         http.Handler
	logger          *zap.Logger
}

type Config struct {
	ListenAddr      string
	HealthUserAgent string
}

func New(cfg Config, logger *zap.Logger) *Server {
	return &Server{
		addr:            cfg.ListenAddr,
		healthUserAgent: cfg.HealthUserAgent,
		logger:          logger,
	}
}

// MountWebhook serves Telegram updates at path.
func (s *Server) MountWebhook(path string, h http.Handler) {
	s.webhookPath = path
	s.webhook = h
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	if s.webhook != nil {
		r.Post(s.webhookPath, s.webhook.ServeHTTP)
	}
	return r
}

// handleHealth answers only the configured uptime pinger; an empty agent
// setting answers everyone.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.healthUserAgent != "" && !strings.Contains(r.UserAgent(), s.healthUserAgent) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK"))
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("HTTP server listening", zap.String("addr", s.addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
