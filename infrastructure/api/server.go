// Package api assembles the HTTP server: router, middleware stack and
// endpoint registration.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/movelabhq/movelab/application/service"
	"github.com/movelabhq/movelab/infrastructure/api/middleware"
	v1 "github.com/movelabhq/movelab/infrastructure/api/v1"
	"github.com/movelabhq/movelab/internal/config"
	"github.com/movelabhq/movelab/internal/log"
)

// Services carries the application services the server exposes.
type Services struct {
	Workshops  *service.WorkshopService
	Playground *service.PlaygroundService
	Packages   *service.PackageService
	Explorer   *service.ExplorerService
	Explain    *service.ExplainService
}

// Server is the HTTP server for the movelab API.
type Server struct {
	cfg      config.AppConfig
	logger   *log.Logger
	services Services
	http     *http.Server
	version  string
}

// NewServer creates a Server with its routes registered.
func NewServer(cfg config.AppConfig, logger *log.Logger, services Services, version string) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		services: services,
		version:  version,
	}

	s.http = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.APIKeyHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.health)
	r.Get("/version", s.versionInfo)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.WriteAuth(s.cfg.APIKeys()))

		v1.NewWorkshopHandler(s.services.Workshops).Routes(r)
		v1.NewPlaygroundHandler(s.services.Playground, s.services.Packages).Routes(r)
		v1.NewContractHandler(s.services.Explorer).Routes(r)
		v1.NewExplainHandler(s.services.Explain).Routes(r)
		v1.NewImageHandler(s.services.Workshops, s.cfg.MaxImageBytes()).Routes(r)
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) versionInfo(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Handler returns the assembled router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("http server shutting down")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
