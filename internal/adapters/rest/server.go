package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	core_port "listing-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type ServerConfig struct {
	Port           string
	ServiceName    string
	AllowedOrigins []string
}

// Server - REST API сервер объявлений
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(cfg ServerConfig, handlers *ListingHandler, baseLogger core_port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           newRouter(cfg, handlers, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

func newRouter(cfg ServerConfig, handlers *ListingHandler, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-User-ID", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: cfg.ServiceName})
	})

	r.Route("/api/v1/listings", func(r chi.Router) {
		r.With(AuthMiddleware).Post("/", handlers.CreateListing)
		r.Get("/", handlers.ListListings)

		r.Route("/{listingID}", func(r chi.Router) {
			r.Get("/", handlers.GetListingDetails)
			r.Patch("/", handlers.UpdateListing)
			r.Delete("/", handlers.DeleteListing)
			r.Get("/proximity", handlers.GetListingProximity)
		})
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
