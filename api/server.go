package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/dimafomin/chef-site-backend/config"
	"github.com/dimafomin/chef-site-backend/metrics"
	"github.com/dimafomin/chef-site-backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// Dependencies are the services the HTTP layer serves from.
type Dependencies struct {
	Pages   *services.PageService
	Metrics *metrics.Recorder
}

func NewServer(settings config.Settings, deps Dependencies) (Server, error) {
	// Capture startup time
	startupTime := time.Now()

	router := newRouter(deps, withSettings(settings), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         settings.Address(),
		Handler:      router,
		ReadTimeout:  settings.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: settings.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  settings.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	settings    config.Settings
	startupTime time.Time
	now         func() time.Time
}

func withSettings(s config.Settings) func(*router) {
	return func(r *router) {
		r.settings = s
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withClock(now func() time.Time) func(*router) {
	return func(r *router) {
		r.now = now
	}
}

func newRouter(deps Dependencies, opts ...func(*router)) *chi.Mux {
	router := router{now: time.Now}
	for _, opt := range opts {
		opt(&router)
	}
	acceptedOrigins := router.settings.AcceptedOrigins
	if len(acceptedOrigins) == 0 {
		acceptedOrigins = []string{"*"}
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestID)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware(deps.Metrics))
	chiRouter.Use(middleware.StripSlashes)
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	handlers := initializeHandlers(deps, router.startupTime, router.now)

	setupSiteRoutes(chiRouter, handlers)
	setupOperationalRoutes(chiRouter, handlers, deps.Metrics)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
