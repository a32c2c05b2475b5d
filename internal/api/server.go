// Package api provides the HTTP API server and handlers for the card catalog.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Ryuseikaiz/Ichu-Database/internal/store"
)

// Version is reported in the OpenAPI document.
const Version = "1.0.0"

// Options configures the server's outer surface.
type Options struct {
	CORSOrigins    []string
	LoginPerMinute int
	LoginBurst     int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
// Call Close to stop the rate limiter when done.
func NewServer(store *store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	if opts.LoginPerMinute < 1 {
		opts.LoginPerMinute = 10
	}
	if opts.LoginBurst < 1 {
		opts.LoginBurst = 5
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))
	router.Use(clientIPMiddleware)
	router.Use(authMiddleware(services.Auth))

	s := &Server{
		store:           store,
		services:        services,
		router:          router,
		api:             humachi.New(router, humaConfig()),
		logger:          logger,
		authRateLimiter: NewRateLimiter(opts.LoginPerMinute, time.Minute, opts.LoginBurst),
	}
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerCardRoutes()

	return s
}

func humaConfig() huma.Config {
	cfg := huma.DefaultConfig("I-Chu Card Catalog API", Version)
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	cfg.Transformers = append(cfg.Transformers, EnvelopeTransformer)
	return cfg
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources.
func (s *Server) Close() {
	s.authRateLimiter.Stop()
}
