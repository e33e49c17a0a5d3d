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

	"github.com/minatbaca/minatbaca-server/internal/config"
	"github.com/minatbaca/minatbaca-server/internal/sse"
)

// Server is the HTTP API server. It registers operations through huma
// on top of a chi router and serves the event stream directly.
type Server struct {
	services        *Services
	router          *chi.Mux
	api             huma.API
	sseManager      *sse.Manager
	sseHandler      *sse.Handler
	authRateLimiter *RateLimiter
	logger          *slog.Logger
}

// NewServer wires the router, middleware and all route groups.
func NewServer(cfg *config.Config, services *Services, sseManager *sse.Manager, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig(cfg.Server.Name, "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	sseHandler := sse.NewHandler(sseManager, logger, func(r *http.Request) (string, bool) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			return "", false
		}
		claims, err := services.Auth.VerifyAccessToken(token)
		if err != nil {
			return "", false
		}
		return claims.UserID, true
	})

	s := &Server{
		services:        services,
		router:          router,
		api:             api,
		sseManager:      sseManager,
		sseHandler:      sseHandler,
		authRateLimiter: NewRateLimiter(10, time.Minute, 5),
		logger:          logger,
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerGenreRoutes()
	s.registerProfileRoutes()

	streamLimiter := NewRateLimiter(30, time.Minute, 10)
	s.router.With(RateLimitMiddleware(streamLimiter)).Get("/api/v1/events/stream", s.sseHandler.ServeHTTP)

	return s
}

// Handler returns the root http handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
