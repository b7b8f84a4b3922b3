package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/task-tracker/internal/transport/http/handler"
	"github.com/ErlanBelekov/task-tracker/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	Auth  *handler.AuthHandler
	Tasks *handler.TaskHandler
	Stats *handler.StatsHandler
}

// NewRouter wires the public API. loginLimiter may be nil, in which case
// login and register are not throttled.
func NewRouter(logger *slog.Logger, h Handlers, resolver middleware.TokenResolver, loginLimiter middleware.Limiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	api := r.Group("/api")

	authMW := middleware.Auth(resolver)

	// Public auth routes
	auth := api.Group("/auth")
	if loginLimiter != nil {
		limit := middleware.RateLimit(loginLimiter, logger)
		auth.POST("/register", limit, h.Auth.Register)
		auth.POST("/login", limit, h.Auth.Login)
	} else {
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}
	auth.GET("/me", authMW, h.Auth.Me)

	// Protected task routes
	tasks := api.Group("/tasks", authMW)
	tasks.GET("", h.Tasks.List)
	tasks.POST("", h.Tasks.Create)
	tasks.GET("/stats", h.Stats.Get)
	tasks.GET("/:id", h.Tasks.GetByID)
	tasks.PATCH("/:id", h.Tasks.Update)
	tasks.PUT("/:id", h.Tasks.Update)
	tasks.DELETE("/:id", h.Tasks.Delete)

	return r
}

// WithCORS lets the browser client on origins call the API with a bearer
// token.
func WithCORS(next http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         600,
	}).Handler(next)
}
