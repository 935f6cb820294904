package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/infrastructure/http/handlers"
	"github.com/danispp/Task-Management/internal/infrastructure/http/middleware"
)

// APIVersion is reported in the X-API-Version header.
const APIVersion = "1"

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	HealthHandler   *handlers.HealthHandler
	UsersHandler    *handlers.UsersHandler
	ProjectsHandler *handlers.ProjectsHandler
	TasksHandler    *handlers.TasksHandler
	RequireJWT      func(http.Handler) http.Handler // bearer JWT for everything under /api except /api/auth
	CORS            func(http.Handler) http.Handler
	Secure          func(http.Handler) http.Handler
	Log             zerolog.Logger
	Metrics         bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIHeaders(APIVersion))
		r.Use(chimid.SetHeader("Content-Type", "application/json"))

		r.Route("/auth", func(r chi.Router) {
			r.Use(handlers.RequireJSON)
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(cfg.RequireJWT)
			r.Use(handlers.RequireJSON)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", cfg.UsersHandler.List)
				r.Get("/me", cfg.UsersHandler.Me)
				r.Delete("/me", cfg.UsersHandler.DeleteMe)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", cfg.ProjectsHandler.List)
				r.Post("/", cfg.ProjectsHandler.Create)
				r.Get("/{id}", cfg.ProjectsHandler.Get)
				r.Put("/{id}", cfg.ProjectsHandler.Update)
				r.Delete("/{id}", cfg.ProjectsHandler.Delete)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", cfg.TasksHandler.List)
				r.Post("/", cfg.TasksHandler.Create)
				r.Get("/project/{projectId}", cfg.TasksHandler.ListByProject)
				r.Get("/{id}", cfg.TasksHandler.Get)
				r.Put("/{id}", cfg.TasksHandler.Update)
				r.Patch("/{id}/status", cfg.TasksHandler.UpdateStatus)
				r.Delete("/{id}", cfg.TasksHandler.Delete)
			})
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", chimid.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
