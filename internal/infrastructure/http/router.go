package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	"github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/http/handlers"
	"github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	HealthHandler       *handlers.HealthHandler
	MissionsHandler     *handlers.MissionsHandler
	ApplicationsHandler *handlers.ApplicationsHandler
	DashboardHandler    *handlers.DashboardHandler
	SkillsHandler       *handlers.SkillsHandler
	RequireJWT          func(http.Handler) http.Handler // JWT auth for authenticated routes
	RequireAdmin        func(http.Handler) http.Handler // X-DZV-Admin-Secret for /admin/*
	Log                 zerolog.Logger
	Secure              func(http.Handler) http.Handler
	CORS                func(http.Handler) http.Handler
	IPRateLimit         func(http.Handler) http.Handler
	Metrics             bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
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
	r.Use(chimid.SetHeader("Content-Type", "application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
	})

	// Public catalog.
	r.Get("/missions", cfg.MissionsHandler.List)
	r.Get("/missions/{id}", cfg.MissionsHandler.Get)
	r.Get("/skills", cfg.SkillsHandler.List)
	r.Get("/stats/home", cfg.DashboardHandler.Home)

	// Any authenticated principal.
	r.Group(func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Get("/users/me", cfg.AuthHandler.Me)
	})

	// Volunteer routes.
	r.Group(func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Use(middleware.RequireRole(domain.RoleVolunteer))
		r.Post("/missions/{id}/apply", cfg.ApplicationsHandler.Apply)
		r.Post("/me/applications/{id}/cancel", cfg.ApplicationsHandler.Cancel)
		r.Get("/me/applications", cfg.ApplicationsHandler.MyApplications)
		r.Get("/me/missions", cfg.ApplicationsHandler.MyMissions)
		r.Get("/me/participations", cfg.ApplicationsHandler.MyParticipations)
		r.Get("/me/dashboard", cfg.DashboardHandler.Volunteer)
		r.Post("/me/skills", cfg.SkillsHandler.Claim)
		r.Get("/me/skills", cfg.SkillsHandler.MyClaims)
	})

	// Organization routes.
	r.Route("/org", func(r chi.Router) {
		r.Use(cfg.RequireJWT)
		r.Use(middleware.RequireRole(domain.RoleOrganization))
		r.Post("/missions", cfg.MissionsHandler.Create)
		r.Get("/missions", cfg.MissionsHandler.ListMine)
		r.Post("/missions/{id}/publish", cfg.MissionsHandler.Publish)
		r.Get("/missions/{id}/applications", cfg.MissionsHandler.ListApplications)
		r.Post("/missions/{id}/validate-hours", cfg.MissionsHandler.ValidateHours)
		r.Post("/applications/{id}/respond", cfg.ApplicationsHandler.Respond)
		r.Get("/dashboard", cfg.DashboardHandler.Organization)
	})

	// Admin routes.
	if cfg.RequireAdmin != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Use(cfg.RequireAdmin)
			r.Post("/skills/review", cfg.SkillsHandler.Review)
		})
	}

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
