package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/folio-cms/folio/backend/internal/setup"
	mw "github.com/folio-cms/folio/shared/middleware"
	"github.com/folio-cms/folio/shared/middleware/metrics"
	rl "github.com/folio-cms/folio/shared/middleware/ratelimiter"
)

// limiter entries idle for this long are dropped
const limiterTTL = time.Hour

// New creates the chi router with all the routes.
// Rate limiters set with Use count requests for all endpoints of that group combined.
func New(deps *setup.Dependencies) chi.Router {
	cfg := deps.Config.Public
	h := deps.Handler
	authMw := deps.AuthMiddleware

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Compress(5))

	// setup CORS for the frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Http.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// images are embedded by the site frontend from another origin
	r.With(mw.SecurityHeaders(mw.SecurityPolicy{
		HSTS:                 cfg.Http.SecureCookies,
		CrossOriginResources: true,
	})).Get("/media/{name}", h.ServeMedia)

	r.Group(func(r chi.Router) {
		r.Use(mw.SecurityHeaders(mw.APIPolicy(cfg.Http.SecureCookies)))

		r.Get("/health", h.Health)
		r.Get("/ready", h.Ready)
		r.Handle("/metrics", promhttp.Handler())

		r.Route("/v1", func(v1 chi.Router) {
			v1.Route("/auth", func(auth chi.Router) {
				auth.With(mw.RateLimit(rl.PerMinute(cfg.RateLimits.LoginPerMinute, limiterTTL), mw.GetIP)).
					Post("/login", h.Login)
				auth.Post("/logout", h.Logout)
				auth.Get("/me", h.Me)
			})

			// authentication happens inside the message service; OptionalAuth only keys the limiter
			v1.With(
				authMw.OptionalAuth(),
				mw.RateLimit(rl.PerMinute(cfg.RateLimits.MessagesPerMinute, limiterTTL), mw.CallerOrIP),
			).Post("/messages", h.Messages)

			// Public content
			v1.Get("/about", h.GetAbout)
			v1.Get("/skills", h.GetSkills)
			v1.Get("/experiences", h.GetExperiences)
			v1.Get("/services", h.GetServices)
			v1.Get("/portfolio", h.GetPortfolio)
			v1.With(authMw.OptionalAuth()).Get("/portfolio/{slug}", h.GetPortfolioItem)
			v1.Get("/resume", h.GetResume)

			// Admin routes
			v1.Route("/admin", func(admin chi.Router) {
				admin.Use(authMw.AdminOnly())

				admin.Put("/about", h.PutAbout)

				admin.Post("/skills", h.CreateSkill)
				admin.Patch("/skills/{id}", h.PatchSkill)
				admin.Delete("/skills/{id}", h.DeleteSkill)

				admin.Post("/experiences", h.CreateExperience)
				admin.Patch("/experiences/{id}", h.PatchExperience)
				admin.Delete("/experiences/{id}", h.DeleteExperience)

				admin.Post("/services", h.CreateService)
				admin.Patch("/services/{id}", h.PatchService)
				admin.Delete("/services/{id}", h.DeleteService)

				admin.Get("/portfolio", h.GetAdminPortfolio)
				admin.Post("/portfolio", h.CreatePortfolioItem)
				admin.Patch("/portfolio/{id}", h.PatchPortfolioItem)
				admin.Delete("/portfolio/{id}", h.DeletePortfolioItem)

				admin.Get("/resume/settings", h.GetResumeSettings)
				admin.Patch("/resume/settings", h.PatchResumeSettings)

				admin.Post("/media", h.UploadMedia)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not found"}`))
	})

	return r
}
