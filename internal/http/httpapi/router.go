package httpapi

import (
	"net/http"
	"time"

	"crowdfund/internal/http/handlers"
	"crowdfund/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	// Middlewares dasar
	r.Use(middleware.RequestID)
	if app.Config.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(app.Config.CORSAllowedOrigins),
	)

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Get("/v1/total", app.TotalGet)
	r.With(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute)).
		Post("/v1/contributions", app.ContributionsCreate)

	return r
}
