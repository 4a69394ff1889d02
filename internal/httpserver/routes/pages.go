package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/poetry/internal/httpserver/deps"
	"github.com/MrSnakeDoc/poetry/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/poetry/internal/httpserver/mw"
)

func init() { Register(registerPages) }

func registerPages(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(rateLimitConfig(d), d.Logger)

	r.Group(func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Get("/", handlers.Index(d))

		r.With(limit).Post("/poems", handlers.AddPoem(d))
		r.With(limit).Post("/poems/favorite", handlers.ToggleFavorite(d))
		r.With(limit).Post("/poems/{id}/favorite", handlers.ToggleFavorite(d))
		r.With(limit).Post("/theme", handlers.ToggleTheme(d))
	})
}

func rateLimitConfig(d deps.Deps) mw.RateLimitConfig {
	return mw.RateLimitConfig{
		Burst:      d.RateLimitBurst,
		PerMinute:  d.RateLimitPerMin,
		MaxClients: 10000,
		TrustProxy: d.TrustProxy,
	}
}
