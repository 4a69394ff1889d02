package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/poetry/internal/httpserver/deps"
	"github.com/MrSnakeDoc/poetry/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/poetry/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(rateLimitConfig(d), d.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))

		r.Get("/poems", handlers.ListPoems(d))
		r.Get("/poems/{id}", handlers.GetPoem(d))
		r.Get("/authors", handlers.Authors(d))

		r.With(limit).Post("/poems", handlers.CreatePoem(d))
		r.With(limit).Post("/poems/{id}/favorite", handlers.ToggleFavoriteAPI(d))
	})
}
