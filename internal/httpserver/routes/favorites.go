package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/starfav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/starfav/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/starfav/internal/httpserver/mw"
)

func init() { Register(registerFavorites) }

func registerFavorites(r chi.Router, d deps.Deps) {
	r.Route("/favorites", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Get("/", handlers.ListFavorites(d))
		r.Post("/", handlers.AddFavorite(d))
	})
}
