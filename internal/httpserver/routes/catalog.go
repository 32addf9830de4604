package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/starfav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/starfav/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/starfav/internal/httpserver/mw"
)

func init() { Register(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/movies", handlers.Movies(d))
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/people", handlers.People(d))
}
