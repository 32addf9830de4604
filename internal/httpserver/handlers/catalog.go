package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/starfav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/starfav/internal/httpserver/respond"
	"github.com/MrSnakeDoc/starfav/internal/logger"
)

// Movies lists every film from the catalog.
func Movies(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movies, err := d.Catalog.ListMovies(r.Context())
		if err != nil {
			logFailure(d, r, "list movies failed", err)
			respond.DomainError(w, r, err)
			return
		}
		d.Logger.Debug("movies listed", logger.Int("count", len(movies)))
		respond.JSON(w, http.StatusOK, movies)
	}
}

// People lists every character from the catalog.
func People(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		people, err := d.Catalog.ListCharacters(r.Context())
		if err != nil {
			logFailure(d, r, "list people failed", err)
			respond.DomainError(w, r, err)
			return
		}
		d.Logger.Debug("people listed", logger.Int("count", len(people)))
		respond.JSON(w, http.StatusOK, people)
	}
}
