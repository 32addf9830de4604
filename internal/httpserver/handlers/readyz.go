package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/starfav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/starfav/internal/httpserver/respond"
	"github.com/MrSnakeDoc/starfav/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz reports ready only when the favorites store answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		if err := d.Favorites.Ready(r.Context()); err != nil {
			d.Logger.Warn("readiness check failed", logger.Error(err))
			respond.JSON(w, http.StatusServiceUnavailable, readyzResponse{
				Ready: false,
				Error: "store unreachable",
			})
			return
		}

		respond.JSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
