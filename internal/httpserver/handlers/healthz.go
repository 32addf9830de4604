package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/starfav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/starfav/internal/httpserver/respond"
	"github.com/MrSnakeDoc/starfav/internal/version"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	version.Info
}

// Healthz is the liveness probe. It never touches the store or the catalog.
func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		respond.JSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			UptimeSeconds: d.Now().Sub(start).Seconds(),
			Info:          d.Build,
		})
	}
}
