package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/starfav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/starfav/internal/httpserver/respond"
)

const infraCheckTimeout = 2 * time.Second

type componentStatus struct {
	OK      bool   `json:"ok"`
	Backend string `json:"backend,omitempty"`
	State   string `json:"state,omitempty"`
	Impact  string `json:"impact,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	CheckedAt  string                     `json:"checked_at"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the favorites store and the catalog breaker.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"store":   checkStore(r.Context(), d),
			"catalog": checkCatalog(d),
		}

		respond.JSON(w, http.StatusOK, infraResponse{
			Status:     determineStatus(components),
			CheckedAt:  d.Now().UTC().Format(time.RFC3339),
			Components: components,
		})
	}
}

// determineStatus: store down is critical (favorites unusable),
// catalog breaker open is degraded (favorites still work).
func determineStatus(components map[string]componentStatus) string {
	if store, ok := components["store"]; ok && !store.OK {
		return "critical"
	}
	if cat, ok := components["catalog"]; ok && !cat.OK {
		return "degraded"
	}
	return "ok"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, infraCheckTimeout)
	defer cancel()

	if err := d.Favorites.Ready(ctx); err != nil {
		return componentStatus{
			OK:      false,
			Backend: d.StoreBackend,
			Impact:  "favorites-unavailable",
			Error:   "unreachable",
		}
	}
	return componentStatus{OK: true, Backend: d.StoreBackend}
}

func checkCatalog(d deps.Deps) componentStatus {
	state := d.Catalog.BreakerState()
	if state == "open" {
		return componentStatus{
			OK:     false,
			State:  state,
			Impact: "catalog-requests-rejected",
		}
	}
	return componentStatus{OK: true, State: state}
}
