package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/starfav/internal/catalog"
	"github.com/MrSnakeDoc/starfav/internal/domain"
	"github.com/MrSnakeDoc/starfav/internal/logger"
	"github.com/MrSnakeDoc/starfav/internal/version"
)

// Favorites is the favorites service as seen by handlers.
type Favorites interface {
	AddFavorite(ctx context.Context, c domain.Candidate) (domain.FavoriteItem, error)
	GetFavorites(ctx context.Context) ([]domain.FavoriteItem, error)
	Ready(ctx context.Context) error
}

// Catalog is the catalog client as seen by handlers.
type Catalog interface {
	ListMovies(ctx context.Context) ([]catalog.Movie, error)
	ListCharacters(ctx context.Context) ([]catalog.Character, error)
	BreakerState() string
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Build        version.Info
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the API
	AllowedCIDRS []string         // IPs allowed to access readyz/infra/metrics
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Favorites    Favorites        // favorites service
	Catalog      Catalog          // movie/character catalog
	StoreBackend string           // "redis" | "mongo" | "memory", reported by /infra
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
