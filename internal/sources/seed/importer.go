package seed

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/starfav/internal/domain"
	"github.com/MrSnakeDoc/starfav/internal/logger"
)

// Service is the part of the favorites service the importer needs.
type Service interface {
	AddFavorite(ctx context.Context, c domain.Candidate) (domain.FavoriteItem, error)
	GetFavorites(ctx context.Context) ([]domain.FavoriteItem, error)
}

// Result summarizes one import run.
type Result struct {
	Imported int
	Skipped  int  // rejected by validation
	Ran      bool // false when the store already held favorites
}

// Import adds every entry through svc, but only into an empty store.
// Invalid entries are logged and skipped; a store failure aborts the run.
func Import(ctx context.Context, svc Service, f File, log logger.Logger) (Result, error) {
	existing, err := svc.GetFavorites(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("check existing favorites: %w", err)
	}
	if len(existing) > 0 {
		log.Info("seed skipped, store not empty", logger.Int("existing", len(existing)))
		return Result{}, nil
	}

	res := Result{Ran: true}
	for i, c := range f.Favorites {
		item, err := svc.AddFavorite(ctx, c)
		if err != nil {
			if domain.KindOf(err) == domain.KindValidation {
				res.Skipped++
				log.Warn("seed entry rejected",
					logger.Int("index", i),
					logger.String("name", c.Name),
					logger.Error(err))
				continue
			}
			return res, fmt.Errorf("import seed entry %d: %w", i, err)
		}
		res.Imported++
		log.Debug("seed entry imported",
			logger.String("id", item.ID),
			logger.String("name", item.Name),
			logger.String("type", string(item.Type)))
	}

	log.Info("seed import done",
		logger.Int("imported", res.Imported),
		logger.Int("skipped", res.Skipped))
	return res, nil
}
