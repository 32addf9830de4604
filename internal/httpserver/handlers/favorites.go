package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MrSnakeDoc/starfav/internal/domain"
	"github.com/MrSnakeDoc/starfav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/starfav/internal/httpserver/respond"
	"github.com/MrSnakeDoc/starfav/internal/logger"
)

const maxFavoriteBody = 64 << 10

var (
	favoritesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starfav_favorites_created_total",
			Help: "Favorites created, by item type",
		},
		[]string{"type"},
	)

	favoritesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starfav_favorites_failed_total",
			Help: "Favorite operations that failed, by operation and error kind",
		},
		[]string{"op", "kind"},
	)
)

// AddFavorite decodes {name, type, url}, validates and stores it.
// Answers 201 with the created item.
func AddFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := http.MaxBytesReader(w, r.Body, maxFavoriteBody)
		c, err := domain.DecodeCandidate(body)
		if err != nil {
			err = bodyTooLarge(err)
			favoritesFailed.WithLabelValues("add", domain.KindOf(err).String()).Inc()
			logFailure(d, r, "favorite rejected", err)
			respond.DomainError(w, r, err)
			return
		}

		item, err := d.Favorites.AddFavorite(r.Context(), c)
		if err != nil {
			favoritesFailed.WithLabelValues("add", domain.KindOf(err).String()).Inc()
			logFailure(d, r, "add favorite failed", err)
			respond.DomainError(w, r, err)
			return
		}

		favoritesCreated.WithLabelValues(string(item.Type)).Inc()
		requestLogger(d, r).Info("favorite added",
			logger.String("id", item.ID),
			logger.String("type", string(item.Type)))

		respond.JSON(w, http.StatusCreated, item)
	}
}

// ListFavorites returns every stored favorite, [] when there are none.
func ListFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := d.Favorites.GetFavorites(r.Context())
		if err != nil {
			favoritesFailed.WithLabelValues("list", domain.KindOf(err).String()).Inc()
			logFailure(d, r, "list favorites failed", err)
			respond.DomainError(w, r, err)
			return
		}
		if items == nil {
			items = []domain.FavoriteItem{}
		}
		respond.JSON(w, http.StatusOK, items)
	}
}

// bodyTooLarge replaces the generic read failure with the size rule.
func bodyTooLarge(err error) error {
	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		return err
	}
	return &domain.ValidationError{
		Violations: []domain.Violation{{Field: "body", Rule: fmt.Sprintf("must be at most %d bytes", tooLarge.Limit)}},
		Err:        err,
	}
}

// requestLogger tags every entry with the request id and path.
func requestLogger(d deps.Deps, r *http.Request) logger.Logger {
	return d.Logger.With(
		logger.String("request_id", middleware.GetReqID(r.Context())),
		logger.String("path", r.URL.Path))
}

// logFailure logs validation failures at debug and everything else at error.
func logFailure(d deps.Deps, r *http.Request, msg string, err error) {
	kind := domain.KindOf(err)
	log := requestLogger(d, r)
	if kind == domain.KindValidation {
		log.Debug(msg, logger.String("kind", kind.String()), logger.Error(err))
		return
	}
	log.Error(msg, logger.String("kind", kind.String()), logger.Error(err))
}
