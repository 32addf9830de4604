// Package favorites holds the favorites business logic: validate, then persist.
package favorites

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/starfav/internal/domain"
)

// DefaultTimeout bounds every store call when the caller does not choose one.
const DefaultTimeout = 5 * time.Second

// Store is the persistence contract for favorites.
// Implementations return *domain.StoreError on failure.
type Store interface {
	// Insert assigns a fresh ID, writes f as a single document and returns it.
	Insert(ctx context.Context, f domain.Favorite) (domain.FavoriteItem, error)
	// ListAll returns every favorite. An empty store yields an empty slice.
	ListAll(ctx context.Context) ([]domain.FavoriteItem, error)
}

// Pinger is implemented by stores that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service is the single entry point for favorite operations.
// It holds no state between calls and is safe for concurrent use.
type Service struct {
	store   Store
	timeout time.Duration
}

// NewService creates a service on top of store.
func NewService(store Store, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		store:   store,
		timeout: timeout,
	}
}

// AddFavorite validates c and persists it.
// A rejected candidate never reaches the store.
func (s *Service) AddFavorite(ctx context.Context, c domain.Candidate) (domain.FavoriteItem, error) {
	fav, err := domain.ValidateCandidate(c)
	if err != nil {
		return domain.FavoriteItem{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	item, err := s.store.Insert(ctx, fav)
	if err != nil {
		return domain.FavoriteItem{}, domain.NewStoreError("insert", err)
	}
	return item, nil
}

// GetFavorites returns everything the store holds, unfiltered.
func (s *Service) GetFavorites(ctx context.Context) ([]domain.FavoriteItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	items, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, domain.NewStoreError("list", err)
	}
	if items == nil {
		items = []domain.FavoriteItem{}
	}
	return items, nil
}

// Ready pings the store when it supports it.
func (s *Service) Ready(ctx context.Context) error {
	p, ok := s.store.(Pinger)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return domain.NewStoreError("ping", p.Ping(ctx))
}
