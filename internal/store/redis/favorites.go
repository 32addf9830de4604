package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/starfav/internal/domain"
)

// Store persists favorites as JSON documents in Redis.
//
// Each favorite lives under its own key; a list keeps IDs in insertion order.
// Both writes of an insert go through one MULTI/EXEC so a favorite is either
// fully stored or not at all.
type Store struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewStore creates a new Redis favorites store
func NewStore(client redis.UniversalClient) *Store {
	return &Store{
		client: client,
		now:    time.Now,
	}
}

// Insert stores a favorite under a freshly generated ID
func (s *Store) Insert(ctx context.Context, f domain.Favorite) (domain.FavoriteItem, error) {
	item := domain.NewFavoriteItem(uuid.NewString(), f, s.now().UTC())

	data, err := json.Marshal(item)
	if err != nil {
		return domain.FavoriteItem{}, domain.NewStoreError("insert", fmt.Errorf("failed to marshal favorite: %w", err))
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, FavoriteKey(item.ID), data, 0)
		pipe.RPush(ctx, AllFavoritesKey(), item.ID)
		return nil
	})
	if err != nil {
		return domain.FavoriteItem{}, domain.NewStoreError("insert", fmt.Errorf("failed to save favorite: %w", err))
	}

	return item, nil
}

// ListAll retrieves all favorites, oldest first
func (s *Store) ListAll(ctx context.Context) ([]domain.FavoriteItem, error) {
	ids, err := s.client.LRange(ctx, AllFavoritesKey(), 0, -1).Result()
	if err != nil {
		return nil, domain.NewStoreError("list", fmt.Errorf("failed to get favorite IDs: %w", err))
	}

	if len(ids) == 0 {
		return []domain.FavoriteItem{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = FavoriteKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, domain.NewStoreError("list", fmt.Errorf("failed to get favorites: %w", err))
	}

	items := make([]domain.FavoriteItem, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// ID listed but document gone (manual cleanup); skip it
			continue
		}

		var item domain.FavoriteItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, domain.NewStoreError("list", fmt.Errorf("failed to unmarshal favorite %s: %w", ids[i], err))
		}
		items = append(items, item)
	}

	return items, nil
}

// Ping checks the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return domain.NewStoreError("ping", err)
	}
	return nil
}
