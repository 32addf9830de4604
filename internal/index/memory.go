package index

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/starfav/internal/domain"
)

// MemoryIndex is an in-process favorites store.
// It backs the "memory" store backend (dev mode) and the service tests.
type MemoryIndex struct {
	mu        sync.RWMutex
	favorites map[string]domain.FavoriteItem // ID -> FavoriteItem
	order     []string                       // IDs in insertion order
	now       func() time.Time
	newID     func() string
}

// NewMemoryIndex creates an empty memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		favorites: make(map[string]domain.FavoriteItem),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Insert assigns a fresh ID to f and stores it
func (idx *MemoryIndex) Insert(ctx context.Context, f domain.Favorite) (domain.FavoriteItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.FavoriteItem{}, domain.NewStoreError("insert", err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	item := domain.NewFavoriteItem(idx.newID(), f, idx.now().UTC())
	idx.favorites[item.ID] = item
	idx.order = append(idx.order, item.ID)

	return item, nil
}

// ListAll returns every favorite in insertion order
func (idx *MemoryIndex) ListAll(ctx context.Context) ([]domain.FavoriteItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewStoreError("list", err)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	items := make([]domain.FavoriteItem, 0, len(idx.order))
	for _, id := range idx.order {
		items = append(items, idx.favorites[id])
	}
	return items, nil
}

// Ping always succeeds: there is nothing to reach.
func (idx *MemoryIndex) Ping(context.Context) error { return nil }
