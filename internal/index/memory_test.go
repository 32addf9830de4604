package index

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/MrSnakeDoc/starfav/internal/domain"
)

func TestNewMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()
	if index == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	items, err := index.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("ListAll() on empty index = %v, want empty non-nil slice", items)
	}
}

func TestInsertAssignsIdentity(t *testing.T) {
	index := NewMemoryIndex()

	fav := domain.Favorite{Name: "A New Hope", Type: domain.ItemTypeMovie, URL: "https://swapi.dev/api/films/1/"}
	item, err := index.Insert(context.Background(), fav)
	if err != nil {
		t.Fatalf("Insert() unexpected error: %v", err)
	}
	if item.ID == "" {
		t.Error("Insert() returned empty ID")
	}
	if item.CreatedAt.IsZero() {
		t.Error("Insert() returned zero CreatedAt")
	}
	if item.Name != fav.Name || item.Type != fav.Type || item.URL != fav.URL {
		t.Errorf("Insert() = %+v, want fields of %+v", item, fav)
	}

	items, _ := index.ListAll(context.Background())
	if len(items) != 1 || items[0] != item {
		t.Errorf("ListAll() = %+v, want [%+v]", items, item)
	}
}

func TestListAllKeepsInsertionOrder(t *testing.T) {
	index := NewMemoryIndex()
	names := []string{"Luke", "Leia", "Han"}

	for _, n := range names {
		if _, err := index.Insert(context.Background(), domain.Favorite{Name: n, Type: domain.ItemTypeCharacter, URL: "u"}); err != nil {
			t.Fatalf("Insert(%s) unexpected error: %v", n, err)
		}
	}

	items, _ := index.ListAll(context.Background())
	if len(items) != len(names) {
		t.Fatalf("ListAll() = %v items, want %v", len(items), len(names))
	}
	for i, n := range names {
		if items[i].Name != n {
			t.Errorf("ListAll()[%d].Name = %v, want %v", i, items[i].Name, n)
		}
	}
}

func TestCanceledContext(t *testing.T) {
	index := NewMemoryIndex()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := index.Insert(ctx, domain.Favorite{Name: "Luke", Type: domain.ItemTypeCharacter, URL: "u"})
	var se *domain.StoreError
	if !errors.As(err, &se) {
		t.Errorf("Insert() with canceled ctx error = %v, want *StoreError", err)
	}
	if len(index.order) != 0 {
		t.Errorf("stored %v favorites, want 0", len(index.order))
	}

	if _, err := index.ListAll(ctx); !errors.As(err, &se) {
		t.Errorf("ListAll() with canceled ctx error = %v, want *StoreError", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewMemoryIndex()

	var wg sync.WaitGroup
	ids := make(chan string, 100)

	// Concurrent reads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = index.ListAll(context.Background())
		}()
	}

	// Concurrent inserts
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item, err := index.Insert(context.Background(), domain.Favorite{Name: "Yoda", Type: domain.ItemTypeCharacter, URL: "u"})
			if err != nil {
				t.Errorf("Insert() unexpected error: %v", err)
				return
			}
			ids <- item.ID
		}()
	}

	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID assigned: %s", id)
		}
		seen[id] = true
	}
	if len(seen) != 100 || len(index.order) != 100 {
		t.Errorf("Concurrent Insert() count = %v, want 100", len(index.order))
	}
}
