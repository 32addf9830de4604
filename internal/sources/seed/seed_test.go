package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/starfav/internal/domain"
	"github.com/MrSnakeDoc/starfav/internal/favorites"
	"github.com/MrSnakeDoc/starfav/internal/index"
	"github.com/MrSnakeDoc/starfav/internal/logger"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeSeed(t, `---
favorites:
  - name: A New Hope
    type: movie
    url: https://swapi.dev/api/films/1/
  - name: Luke Skywalker
    type: character
    url: https://swapi.dev/api/people/1/
`)

	f, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f.Favorites) != 2 {
		t.Fatalf("Load() favorites = %d, want 2", len(f.Favorites))
	}
	if got := f.Favorites[0].URL; got != "https://swapi.dev/api/films/1/" {
		t.Errorf("Load() url = %v, want https://swapi.dev/api/films/1/", got)
	}
	if got := f.Favorites[1].Type; got != "character" {
		t.Errorf("Load() type = %v, want character", got)
	}
}

func TestLoaderLoad_KeepsDollarSigns(t *testing.T) {
	t.Setenv("b", "expanded")
	t.Setenv("olo", "expanded")
	path := writeSeed(t, `favorites:
  - name: Han $olo
    type: character
    url: "https://x/?a=$b&c=${b}"
`)

	f, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := domain.Candidate{Name: "Han $olo", Type: "character", URL: "https://x/?a=$b&c=${b}"}
	if len(f.Favorites) != 1 || f.Favorites[0] != want {
		t.Errorf("Load() favorites = %+v, want [%+v]", f.Favorites, want)
	}
}

func TestLoaderLoad_Errors(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load(); err == nil {
		t.Error("Load() expected error for missing file")
	}

	path := writeSeed(t, "favorites: [oops")
	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() expected error for invalid yaml")
	}
}

func TestImport_EmptyStore(t *testing.T) {
	svc := favorites.NewService(index.NewMemoryIndex(), 0)
	f := File{Favorites: []domain.Candidate{
		{Name: "A New Hope", Type: "movie", URL: "https://swapi.dev/api/films/1/"},
		{Name: "Luke", Type: "hero", URL: "https://swapi.dev/api/people/1/"},
		{Name: "Luke Skywalker", Type: "character", URL: "https://swapi.dev/api/people/1/"},
	}}

	res, err := Import(context.Background(), svc, f, logger.Nop())
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if !res.Ran || res.Imported != 2 || res.Skipped != 1 {
		t.Errorf("Import() = %+v, want ran with 2 imported, 1 skipped", res)
	}

	items, _ := svc.GetFavorites(context.Background())
	if len(items) != 2 {
		t.Errorf("store holds %d favorites, want 2", len(items))
	}
}

func TestImport_SkipsNonEmptyStore(t *testing.T) {
	svc := favorites.NewService(index.NewMemoryIndex(), 0)
	existing := domain.Candidate{Name: "A New Hope", Type: "movie", URL: "https://swapi.dev/api/films/1/"}
	if _, err := svc.AddFavorite(context.Background(), existing); err != nil {
		t.Fatalf("AddFavorite() error = %v", err)
	}

	res, err := Import(context.Background(), svc, File{Favorites: []domain.Candidate{existing}}, logger.Nop())
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.Ran {
		t.Errorf("Import() ran on a non-empty store")
	}

	items, _ := svc.GetFavorites(context.Background())
	if len(items) != 1 {
		t.Errorf("store holds %d favorites, want 1", len(items))
	}
}

type failingService struct{}

func (failingService) AddFavorite(context.Context, domain.Candidate) (domain.FavoriteItem, error) {
	return domain.FavoriteItem{}, domain.NewStoreError("insert", errors.New("connection refused"))
}

func (failingService) GetFavorites(context.Context) ([]domain.FavoriteItem, error) {
	return []domain.FavoriteItem{}, nil
}

func TestImport_StoreFailureAborts(t *testing.T) {
	f := File{Favorites: []domain.Candidate{
		{Name: "A New Hope", Type: "movie", URL: "u1"},
		{Name: "Luke Skywalker", Type: "character", URL: "u2"},
	}}

	res, err := Import(context.Background(), failingService{}, f, logger.Nop())
	if domain.KindOf(err) != domain.KindStore {
		t.Fatalf("Import() error = %v, want store error", err)
	}
	if res.Imported != 0 {
		t.Errorf("Import() imported = %d, want 0", res.Imported)
	}
}
