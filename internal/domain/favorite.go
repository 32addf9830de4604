package domain

import "time"

// ItemType is the kind of catalog resource a favorite points to.
type ItemType string

const (
	ItemTypeMovie     ItemType = "movie"
	ItemTypeCharacter ItemType = "character"
)

// ParseItemType returns the ItemType matching s exactly.
// No trimming or case folding is applied: "Movie" is not a movie.
func ParseItemType(s string) (ItemType, bool) {
	switch ItemType(s) {
	case ItemTypeMovie, ItemTypeCharacter:
		return ItemType(s), true
	default:
		return "", false
	}
}

// Candidate is the raw favorite record as received at the boundary.
// Nothing about it is trusted until ValidateCandidate accepts it.
type Candidate struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	Type string `json:"type" yaml:"type" validate:"required,oneof=movie character"`
	URL  string `json:"url" yaml:"url" validate:"required"`
}

// Favorite is a validated record that has not been persisted yet.
type Favorite struct {
	Name string
	Type ItemType
	URL  string
}

// FavoriteItem represents a persisted favorite.
//
// Favorites are immutable once stored: there is no update path and
// the ID is assigned exactly once, by the store, at insert time.
type FavoriteItem struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the store-assigned unique identifier.
	// Its format depends on the backend (uuid for redis, ObjectID hex for mongo).
	ID string `json:"id"`

	// ─────────────────────────────
	// Catalog reference
	// ─────────────────────────────

	// Name is the human label of the favorite.
	// Example: A New Hope
	Name string `json:"name"`

	// Type is either movie or character.
	Type ItemType `json:"type"`

	// URL points at the catalog resource. It is opaque and never dereferenced.
	// Example: https://swapi.dev/api/films/1/
	URL string `json:"url"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is set by the store when the favorite is inserted.
	CreatedAt time.Time `json:"created_at"`
}

// NewFavoriteItem builds the stored form of f with the given identity.
func NewFavoriteItem(id string, f Favorite, createdAt time.Time) FavoriteItem {
	return FavoriteItem{
		ID:        id,
		Name:      f.Name,
		Type:      f.Type,
		URL:       f.URL,
		CreatedAt: createdAt,
	}
}
