package redis

const (
	// KeyPrefixFavorite is the prefix for favorite documents
	KeyPrefixFavorite = "starfav:favorite:"
	// KeyAllFavorites is the list of favorite IDs, oldest first
	KeyAllFavorites = "starfav:favorites:all"
)

// FavoriteKey returns the Redis key for a favorite by ID
func FavoriteKey(id string) string {
	return KeyPrefixFavorite + id
}

// AllFavoritesKey returns the key for the list of all favorite IDs
func AllFavoritesKey() string {
	return KeyAllFavorites
}

