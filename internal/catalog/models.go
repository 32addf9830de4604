package catalog

// Movie is a film as listed by the catalog.
type Movie struct {
	Title        string `json:"title"`
	EpisodeID    int    `json:"episode_id"`
	OpeningCrawl string `json:"opening_crawl,omitempty"`
	Director     string `json:"director,omitempty"`
	Producer     string `json:"producer,omitempty"`
	ReleaseDate  string `json:"release_date,omitempty"`
	URL          string `json:"url"`
}

// Character is a person as listed by the catalog.
type Character struct {
	Name      string `json:"name"`
	Height    string `json:"height,omitempty"`
	Mass      string `json:"mass,omitempty"`
	HairColor string `json:"hair_color,omitempty"`
	SkinColor string `json:"skin_color,omitempty"`
	EyeColor  string `json:"eye_color,omitempty"`
	BirthYear string `json:"birth_year,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Homeworld string `json:"homeworld,omitempty"`
	URL       string `json:"url"`
}

// page is one paginated listing response.
type page[T any] struct {
	Count   int     `json:"count"`
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}
