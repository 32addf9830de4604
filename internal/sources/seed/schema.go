package seed

import "github.com/MrSnakeDoc/starfav/internal/domain"

// File is the top-level structure of a seed file.
//
//	favorites:
//	  - name: A New Hope
//	    type: movie
//	    url: https://swapi.dev/api/films/1/
type File struct {
	Favorites []domain.Candidate `yaml:"favorites"`
}
