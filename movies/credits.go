package movies

// Credits holds the people linked to a single movie: actors through
// ACTED_IN and directors through DIRECTED.
type Credits struct {
	MovieID   string
	Actors    []string
	Directors []string
}

// Stats counts nodes per label in a graph store.
type Stats struct {
	Movies    int64 `json:"movies"`
	Genres    int64 `json:"genres"`
	Actors    int64 `json:"actors"`
	Directors int64 `json:"directors"`
}

// Node labels and relationship types shared by every store.
const (
	LabelMovie    = "Movie"
	LabelGenre    = "Genre"
	LabelActor    = "Actor"
	LabelDirector = "Director"

	RelHasGenre = "HAS_GENRE"
	RelActedIn  = "ACTED_IN"
	RelDirected = "DIRECTED"
)
