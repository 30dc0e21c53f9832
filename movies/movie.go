package movies

// Movie is keyed by its external (TMDB) identifier. Nil numeric fields are
// stored as absent, matching Cypher's toFloat/toInteger returning null.
type Movie struct {
	UID         string     `json:"uid,omitempty"`
	DType       []string   `json:"dgraph.type,omitempty"`
	ID          string     `json:"movie_id,omitempty" dgraph:"index=exact upsert"`
	Title       string     `json:"title,omitempty" dgraph:"index=hash,term,trigram,fulltext"`
	ReleaseDate string     `json:"release_date,omitempty" dgraph:"index=exact"`
	Popularity  *float64   `json:"popularity,omitempty" dgraph:"index=float"`
	Revenue     *int64     `json:"revenue,omitempty" dgraph:"index=int"`
	VoteCount   *int64     `json:"vote_count,omitempty" dgraph:"index=int"`
	Budget      *int64     `json:"budget,omitempty" dgraph:"index=int"`
	Keywords    []string   `json:"keywords,omitempty" dgraph:"index=exact"`
	Genres      []Genre    `json:"has_genre,omitempty" dgraph:"reverse count"`
	Cast        []Actor    `json:"cast,omitempty" dgraph:"predicate=~acted_in reverse"`
	Directors   []Director `json:"directors,omitempty" dgraph:"predicate=~directed reverse"`
}

// GenreNames returns the names of the movie's genres in order.
func (m *Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}
