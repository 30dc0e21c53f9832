// Package memory is an in-process graph store with the same merge
// semantics as the database backends. It backs tests and dry runs.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/mlwelles/moviegraph/movies"
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("memory store closed")

// Edge is a directed relationship between two node keys.
type Edge struct {
	From string
	Rel  string
	To   string
}

// Store holds nodes keyed by label and natural key.
type Store struct {
	mu        sync.RWMutex
	movies    map[string]movies.Movie
	genres    map[string]struct{}
	actors    map[string]struct{}
	directors map[string]struct{}
	edges     map[Edge]struct{}
	closed    bool
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		movies:    make(map[string]movies.Movie),
		genres:    make(map[string]struct{}),
		actors:    make(map[string]struct{}),
		directors: make(map[string]struct{}),
		edges:     make(map[Edge]struct{}),
	}
}

// MergeMovie upserts the movie and its genres.
func (s *Store) MergeMovie(_ context.Context, m *movies.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	stored := movies.Movie{
		ID:          m.ID,
		DType:       []string{movies.LabelMovie},
		Title:       m.Title,
		ReleaseDate: m.ReleaseDate,
		Popularity:  m.Popularity,
		Revenue:     m.Revenue,
		VoteCount:   m.VoteCount,
		Budget:      m.Budget,
		Keywords:    slices.Clone(m.Keywords),
	}
	s.movies[m.ID] = stored

	for _, g := range m.Genres {
		s.genres[g.Name] = struct{}{}
		s.edges[Edge{From: m.ID, Rel: movies.RelHasGenre, To: g.Name}] = struct{}{}
	}
	return nil
}

// MergeCredits merges people and, when the movie exists, their edges.
func (s *Store) MergeCredits(_ context.Context, c *movies.Credits) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	_, movieExists := s.movies[c.MovieID]
	for _, name := range c.Actors {
		s.actors[name] = struct{}{}
		if movieExists {
			s.edges[Edge{From: name, Rel: movies.RelActedIn, To: c.MovieID}] = struct{}{}
		}
	}
	for _, name := range c.Directors {
		s.directors[name] = struct{}{}
		if movieExists {
			s.edges[Edge{From: name, Rel: movies.RelDirected, To: c.MovieID}] = struct{}{}
		}
	}
	return nil
}

// Stats counts nodes per label.
func (s *Store) Stats(_ context.Context) (movies.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return movies.Stats{
		Movies:    int64(len(s.movies)),
		Genres:    int64(len(s.genres)),
		Actors:    int64(len(s.actors)),
		Directors: int64(len(s.directors)),
	}, nil
}

// Close marks the store closed.
func (s *Store) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Movie returns a copy of the stored movie.
func (s *Store) Movie(id string) (movies.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.movies[id]
	return m, ok
}

// Genres returns the genre names, sorted.
func (s *Store) Genres() []string { return s.keys(s.genres) }

// Actors returns the actor names, sorted.
func (s *Store) Actors() []string { return s.keys(s.actors) }

// Directors returns the director names, sorted.
func (s *Store) Directors() []string { return s.keys(s.directors) }

// Edges returns edges of type rel touching the movie id, sorted.
func (s *Store) Edges(rel, movieID string) []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Edge
	for e := range s.edges {
		if e.Rel == rel && (e.From == movieID || e.To == movieID) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// EdgeCount returns the total number of edges of type rel.
func (s *Store) EdgeCount(rel string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for e := range s.edges {
		if e.Rel == rel {
			n++
		}
	}
	return n
}

func (s *Store) keys(set map[string]struct{}) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
