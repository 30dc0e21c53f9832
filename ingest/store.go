package ingest

import (
	"context"

	"github.com/mlwelles/moviegraph/movies"
)

// Store applies merge-on-write mutations to a graph store. Each call is
// one atomic unit of work. The Ingestor never retries a failed call; a
// driver may retry transient failures within one call, as Neo4j managed
// transactions do.
type Store interface {
	// MergeMovie upserts the movie by ID, overwrites its scalar attributes
	// and keywords, and merges a Genre node plus HAS_GENRE edge per genre.
	MergeMovie(ctx context.Context, m *movies.Movie) error
	// MergeCredits merges Actor nodes with ACTED_IN edges and Director
	// nodes with DIRECTED edges to an existing movie.
	MergeCredits(ctx context.Context, c *movies.Credits) error
	// Stats counts nodes per label.
	Stats(ctx context.Context) (movies.Stats, error)
	Close(ctx context.Context) error
}
