package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlwelles/moviegraph/graphstore/memory"
	"github.com/mlwelles/moviegraph/movies"
)

func TestStore_KeywordsKeepOrderAndDuplicates(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.MergeMovie(ctx, &movies.Movie{ID: "1", Keywords: []string{"z", "a", "z"}}))

	m, ok := s.Movie("1")
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "z"}, m.Keywords)
}

func TestStore_MergeMovieOverwrites(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	rev := int64(10)

	require.NoError(t, s.MergeMovie(ctx, &movies.Movie{ID: "1", Title: "Old", Revenue: &rev, Keywords: []string{"a", "b"}}))
	require.NoError(t, s.MergeMovie(ctx, &movies.Movie{ID: "1", Title: "New", Keywords: []string{"c"}}))

	m, ok := s.Movie("1")
	require.True(t, ok)
	assert.Equal(t, "New", m.Title)
	assert.Nil(t, m.Revenue)
	assert.Equal(t, []string{"c"}, m.Keywords)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Movies)
}

func TestStore_GenresAndEdgesDeduplicated(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	action := movies.Genre{Name: "Action"}

	require.NoError(t, s.MergeMovie(ctx, &movies.Movie{ID: "1", Genres: []movies.Genre{action, action}}))
	require.NoError(t, s.MergeMovie(ctx, &movies.Movie{ID: "2", Genres: []movies.Genre{action}}))

	assert.Equal(t, []string{"Action"}, s.Genres())
	assert.Len(t, s.Edges(movies.RelHasGenre, "1"), 1)
	assert.Equal(t, 2, s.EdgeCount(movies.RelHasGenre))
}

func TestStore_CreditsWithoutMovie(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	require.NoError(t, s.MergeCredits(ctx, &movies.Credits{MovieID: "404", Actors: []string{"A"}, Directors: []string{"D"}}))

	assert.Equal(t, []string{"A"}, s.Actors())
	assert.Equal(t, []string{"D"}, s.Directors())
	assert.Zero(t, s.EdgeCount(movies.RelActedIn))
	assert.Zero(t, s.EdgeCount(movies.RelDirected))
}

func TestStore_Closed(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Close(ctx))

	assert.ErrorIs(t, s.MergeMovie(ctx, &movies.Movie{ID: "1"}), memory.ErrClosed)
	assert.ErrorIs(t, s.MergeCredits(ctx, &movies.Credits{MovieID: "1"}), memory.ErrClosed)
}
