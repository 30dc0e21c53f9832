package neo4j

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlwelles/moviegraph/movies"
)

func TestMovieParams(t *testing.T) {
	pop := 7.5
	rev := int64(100)

	got := movieParams(&movies.Movie{
		ID:          "1",
		Title:       "T",
		ReleaseDate: "2000-01-01",
		Popularity:  &pop,
		Revenue:     &rev,
	})

	assert.Equal(t, map[string]any{
		"id":           "1",
		"title":        "T",
		"release_date": "2000-01-01",
		"popularity":   7.5,
		"revenue":      int64(100),
		"vote_count":   nil,
		"budget":       nil,
		"keywords":     []string{},
	}, got)
}
