package neo4j_test

import (
	"context"
	"os"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/mlwelles/moviegraph/graphstore/neo4j"
	"github.com/mlwelles/moviegraph/movies"
)

// skipIfNoNeo4j skips the test if NEO4J_TEST_URI is not set or -short is passed.
func skipIfNoNeo4j(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if os.Getenv("NEO4J_TEST_URI") == "" {
		t.Skip("Skipping: NEO4J_TEST_URI not set")
	}
}

func newTestStore(t *testing.T) *neo4j.Store {
	t.Helper()
	cfg := neo4j.Config{
		URI:      os.Getenv("NEO4J_TEST_URI"),
		Username: os.Getenv("NEO4J_TEST_USER"),
		Password: os.Getenv("NEO4J_TEST_PASSWORD"),
	}
	if cfg.Username == "" {
		cfg.Username = "neo4j"
	}
	s, err := neo4j.Open(context.Background(), cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("neo4j.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestMergeIsIdempotent(t *testing.T) {
	skipIfNoNeo4j(t)
	s := newTestStore(t)
	ctx := context.Background()
	pop := 150.4
	m := &movies.Movie{
		ID:         "it-19995",
		Title:      "Avatar",
		Popularity: &pop,
		Keywords:   []string{"space"},
		Genres:     []movies.Genre{{Name: "ItAction"}, {Name: "ItAdventure"}},
	}
	c := &movies.Credits{
		MovieID:   "it-19995",
		Actors:    []string{"It Sam Worthington"},
		Directors: []string{"It James Cameron"},
	}

	for i := 0; i < 2; i++ {
		if err := s.MergeMovie(ctx, m); err != nil {
			t.Fatalf("MergeMovie run %d: %v", i, err)
		}
		if err := s.MergeCredits(ctx, c); err != nil {
			t.Fatalf("MergeCredits run %d: %v", i, err)
		}
		stats, err := s.Stats(ctx)
		if err != nil {
			t.Fatalf("Stats: %v", err)
		}
		t.Logf("Stats after run %d: %+v", i, stats)
		if stats.Movies == 0 || stats.Genres < 2 || stats.Actors == 0 || stats.Directors == 0 {
			t.Fatalf("expected merged nodes, got %+v", stats)
		}
	}
}

func TestCreditsForUnknownMovie(t *testing.T) {
	skipIfNoNeo4j(t)
	s := newTestStore(t)

	err := s.MergeCredits(context.Background(), &movies.Credits{
		MovieID: "it-does-not-exist",
		Actors:  []string{"It Nobody"},
	})
	if err != nil {
		t.Fatalf("MergeCredits for unknown movie should not fail: %v", err)
	}
}
