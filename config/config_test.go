package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlwelles/moviegraph/config"
)

func TestStore_Backend(t *testing.T) {
	cases := map[string]config.Backend{
		"dgraph://localhost:9080":  config.BackendDgraph,
		"file:///tmp/moviegraph":   config.BackendDgraph,
		"neo4j://127.0.0.1:7687":   config.BackendNeo4j,
		"neo4j+s://db.example.com": config.BackendNeo4j,
		"bolt://localhost:7687":    config.BackendNeo4j,
		"memory://":                config.BackendMemory,
		"DGRAPH://localhost:9080":  config.BackendDgraph,
	}
	for uri, want := range cases {
		s := config.Store{URI: uri}
		got, err := s.Backend()
		require.NoError(t, err, uri)
		assert.Equal(t, want, got, uri)
	}
}

func TestStore_BackendUnsupported(t *testing.T) {
	s := config.Store{URI: "postgres://localhost/db"}

	_, err := s.Backend()

	assert.ErrorIs(t, err, config.ErrUnsupportedScheme)
}

func TestStore_Validate(t *testing.T) {
	t.Run("missing uri names the variable", func(t *testing.T) {
		err := (&config.Store{}).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MOVIEGRAPH_STORE_URI is required")
	})
	t.Run("neo4j needs a user", func(t *testing.T) {
		err := (&config.Store{URI: "neo4j://127.0.0.1:7687"}).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MOVIEGRAPH_STORE_USER")
	})
	t.Run("neo4j with credentials", func(t *testing.T) {
		s := &config.Store{URI: "neo4j://127.0.0.1:7687", Username: "neo4j", Password: "secret"}
		assert.NoError(t, s.Validate())
	})
	t.Run("dgraph without credentials", func(t *testing.T) {
		assert.NoError(t, (&config.Store{URI: "dgraph://localhost:9080"}).Validate())
	})
	t.Run("unsupported scheme", func(t *testing.T) {
		err := (&config.Store{URI: "http://localhost"}).Validate()
		assert.ErrorIs(t, err, config.ErrUnsupportedScheme)
	})
}

func TestInput_Validate(t *testing.T) {
	dir := t.TempDir()
	movies := filepath.Join(dir, "movies.csv")
	require.NoError(t, os.WriteFile(movies, []byte("id\n"), 0o644))

	err := (&config.Input{Movies: movies, Credits: filepath.Join(dir, "credits.csv")}).Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MOVIEGRAPH_CREDITS_CSV must name an existing file")
	assert.NotContains(t, err.Error(), "MOVIEGRAPH_MOVIES_CSV")

	err = (&config.Input{}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MOVIEGRAPH_MOVIES_CSV is required")
	assert.Contains(t, err.Error(), "MOVIEGRAPH_CREDITS_CSV is required")
}

func TestLogging_Validate(t *testing.T) {
	assert.NoError(t, (&config.Logging{Level: "debug"}).Validate())
	err := (&config.Logging{Level: "loud"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MOVIEGRAPH_LOG_LEVEL must be one of")
}

func TestMetrics_Validate(t *testing.T) {
	assert.NoError(t, (&config.Metrics{}).Validate())
	assert.NoError(t, (&config.Metrics{PushURL: "http://pushgateway:9091"}).Validate())
	assert.Error(t, (&config.Metrics{PushURL: "not a url"}).Validate())
}
