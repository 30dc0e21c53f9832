package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlwelles/moviegraph/movies"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_IngestIntoMemory(t *testing.T) {
	dir := t.TempDir()
	moviesPath := writeFile(t, dir, "movies.csv",
		"id,title,release_date,genres,keywords\n19995,Avatar,2009-12-10,\"[{'name': 'Action'}]\",\"[{'name': 'space'}]\"\n")
	creditsPath := writeFile(t, dir, "credits.csv", "movie_id,title,cast,crew\n")

	err := run(context.Background(), []string{
		"--log-level", "error",
		"--movies", moviesPath,
		"--credits", creditsPath,
		"--store-uri", "memory://",
	}, &bytes.Buffer{})

	assert.NoError(t, err)
}

func TestRun_EnvironmentConfiguration(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MOVIEGRAPH_STORE_URI", "memory://")
	t.Setenv("MOVIEGRAPH_MOVIES_CSV", writeFile(t, dir, "movies.csv", "id,title,release_date\n1,One,2000-01-01\n"))
	t.Setenv("MOVIEGRAPH_CREDITS_CSV", writeFile(t, dir, "credits.csv", "movie_id,cast,crew\n1,[],[]\n"))
	t.Setenv("MOVIEGRAPH_LOG_LEVEL", "error")

	err := run(context.Background(), []string{"ingest"}, &bytes.Buffer{})

	assert.NoError(t, err)
}

func TestRun_MissingInputFails(t *testing.T) {
	err := run(context.Background(), []string{
		"--log-level", "error",
		"--store-uri", "memory://",
		"--movies", filepath.Join(t.TempDir(), "absent.csv"),
		"--credits", filepath.Join(t.TempDir(), "absent.csv"),
	}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MOVIEGRAPH_MOVIES_CSV must name an existing file")
}

func TestRun_Neo4jRequiresUser(t *testing.T) {
	dir := t.TempDir()
	err := run(context.Background(), []string{
		"--log-level", "error",
		"--store-uri", "neo4j://127.0.0.1:7687",
		"--movies", writeFile(t, dir, "movies.csv", "id,title,release_date\n"),
		"--credits", writeFile(t, dir, "credits.csv", "movie_id,cast,crew\n"),
	}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MOVIEGRAPH_STORE_USER")
}

func TestRun_Stats(t *testing.T) {
	var out bytes.Buffer

	err := run(context.Background(), []string{"--log-level", "error", "stats", "--store-uri", "memory://"}, &out)
	require.NoError(t, err)

	var stats movies.Stats
	require.NoError(t, json.Unmarshal(out.Bytes(), &stats))
	assert.Equal(t, movies.Stats{}, stats)
}
