// Package dgraph stores the movie graph in Dgraph through modusgraph. The
// schema comes from the struct tags in package movies; writes are DQL
// upsert blocks keyed on movie_id and on name within each node type.
package dgraph

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/dgraph-io/dgo/v250"
	"github.com/dgraph-io/dgo/v250/protos/api"
	"github.com/matthewmcneely/modusgraph"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mlwelles/moviegraph/logging"
	"github.com/mlwelles/moviegraph/movies"
)

// Config addresses a Dgraph cluster (dgraph://) or an embedded
// directory (file://).
type Config struct {
	URI      string
	Username string
	Password string
}

// Store is a graph store backed by Dgraph.
type Store struct {
	client  modusgraph.Client
	dg      *dgo.Dgraph
	release func()
	logger  *zap.Logger
}

// Open connects, applies the schema and borrows one Dgraph connection for
// the lifetime of the Store.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	uri, err := withCredentials(cfg)
	if err != nil {
		return nil, err
	}
	client, err := modusgraph.NewClient(uri,
		modusgraph.WithAutoSchema(false),
		modusgraph.WithLogger(logging.Logr(logger.Named("modusgraph"))))
	if err != nil {
		return nil, errors.Wrap(err, "creating modusgraph client")
	}
	if err := client.UpdateSchema(ctx, &movies.Movie{}, &movies.Genre{}, &movies.Actor{}, &movies.Director{}); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "applying dgraph schema")
	}
	dg, release, err := client.DgraphClient()
	if err != nil {
		client.Close()
		return nil, errors.Wrap(err, "acquiring dgraph connection")
	}
	logger.Info("connected to dgraph", zap.String("uri", redact(uri)))
	return &Store{client: client, dg: dg, release: release, logger: logger}, nil
}

// MergeMovie upserts the movie, replaces its keywords and absent numbers,
// and links its genres, all in one committed request.
func (s *Store) MergeMovie(ctx context.Context, m *movies.Movie) error {
	req, err := movieRequest(m)
	if err != nil {
		return err
	}
	return s.do(ctx, req, "dgraph merge movie")
}

// MergeCredits upserts actors and directors linked to an existing movie.
// Nothing is written when the movie is not in the store.
func (s *Store) MergeCredits(ctx context.Context, c *movies.Credits) error {
	req, err := creditsRequest(c)
	if err != nil || req == nil {
		return err
	}
	return s.do(ctx, req, "dgraph merge credits")
}

func (s *Store) do(ctx context.Context, req *api.Request, what string) error {
	txn := s.dg.NewTxn()
	defer txn.Discard(ctx)
	if _, err := txn.Do(ctx, req); err != nil {
		return errors.Wrap(err, what)
	}
	return nil
}

const statsQuery = `{
	movies(func: type(Movie)) { count(uid) }
	genres(func: type(Genre)) { count(uid) }
	actors(func: type(Actor)) { count(uid) }
	directors(func: type(Director)) { count(uid) }
}`

// Stats counts nodes per type.
func (s *Store) Stats(ctx context.Context) (movies.Stats, error) {
	var stats movies.Stats
	raw, err := s.client.QueryRaw(ctx, statsQuery, nil)
	if err != nil {
		return stats, errors.Wrap(err, "dgraph stats")
	}
	var resp map[string][]struct {
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return stats, errors.Wrap(err, "decoding dgraph stats")
	}
	first := func(key string) int64 {
		if rows := resp[key]; len(rows) > 0 {
			return rows[0].Count
		}
		return 0
	}
	stats.Movies = first("movies")
	stats.Genres = first("genres")
	stats.Actors = first("actors")
	stats.Directors = first("directors")
	return stats, nil
}

// ErrNotFound is returned by Movie for an unknown id.
var ErrNotFound = errors.New("movie not found")

const movieQuery = `query q($id: string) {
	movie(func: eq(movie_id, $id)) @filter(type(Movie)) {
		uid
		movie_id
		title
		release_date
		popularity
		revenue
		vote_count
		budget
		keywords
		has_genre { uid name }
		cast: ~acted_in { uid name }
		directors: ~directed { uid name }
	}
}`

// Movie reads a movie with its genres, actors and directors.
func (s *Store) Movie(ctx context.Context, id string) (*movies.Movie, error) {
	raw, err := s.client.QueryRaw(ctx, movieQuery, map[string]string{"$id": id})
	if err != nil {
		return nil, errors.Wrapf(err, "dgraph read movie %s", id)
	}
	var resp struct {
		Movie []movies.Movie `json:"movie"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.Wrap(err, "decoding dgraph movie")
	}
	if len(resp.Movie) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "%s", id)
	}
	return &resp.Movie[0], nil
}

// Close returns the borrowed connection and closes the client.
func (s *Store) Close(_ context.Context) error {
	s.release()
	s.client.Close()
	return nil
}

func withCredentials(cfg Config) (string, error) {
	if cfg.Username == "" {
		return cfg.URI, nil
	}
	u, err := url.Parse(cfg.URI)
	if err != nil {
		return "", errors.Wrap(err, "parsing dgraph uri")
	}
	if u.Scheme != "dgraph" || u.User != nil {
		return cfg.URI, nil
	}
	u.User = url.UserPassword(cfg.Username, cfg.Password)
	return u.String(), nil
}

func redact(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return u.Redacted()
}
