// Package neo4j stores the movie graph in Neo4j using Cypher MERGE.
package neo4j

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mlwelles/moviegraph/movies"
)

var constraints = []string{
	"CREATE CONSTRAINT movie_id IF NOT EXISTS FOR (m:Movie) REQUIRE m.id IS UNIQUE",
	"CREATE CONSTRAINT genre_name IF NOT EXISTS FOR (g:Genre) REQUIRE g.name IS UNIQUE",
	"CREATE CONSTRAINT actor_name IF NOT EXISTS FOR (a:Actor) REQUIRE a.name IS UNIQUE",
	"CREATE CONSTRAINT director_name IF NOT EXISTS FOR (d:Director) REQUIRE d.name IS UNIQUE",
}

const (
	mergeMovie = `
		MERGE (m:Movie {id: $id})
		SET m.title = $title,
			m.release_date = $release_date,
			m.popularity = $popularity,
			m.revenue = $revenue,
			m.vote_count = $vote_count,
			m.budget = $budget,
			m.keywords = $keywords`

	mergeGenre = `
		MERGE (g:Genre {name: $name})
		WITH g
		MATCH (m:Movie {id: $movie_id})
		MERGE (m)-[:HAS_GENRE]->(g)`

	mergeActor = `
		MERGE (a:Actor {name: $name})
		WITH a
		MATCH (m:Movie {id: $movie_id})
		MERGE (a)-[:ACTED_IN]->(m)`

	mergeDirector = `
		MERGE (d:Director {name: $name})
		WITH d
		MATCH (m:Movie {id: $movie_id})
		MERGE (d)-[:DIRECTED]->(m)`

	countNodes = `
		CALL { MATCH (n:Movie) RETURN count(n) AS movies }
		CALL { MATCH (n:Genre) RETURN count(n) AS genres }
		CALL { MATCH (n:Actor) RETURN count(n) AS actors }
		CALL { MATCH (n:Director) RETURN count(n) AS directors }
		RETURN movies, genres, actors, directors`
)

// Config addresses a Neo4j server.
type Config struct {
	URI      string
	Username string
	Password string
	// Database is empty for the server default.
	Database string
}

// Store holds one driver and one write session for its lifetime.
type Store struct {
	driver  neo4j.DriverWithContext
	session neo4j.SessionWithContext
	logger  *zap.Logger
}

// Open connects, verifies connectivity and creates uniqueness constraints.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, errors.Wrap(err, "creating neo4j driver")
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, errors.Wrap(err, "connecting to neo4j")
	}

	s := &Store{
		driver: driver,
		session: driver.NewSession(ctx, neo4j.SessionConfig{
			AccessMode:   neo4j.AccessModeWrite,
			DatabaseName: cfg.Database,
		}),
		logger: logger,
	}
	if err := s.ensureConstraints(ctx); err != nil {
		s.Close(ctx)
		return nil, err
	}
	logger.Info("connected to neo4j", zap.String("uri", cfg.URI), zap.String("database", cfg.Database))
	return s, nil
}

func (s *Store) ensureConstraints(ctx context.Context) error {
	for _, c := range constraints {
		res, err := s.session.Run(ctx, c, nil)
		if err == nil {
			_, err = res.Consume(ctx)
		}
		if err != nil {
			return errors.Wrap(err, "creating constraint")
		}
	}
	return nil
}

// MergeMovie runs the movie and genre merges in one write transaction. The
// driver retries the transaction on transient errors.
func (s *Store) MergeMovie(ctx context.Context, m *movies.Movie) error {
	_, err := s.session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if err := run(ctx, tx, mergeMovie, movieParams(m)); err != nil {
			return nil, err
		}
		for _, g := range m.Genres {
			if err := run(ctx, tx, mergeGenre, map[string]any{"name": g.Name, "movie_id": m.ID}); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return errors.Wrap(err, "neo4j merge movie")
}

// MergeCredits runs the actor and director merges in one write transaction.
func (s *Store) MergeCredits(ctx context.Context, c *movies.Credits) error {
	_, err := s.session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, name := range c.Actors {
			if err := run(ctx, tx, mergeActor, map[string]any{"name": name, "movie_id": c.MovieID}); err != nil {
				return nil, err
			}
		}
		for _, name := range c.Directors {
			if err := run(ctx, tx, mergeDirector, map[string]any{"name": name, "movie_id": c.MovieID}); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return errors.Wrap(err, "neo4j merge credits")
}

// Stats counts nodes per label.
func (s *Store) Stats(ctx context.Context) (movies.Stats, error) {
	var stats movies.Stats
	res, err := s.session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, countNodes, nil)
		if err != nil {
			return nil, err
		}
		return result.Single(ctx)
	})
	if err != nil {
		return stats, errors.Wrap(err, "neo4j stats")
	}
	record := res.(*neo4j.Record)
	for key, dst := range map[string]*int64{
		"movies":    &stats.Movies,
		"genres":    &stats.Genres,
		"actors":    &stats.Actors,
		"directors": &stats.Directors,
	} {
		n, _, err := neo4j.GetRecordValue[int64](record, key)
		if err != nil {
			return stats, errors.Wrapf(err, "reading %s count", key)
		}
		*dst = n
	}
	return stats, nil
}

// Close ends the session and the driver.
func (s *Store) Close(ctx context.Context) error {
	serr := s.session.Close(ctx)
	derr := s.driver.Close(ctx)
	if serr != nil {
		return errors.Wrap(serr, "closing neo4j session")
	}
	return errors.Wrap(derr, "closing neo4j driver")
}

func run(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) error {
	res, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return err
	}
	_, err = res.Consume(ctx)
	return err
}

// movieParams passes nil for absent numbers so SET removes the property.
func movieParams(m *movies.Movie) map[string]any {
	keywords := m.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return map[string]any{
		"id":           m.ID,
		"title":        m.Title,
		"release_date": m.ReleaseDate,
		"popularity":   deref(m.Popularity),
		"revenue":      deref(m.Revenue),
		"vote_count":   deref(m.VoteCount),
		"budget":       deref(m.Budget),
		"keywords":     keywords,
	}
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
