// Package ingest projects the movies and credits datasets into a graph
// store: one Movie node per movie row, Genre nodes from its genres field,
// and Actor and Director nodes from the matching credits row.
package ingest

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mlwelles/moviegraph/literal"
	"github.com/mlwelles/moviegraph/movies"
	"github.com/mlwelles/moviegraph/source"
)

// TopBilled is how many cast entries per movie become actors, taken in
// input order.
const TopBilled = 5

// DirectorJob is the crew job value that marks a director.
const DirectorJob = "Director"

// Summary describes a completed run.
type Summary struct {
	Movies         int
	GenreLinks     int
	ActorLinks     int
	DirectorLinks  int
	MissingCredits int
	ParseFallbacks int
}

// Ingestor runs the sequential ingestion pass against a Store.
type Ingestor struct {
	store   Store
	logger  *zap.Logger
	metrics *Metrics
	summary Summary
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(in *Ingestor) { in.logger = l }
}

// WithMetrics sets the counters updated during ingestion.
func WithMetrics(m *Metrics) Option {
	return func(in *Ingestor) { in.metrics = m }
}

// New returns an Ingestor writing to store.
func New(store Store, opts ...Option) *Ingestor {
	in := &Ingestor{store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(in)
	}
	if in.metrics == nil {
		in.metrics = NewMetrics(nil)
	}
	return in
}

// Summary returns the counts accumulated so far.
func (in *Ingestor) Summary() Summary { return in.summary }

// LoadMovie merges the movie described by row, its keywords and its genres.
func (in *Ingestor) LoadMovie(ctx context.Context, row source.Row) error {
	id := row.Get("id")
	genres := in.parse(id, "genres", row.GetOr("genres", "[]"))
	keywords := in.parse(id, "keywords", row.GetOr("keywords", "[]"))

	m := &movies.Movie{
		ID:          id,
		Title:       row.Get("title"),
		ReleaseDate: row.Get("release_date"),
		Popularity:  toFloat(row.GetOr("popularity", "0")),
		Revenue:     toInteger(row.GetOr("revenue", "0")),
		VoteCount:   toInteger(row.GetOr("vote_count", "0")),
		Budget:      toInteger(row.GetOr("budget", "0")),
		Keywords:    keywords.Names(),
	}
	for _, name := range genres.Names() {
		m.Genres = append(m.Genres, movies.Genre{Name: name})
	}

	if err := in.store.MergeMovie(ctx, m); err != nil {
		return errors.Wrapf(err, "merging movie %s", id)
	}
	in.summary.Movies++
	in.summary.GenreLinks += len(m.Genres)
	in.metrics.movie(len(m.Genres))
	return nil
}

// LoadCredits merges the top billed actors and the directors of a movie
// from its encoded cast and crew lists.
func (in *Ingestor) LoadCredits(ctx context.Context, movieID, cast, crew string) error {
	c := &movies.Credits{
		MovieID:   movieID,
		Actors:    in.parse(movieID, "cast", cast).Head(TopBilled).Names(),
		Directors: in.parse(movieID, "crew", crew).Where("job", DirectorJob).Names(),
	}
	if err := in.store.MergeCredits(ctx, c); err != nil {
		return errors.Wrapf(err, "merging credits for movie %s", movieID)
	}
	in.summary.ActorLinks += len(c.Actors)
	in.summary.DirectorLinks += len(c.Directors)
	in.metrics.credits(len(c.Actors), len(c.Directors))
	return nil
}

// Run reads both files into memory, then merges every movie in file order
// followed by its credits. Input errors abort before any write; a store
// error aborts the run.
func (in *Ingestor) Run(ctx context.Context, moviesPath, creditsPath string) (Summary, error) {
	rows, err := source.ReadMovies(moviesPath)
	if err != nil {
		return in.summary, errors.Wrap(err, "loading movies")
	}
	credits, err := source.ReadCredits(creditsPath)
	if err != nil {
		return in.summary, errors.Wrap(err, "loading credits")
	}
	in.logger.Info("input loaded",
		zap.Int("movies", len(rows)),
		zap.Int("credits", len(credits)))

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return in.summary, err
		}
		if err := in.LoadMovie(ctx, row); err != nil {
			return in.summary, err
		}
		id := row.Get("id")
		credit, ok := credits[id]
		if !ok {
			in.logger.Debug("no credits for movie", zap.String("movie_id", id))
			in.summary.MissingCredits++
			in.metrics.missingCredits()
			continue
		}
		if err := in.LoadCredits(ctx, id, credit.Get("cast"), credit.Get("crew")); err != nil {
			return in.summary, err
		}
	}
	return in.summary, nil
}

func (in *Ingestor) parse(movieID, field, value string) literal.List {
	l := literal.Parse(value)
	if l.Failed() {
		in.logger.Debug("unreadable list field, using empty list",
			zap.String("movie_id", movieID),
			zap.String("field", field),
			zap.Error(l.Err))
		in.summary.ParseFallbacks++
		in.metrics.fallback(field)
	}
	return l
}
