package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"

	"github.com/mlwelles/moviegraph/config"
	"github.com/mlwelles/moviegraph/graphstore"
	"github.com/mlwelles/moviegraph/ingest"
)

const pushJob = "moviegraph"

type ingestCmd struct {
	config.Store   `embed:""`
	config.Input   `embed:""`
	config.Metrics `embed:""`
}

func (c *ingestCmd) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Input.Validate(); err != nil {
		return err
	}
	return c.Metrics.Validate()
}

func (c *ingestCmd) Run(ctx context.Context, logger *zap.Logger) error {
	store, err := graphstore.Open(ctx, c.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore(store, logger)

	reg := prometheus.NewRegistry()
	in := ingest.New(store,
		ingest.WithLogger(logger),
		ingest.WithMetrics(ingest.NewMetrics(reg)))

	start := time.Now()
	summary, err := in.Run(ctx, c.Movies, c.Credits)
	c.push(reg, logger)
	if err != nil {
		return err
	}
	logger.Info("ingestion complete",
		zap.Int("movies", summary.Movies),
		zap.Int("genre_links", summary.GenreLinks),
		zap.Int("actor_links", summary.ActorLinks),
		zap.Int("director_links", summary.DirectorLinks),
		zap.Int("missing_credits", summary.MissingCredits),
		zap.Int("parse_fallbacks", summary.ParseFallbacks),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// push sends the run's counters to the Pushgateway when one is configured.
// A failed push is logged and does not fail the run.
func (c *ingestCmd) push(reg *prometheus.Registry, logger *zap.Logger) {
	if c.PushURL == "" {
		return
	}
	if err := push.New(c.PushURL, pushJob).Gatherer(reg).Push(); err != nil {
		logger.Warn("pushing metrics", zap.String("url", c.PushURL), zap.Error(err))
	}
}

func closeStore(store ingest.Store, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		logger.Warn("closing graph store", zap.Error(err))
	}
}
