// Package graphstore opens the graph store named by a store URI.
package graphstore

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mlwelles/moviegraph/config"
	"github.com/mlwelles/moviegraph/graphstore/dgraph"
	"github.com/mlwelles/moviegraph/graphstore/memory"
	"github.com/mlwelles/moviegraph/graphstore/neo4j"
	"github.com/mlwelles/moviegraph/ingest"
)

var (
	_ ingest.Store = (*dgraph.Store)(nil)
	_ ingest.Store = (*neo4j.Store)(nil)
	_ ingest.Store = (*memory.Store)(nil)
)

// Open connects to the backend selected by cfg.URI's scheme. The caller
// closes the returned Store.
func Open(ctx context.Context, cfg config.Store, logger *zap.Logger) (ingest.Store, error) {
	backend, err := cfg.Backend()
	if err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("backend", string(backend)))

	switch backend {
	case config.BackendDgraph:
		s, err := dgraph.Open(ctx, dgraph.Config{
			URI:      cfg.URI,
			Username: cfg.Username,
			Password: cfg.Password,
		}, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendNeo4j:
		s, err := neo4j.Open(ctx, neo4j.Config{
			URI:      cfg.URI,
			Username: cfg.Username,
			Password: cfg.Password,
			Database: cfg.Database,
		}, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendMemory:
		logger.Warn("using in-memory store; nothing is persisted")
		return memory.New(), nil
	default:
		return nil, errors.Errorf("no store for backend %q", backend)
	}
}
