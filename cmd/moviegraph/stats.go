package main

import (
	"context"
	"encoding/json"
	"io"

	"go.uber.org/zap"

	"github.com/mlwelles/moviegraph/config"
	"github.com/mlwelles/moviegraph/graphstore"
)

type statsCmd struct {
	config.Store `embed:""`
}

func (c *statsCmd) Run(ctx context.Context, logger *zap.Logger, out io.Writer) error {
	store, err := graphstore.Open(ctx, c.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore(store, logger)

	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
