// Command moviegraph loads the TMDB movies and credits CSV exports into a
// graph store.
//
//	moviegraph --movies tmdb_5000_movies.csv --credits tmdb_5000_credits.csv \
//		--store-uri neo4j://127.0.0.1:7687 --store-user neo4j
//
// Every flag can be given as a MOVIEGRAPH_* environment variable instead.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/mlwelles/moviegraph/config"
	"github.com/mlwelles/moviegraph/logging"
)

type cli struct {
	config.Logging `embed:""`

	Ingest ingestCmd `cmd:"" default:"withargs" help:"Load the movies and credits CSV files into the graph store."`
	Stats  statsCmd  `cmd:"" help:"Print node counts per label as JSON."`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "moviegraph:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("moviegraph"),
		kong.Description("Project movie and credit CSV exports into a property graph."),
		kong.UsageOnError(),
		kong.Writers(stdout, os.Stderr),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(stdout, (*io.Writer)(nil)),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := logging.New(c.Level)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if err := kctx.Run(logger); err != nil {
		logger.Error("run failed", zap.String("command", kctx.Command()), zap.Error(err))
		return err
	}
	return nil
}
