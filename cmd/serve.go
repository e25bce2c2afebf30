package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/foliodash/folio"
	"github.com/foliodash/folio/server"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	port    int
	preload bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the dashboard HTTP API" }
func (*serveCmd) Usage() string {
	return `pfd serve [-port <port>] [-preload]

  Starts the dashboard API. CSV exports are uploaded through the API; with
  -preload the files given by -transactions and -prices are loaded first.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.port, "port", 8080, "Port to listen on")
	f.BoolVar(&c.preload, "preload", false, "Load the CSV exports from disk before serving")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	store := server.NewStore(folio.NewBuilder(folio.NewDefaultResolver()))
	if c.preload {
		if err := preloadStore(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error preloading data: %v\n", err)
			return subcommands.ExitFailure
		}
		log.Info().Str("transactions", *transactionsFile).Str("prices", *pricesFile).
			Msg("preloaded exports")
	}

	s := server.New(server.Config{Port: c.port, Log: log}, store)
	if err := s.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func preloadStore(store *server.Store) error {
	txs, err := loadTransactions()
	if err != nil {
		return err
	}
	if _, err := store.SetTransactions(txs, nil); err != nil {
		return err
	}
	prices, err := loadPrices()
	if err != nil {
		return err
	}
	if _, err := store.SetPrices(prices, nil); err != nil {
		return err
	}
	return nil
}
