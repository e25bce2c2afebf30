// Package cmd implements the pfd subcommands.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/foliodash/folio"
	"github.com/foliodash/folio/ingest"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "reports")
	c.Register(&holdingsCmd{}, "reports")
	c.Register(&accountsCmd{}, "reports")
	c.Register(&feesCmd{}, "reports")

	c.Register(&serveCmd{}, "server")
}

var transactionsFile = flag.String("transactions", "transactions.csv", "Path to the brokerage transactions export")
var pricesFile = flag.String("prices", "prices.csv", "Path to the market prices export")

// loadPortfolio reads both exports and builds the snapshot. Row-level parse
// errors are reported on stderr but do not fail the load.
func loadPortfolio() (*folio.Portfolio, error) {
	txs, err := loadTransactions()
	if err != nil {
		return nil, err
	}
	prices, err := loadPrices()
	if err != nil {
		return nil, err
	}
	return folio.Build(txs, prices)
}

func loadTransactions() ([]folio.Transaction, error) {
	f, err := os.Open(*transactionsFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	txs, rowErrs, err := ingest.ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", *transactionsFile, err)
	}
	reportRowErrors(*transactionsFile, rowErrs)
	return txs, nil
}

func loadPrices() ([]folio.MarketPrice, error) {
	f, err := os.Open(*pricesFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	prices, rowErrs, err := ingest.ReadMarketPrices(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", *pricesFile, err)
	}
	reportRowErrors(*pricesFile, rowErrs)
	return prices, nil
}

func reportRowErrors(file string, rowErrs []ingest.RowError) {
	for _, e := range rowErrs {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", file, e)
	}
}
