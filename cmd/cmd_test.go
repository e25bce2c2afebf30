package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

const transactionsCSV = `Trade date,Settle date,Reference,Transaction Category,Direction,Description,Quantity,Unit cost (£),Purchase Value (£),Account
02/01/2025,04/01/2025,REF001,Deposit,In,Debit card payment,,,"£1,000.00",ISA
10/01/2025,12/01/2025,REF002,Purchase,Out,ACME Inc ORD 10p,10,£10.00,£100.00,ISA
`

const pricesCSV = `Code,Stock,Price (pence)
ACME,ACME Inc,1200
`

// useExports points the shared file flags at throwaway copies of the
// fixtures for the duration of one test.
func useExports(t *testing.T) {
	t.Helper()
	dir := t.TempDir()

	txPath := filepath.Join(dir, "transactions.csv")
	if err := os.WriteFile(txPath, []byte(transactionsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	pricePath := filepath.Join(dir, "prices.csv")
	if err := os.WriteFile(pricePath, []byte(pricesCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	oldTx, oldPrices := *transactionsFile, *pricesFile
	*transactionsFile, *pricesFile = txPath, pricePath
	t.Cleanup(func() { *transactionsFile, *pricesFile = oldTx, oldPrices })
}

func TestLoadPortfolio(t *testing.T) {
	useExports(t)

	p, err := loadPortfolio()
	if err != nil {
		t.Fatalf("loadPortfolio() error = %v", err)
	}
	if len(p.Holdings) != 1 || p.Holdings[0].Symbol != "ACME" {
		t.Errorf("Holdings = %+v, want the ACME position", p.Holdings)
	}
}

func TestLoadPortfolio_MissingFile(t *testing.T) {
	useExports(t)
	*transactionsFile = filepath.Join(t.TempDir(), "nope.csv")

	if _, err := loadPortfolio(); err == nil {
		t.Fatal("loadPortfolio() succeeded with a missing export")
	}
}

func TestFeesCmd_BadPeriod(t *testing.T) {
	useExports(t)

	c := &feesCmd{}
	f := flag.NewFlagSet("fees", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-p", "weekly"}); err != nil {
		t.Fatal(err)
	}
	if got := c.Execute(context.Background(), f); got != subcommands.ExitUsageError {
		t.Errorf("Execute() = %v, want usage error", got)
	}
}
