package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/foliodash/folio"
	"github.com/foliodash/folio/render"
)

// feesCmd holds the flags for the 'fees' subcommand.
type feesCmd struct {
	period string
}

func (*feesCmd) Name() string     { return "fees" }
func (*feesCmd) Synopsis() string { return "display the management fees charged per period" }
func (*feesCmd) Usage() string {
	return `pfd fees [-p monthly|yearly]

  Groups the management fees by period and reports the amount charged and
  its share of the portfolio value.
`
}

func (c *feesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "monthly", "Grouping period: monthly or yearly")
}

func (c *feesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := folio.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	p, err := loadPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	report := folio.ManagementFees(p.Transactions, period, p.TotalValue)
	printMarkdown(render.Fees(report, period))
	return subcommands.ExitSuccess
}
