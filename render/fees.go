package render

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/foliodash/folio"
)

// Fees renders the management-fee breakdown produced by
// folio.ManagementFees.
func Fees(report []folio.FeePeriod, period folio.Period) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Management Fees (%s)", period))

	if len(report) == 0 {
		doc.PlainText("No management fees recorded.")
		return doc.String()
	}

	total := folio.GBP(0)
	rows := make([][]string, 0, len(report))
	for _, f := range report {
		rows = append(rows, []string{f.Period, f.Amount.String(), f.Percentage.String()})
		total = total.Add(f.Amount)
	}
	doc.Table(md.TableSet{
		Header: []string{"Period", "Amount", "% of Portfolio"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("Total: %s", total))

	return doc.String()
}
