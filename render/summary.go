// Package render turns a portfolio snapshot into markdown reports, the
// terminal counterpart of the dashboard views.
package render

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/foliodash/folio"
)

// Summary renders the portfolio overview: total value, overall performance
// and any anomalies found while building the snapshot.
func Summary(p *folio.Portfolio) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Summary on %s", p.LastUpdated.Format("2006-01-02")))
	doc.PlainText(fmt.Sprintf("Total Market Value: %s", p.TotalValue))

	doc.H2("Performance")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Return", p.Performance.TotalReturn.SignedString()},
			{"Percentage Return", p.Performance.PercentageReturn.SignedString()},
			{"Time-Weighted Return", p.Performance.TimeWeightedReturn.SignedString()},
		},
	})

	doc.H2("Accounts")
	doc.Table(accountTable(p.Accounts))

	if len(p.Anomalies) > 0 {
		doc.H2("Anomalies")
		rows := make([][]string, 0, len(p.Anomalies))
		for _, a := range p.Anomalies {
			rows = append(rows, []string{a.Kind, a.Date.String(), string(a.Account), a.Reason})
		}
		doc.Table(md.TableSet{
			Header: []string{"Kind", "Date", "Account", "Reason"},
			Rows:   rows,
		})
	}

	return doc.String()
}
