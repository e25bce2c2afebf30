package render

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/foliodash/folio"
)

// Accounts renders the per-wrapper balances and memberships.
func Accounts(p *folio.Portfolio) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Accounts on %s", p.LastUpdated.Format("2006-01-02")))
	if len(p.Accounts) == 0 {
		doc.PlainText("No accounts.")
		return doc.String()
	}
	doc.Table(accountTable(p.Accounts))

	return doc.String()
}

func accountTable(accounts []folio.Account) md.TableSet {
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		holdings := strings.Join(a.Holdings, ", ")
		if holdings == "" {
			holdings = "-"
		}
		rows = append(rows, []string{
			string(a.Type),
			a.Balance.String(),
			holdings,
			fmt.Sprintf("%d", len(a.Transactions)),
			a.Performance.TotalReturn.SignedString(),
		})
	}
	return md.TableSet{
		Header: []string{"Account", "Balance", "Holdings", "Transactions", "Return"},
		Rows:   rows,
	}
}
