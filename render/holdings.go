package render

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/foliodash/folio"
)

// Holdings renders the open positions with their valuation and return.
func Holdings(p *folio.Portfolio) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Holdings on %s", p.LastUpdated.Format("2006-01-02")))

	if len(p.Holdings) == 0 {
		doc.PlainText("No open positions.")
		return doc.String()
	}

	rows := make([][]string, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		rows = append(rows, []string{
			h.Symbol,
			h.Name,
			h.Quantity.String(),
			h.AverageCost.String(),
			h.CurrentPrice.String(),
			h.Value.String(),
			h.Performance.TotalReturn.SignedString(),
			h.Performance.PercentageReturn.SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Symbol", "Name", "Quantity", "Avg Cost", "Price", "Value", "Return", "Return %"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("Total: %s", p.TotalValue))

	return doc.String()
}
