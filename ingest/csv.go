// Package ingest parses the brokerage CSV exports into the domain types.
//
// Two files are supported: the market price export (Code, Stock,
// Price (pence)) and the transaction export (Trade date, Settle date,
// Reference, Transaction Category, Direction, Description, Quantity,
// Unit cost (£), Purchase Value (£), Account). Malformed rows never abort a
// file: they are collected as row errors and the remaining rows are kept.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/foliodash/folio"
)

// Market price export headers.
const (
	colCode  = "Code"
	colStock = "Stock"
	colPence = "Price (pence)"
)

// Transaction export headers.
const (
	colTradeDate  = "Trade date"
	colSettleDate = "Settle date"
	colReference  = "Reference"
	colCategory   = "Transaction Category"
	colDirection  = "Direction"
	colDesc       = "Description"
	colQuantity   = "Quantity"
	colUnitCost   = "Unit cost (£)"
	colValue      = "Purchase Value (£)"
	colAccount    = "Account"
)

var priceHeaders = []string{colCode, colStock, colPence}

var transactionHeaders = []string{
	colTradeDate, colSettleDate, colReference, colCategory, colDirection,
	colDesc, colQuantity, colUnitCost, colValue, colAccount,
}

// RowError describes a single row that could not be parsed. Line is the
// 1-based line number in the file, header included.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Reason) }

// header maps column names to their position, so extra columns and arbitrary
// column order are tolerated.
type header map[string]int

func readHeader(r *csv.Reader, required []string) (header, error) {
	record, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file")
	}
	if err != nil {
		return nil, err
	}
	h := make(header, len(record))
	for i, name := range record {
		h[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := h[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return h, nil
}

func (h header) get(record []string, name string) string {
	i := h[name]
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// cleanNumber parses a number the way the exports write them: pound signs,
// thousands separators and stray whitespace are stripped, and the remainder
// is parsed as an exact decimal.
func cleanNumber(s string) (decimal.Decimal, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '£', ',', ' ', '\t':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, errors.New("empty number")
	}
	return decimal.NewFromString(s)
}

// ReadMarketPrices parses the market price export. Prices are quoted in
// pence and converted to pounds; the price date is the load date, since the
// export carries no date column.
func ReadMarketPrices(r io.Reader) ([]folio.MarketPrice, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	h, err := readHeader(cr, priceHeaders)
	if err != nil {
		return nil, nil, fmt.Errorf("market prices: %w", err)
	}

	today := folio.Today()
	var prices []folio.MarketPrice
	var rowErrs []RowError
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: err.Error()})
			continue
		}

		code := h.get(record, colCode)
		if code == "" {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: "missing code"})
			continue
		}
		pence, err := cleanNumber(h.get(record, colPence))
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: fmt.Sprintf("bad price: %v", err)})
			continue
		}

		prices = append(prices, folio.MarketPrice{
			Symbol: code,
			Code:   code,
			Name:   h.get(record, colStock),
			Price:  folio.GBP(pence.Div(decimal.NewFromInt(100))),
			Date:   today,
		})
	}
	return prices, rowErrs, nil
}

// ReadTransactions parses the transaction export. The transaction category
// decides the domain type; sign conventions are applied by the domain
// constructors, so the export's own signs are irrelevant.
func ReadTransactions(r io.Reader) ([]folio.Transaction, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	h, err := readHeader(cr, transactionHeaders)
	if err != nil {
		return nil, nil, fmt.Errorf("transactions: %w", err)
	}

	var txs []folio.Transaction
	var rowErrs []RowError
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: err.Error()})
			continue
		}

		tx, rerr := parseTransaction(h, record)
		if rerr != "" {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: rerr})
			continue
		}
		txs = append(txs, tx)
	}
	return txs, rowErrs, nil
}

func parseTransaction(h header, record []string) (folio.Transaction, string) {
	day, err := folio.ParseDate(h.get(record, colTradeDate))
	if err != nil {
		return nil, fmt.Sprintf("bad trade date: %v", err)
	}
	account := folio.AccountType(h.get(record, colAccount))
	switch account {
	case folio.ISA, folio.LISA:
	case "":
		return nil, "missing account"
	default:
		return nil, fmt.Sprintf("unknown account %q", account)
	}
	amount, err := cleanNumber(h.get(record, colValue))
	if err != nil {
		return nil, fmt.Sprintf("bad purchase value: %v", err)
	}
	desc := h.get(record, colDesc)
	cash := folio.GBP(amount)

	category := strings.ToLower(h.get(record, colCategory))
	switch category {
	case "purchase", "sale":
		quantity, err := cleanNumber(h.get(record, colQuantity))
		if err != nil {
			return nil, fmt.Sprintf("bad quantity: %v", err)
		}
		unit, err := cleanNumber(h.get(record, colUnitCost))
		if err != nil {
			return nil, fmt.Sprintf("bad unit cost: %v", err)
		}
		q, u := folio.Q(quantity), folio.GBP(unit)
		var tx folio.Transaction
		if category == "purchase" {
			tx = folio.NewBuy(day, account, desc, "", q, u, cash)
		} else {
			tx = folio.NewSell(day, account, desc, "", q, u, cash)
		}
		if err := folio.Validate(tx); err != nil {
			return nil, err.Error()
		}
		return tx, ""
	case "management fee":
		return folio.NewFee(day, account, desc, cash), ""
	case "deposit":
		return folio.NewDeposit(day, account, desc, cash), ""
	case "withdrawal":
		return folio.NewWithdrawal(day, account, desc, cash), ""
	case "interest":
		return folio.NewInterest(day, account, desc, cash), ""
	case "dividend":
		return folio.NewDividend(day, account, desc, cash), ""
	default:
		return nil, fmt.Sprintf("unknown transaction category %q", h.get(record, colCategory))
	}
}
