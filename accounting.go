package folio

import (
	"errors"
	"fmt"
	"time"
)

// ErrIncompleteData is reported when a build is attempted before both the
// transaction history and the market prices are available. The caller
// surfaces it as a user-facing message instead of rendering a degenerate
// zero-valued portfolio.
var ErrIncompleteData = errors.New("both transactions and market prices are required")

// Anomaly kinds collected during a build.
const (
	AnomalyUnresolvedInstrument = "unresolved-instrument"
	AnomalyUnknownType          = "unknown-transaction-type"
	AnomalyInvalidTransaction   = "invalid-transaction"
)

// Anomaly records a per-transaction problem observed during a build. Anomalies
// are diagnostics, not errors: one malformed row never aborts the whole build.
type Anomaly struct {
	Kind        string      `json:"kind"`
	Date        Date        `json:"date"`
	Account     AccountType `json:"account"`
	Description string      `json:"description,omitempty"`
	Reason      string      `json:"reason"`
}

// Portfolio is the top-level snapshot derived from one build. It owns every
// entity it contains; a rebuild produces an entirely new graph and the old
// snapshot is discarded, never patched.
type Portfolio struct {
	TotalValue   Money         `json:"totalValue"`
	Holdings     []Holding     `json:"holdings"`
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
	Performance  Performance   `json:"performance"`
	Anomalies    []Anomaly     `json:"anomalies"`
	LastUpdated  time.Time     `json:"lastUpdated"`
}

// Builder derives portfolio snapshots. It is stateless between calls: Build
// is a pure function of its inputs (except for the LastUpdated timestamp).
type Builder struct {
	resolver *Resolver
}

// NewBuilder creates a builder using the given instrument resolver.
func NewBuilder(r *Resolver) *Builder {
	return &Builder{resolver: r}
}

// Build derives a consolidated snapshot from the transaction history and the
// market prices using the default fund-rule table.
func Build(txs []Transaction, prices []MarketPrice) (*Portfolio, error) {
	return NewBuilder(NewDefaultResolver()).Build(txs, prices)
}

// Build folds the transactions, in ascending date order, into holdings and
// account balances, then values them against the market prices. The inputs
// are never mutated and need not be pre-sorted; the fold sorts a copy by
// date first. Transactions that fail Validate are recorded as anomalies and
// take no part in the fold.
func (b *Builder) Build(txs []Transaction, prices []MarketPrice) (*Portfolio, error) {
	if len(txs) == 0 {
		return nil, fmt.Errorf("no transactions loaded: %w", ErrIncompleteData)
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("no market prices loaded: %w", ErrIncompleteData)
	}

	priceList := NewPriceList(prices)
	holdings := newHoldingsBook(priceList)
	accounts := newAccountBook()
	anomalies := []Anomaly{}
	initialValue := GBP(0) // cumulative deposits anchor the return baseline

	sorted := sortedByDate(txs)
	for _, tx := range sorted {
		if err := Validate(tx); err != nil {
			anomalies = append(anomalies, Anomaly{
				Kind:        AnomalyInvalidTransaction,
				Date:        tx.When(),
				Account:     tx.Account(),
				Description: tx.Description(),
				Reason:      err.Error(),
			})
			continue
		}
		accounts.observe(tx)

		switch v := tx.(type) {
		case Buy:
			symbol, ok := b.resolver.Resolve(v)
			if !ok {
				anomalies = append(anomalies, unresolved(v.baseTx))
				continue
			}
			holdings.buy(symbol, v)
			accounts.addHolding(v.Account(), symbol)
		case Sell:
			symbol, ok := b.resolver.Resolve(v)
			if !ok {
				anomalies = append(anomalies, unresolved(v.baseTx))
				continue
			}
			if holdings.sell(symbol, v) {
				accounts.removeHolding(v.Account(), symbol)
			}
		case Deposit:
			initialValue = initialValue.Add(v.Amount())
		case Dividend, Interest, Fee, Withdrawal:
			// cash movements only; no holdings effect.
		default:
			anomalies = append(anomalies, Anomaly{
				Kind:        AnomalyUnknownType,
				Date:        tx.When(),
				Account:     tx.Account(),
				Description: tx.Description(),
				Reason:      fmt.Sprintf("transaction type %q has no aggregation rule", tx.What()),
			})
		}
	}

	held := holdings.list()
	totalValue := GBP(0)
	bySymbol := make(map[string]Holding, len(held))
	for _, h := range held {
		totalValue = totalValue.Add(h.Value)
		bySymbol[h.Symbol] = h
	}

	accountList := accounts.list()
	for i := range accountList {
		accountList[i].Performance = accountPerformance(&accountList[i], bySymbol)
	}

	return &Portfolio{
		TotalValue:   totalValue,
		Holdings:     held,
		Accounts:     accountList,
		Transactions: sorted,
		Performance:  NewPerformance(totalValue, initialValue),
		Anomalies:    anomalies,
		LastUpdated:  time.Now(),
	}, nil
}

func unresolved(t baseTx) Anomaly {
	return Anomaly{
		Kind:        AnomalyUnresolvedInstrument,
		Date:        t.Date,
		Account:     t.Acct,
		Description: t.Memo,
		Reason:      "no symbol and description matches no known instrument",
	}
}

// accountPerformance mirrors the portfolio-level calculation at the account
// level: market value of the account's member holdings against the account's
// cumulative deposits.
func accountPerformance(a *Account, holdings map[string]Holding) Performance {
	value := GBP(0)
	for _, symbol := range a.Holdings {
		if h, ok := holdings[symbol]; ok {
			value = value.Add(h.Value)
		}
	}
	deposits := GBP(0)
	for _, tx := range a.Transactions {
		if tx.What() == TxDeposit {
			deposits = deposits.Add(tx.Amount())
		}
	}
	return NewPerformance(value, deposits)
}
