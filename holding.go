package folio

import "sort"

// Holding represents the aggregated open position in one instrument. A
// holding only appears in a snapshot while its quantity is positive; a
// position that nets to zero is removed entirely, and a later buy starts a
// fresh zero-cost position.
type Holding struct {
	Symbol       string      `json:"symbol"`
	Code         string      `json:"code"`
	Name         string      `json:"name"`
	Quantity     Quantity    `json:"quantity"`
	AverageCost  Money       `json:"averageCost"`
	TotalCost    Money       `json:"totalCost"`
	CurrentPrice Money       `json:"currentPrice"`
	Value        Money       `json:"value"`
	CostBasis    Money       `json:"costBasis"`
	Performance  Performance `json:"performance"`
}

// holdingsBook is the accumulator for the holdings fold. It is local to a
// single build and returned to the caller as an immutable slice.
type holdingsBook struct {
	prices *PriceList
	m      map[string]*Holding
}

func newHoldingsBook(prices *PriceList) *holdingsBook {
	return &holdingsBook{prices: prices, m: make(map[string]*Holding)}
}

// buy folds a resolved buy into the book, creating the holding on first
// sight. Name and code are seeded from the matched market price, falling back
// to the trade description and the symbol itself.
func (b *holdingsBook) buy(symbol string, t Buy) {
	h, ok := b.m[symbol]
	if !ok {
		h = &Holding{Symbol: symbol, Code: symbol, Name: t.Description()}
		if p, found := b.prices.Lookup(symbol); found {
			if p.Name != "" {
				h.Name = p.Name
			}
			if p.Code != "" {
				h.Code = p.Code
			}
		}
		b.m[symbol] = h
	}

	h.Quantity = h.Quantity.Add(t.Quantity())
	h.TotalCost = h.TotalCost.Add(t.Amount().Abs())
	h.CostBasis = h.TotalCost
	if !h.Quantity.IsZero() {
		h.AverageCost = h.TotalCost.Div(h.Quantity)
	}
	b.revalue(h)
}

// sell folds a sell into the book. It reports whether the position is closed:
// a quantity netting to zero or below deletes the holding entirely. Cost
// fields are deliberately untouched by sells while the position stays open.
func (b *holdingsBook) sell(symbol string, t Sell) (closed bool) {
	h, ok := b.m[symbol]
	if !ok {
		// Sell with no tracked position; nothing to keep open.
		return true
	}

	h.Quantity = h.Quantity.Sub(t.Quantity())
	if !h.Quantity.IsPositive() {
		delete(b.m, symbol)
		return true
	}
	b.revalue(h)
	return false
}

// revalue refreshes price-dependent fields from the matched market price, if
// one is available for this instrument.
func (b *holdingsBook) revalue(h *Holding) {
	p, ok := b.prices.Lookup(h.Symbol)
	if !ok && h.Code != h.Symbol {
		p, ok = b.prices.Lookup(h.Code)
	}
	if !ok {
		return
	}
	h.CurrentPrice = p.Price
	h.Value = p.Price.Mul(h.Quantity)
}

// list returns the retained holdings with per-instrument performance
// computed, sorted by symbol for deterministic output.
func (b *holdingsBook) list() []Holding {
	holdings := make([]Holding, 0, len(b.m))
	for _, h := range b.m {
		h.Performance = NewPerformance(h.Value, h.CostBasis)
		holdings = append(holdings, *h)
	}
	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].Symbol < holdings[j].Symbol
	})
	return holdings
}
