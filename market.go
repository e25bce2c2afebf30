package folio

// MarketPrice is one row of the market-price export: the latest known price
// for an instrument, already converted to major currency units by the
// ingestion layer.
type MarketPrice struct {
	Symbol string `json:"symbol"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Price  Money  `json:"price"`
	Date   Date   `json:"date"`
}

// PriceList holds market prices for a set of instruments and indexes them for
// lookup during aggregation. The identity key is the symbol, with the code as
// fallback.
type PriceList struct {
	prices   []MarketPrice
	bySymbol map[string]int
	byCode   map[string]int
}

// NewPriceList indexes the given prices. When two rows claim the same
// identity the first one wins.
func NewPriceList(prices []MarketPrice) *PriceList {
	l := &PriceList{
		prices:   prices,
		bySymbol: make(map[string]int, len(prices)),
		byCode:   make(map[string]int, len(prices)),
	}
	for i, p := range prices {
		if p.Symbol != "" {
			if _, ok := l.bySymbol[p.Symbol]; !ok {
				l.bySymbol[p.Symbol] = i
			}
		}
		if p.Code != "" {
			if _, ok := l.byCode[p.Code]; !ok {
				l.byCode[p.Code] = i
			}
		}
	}
	return l
}

// Len returns the number of price rows.
func (l *PriceList) Len() int { return len(l.prices) }

// Lookup returns the market price for an instrument identity, trying the
// symbol index first and the code index as fallback.
func (l *PriceList) Lookup(identity string) (MarketPrice, bool) {
	if i, ok := l.bySymbol[identity]; ok {
		return l.prices[i], true
	}
	if i, ok := l.byCode[identity]; ok {
		return l.prices[i], true
	}
	return MarketPrice{}, false
}

// All returns the indexed price rows in their original order.
func (l *PriceList) All() []MarketPrice { return l.prices }
