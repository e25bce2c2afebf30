package folio

import "testing"

func TestPriceList_LookupBySymbolAndCode(t *testing.T) {
	pl := NewPriceList(samplePrices())

	if p, ok := pl.Lookup("LGII"); !ok || !p.Price.Equal(GBP(2.50)) {
		t.Errorf("Lookup(LGII) = %+v, %v; want the LGII row", p, ok)
	}
	// Codes resolve too, after symbols.
	if p, ok := pl.Lookup("GB00B0CNH163"); !ok || p.Symbol != "LGII" {
		t.Errorf("Lookup by code = %+v, %v; want the LGII row", p, ok)
	}
	if _, ok := pl.Lookup("NOPE"); ok {
		t.Error("Lookup(NOPE) found a row")
	}
}

func TestPriceList_FirstRowWins(t *testing.T) {
	rows := []MarketPrice{
		{Symbol: "DUP", Code: "C1", Name: "first", Price: GBP(1), Date: d("2025-06-30")},
		{Symbol: "DUP", Code: "C2", Name: "second", Price: GBP(2), Date: d("2025-06-30")},
	}
	pl := NewPriceList(rows)
	if p, _ := pl.Lookup("DUP"); p.Name != "first" {
		t.Errorf("Lookup(DUP).Name = %q, want first row to win", p.Name)
	}
	if pl.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (all rows retained)", pl.Len())
	}
}
