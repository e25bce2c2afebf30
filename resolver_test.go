package folio

import (
	"strings"
	"testing"
)

func TestResolver_SymbolPassthrough(t *testing.T) {
	r := NewDefaultResolver()
	tx := NewBuy(d("2025-01-10"), ISA, "some unlisted description", "LGII", Q(1), GBP(2), GBP(2))

	sym, ok := r.Resolve(tx)
	if !ok || sym != "LGII" {
		t.Errorf("Resolve() = %q, %v; want LGII, true", sym, ok)
	}
}

func TestResolver_TickerPattern(t *testing.T) {
	cases := []struct {
		desc string
		want string
		ok   bool
	}{
		{"ACME Inc ORD 10p", "ACME", true},
		{"Purchase of NVDA Inc common stock", "NVDA", true},
		{"Incitec Pivot Ltd", "", false},   // "Inc" must be a word
		{"Acme Inc ORD 10p", "", false},    // ticker must be upper case
		{"X Inc", "", false},               // single letter is not a ticker
	}
	r := NewDefaultResolver()
	for _, c := range cases {
		tx := NewBuy(d("2025-01-10"), ISA, c.desc, "", Q(1), GBP(2), GBP(2))
		sym, ok := r.Resolve(tx)
		if ok != c.ok || sym != c.want {
			t.Errorf("Resolve(%q) = %q, %v; want %q, %v", c.desc, sym, ok, c.want, c.ok)
		}
	}
}

func TestResolver_FundTableFirstMatchWins(t *testing.T) {
	// Both rule names appear in the description; rule order decides.
	r, err := NewResolver([]FundRule{
		{Name: "Fidelity Index", Code: "FI"},
		{Name: "Index World", Code: "IW"},
	})
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}

	tx := NewSell(d("2025-01-10"), ISA, "Fidelity Index World P Acc", "", Q(1), GBP(2), GBP(2))
	sym, ok := r.Resolve(tx)
	if !ok || sym != "FI" {
		t.Errorf("Resolve() = %q, %v; want FI (first matching rule)", sym, ok)
	}
}

func TestResolver_OverlappingRulesRejected(t *testing.T) {
	_, err := NewResolver([]FundRule{
		{Name: "Global All Cap", Code: "VFGA"},
		{Name: "Global All Cap Income", Code: "VFGI"},
	})
	if err == nil {
		t.Fatal("NewResolver() accepted a rule shadowed by an earlier one")
	}
	if !strings.Contains(err.Error(), "Global All Cap") {
		t.Errorf("error %q does not name the offending rule", err)
	}
}

func TestResolver_EmptyRuleRejected(t *testing.T) {
	if _, err := NewResolver([]FundRule{{Name: "", Code: "X"}}); err == nil {
		t.Error("NewResolver() accepted an empty fund name")
	}
	if _, err := NewResolver([]FundRule{{Name: "Some Fund", Code: ""}}); err == nil {
		t.Error("NewResolver() accepted an empty code")
	}
}

func TestResolver_NonTradeNeverResolves(t *testing.T) {
	r := NewDefaultResolver()
	tx := NewDividend(d("2025-01-10"), ISA, "ACME Inc dividend", GBP(5))
	if sym, ok := r.Resolve(tx); ok {
		t.Errorf("Resolve(dividend) = %q, true; cash movements carry no instrument", sym)
	}
}
