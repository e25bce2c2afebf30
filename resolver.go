package folio

import (
	"fmt"
	"regexp"
	"strings"
)

// tickerPattern matches descriptions of the form "ACME Inc ..." where the
// leading uppercase run is the ticker symbol.
var tickerPattern = regexp.MustCompile(`\b([A-Z]{2,})\s+Inc\b`)

// FundRule maps a known fund name to the instrument code used by the market
// price export. Rules are evaluated in order; the first name found as a
// substring of a trade description wins.
type FundRule struct {
	Name string
	Code string
}

// DefaultFundRules covers the fund names appearing in the supported
// brokerage exports.
var DefaultFundRules = []FundRule{
	{Name: "Legal & General International Index", Code: "LGII"},
	{Name: "Legal & General UK Index", Code: "LGUK"},
	{Name: "Vanguard FTSE Global All Cap", Code: "VFGA"},
	{Name: "Vanguard LifeStrategy 80%", Code: "VLS80"},
	{Name: "Fidelity Index World", Code: "FIW"},
	{Name: "HSBC FTSE All-World Index", Code: "HSAW"},
}

// Resolver determines the instrument identity affected by a transaction.
type Resolver struct {
	rules []FundRule
}

// NewResolver builds a resolver over an ordered rule table. Overlapping fund
// names (one rule's name a substring of another's) would make first-match-wins
// order-dependent in a surprising way, so they are rejected as a
// configuration error.
func NewResolver(rules []FundRule) (*Resolver, error) {
	for i, r := range rules {
		if r.Name == "" || r.Code == "" {
			return nil, fmt.Errorf("fund rule %d: name and code are required", i)
		}
		for j, o := range rules {
			if i == j {
				continue
			}
			if strings.Contains(o.Name, r.Name) {
				return nil, fmt.Errorf("overlapping fund rules: %q is a substring of %q", r.Name, o.Name)
			}
		}
	}
	return &Resolver{rules: rules}, nil
}

// NewDefaultResolver returns a resolver over DefaultFundRules.
func NewDefaultResolver() *Resolver {
	r, err := NewResolver(DefaultFundRules)
	if err != nil {
		// The built-in table is validated by tests.
		panic(err)
	}
	return r
}

// Resolve returns the instrument identity a transaction affects.
//
// A transaction carrying a symbol resolves to that symbol directly. Otherwise
// resolution is only attempted for trades: first the "<TICKER> Inc" pattern
// on the description, then the fund-name table. Non-trade transactions never
// touch holdings and always report false.
func (r *Resolver) Resolve(tx Transaction) (string, bool) {
	var trade tradeTx
	switch v := tx.(type) {
	case Buy:
		trade = v.tradeTx
	case Sell:
		trade = v.tradeTx
	default:
		return "", false
	}

	if s := trade.Security(); s != "" {
		return s, true
	}

	if m := tickerPattern.FindStringSubmatch(trade.Description()); m != nil {
		return m[1], true
	}

	for _, rule := range r.rules {
		if strings.Contains(trade.Description(), rule.Name) {
			return rule.Code, true
		}
	}
	return "", false
}
