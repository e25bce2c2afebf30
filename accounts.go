package folio

import (
	"slices"
	"sort"
)

// Account represents a tax wrapper (ISA, LISA) with its running balance, the
// transactions routed to it, and the instruments it currently holds.
// Accounts are created lazily, the first time a transaction references them.
type Account struct {
	Type         AccountType   `json:"type"`
	Balance      Money         `json:"balance"`
	Holdings     []string      `json:"holdings"`
	Transactions []Transaction `json:"transactions"`
	Performance  Performance   `json:"performance"`
}

// accountBook is the accumulator for the per-account fold.
type accountBook struct {
	m map[AccountType]*Account
}

func newAccountBook() *accountBook {
	return &accountBook{m: make(map[AccountType]*Account)}
}

func (b *accountBook) account(t AccountType) *Account {
	a, ok := b.m[t]
	if !ok {
		a = &Account{Type: t, Balance: GBP(0), Holdings: []string{}}
		b.m[t] = a
	}
	return a
}

// observe folds a transaction into its account: every transaction, regardless
// of kind, joins the account's list and adds its signed amount to the
// balance.
func (b *accountBook) observe(tx Transaction) {
	a := b.account(tx.Account())
	a.Transactions = append(a.Transactions, tx)
	a.Balance = a.Balance.Add(tx.Amount())
}

// addHolding records holdings membership for a resolved buy, once.
func (b *accountBook) addHolding(t AccountType, symbol string) {
	a := b.account(t)
	if !slices.Contains(a.Holdings, symbol) {
		a.Holdings = append(a.Holdings, symbol)
	}
}

// removeHolding drops membership when a sell closes the position.
func (b *accountBook) removeHolding(t AccountType, symbol string) {
	a := b.account(t)
	a.Holdings = slices.DeleteFunc(a.Holdings, func(s string) bool { return s == symbol })
}

// list returns the accounts sorted by type for deterministic output.
func (b *accountBook) list() []Account {
	accounts := make([]Account, 0, len(b.m))
	for _, a := range b.m {
		accounts = append(accounts, *a)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Type < accounts[j].Type
	})
	return accounts
}
