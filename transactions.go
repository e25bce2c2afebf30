package folio

import (
	"fmt"
	"sort"
)

// TxType is a typed string for identifying transaction kinds.
type TxType string

// Transaction kinds found in the brokerage exports.
const (
	TxBuy        TxType = "BUY"
	TxSell       TxType = "SELL"
	TxDividend   TxType = "DIVIDEND"
	TxInterest   TxType = "INTEREST"
	TxFee        TxType = "FEE"
	TxDeposit    TxType = "DEPOSIT"
	TxWithdrawal TxType = "WITHDRAWAL"
)

// AccountType identifies the tax wrapper a transaction is routed to.
type AccountType string

const (
	ISA  AccountType = "ISA"
	LISA AccountType = "LISA"
)

// Transaction defines the common interface for all transaction kinds.
//
// Amounts are sign-normalized at construction: BUY, DIVIDEND, INTEREST and
// DEPOSIT are stored non-negative; SELL, FEE and WITHDRAWAL are stored as
// negative magnitudes. An account balance is therefore the plain running sum
// of Amount over its transactions.
type Transaction interface {
	What() TxType         // What returns the kind of the transaction (e.g. "BUY").
	When() Date           // When returns the date on which the transaction occurred.
	Account() AccountType // Account returns the tax wrapper the transaction belongs to.
	Amount() Money        // Amount returns the signed, normalized amount.
	Description() string  // Description returns the free-text description from the export.
	Equal(Transaction) bool
}

type baseTx struct {
	Type TxType      `json:"type"`
	Date Date        `json:"date"`
	Acct AccountType `json:"account"`
	Memo string      `json:"description,omitempty"`
	Cash Money       `json:"amount"`
}

func (t baseTx) What() TxType         { return t.Type }
func (t baseTx) When() Date           { return t.Date }
func (t baseTx) Account() AccountType { return t.Acct }
func (t baseTx) Amount() Money        { return t.Cash }
func (t baseTx) Description() string  { return t.Memo }

// equal compares field by field; Money wraps a decimal and cannot be
// compared with ==.
func (t baseTx) equal(o baseTx) bool {
	return t.Type == o.Type && t.Date == o.Date && t.Acct == o.Acct &&
		t.Memo == o.Memo && t.Cash.Equal(o.Cash)
}

// MarshalJSON implements the json.Marshaler interface for baseTx.
func (t baseTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", t.Type)
	w.Append("date", t.Date)
	w.Append("account", t.Acct)
	w.Optional("description", t.Memo)
	w.Append("amount", t.Cash)
	return w.MarshalJSON()
}

// tradeTx is the component shared by security trades (buy, sell). Symbol is
// optional: when absent the instrument resolver extracts the identity from
// the description.
type tradeTx struct {
	baseTx
	Symbol string   `json:"symbol,omitempty"`
	Units  Quantity `json:"quantity"`
	Unit   Money    `json:"unitPrice"`
}

// Security returns the instrument symbol carried by the trade, or "".
func (t tradeTx) Security() string { return t.Symbol }

// Quantity returns the number of shares or units traded.
func (t tradeTx) Quantity() Quantity { return t.Units }

// UnitPrice returns the per-unit cost recorded by the brokerage.
func (t tradeTx) UnitPrice() Money { return t.Unit }

func (t tradeTx) equal(o tradeTx) bool {
	return t.baseTx.equal(o.baseTx) && t.Symbol == o.Symbol &&
		t.Units.Equal(o.Units) && t.Unit.Equal(o.Unit)
}

// MarshalJSON implements the json.Marshaler interface for tradeTx.
func (t tradeTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Optional("symbol", t.Symbol)
	w.Append("quantity", t.Units)
	w.Append("unitPrice", t.Unit)
	return w.MarshalJSON()
}

// Buy represents a transaction where a quantity of an instrument is purchased
// for a specified amount.
type Buy struct{ tradeTx }

// NewBuy creates a new Buy transaction. The amount is stored as a
// non-negative magnitude.
func NewBuy(day Date, account AccountType, description, symbol string, quantity Quantity, unitPrice, amount Money) Buy {
	return Buy{tradeTx{
		baseTx: baseTx{Type: TxBuy, Date: day, Acct: account, Memo: description, Cash: amount.Abs()},
		Symbol: symbol,
		Units:  quantity,
		Unit:   unitPrice,
	}}
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.tradeTx.equal(o.tradeTx)
}

// Sell represents a transaction where a quantity of an instrument is sold.
type Sell struct{ tradeTx }

// NewSell creates a new Sell transaction. The amount is stored as a negative
// magnitude.
func NewSell(day Date, account AccountType, description, symbol string, quantity Quantity, unitPrice, amount Money) Sell {
	return Sell{tradeTx{
		baseTx: baseTx{Type: TxSell, Date: day, Acct: account, Memo: description, Cash: amount.Abs().Neg()},
		Symbol: symbol,
		Units:  quantity,
		Unit:   unitPrice,
	}}
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.tradeTx.equal(o.tradeTx)
}

// Dividend represents a cash distribution from a held instrument.
type Dividend struct{ baseTx }

// NewDividend creates a new Dividend transaction.
func NewDividend(day Date, account AccountType, description string, amount Money) Dividend {
	return Dividend{baseTx{Type: TxDividend, Date: day, Acct: account, Memo: description, Cash: amount.Abs()}}
}

func (t Dividend) Equal(other Transaction) bool {
	o, ok := other.(Dividend)
	return ok && t.baseTx.equal(o.baseTx)
}

// Interest represents interest paid on an uninvested cash balance.
type Interest struct{ baseTx }

// NewInterest creates a new Interest transaction.
func NewInterest(day Date, account AccountType, description string, amount Money) Interest {
	return Interest{baseTx{Type: TxInterest, Date: day, Acct: account, Memo: description, Cash: amount.Abs()}}
}

func (t Interest) Equal(other Transaction) bool {
	o, ok := other.(Interest)
	return ok && t.baseTx.equal(o.baseTx)
}

// Fee represents a management or platform fee charged to an account.
type Fee struct{ baseTx }

// NewFee creates a new Fee transaction, stored as a negative magnitude.
func NewFee(day Date, account AccountType, description string, amount Money) Fee {
	return Fee{baseTx{Type: TxFee, Date: day, Acct: account, Memo: description, Cash: amount.Abs().Neg()}}
}

func (t Fee) Equal(other Transaction) bool {
	o, ok := other.(Fee)
	return ok && t.baseTx.equal(o.baseTx)
}

// Deposit represents cash paid into an account.
type Deposit struct{ baseTx }

// NewDeposit creates a new Deposit transaction.
func NewDeposit(day Date, account AccountType, description string, amount Money) Deposit {
	return Deposit{baseTx{Type: TxDeposit, Date: day, Acct: account, Memo: description, Cash: amount.Abs()}}
}

func (t Deposit) Equal(other Transaction) bool {
	o, ok := other.(Deposit)
	return ok && t.baseTx.equal(o.baseTx)
}

// Withdrawal represents cash taken out of an account, stored as a negative
// magnitude.
type Withdrawal struct{ baseTx }

// NewWithdrawal creates a new Withdrawal transaction.
func NewWithdrawal(day Date, account AccountType, description string, amount Money) Withdrawal {
	return Withdrawal{baseTx{Type: TxWithdrawal, Date: day, Acct: account, Memo: description, Cash: amount.Abs().Neg()}}
}

func (t Withdrawal) Equal(other Transaction) bool {
	o, ok := other.(Withdrawal)
	return ok && t.baseTx.equal(o.baseTx)
}

// Validate checks a transaction for construction-time correctness: a date, a
// non-empty account, and for trades a positive quantity. Kinds outside the
// known set pass; the build reports them as anomalies on its own.
func Validate(tx Transaction) error {
	if tx.When().IsZero() {
		return fmt.Errorf("%s transaction has no date", tx.What())
	}
	if tx.Account() == "" {
		return fmt.Errorf("%s transaction on %s has no account", tx.What(), tx.When())
	}
	switch v := tx.(type) {
	case Buy:
		if !v.Quantity().IsPositive() {
			return fmt.Errorf("buy transaction quantity must be positive, got %s", v.Quantity())
		}
	case Sell:
		if !v.Quantity().IsPositive() {
			return fmt.Errorf("sell transaction quantity must be positive, got %s", v.Quantity())
		}
	}
	return nil
}

// sortedByDate returns a copy of txs in ascending date order. The sort is
// stable: transactions on the same day keep their original relative order.
func sortedByDate(txs []Transaction) []Transaction {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].When().Before(sorted[j].When())
	})
	return sorted
}
