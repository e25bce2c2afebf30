package folio

import "sort"

// FeePeriod is one bucket of the management-fee analysis.
type FeePeriod struct {
	Period     string  `json:"period"`
	Amount     Money   `json:"amount"`
	Percentage Percent `json:"percentage"`
}

// ManagementFees groups FEE transactions into period buckets (monthly or
// yearly) and reports the absolute amount charged per bucket together with
// its share of the portfolio's total value. The share is defined as 0 when
// the total value is zero.
func ManagementFees(txs []Transaction, period Period, totalValue Money) []FeePeriod {
	buckets := make(map[string]Money)
	for _, tx := range txs {
		if tx.What() != TxFee {
			continue
		}
		key := period.Key(tx.When())
		amount, ok := buckets[key]
		if !ok {
			amount = GBP(0)
		}
		buckets[key] = amount.Add(tx.Amount().Abs())
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	report := make([]FeePeriod, 0, len(keys))
	for _, key := range keys {
		amount := buckets[key]
		report = append(report, FeePeriod{
			Period:     key,
			Amount:     amount,
			Percentage: ratioPercent(amount, totalValue),
		})
	}
	return report
}
