package folio

// Performance holds the return metrics for a holding or for the whole
// portfolio. TimeWeightedReturn and the periodic fields are explicit zero
// placeholders: the calculation is not implemented, but consumers must
// receive them as 0 rather than as absent fields.
type Performance struct {
	TotalReturn        Money   `json:"totalReturn"`
	PercentageReturn   Percent `json:"percentageReturn"`
	TimeWeightedReturn Percent `json:"timeWeightedReturn"`
	Day                Percent `json:"day"`
	Week               Percent `json:"week"`
	Month              Percent `json:"month"`
	Year               Percent `json:"year"`
}

// NewPerformance computes the simple return of end over a baseline. The
// percentage is defined as 0 when the baseline is zero.
func NewPerformance(end, baseline Money) Performance {
	total := end.Sub(baseline)
	return Performance{
		TotalReturn:      total,
		PercentageReturn: ratioPercent(total, baseline),
	}
}

func (p Performance) Equal(q Performance) bool {
	return p.TotalReturn.Equal(q.TotalReturn) &&
		p.PercentageReturn.Equal(q.PercentageReturn) &&
		p.TimeWeightedReturn.Equal(q.TimeWeightedReturn)
}
