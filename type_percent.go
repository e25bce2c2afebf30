package folio

import (
	"fmt"
	"math"
)

type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// ratioPercent returns part/base*100, defined as 0 when the base is zero so
// downstream consumers never see NaN or Infinity.
func ratioPercent(part, base Money) Percent {
	b := math.Abs(base.AsFloat())
	if b == 0 {
		return 0
	}
	return Percent(100 * part.AsFloat() / b)
}
