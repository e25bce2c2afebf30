package folio

import (
	"fmt"
	"strings"
)

// Period is a reporting bucket for time-grouped analyses such as the
// management-fee breakdown.
type Period int

const (
	Monthly Period = iota
	Yearly
)

func (p Period) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return "periodic"
	}
}

// Key returns the grouping key for a date within this period
// (e.g. "2025-07" for monthly, "2025" for yearly).
func (p Period) Key(d Date) string {
	switch p {
	case Monthly:
		return d.Format("2006-01")
	case Yearly:
		return d.Format("2006")
	default:
		panic("unknown period")
	}
}

func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(strings.TrimSpace(p))
	switch p {
	case "monthly", "month":
		return Monthly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown period %q", p)
	}
}
