package study

import (
	"fmt"
	"strconv"

	"github.com/shivanshkc/repstat/pkg/report"
)

// Pcts accumulates the selected values into a bounded-memory sketch that
// answers approximate percentile queries.
type Pcts struct {
	sel    Selector
	sketch *ckms
}

// NewPcts returns a Pcts study over the values chosen by sel. The sketch
// guarantees that a returned value's rank is within eps*n of the requested
// rank. An eps outside (0, 1) selects DefaultError.
func NewPcts(sel Selector, eps float64) *Pcts {
	if eps <= 0 || eps >= 1 {
		eps = DefaultError
	}
	return &Pcts{sel: sel, sketch: newCKMS(eps)}
}

// Study implements the Study interface. It never fails.
func (p *Pcts) Study(rep *report.Report) error {
	if v, ok := p.sel(rep); ok {
		p.sketch.Insert(v)
	}
	return nil
}

// Len returns the number of accumulated values.
func (p *Pcts) Len() int {
	return p.sketch.Len()
}

// Result returns the value at each of the given percentile labels, e.g. "50"
// or "99.9".
//
// Result panics if no value was accumulated or if a label is not a percentage
// in [0, 100]; both are caller bugs.
func (p *Pcts) Result(pcts []string) map[string]float64 {
	result := make(map[string]float64, len(pcts))
	for _, pct := range pcts {
		q, err := ParsePct(pct)
		if err != nil {
			panic(fmt.Sprintf("study: %v", err))
		}

		v, ok := p.sketch.Query(q / 100)
		if !ok {
			panic("study: Pcts.Result called without any accumulated value")
		}
		result[pct] = v
	}
	return result
}

// ParsePct parses a percentile label into a percentage in [0, 100].
func ParsePct(pct string) (float64, error) {
	v, err := strconv.ParseFloat(pct, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentile label %q: %w", pct, err)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("percentile label %q out of range [0, 100]", pct)
	}
	return v, nil
}
