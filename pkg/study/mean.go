package study

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/shivanshkc/repstat/pkg/report"
)

// MeanResult summarizes the values accumulated by a Mean study.
type MeanResult struct {
	Mean, Stdev, Min, Max float64
}

// Mean accumulates the selected values to compute their mean, standard
// deviation, minimum and maximum.
type Mean struct {
	sel  Selector
	data []float64
}

// NewMean returns a Mean study over the values chosen by sel.
func NewMean(sel Selector) *Mean {
	return &Mean{sel: sel}
}

// Study implements the Study interface. It never fails.
func (m *Mean) Study(rep *report.Report) error {
	if v, ok := m.sel(rep); ok {
		m.data = append(m.data, v)
	}
	return nil
}

// Len returns the number of accumulated values.
func (m *Mean) Len() int {
	return len(m.data)
}

// Result computes the summary. Stdev is the sample standard deviation, or 0
// when exactly one value was accumulated.
//
// Result panics if no value was accumulated; guard with Len.
func (m *Mean) Result() MeanResult {
	if len(m.data) == 0 {
		panic("study: Mean.Result called without any accumulated value")
	}

	mean, stdev := stat.MeanStdDev(m.data, nil)
	if len(m.data) == 1 {
		stdev = 0
	}

	return MeanResult{
		Mean:  mean,
		Stdev: stdev,
		Min:   floats.Min(m.data),
		Max:   floats.Max(m.data),
	}
}
