package study

import (
	"github.com/shivanshkc/repstat/pkg/report"
)

// MeanPctsResult is the combined outcome of a MeanPcts study.
type MeanPctsResult struct {
	Mean, Stdev float64
	// Pcts maps each requested percentile label to its value.
	Pcts map[string]float64
}

// MeanPcts computes the mean, standard deviation and percentiles of the same
// selected values in a single pass.
type MeanPcts struct {
	mean *Mean
	pcts *Pcts
}

// NewMeanPcts returns a MeanPcts study. See NewPcts for eps.
func NewMeanPcts(sel Selector, eps float64) *MeanPcts {
	return &MeanPcts{
		mean: NewMean(sel),
		pcts: NewPcts(sel, eps),
	}
}

// Study implements the Study interface.
func (mp *MeanPcts) Study(rep *report.Report) error {
	if err := mp.mean.Study(rep); err != nil {
		return err
	}
	return mp.pcts.Study(rep)
}

// Len returns the number of accumulated values.
func (mp *MeanPcts) Len() int {
	return mp.mean.Len()
}

// Result panics under the same conditions as Mean.Result and Pcts.Result.
func (mp *MeanPcts) Result(pcts []string) MeanPctsResult {
	mean := mp.mean.Result()
	return MeanPctsResult{
		Mean:  mean.Mean,
		Stdev: mean.Stdev,
		Pcts:  mp.pcts.Result(pcts),
	}
}
