package study

import (
	"math"
	"slices"
)

// sample is one entry of the sketch. g is the number of ranks the sample
// covers beyond its predecessor and delta bounds the uncertainty of its rank.
type sample struct {
	value float64
	g     int
	delta int
}

// ckms is a Cormode-Korn-Muthukrishnan-Srivastava quantile sketch with a
// uniform error target: the rank of a returned value is within eps*n of the
// requested rank.
//
// Values are buffered and merged into the summary in sorted batches, which
// keeps insertion cheap. The summary holds O((1/eps) * log(eps*n)) samples.
//
// The invariant maintained for every sample is g+delta <= floor(2*eps*n).
// The first and last samples always hold the exact minimum and maximum.
type ckms struct {
	eps     float64
	n       int
	samples []sample
	buf     []float64
}

func newCKMS(eps float64) *ckms {
	// Flushing every 1/(2*eps) insertions matches the compression period.
	bufCap := int(math.Ceil(1 / (2 * eps)))
	return &ckms{eps: eps, buf: make([]float64, 0, bufCap)}
}

// Len returns the number of inserted values.
func (c *ckms) Len() int {
	return c.n + len(c.buf)
}

// Insert adds a value to the sketch.
func (c *ckms) Insert(v float64) {
	c.buf = append(c.buf, v)
	if len(c.buf) == cap(c.buf) {
		c.flush()
	}
}

// Query returns the value at quantile q in [0, 1]. It reports false if no value
// has been inserted.
func (c *ckms) Query(q float64) (float64, bool) {
	c.flush()
	if len(c.samples) == 0 {
		return 0, false
	}

	last := len(c.samples) - 1
	switch {
	case q <= 0:
		return c.samples[0].value, true
	case q >= 1:
		return c.samples[last].value, true
	}

	target := math.Ceil(q * float64(c.n))
	tolerance := c.eps * float64(c.n)

	// rmin walks the lower rank bound of samples[i-1]. The first sample whose
	// upper bound overshoots the tolerated rank ends the search.
	rmin := 0
	for i := 1; i <= last; i++ {
		rmin += c.samples[i-1].g
		rmax := rmin + c.samples[i].g + c.samples[i].delta
		if float64(rmax) > target+tolerance {
			return c.samples[i-1].value, true
		}
	}
	return c.samples[last].value, true
}

// allowance is floor(2*eps*n), the most ranks a sample may span.
func (c *ckms) allowance() int {
	return int(math.Floor(2 * c.eps * float64(c.n)))
}

// flush merges the buffered values into the summary and compresses it.
func (c *ckms) flush() {
	if len(c.buf) == 0 {
		return
	}
	slices.Sort(c.buf)

	merged := make([]sample, 0, len(c.samples)+len(c.buf))
	next := 0
	for _, v := range c.buf {
		for next < len(c.samples) && c.samples[next].value <= v {
			merged = append(merged, c.samples[next])
			next++
		}

		// New extremes have exact ranks, everything else inherits the
		// allowance of the neighborhood it lands in.
		delta := 0
		if len(merged) > 0 && next < len(c.samples) {
			delta = max(c.allowance()-1, 0)
		}
		merged = append(merged, sample{value: v, g: 1, delta: delta})
		c.n++
	}
	merged = append(merged, c.samples[next:]...)

	c.samples = merged
	c.buf = c.buf[:0]
	c.compress()
}

// compress folds samples into their successors wherever the invariant allows.
// The first sample is never folded so the minimum stays exact, and folding
// always keeps the larger value so the maximum does too.
func (c *ckms) compress() {
	if len(c.samples) < 3 {
		return
	}
	limit := c.allowance()

	// Walk backwards, accumulating into acc and emitting in reverse.
	out := make([]sample, 0, len(c.samples))
	acc := c.samples[len(c.samples)-1]
	for i := len(c.samples) - 2; i >= 1; i-- {
		cur := c.samples[i]
		if cur.g+acc.g+acc.delta <= limit {
			acc.g += cur.g
			continue
		}
		out = append(out, acc)
		acc = cur
	}
	out = append(out, acc, c.samples[0])
	slices.Reverse(out)

	c.samples = out
}
