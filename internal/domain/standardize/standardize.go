// Package standardize rescales weighted scores to a mean-100, stdev-10 scale.
package standardize

import "math"

// Scale constants.
const (
	Center = 100.0
	Spread = 10.0
)

// Stats is the location and spread fitted on a set of scores.
type Stats struct {
	N    int
	Mean float64
	Std  float64
	// Degenerate is set when the spread cannot be used as a divisor.
	Degenerate bool
}

// Fit computes the mean and sample standard deviation (n-1) over the
// defined values. Nil and non-finite values are skipped.
func Fit(values []*float64) Stats {
	var (
		n   int
		sum float64
	)
	for _, v := range values {
		if !usable(v) {
			continue
		}
		n++
		sum += *v
	}
	if n == 0 {
		return Stats{Degenerate: true}
	}
	mean := sum / float64(n)
	if n < 2 {
		return Stats{N: n, Mean: mean, Std: math.NaN(), Degenerate: true}
	}

	var ss float64
	for _, v := range values {
		if !usable(v) {
			continue
		}
		d := *v - mean
		ss += d * d
	}
	std := math.Sqrt(ss / float64(n-1))
	degenerate := std == 0 || math.IsNaN(std) || math.IsInf(std, 0)
	return Stats{N: n, Mean: mean, Std: std, Degenerate: degenerate}
}

// Apply rescales one value. Undefined input stays undefined; a degenerate
// fit maps every defined value to exactly Center.
func (s Stats) Apply(v *float64) *float64 {
	if !usable(v) {
		return nil
	}
	out := Center
	if !s.Degenerate {
		out = Center + Spread*((*v-s.Mean)/s.Std)
	}
	return &out
}

// ApplyAll rescales every value with s.
func (s Stats) ApplyAll(values []*float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = s.Apply(v)
	}
	return out
}

// Standardize fits and applies in one step over the same sample.
func Standardize(values []*float64) ([]*float64, Stats) {
	s := Fit(values)
	return s.ApplyAll(values), s
}

func usable(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
