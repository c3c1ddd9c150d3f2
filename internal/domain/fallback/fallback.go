// Package fallback scores a pitcher from scouting grades alone, on the same
// 100-centered scale as the tracking path.
package fallback

import (
	"sort"

	"github.com/okian/otvplus/internal/domain/model"
)

// Fallback constants.
const (
	baseline          = 100.0
	neutralGrade      = 50.0
	gradeStep         = 5.0
	defaultUsageShare = 0.25
)

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithDefaultUsage sets the usage share assumed for graded families absent
// from a supplied usage table.
func WithDefaultUsage(share float64) Option {
	return func(a *Aggregator) {
		if share >= 0 {
			a.defaultUsage = share
		}
	}
}

// Aggregator derives a score without per-pitch detail.
type Aggregator struct {
	defaultUsage float64
}

// New creates an Aggregator.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{defaultUsage: defaultUsageShare}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Normalize converts a 20-80 grade into a signed shape-equivalent value.
// The expression reduces to grade-50; it is kept in this form because it
// documents the 5-point grade step.
func Normalize(grade int) float64 {
	return (float64(grade) - neutralGrade) / gradeStep * gradeStep
}

// Score returns 100 plus the mean of the normalized grades, each weighted by
// its usage share when usage is supplied. An empty table scores 100.
func (a *Aggregator) Score(grades model.GradeTable, usage model.Usage) float64 {
	if len(grades) == 0 {
		return baseline
	}

	// Stable order keeps the float sum reproducible.
	families := make([]model.PitchFamily, 0, len(grades))
	for fam := range grades {
		families = append(families, fam)
	}
	sort.Slice(families, func(i, j int) bool { return families[i] < families[j] })

	var sum float64
	for _, fam := range families {
		v := Normalize(grades[fam])
		if len(usage) > 0 {
			share, ok := usage[fam]
			if !ok {
				share = a.defaultUsage
			}
			v *= share
		}
		sum += v
	}
	return baseline + sum/float64(len(families))
}
