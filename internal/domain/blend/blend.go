// Package blend combines raw shape scores with scouting grades and pitch usage.
package blend

import "github.com/okian/otvplus/internal/domain/model"

// Default blending constants.
const (
	// DefaultGradeAnchor maps a plus (60) grade to a 1.0 multiplier.
	DefaultGradeAnchor = 60.0
	// DefaultGrade is used for families missing from a grade table.
	DefaultGrade = 50
)

// Option applies a configuration option to the Blender.
type Option func(*Blender)

// WithGradeAnchor sets the grade that maps to a 1.0 multiplier.
func WithGradeAnchor(anchor float64) Option {
	return func(b *Blender) {
		if anchor > 0 {
			b.anchor = anchor
		}
	}
}

// WithDefaultGrade sets the grade used for families without one.
func WithDefaultGrade(grade int) Option {
	return func(b *Blender) {
		if grade > 0 {
			b.defaultGrade = grade
		}
	}
}

// WithUsageWeighting toggles scaling by usage fraction.
func WithUsageWeighting(enabled bool) Option {
	return func(b *Blender) {
		b.useUsage = enabled
	}
}

// Blender weights raw scores by grade and, optionally, usage.
type Blender struct {
	anchor       float64
	defaultGrade int
	useUsage     bool
}

// New creates a usage-aware Blender anchored at grade 60.
func New(opts ...Option) *Blender {
	b := &Blender{
		anchor:       DefaultGradeAnchor,
		defaultGrade: DefaultGrade,
		useUsage:     true,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// UsageWeighting reports whether usage scaling is enabled.
func (b *Blender) UsageWeighting() bool { return b.useUsage }

// Grade returns the grade applied to family.
func (b *Blender) Grade(grades model.GradeTable, family model.PitchFamily) int {
	return grades.Grade(family, b.defaultGrade)
}

// Multiplier returns grade/anchor for family.
func (b *Blender) Multiplier(grades model.GradeTable, family model.PitchFamily) float64 {
	return float64(b.Grade(grades, family)) / b.anchor
}

// Weight applies the grade multiplier and usage to a raw score. A nil raw
// score stays nil.
func (b *Blender) Weight(raw *float64, grade int, usage float64) *float64 {
	if raw == nil {
		return nil
	}
	w := *raw * (float64(grade) / b.anchor)
	if b.useUsage {
		w *= usage
	}
	return &w
}

// Apply fills grade, usage weight and weighted score on every pitch in place.
func (b *Blender) Apply(pitches []model.ScoredPitch, grades model.GradeTable) model.Usage {
	usage := Usage(pitches)
	for i := range pitches {
		p := &pitches[i]
		p.Grade = b.Grade(grades, p.Family)
		p.UsageWeight = usage[p.Family]
		p.Weighted = b.Weight(p.RawScore, p.Grade, p.UsageWeight)
	}
	return usage
}

// Usage returns the exact empirical frequency of each family in the sample.
func Usage(pitches []model.ScoredPitch) model.Usage {
	usage := make(model.Usage)
	if len(pitches) == 0 {
		return usage
	}
	for _, p := range pitches {
		usage[p.Family]++
	}
	n := float64(len(pitches))
	for fam, c := range usage {
		usage[fam] = c / n
	}
	return usage
}
