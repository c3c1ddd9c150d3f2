// Package scoring maps a pitch's movement and spin to a raw shape score.
//
// Each supported pitch family is scored by a RuleSet compiled from a
// Thresholds table. Families without a rule set have no defined score.
package scoring

import (
	"github.com/okian/otvplus/internal/domain/model"
)

// Option applies a configuration option to the RuleScorer.
type Option func(*RuleScorer)

// WithThresholds replaces the default threshold table.
func WithThresholds(t Thresholds) Option {
	return func(s *RuleScorer) {
		s.rules = BuildRules(t)
	}
}

// WithRuleSet overrides the rules of a single family.
func WithRuleSet(rs RuleSet) Option {
	return func(s *RuleScorer) {
		if rs.Family != "" && rs.Family != model.Other {
			s.rules[rs.Family] = rs
		}
	}
}

// Scorer computes a raw score for one pitch. ok is false when the family has
// no scorer; callers must treat that as undefined, never as zero.
type Scorer interface {
	Score(family model.PitchFamily, in Inputs) (score float64, ok bool)
}

// RuleScorer implements Scorer with per-family rule sets.
type RuleScorer struct {
	rules map[model.PitchFamily]RuleSet
}

// NewRuleScorer creates a scorer with the default thresholds.
func NewRuleScorer(opts ...Option) *RuleScorer {
	s := &RuleScorer{rules: BuildRules(DefaultThresholds())}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Score computes the raw score for family.
func (s *RuleScorer) Score(family model.PitchFamily, in Inputs) (float64, bool) {
	rs, ok := s.rules[family]
	if !ok {
		return 0, false
	}
	return rs.Apply(in), true
}

// Rules returns the rule set for family.
func (s *RuleScorer) Rules(family model.PitchFamily) (RuleSet, bool) {
	rs, ok := s.rules[family]
	return rs, ok
}

// InputsFor builds scorer inputs from a derived pitch.
func InputsFor(p model.ScoredPitch) Inputs {
	return Inputs{
		IVB:            p.IVB,
		HMove:          p.HMove,
		VSep:           p.VSep,
		Velocity:       p.ReleaseSpeed,
		SpinRate:       p.SpinRate,
		SpinEfficiency: p.SpinEfficiency,
	}
}

var defaultScorer = NewRuleScorer() //nolint:gochecknoglobals // read-only default rules

// ScoreFastball scores a four-seam fastball. velocity is accepted for
// contract compatibility and does not affect the score.
func ScoreFastball(ivb, hmove, velocity float64, spinEfficiency *float64) float64 {
	s, _ := defaultScorer.Score(model.Fastball, Inputs{IVB: ivb, HMove: hmove, Velocity: velocity, SpinEfficiency: spinEfficiency})
	return s
}

// ScoreSlider scores a slider from horizontal break, IVB and spin rate.
func ScoreSlider(hmove, ivb float64, spinRate *float64) float64 {
	s, _ := defaultScorer.Score(model.Slider, Inputs{IVB: ivb, HMove: hmove, SpinRate: spinRate})
	return s
}

// ScoreCurveball scores a curveball from IVB, horizontal movement and spin rate.
func ScoreCurveball(ivb, hmove float64, spinRate *float64) float64 {
	s, _ := defaultScorer.Score(model.Curveball, Inputs{IVB: ivb, HMove: hmove, SpinRate: spinRate})
	return s
}

// ScoreChangeup scores a changeup from vertical separation and spin rate.
func ScoreChangeup(vsep float64, spinRate *float64) float64 {
	s, _ := defaultScorer.Score(model.Changeup, Inputs{VSep: vsep, SpinRate: spinRate})
	return s
}
