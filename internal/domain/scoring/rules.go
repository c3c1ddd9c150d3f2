package scoring

import "github.com/okian/otvplus/internal/domain/model"

// Inputs carries the per-pitch metrics a rule may read. Spin values are
// optional; a nil value makes every predicate on it false.
type Inputs struct {
	IVB            float64
	HMove          float64
	VSep           float64
	Velocity       float64
	SpinRate       *float64
	SpinEfficiency *float64
}

// Predicate reports whether a rule applies to a pitch.
type Predicate func(Inputs) bool

// Rule adds Delta to the score when When holds.
type Rule struct {
	Name  string
	When  Predicate
	Delta float64
}

// Step is an ordered group of rules; only the first matching rule applies.
// A single-rule step is an independent, stacking condition.
type Step []Rule

// RuleSet is the full scoring ladder for one pitch family. Steps always stack.
type RuleSet struct {
	Family model.PitchFamily
	Steps  []Step
}

// Apply evaluates every step and returns the summed deltas.
func (rs RuleSet) Apply(in Inputs) float64 {
	var score float64
	for _, step := range rs.Steps {
		for _, r := range step {
			if r.When(in) {
				score += r.Delta
				break
			}
		}
	}
	return score
}

// Fired returns the names of the rules that contribute to the score.
func (rs RuleSet) Fired(in Inputs) []string {
	var names []string
	for _, step := range rs.Steps {
		for _, r := range step {
			if r.When(in) {
				names = append(names, r.Name)
				break
			}
		}
	}
	return names
}

func between(v, lo, hi float64) bool { return v >= lo && v <= hi }

func above(p *float64, limit float64) bool { return p != nil && *p > limit }

func below(p *float64, limit float64) bool { return p != nil && *p < limit }

// BuildRules compiles a threshold table into per-family rule sets.
func BuildRules(t Thresholds) map[model.PitchFamily]RuleSet {
	fb, sl, cb, ch := t.Fastball, t.Slider, t.Curveball, t.Changeup
	return map[model.PitchFamily]RuleSet{
		model.Fastball: {
			Family: model.Fastball,
			Steps: []Step{
				{
					{Name: "elite_ivb", When: func(in Inputs) bool { return in.IVB >= fb.EliteIVB }, Delta: fb.EliteIVBBonus},
					{Name: "plus_ivb", When: func(in Inputs) bool { return in.IVB >= fb.PlusIVB }, Delta: fb.PlusIVBBonus},
				},
				{
					{Name: "tight_hmove", When: func(in Inputs) bool { return in.HMove < fb.TightHMove }, Delta: fb.TightHMoveBonus},
					{Name: "wide_hmove", When: func(in Inputs) bool { return in.HMove > fb.WideHMove }, Delta: fb.WideHMovePenalty},
				},
				{
					{Name: "dead_zone", When: func(in Inputs) bool {
						return between(in.IVB, fb.DeadZoneMinIVB, fb.DeadZoneMaxIVB) && in.HMove >= fb.DeadZoneMinHMove
					}, Delta: fb.DeadZonePenalty},
				},
				{
					{Name: "spin_efficiency", When: func(in Inputs) bool { return above(in.SpinEfficiency, fb.SpinEfficiency) }, Delta: fb.SpinEfficiencyBonus},
				},
			},
		},
		model.Slider: {
			Family: model.Slider,
			Steps: []Step{
				{
					{Name: "sweep_with_drop", When: func(in Inputs) bool { return in.HMove >= sl.EliteHMove && in.IVB < sl.EliteMaxIVB }, Delta: sl.EliteBonus},
					{Name: "sweep", When: func(in Inputs) bool { return in.HMove >= sl.PlusHMove }, Delta: sl.PlusBonus},
				},
				{
					{Name: "high_spin", When: func(in Inputs) bool { return above(in.SpinRate, sl.HighSpin) }, Delta: sl.HighSpinBonus},
				},
				{
					{Name: "cement_mixer", When: func(in Inputs) bool {
						return between(in.HMove, sl.FlatMinHMove, sl.FlatMaxHMove) && between(in.IVB, sl.FlatMinIVB, sl.FlatMaxIVB)
					}, Delta: sl.FlatPenalty},
				},
				{
					{Name: "backspin_lift", When: func(in Inputs) bool { return in.IVB > sl.LiftIVB }, Delta: sl.LiftPenalty},
				},
			},
		},
		model.Curveball: {
			Family: model.Curveball,
			Steps: []Step{
				{
					{Name: "hammer", When: func(in Inputs) bool { return in.IVB <= cb.EliteIVB && above(in.SpinRate, cb.EliteSpin) }, Delta: cb.EliteBonus},
					{Name: "depth", When: func(in Inputs) bool { return in.IVB <= cb.PlusIVB }, Delta: cb.PlusBonus},
				},
				{
					{Name: "vertical_shape", When: func(in Inputs) bool { return in.HMove < cb.VerticalHMove }, Delta: cb.VerticalBonus},
				},
				{
					{Name: "slurvy", When: func(in Inputs) bool {
						return between(in.IVB, cb.SlurveMinIVB, cb.SlurveMaxIVB) && in.HMove > cb.SlurveHMove
					}, Delta: cb.SlurvePenalty},
				},
				{
					{Name: "low_spin", When: func(in Inputs) bool { return below(in.SpinRate, cb.LowSpin) }, Delta: cb.LowSpinPenalty},
				},
			},
		},
		model.Changeup: {
			Family: model.Changeup,
			Steps: []Step{
				{
					{Name: "elite_separation", When: func(in Inputs) bool { return in.VSep > ch.EliteVSep }, Delta: ch.EliteBonus},
					{Name: "plus_separation", When: func(in Inputs) bool { return in.VSep > ch.PlusVSep }, Delta: ch.PlusBonus},
				},
				{
					{Name: "low_spin", When: func(in Inputs) bool { return below(in.SpinRate, ch.LowSpin) }, Delta: ch.LowSpinBonus},
				},
				{
					{Name: "poor_separation", When: func(in Inputs) bool { return in.VSep < ch.PoorVSep }, Delta: ch.PoorPenalty},
				},
				{
					{Name: "high_spin", When: func(in Inputs) bool { return above(in.SpinRate, ch.HighSpin) }, Delta: ch.HighSpinPenalty},
				},
			},
		},
	}
}
