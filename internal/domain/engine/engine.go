// Package engine runs the Stuff+ pipeline over one pitcher's tracking sample:
// movement derivation, rule scoring, grade/usage blending and standardization.
package engine

import (
	"fmt"

	"github.com/okian/otvplus/internal/domain/blend"
	"github.com/okian/otvplus/internal/domain/fallback"
	"github.com/okian/otvplus/internal/domain/model"
	"github.com/okian/otvplus/internal/domain/movement"
	"github.com/okian/otvplus/internal/domain/scoring"
	"github.com/okian/otvplus/internal/domain/standardize"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithScorer replaces the rule scorer built from the configured thresholds.
func WithScorer(s scoring.Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// Engine is stateless across samples and safe to reuse.
type Engine struct {
	cfg      Config
	scorer   scoring.Scorer
	blender  *blend.Blender
	fallback *fallback.Aggregator
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{cfg: DefaultConfig()}

	for _, opt := range opts {
		opt(e)
	}

	if e.scorer == nil {
		e.scorer = scoring.NewRuleScorer(scoring.WithThresholds(e.cfg.Thresholds))
	}
	e.blender = blend.New(
		blend.WithGradeAnchor(e.cfg.GradeAnchor),
		blend.WithDefaultGrade(e.cfg.DefaultGrade),
		blend.WithUsageWeighting(e.cfg.UseUsageWeighting),
	)
	e.fallback = fallback.New(fallback.WithDefaultUsage(e.cfg.FallbackUsageDefault))
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Prepared is a sample scored and weighted but not yet standardized.
type Prepared struct {
	Pitches []model.ScoredPitch
	Usage   model.Usage
}

// Weighted returns the weighted score of every pitch, nil when undefined.
func (p *Prepared) Weighted() []*float64 {
	out := make([]*float64, len(p.Pitches))
	for i := range p.Pitches {
		out[i] = p.Pitches[i].Weighted
	}
	return out
}

// Result is a fully scored sample.
type Result struct {
	Pitches   []model.ScoredPitch
	Usage     model.Usage
	Stats     standardize.Stats
	Undefined int
	// StuffPlus is the unrounded aggregate.
	StuffPlus float64
}

// Classify resolves the family of a tracking pitch name.
func (e *Engine) Classify(pitchName string) model.PitchFamily {
	if fam, ok := e.cfg.PitchFamilies[pitchName]; ok {
		return fam
	}
	return model.Other
}

// Prepare derives, scores and weights a sample. An empty sample and a sample
// with no scorable pitch are distinct failures.
func (e *Engine) Prepare(events []model.PitchEvent, grades model.GradeTable) (*Prepared, error) {
	if len(events) == 0 {
		return nil, model.ErrEmptySample
	}

	pitches := movement.Derive(events)
	defined := 0
	for i := range pitches {
		p := &pitches[i]
		if p.Family == "" {
			p.Family = e.Classify(p.PitchName)
		}
		if raw, ok := e.scorer.Score(p.Family, scoring.InputsFor(*p)); ok {
			p.RawScore = model.Float(raw)
			defined++
		}
	}
	if defined == 0 {
		return nil, fmt.Errorf("%d pitches: %w", len(pitches), model.ErrNoScorablePitches)
	}

	usage := e.blender.Apply(pitches, grades)
	return &Prepared{Pitches: pitches, Usage: usage}, nil
}

// Finish standardizes a prepared sample with stats and aggregates it.
func (e *Engine) Finish(p *Prepared, stats standardize.Stats) *Result {
	res := &Result{Pitches: p.Pitches, Usage: p.Usage, Stats: stats}
	standardized := make([]*float64, 0, len(p.Pitches))
	for i := range res.Pitches {
		sp := &res.Pitches[i]
		sp.Standardized = stats.Apply(sp.Weighted)
		if sp.Standardized == nil {
			res.Undefined++
			continue
		}
		standardized = append(standardized, sp.Standardized)
	}
	res.StuffPlus = e.Aggregate(standardized)
	return res
}

// ScoreSample runs the full pipeline with a fit on the sample itself.
func (e *Engine) ScoreSample(events []model.PitchEvent, grades model.GradeTable) (*Result, error) {
	p, err := e.Prepare(events, grades)
	if err != nil {
		return nil, err
	}
	return e.Finish(p, standardize.Fit(p.Weighted())), nil
}

// Aggregate reduces defined standardized scores per the configured mode.
func (e *Engine) Aggregate(values []*float64) float64 {
	var (
		n   int
		sum float64
	)
	for _, v := range values {
		if v == nil {
			continue
		}
		n++
		sum += *v
	}
	if e.cfg.Aggregate == AggregateSum {
		return sum
	}
	if n == 0 {
		return standardize.Center
	}
	return sum / float64(n)
}

// Fallback scores a pitcher from grades alone.
func (e *Engine) Fallback(grades model.GradeTable, usage model.Usage) float64 {
	return e.fallback.Score(grades, usage)
}
