package engine

import (
	"github.com/okian/otvplus/internal/domain/blend"
	"github.com/okian/otvplus/internal/domain/model"
	"github.com/okian/otvplus/internal/domain/scoring"
)

// Scope selects the population a standardization is fitted on.
type Scope string

// Standardization scopes.
const (
	// ScopePitcher fits within one pitcher's own sample.
	ScopePitcher Scope = "pitcher"
	// ScopeLeague fits once over every pitcher scored in a run.
	ScopeLeague Scope = "league"
)

// AggregateMode selects how standardized pitch scores reduce to one value.
// Sum is the historical Stuff+ definition: the total of the standardized
// scores, which grows with sample size. Mean is the default because it keeps
// a pitcher on the 100 +/- 10 scale shared with the scouting fallback, so a
// flat sample reads 100 and ranks fairly against Scouting rows.
type AggregateMode string

// Aggregate modes.
const (
	AggregateMean AggregateMode = "mean"
	// AggregateSum totals the standardized scores.
	AggregateSum AggregateMode = "sum"
)

// Config is the full set of engine parameters. Nothing in the engine reads
// package-level state beyond what is passed here.
type Config struct {
	UseUsageWeighting    bool
	Scope                Scope
	Aggregate            AggregateMode
	GradeAnchor          float64
	DefaultGrade         int
	FallbackUsageDefault float64
	// DefaultGrades is the org-wide scouting table.
	DefaultGrades model.GradeTable
	// PitchFamilies maps tracking pitch names to families. Unlisted names are Other.
	PitchFamilies map[string]model.PitchFamily
	Thresholds    scoring.Thresholds
}

// DefaultConfig returns the production engine configuration.
func DefaultConfig() Config {
	return Config{
		UseUsageWeighting:    true,
		Scope:                ScopePitcher,
		Aggregate:            AggregateMean,
		GradeAnchor:          blend.DefaultGradeAnchor,
		DefaultGrade:         blend.DefaultGrade,
		FallbackUsageDefault: 0.25,
		DefaultGrades: model.GradeTable{
			model.Fastball:  60,
			model.Slider:    55,
			model.Curveball: 55,
			model.Changeup:  50,
		},
		PitchFamilies: DefaultPitchFamilies(),
		Thresholds:    scoring.DefaultThresholds(),
	}
}

// DefaultPitchFamilies returns the tracking-name table used by the scorers.
func DefaultPitchFamilies() map[string]model.PitchFamily {
	return map[string]model.PitchFamily{
		"4-Seam Fastball": model.Fastball,
		"Slider":          model.Slider,
		"Curveball":       model.Curveball,
		"Changeup":        model.Changeup,
	}
}
