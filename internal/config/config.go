// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New(); Load layers a YAML file and OTV_* env vars on top.
// - Scoring parameters are converted into an engine.Config; the engine never
//   reads this package directly.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/otvplus/internal/domain/engine"
	"github.com/okian/otvplus/internal/domain/model"
)

const dateLayout = "2006-01-02"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// OrgID identifies the organization on the roster site.
	OrgID string `koanf:"org_id"`

	// RosterURL is the org roster page prefix; the org id is appended.
	RosterURL string `koanf:"roster_url"`

	// StatsAPIURL is the base URL for player identity lookups.
	StatsAPIURL string `koanf:"stats_api_url"`

	// SavantURL is the base URL for per-pitch tracking searches.
	SavantURL string `koanf:"savant_url"`

	// FetchTimeoutMS bounds each outbound HTTP request. Zero disables the bound.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// StartDate and EndDate bound the tracking window (YYYY-MM-DD). Empty
	// values default to Jan 1 of the current year and today.
	StartDate string `koanf:"start_date"`
	EndDate   string `koanf:"end_date"`

	// SkipNoData drops pitchers whose tracking path fails instead of
	// falling back to scouting grades.
	SkipNoData bool `koanf:"skip_no_data"`

	// UseUsageWeighting scales weighted scores by pitch usage.
	UseUsageWeighting bool `koanf:"use_usage_weighting"`

	// StandardizationScope is "pitcher" or "league".
	StandardizationScope string `koanf:"standardization_scope"`

	// AggregateMode is "mean" or "sum".
	AggregateMode string `koanf:"aggregate_mode"`

	// GradeAnchor is the grade that maps to a 1.0 multiplier.
	GradeAnchor float64 `koanf:"grade_anchor"`

	// DefaultGrade applies to families missing from a grade table.
	DefaultGrade int `koanf:"default_grade"`

	// FallbackUsageDefault is the usage share assumed for graded families
	// absent from a usage table on the scouting path.
	FallbackUsageDefault float64 `koanf:"fallback_usage_default"`

	// MaxRuns bounds how many org runs are retained in memory.
	MaxRuns int `koanf:"max_runs"`

	// PitchFamilies maps tracking pitch names to scorer families.
	PitchFamilies map[string]string `koanf:"pitch_families"`

	// ScoutingGrades is the org-wide family -> grade table.
	ScoutingGrades map[string]int `koanf:"scouting_grades"`

	// PitcherGrades overrides grades per pitcher, keyed "First Last".
	PitcherGrades map[string]map[string]int `koanf:"pitcher_grades"`
}

// New creates a Config with defaults.
func New() *Config {
	c := &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		OrgID:                "4",
		RosterURL:            "https://www.thebaseballcube.com/content/org_roster_current/",
		StatsAPIURL:          "https://statsapi.mlb.com",
		SavantURL:            "https://baseballsavant.mlb.com",
		FetchTimeoutMS:       30_000,
		UseUsageWeighting:    true,
		StandardizationScope: string(engine.ScopePitcher),
		AggregateMode:        string(engine.AggregateMean),
		GradeAnchor:          60,
		DefaultGrade:         50,
		FallbackUsageDefault: 0.25,
		MaxRuns:              20,
		PitchFamilies: map[string]string{
			"4-Seam Fastball": "Fastball",
			"Slider":          "Slider",
			"Curveball":       "Curveball",
			"Changeup":        "Changeup",
		},
		ScoutingGrades: map[string]int{
			"Fastball":  60,
			"Slider":    55,
			"Curveball": 55,
			"Changeup":  50,
		},
	}
	return c
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.GradeAnchor <= 0:
		return fmt.Errorf("%w: grade_anchor must be positive", ErrInvalidConfig)
	case c.DefaultGrade <= 0:
		return fmt.Errorf("%w: default_grade must be positive", ErrInvalidConfig)
	case c.FallbackUsageDefault < 0:
		return fmt.Errorf("%w: fallback_usage_default must not be negative", ErrInvalidConfig)
	}
	switch engine.Scope(c.StandardizationScope) {
	case engine.ScopePitcher, engine.ScopeLeague:
	default:
		return fmt.Errorf("%w: unknown standardization_scope %q", ErrInvalidConfig, c.StandardizationScope)
	}
	switch engine.AggregateMode(c.AggregateMode) {
	case engine.AggregateMean, engine.AggregateSum:
	default:
		return fmt.Errorf("%w: unknown aggregate_mode %q", ErrInvalidConfig, c.AggregateMode)
	}
	if _, _, err := c.DateRange(time.Now()); err != nil {
		return err
	}
	return nil
}

// DateRange resolves the tracking window relative to now.
func (c *Config) DateRange(now time.Time) (time.Time, time.Time, error) {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var err error
	if c.StartDate != "" {
		if start, err = time.Parse(dateLayout, c.StartDate); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date %q: %w", ErrInvalidConfig, c.StartDate, ErrInvalidDate)
		}
	}
	if c.EndDate != "" {
		if end, err = time.Parse(dateLayout, c.EndDate); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date %q: %w", ErrInvalidConfig, c.EndDate, ErrInvalidDate)
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date before start_date", ErrInvalidConfig)
	}
	return start, end, nil
}

// FixedWindow returns the configured window sides. A side left empty in
// configuration is the zero time so callers can keep a rolling default.
func (c *Config) FixedWindow() (time.Time, time.Time, error) {
	var start, end time.Time
	var err error
	if c.StartDate != "" {
		if start, err = time.Parse(dateLayout, c.StartDate); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date %q: %w", ErrInvalidConfig, c.StartDate, ErrInvalidDate)
		}
	}
	if c.EndDate != "" {
		if end, err = time.Parse(dateLayout, c.EndDate); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date %q: %w", ErrInvalidConfig, c.EndDate, ErrInvalidDate)
		}
	}
	return start, end, nil
}

// FetchTimeout returns the outbound request bound.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// Grades returns the org-wide grade table.
func (c *Config) Grades() model.GradeTable {
	return toGradeTable(c.ScoutingGrades)
}

// PitcherGradeTables returns per-pitcher overrides keyed by lower-cased "first last".
func (c *Config) PitcherGradeTables() map[string]model.GradeTable {
	out := make(map[string]model.GradeTable, len(c.PitcherGrades))
	for name, grades := range c.PitcherGrades {
		out[strings.ToLower(strings.Join(strings.Fields(name), " "))] = toGradeTable(grades)
	}
	return out
}

// Engine converts scoring settings into an engine configuration.
func (c *Config) Engine() engine.Config {
	ec := engine.DefaultConfig()
	ec.UseUsageWeighting = c.UseUsageWeighting
	ec.Scope = engine.Scope(c.StandardizationScope)
	ec.Aggregate = engine.AggregateMode(c.AggregateMode)
	ec.GradeAnchor = c.GradeAnchor
	ec.DefaultGrade = c.DefaultGrade
	ec.FallbackUsageDefault = c.FallbackUsageDefault
	ec.DefaultGrades = c.Grades()
	if len(c.PitchFamilies) > 0 {
		ec.PitchFamilies = make(map[string]model.PitchFamily, len(c.PitchFamilies))
		for name, fam := range c.PitchFamilies {
			ec.PitchFamilies[name] = model.ParseFamily(fam)
		}
	}
	return ec
}

func toGradeTable(in map[string]int) model.GradeTable {
	out := make(model.GradeTable, len(in))
	for fam, grade := range in {
		f := model.ParseFamily(fam)
		if f == model.Other {
			continue
		}
		out[f] = grade
	}
	return out
}
