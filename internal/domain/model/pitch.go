// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// PitchFamily groups tracking pitch names into the families the scorers know.
type PitchFamily string

// Known pitch families. Other collects every pitch without a scorer.
const (
	Fastball  PitchFamily = "Fastball"
	Slider    PitchFamily = "Slider"
	Curveball PitchFamily = "Curveball"
	Changeup  PitchFamily = "Changeup"
	Other     PitchFamily = "Other"
)

// ScoredFamilies lists the families with a defined scorer, in display order.
var ScoredFamilies = []PitchFamily{Fastball, Slider, Curveball, Changeup} //nolint:gochecknoglobals // immutable enumeration

// ParseFamily resolves a family name case-insensitively. Unknown names map to Other.
func ParseFamily(s string) PitchFamily {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fastball":
		return Fastball
	case "slider":
		return Slider
	case "curveball":
		return Curveball
	case "changeup":
		return Changeup
	default:
		return Other
	}
}

// PitchEvent is one recorded pitch as returned by the tracking source.
// Break factors are in the tracking system's native feet.
type PitchEvent struct {
	PitchName       string      `json:"pitch_name"`
	Family          PitchFamily `json:"family"`
	VerticalBreak   float64     `json:"pfx_z"`
	HorizontalBreak float64     `json:"pfx_x"`
	ReleaseSpeed    float64     `json:"release_speed"`
	SpinRate        *float64    `json:"release_spin_rate,omitempty"`
	SpinEfficiency  *float64    `json:"spin_efficiency,omitempty"`
	GameDate        time.Time   `json:"game_date"`
}

// Derived holds movement metrics computed once per pitch, in inches.
type Derived struct {
	IVB   float64 `json:"ivb"`
	HMove float64 `json:"hmove"`
	VSep  float64 `json:"v_sep"`
}

// ScoredPitch is a pitch with every stage of the scoring pipeline attached.
// A nil score marks a pitch whose family has no scorer; it never means zero.
type ScoredPitch struct {
	PitchEvent
	Derived

	RawScore     *float64 `json:"score"`
	Grade        int      `json:"grade"`
	UsageWeight  float64  `json:"usage_weight"`
	Weighted     *float64 `json:"weighted_score"`
	Standardized *float64 `json:"standardized_score"`
}

// Float returns a pointer to v; used for optional metrics and scores.
func Float(v float64) *float64 { return &v }
