// Package types contains common types used across the application
package types

import "time"

// Entry represents a ranked leaderboard row
type Entry struct {
	Rank      int     `json:"rank"`
	First     string  `json:"first"`
	Last      string  `json:"last"`
	Level     string  `json:"level"`
	StuffPlus float64 `json:"stuff_plus"`
	Source    string  `json:"source"`
}

// LevelSummary describes the score distribution of one roster level
type LevelSummary struct {
	Level  string  `json:"level"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// PlayerSummary is one side of a comparison
type PlayerSummary struct {
	First     string  `json:"first"`
	Last      string  `json:"last"`
	PlayerID  int     `json:"player_id"`
	Pitches   int     `json:"pitches"`
	StuffPlus float64 `json:"stuff_plus"`
}

// FamilyComparison lines up two pitchers' mean standardized score for one
// pitch family. A nil side means that pitcher threw no scored pitch of it.
type FamilyComparison struct {
	Family string   `json:"family"`
	First  *float64 `json:"first"`
	Second *float64 `json:"second"`
}

// Comparison is the side-by-side view of two pitchers
type Comparison struct {
	First    PlayerSummary      `json:"first"`
	Second   PlayerSummary      `json:"second"`
	Families []FamilyComparison `json:"families"`
}

// RunInfo describes a stored org run without its rows
type RunInfo struct {
	ID         string `json:"id"`
	OrgID      string `json:"org_id"`
	Start      string `json:"start"`
	End        string `json:"end"`
	FinishedAt string `json:"finished_at"`
	Rated      int    `json:"rated"`
	Fallbacks  int    `json:"fallbacks"`
	Skipped    int    `json:"skipped"`
	Partial    bool   `json:"partial"`
}

// Leaderboard is a ranked run
type Leaderboard struct {
	Run     RunInfo `json:"run"`
	Entries []Entry `json:"entries"`
}

// PlayerRef names a pitcher
type PlayerRef struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// RateRequest parameterizes an org rating pass
type RateRequest struct {
	OrgID      string    `json:"org_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	SkipNoData bool      `json:"skip_no_data"`
}
