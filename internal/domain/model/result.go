package model

// Source tags which path produced a pitcher's score.
type Source string

// Result sources.
const (
	SourceStatcast Source = "Statcast"
	SourceScouting Source = "Scouting"
)

// RosterEntry is a pitcher as listed by the roster source.
type RosterEntry struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Level string `json:"level"`
}

// PitcherResult is one row of an org rating run.
type PitcherResult struct {
	First     string  `json:"first"`
	Last      string  `json:"last"`
	Level     string  `json:"level"`
	StuffPlus float64 `json:"stuff_plus"`
	Source    Source  `json:"source"`
}

// FamilySummary is the mean standardized score of one family in a sample.
type FamilySummary struct {
	Family PitchFamily `json:"family"`
	Count  int         `json:"count"`
	Mean   float64     `json:"mean"`
}

// TrendPoint is the mean standardized score for one game date.
type TrendPoint struct {
	Date  string  `json:"date"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
}

// ScoredSample is a single pitcher's fully scored tracking sample.
type ScoredSample struct {
	First     string          `json:"first"`
	Last      string          `json:"last"`
	PlayerID  int             `json:"player_id"`
	Pitches   []ScoredPitch   `json:"pitches"`
	Usage     Usage           `json:"usage"`
	StuffPlus float64         `json:"stuff_plus"`
	Families  []FamilySummary `json:"families"`
	Trend     []TrendPoint    `json:"trend"`
}
