// Package export writes rating results as flat CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/otvplus/internal/domain/model"
	"github.com/okian/otvplus/internal/domain/types"
)

const dateLayout = "2006-01-02"

// ResultColumns is the header of an org result table.
var ResultColumns = []string{"First", "Last", "Level", "StuffPlus", "Source"}

// SampleColumns is the header of a per-pitch export.
var SampleColumns = []string{
	"pitch_name", "family", "game_date",
	"pfx_x", "pfx_z", "release_speed", "release_spin_rate", "spin_efficiency",
	"ivb", "hmove", "v_sep",
	"score", "grade", "usage_weight", "weighted_score", "standardized_score",
}

// WriteResults writes an org result table in the given order.
func WriteResults(w io.Writer, results []model.PitcherResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write([]string{r.First, r.Last, r.Level, score(r.StuffPlus), string(r.Source)}); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLeaderboard writes ranked entries with a leading Rank column.
func WriteLeaderboard(w io.Writer, entries []types.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"Rank"}, ResultColumns...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range entries {
		row := []string{strconv.Itoa(e.Rank), e.First, e.Last, e.Level, score(e.StuffPlus), e.Source}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSample writes one row per pitch. Undefined scores are empty cells.
func WriteSample(w io.Writer, sample *model.ScoredSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SampleColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range sample.Pitches {
		date := ""
		if !p.GameDate.IsZero() {
			date = p.GameDate.Format(dateLayout)
		}
		row := []string{
			p.PitchName,
			string(p.Family),
			date,
			num(p.HorizontalBreak),
			num(p.VerticalBreak),
			num(p.ReleaseSpeed),
			opt(p.SpinRate),
			opt(p.SpinEfficiency),
			num(p.IVB),
			num(p.HMove),
			num(p.VSep),
			opt(p.RawScore),
			strconv.Itoa(p.Grade),
			num(p.UsageWeight),
			opt(p.Weighted),
			opt(p.Standardized),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func score(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func opt(v *float64) string {
	if v == nil {
		return ""
	}
	return num(*v)
}
