package engine

import (
	"sort"

	"github.com/okian/otvplus/internal/domain/model"
)

const dateLayout = "2006-01-02"

// FamilySummaries returns the mean standardized score per family, in the
// scorer display order. Families with no defined score are omitted.
func FamilySummaries(pitches []model.ScoredPitch) []model.FamilySummary {
	type acc struct {
		n   int
		sum float64
	}
	by := make(map[model.PitchFamily]*acc)
	for _, p := range pitches {
		if p.Standardized == nil {
			continue
		}
		a, ok := by[p.Family]
		if !ok {
			a = &acc{}
			by[p.Family] = a
		}
		a.n++
		a.sum += *p.Standardized
	}

	out := make([]model.FamilySummary, 0, len(by))
	for _, fam := range model.ScoredFamilies {
		if a, ok := by[fam]; ok {
			out = append(out, model.FamilySummary{Family: fam, Count: a.n, Mean: a.sum / float64(a.n)})
		}
	}
	return out
}

// DailyTrend returns the mean standardized score per game date, oldest first.
// Pitches without a date or a defined score are skipped.
func DailyTrend(pitches []model.ScoredPitch) []model.TrendPoint {
	type acc struct {
		n   int
		sum float64
	}
	by := make(map[string]*acc)
	for _, p := range pitches {
		if p.Standardized == nil || p.GameDate.IsZero() {
			continue
		}
		day := p.GameDate.Format(dateLayout)
		a, ok := by[day]
		if !ok {
			a = &acc{}
			by[day] = a
		}
		a.n++
		a.sum += *p.Standardized
	}

	out := make([]model.TrendPoint, 0, len(by))
	for day, a := range by {
		out = append(out, model.TrendPoint{Date: day, Count: a.n, Mean: a.sum / float64(a.n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
