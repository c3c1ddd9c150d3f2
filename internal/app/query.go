package service

import (
	"context"
	"sort"

	repository "github.com/okian/otvplus/internal/adapters/repository"
	"github.com/okian/otvplus/internal/domain/model"
	"github.com/okian/otvplus/internal/domain/types"
)

const dateLayout = "2006-01-02"

// Run returns a stored run; an empty id selects the latest.
func (s *Service) Run(ctx context.Context, id string) (repository.Run, error) {
	if id == "" {
		return s.runs.Latest(ctx)
	}
	return s.runs.Get(ctx, id)
}

// Leaderboard returns the ranked table of a stored run.
func (s *Service) Leaderboard(ctx context.Context, runID string) (types.Leaderboard, error) {
	run, err := s.Run(ctx, runID)
	if err != nil {
		return types.Leaderboard{}, err
	}
	return ToLeaderboard(run), nil
}

// Levels summarizes a stored run by roster level.
func (s *Service) Levels(ctx context.Context, runID string) ([]types.LevelSummary, error) {
	run, err := s.Run(ctx, runID)
	if err != nil {
		return nil, err
	}
	return LevelSummaries(run.Results), nil
}

// Runs lists stored runs, newest first.
func (s *Service) Runs(ctx context.Context) []types.RunInfo {
	runs := s.runs.List(ctx)
	out := make([]types.RunInfo, len(runs))
	for i, r := range runs {
		out[i] = runInfo(r)
	}
	return out
}

// ToLeaderboard converts a stored run to its API form.
func ToLeaderboard(run repository.Run) types.Leaderboard {
	entries := make([]types.Entry, len(run.Ranked))
	for i, e := range run.Ranked {
		entries[i] = types.Entry{
			Rank:      e.Rank,
			First:     e.First,
			Last:      e.Last,
			Level:     e.Level,
			StuffPlus: e.StuffPlus,
			Source:    string(e.Source),
		}
	}
	return types.Leaderboard{Run: runInfo(run), Entries: entries}
}

func runInfo(r repository.Run) types.RunInfo {
	info := types.RunInfo{
		ID:        r.ID,
		OrgID:     r.OrgID,
		Rated:     len(r.Results),
		Fallbacks: r.Fallbacks,
		Skipped:   r.Skipped,
		Partial:   r.Partial,
	}
	if !r.Start.IsZero() {
		info.Start = r.Start.Format(dateLayout)
	}
	if !r.End.IsZero() {
		info.End = r.End.Format(dateLayout)
	}
	if !r.FinishedAt.IsZero() {
		info.FinishedAt = r.FinishedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return info
}

// LevelSummaries groups results by level, sorted by level name.
func LevelSummaries(results []model.PitcherResult) []types.LevelSummary {
	byLevel := map[string][]float64{}
	for _, r := range results {
		byLevel[r.Level] = append(byLevel[r.Level], r.StuffPlus)
	}

	out := make([]types.LevelSummary, 0, len(byLevel))
	for level, scores := range byLevel {
		sort.Float64s(scores)
		var sum float64
		for _, v := range scores {
			sum += v
		}
		out = append(out, types.LevelSummary{
			Level:  level,
			Count:  len(scores),
			Mean:   Round1(sum / float64(len(scores))),
			Median: Round1(median(scores)),
			Min:    scores[0],
			Max:    scores[len(scores)-1],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func buildComparison(a, b *model.ScoredSample) types.Comparison {
	cmp := types.Comparison{
		First:  summarize(a),
		Second: summarize(b),
	}
	left := familyMeans(a)
	right := familyMeans(b)
	for _, fam := range model.ScoredFamilies {
		l, lok := left[fam]
		r, rok := right[fam]
		if !lok && !rok {
			continue
		}
		fc := types.FamilyComparison{Family: string(fam)}
		if lok {
			fc.First = &l
		}
		if rok {
			fc.Second = &r
		}
		cmp.Families = append(cmp.Families, fc)
	}
	return cmp
}

func summarize(s *model.ScoredSample) types.PlayerSummary {
	return types.PlayerSummary{
		First:     s.First,
		Last:      s.Last,
		PlayerID:  s.PlayerID,
		Pitches:   len(s.Pitches),
		StuffPlus: s.StuffPlus,
	}
}

func familyMeans(s *model.ScoredSample) map[model.PitchFamily]float64 {
	out := make(map[model.PitchFamily]float64, len(s.Families))
	for _, f := range s.Families {
		if f.Count > 0 {
			out[f.Family] = Round1(f.Mean)
		}
	}
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := s.engine.Config()
	stats := map[string]any{
		"started":         s.started,
		"org":             s.orgID,
		"scope":           string(cfg.Scope),
		"aggregate":       string(cfg.Aggregate),
		"usageWeighting":  cfg.UseUsageWeighting,
		"skipNoData":      s.skipNoData,
		"runsStored":      s.runs.Count(ctx),
		"runsCompleted":   s.ratedRuns,
		"lastRunID":       s.lastRunID,
		"lastRunComplete": s.lastRunErr == nil,
	}
	return stats
}
