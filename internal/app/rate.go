package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	repository "github.com/okian/otvplus/internal/adapters/repository"
	"github.com/okian/otvplus/internal/domain/engine"
	"github.com/okian/otvplus/internal/domain/model"
	"github.com/okian/otvplus/internal/domain/standardize"
	"github.com/okian/otvplus/internal/domain/types"
	"github.com/okian/otvplus/pkg/logger"
	"github.com/shopspring/decimal"
)

// Tracking failure reasons, as reported to metrics and logs.
const (
	ReasonNoIdentity  = "no_identity"
	ReasonEmptySample = "empty_sample"
	ReasonNoScorable  = "no_scorable"
	ReasonFetchError  = "fetch_error"
)

// RateOptions parameterizes an org rating pass.
type RateOptions = types.RateRequest

// RateReport is the outcome of RateAll. Results keep roster order.
type RateReport struct {
	Results   []model.PitcherResult
	Skipped   []model.RosterEntry
	Fallbacks int
}

// DefaultRateOptions returns the configured org and skip policy with a
// window from Jan 1 of the current year through today unless WithWindow
// fixed either side.
func (s *Service) DefaultRateOptions() RateOptions {
	now := s.now().UTC()
	opts := RateOptions{
		OrgID:      s.orgID,
		Start:      time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		End:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		SkipNoData: s.skipNoData,
	}
	if !s.start.IsZero() {
		opts.Start = s.start
	}
	if !s.end.IsZero() {
		opts.End = s.end
	}
	return opts
}

// RateAll rates each roster entry in order: tracking path first, then the
// scouting fallback or, with SkipNoData, omission. One pitcher's failure never
// aborts the pass. Cancellation between pitchers returns the rows produced so
// far together with the context error.
func (s *Service) RateAll(ctx context.Context, roster []model.RosterEntry, opts RateOptions) (*RateReport, error) {
	if s.tracking == nil {
		return nil, fmt.Errorf("%w: tracking source", ErrNotConfigured)
	}
	if opts.End.Before(opts.Start) {
		return nil, fmt.Errorf("%w: end before start", ErrInvalidInput)
	}

	type deferred struct {
		idx      int
		prepared *engine.Prepared
	}
	var (
		report  = &RateReport{Results: make([]model.PitcherResult, 0, len(roster))}
		pending []deferred
		league  = s.engine.Config().Scope == engine.ScopeLeague
		runErr  error
		begin   = time.Now()
	)

	for _, entry := range roster {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		_, prepared, err := s.trackingPath(ctx, entry.First, entry.Last, opts.Start, opts.End)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				runErr = ctxErr
				break
			}
			reason := failureReason(err)
			s.metrics.RecordTrackingFailure(reason)

			if opts.SkipNoData {
				report.Skipped = append(report.Skipped, entry)
				s.metrics.RecordPitcherSkipped()
				s.logger.Info(ctx, "skipping pitcher without tracking data",
					logger.String("first", entry.First),
					logger.String("last", entry.Last),
					logger.String("reason", reason),
					logger.Error(err),
				)
				continue
			}

			score := s.engine.Fallback(s.GradesFor(entry.First, entry.Last), nil)
			report.Results = append(report.Results, resultRow(entry, score, model.SourceScouting))
			report.Fallbacks++
			s.metrics.RecordPitcherRated(string(model.SourceScouting))
			s.logger.Info(ctx, "using scouting fallback",
				logger.String("first", entry.First),
				logger.String("last", entry.Last),
				logger.String("reason", reason),
				logger.Float64("stuff_plus", Round1(score)),
			)
			continue
		}

		if league {
			pending = append(pending, deferred{idx: len(report.Results), prepared: prepared})
			report.Results = append(report.Results, resultRow(entry, 0, model.SourceStatcast))
			continue
		}
		res := s.finish(ctx, prepared, nil)
		report.Results = append(report.Results, resultRow(entry, res.StuffPlus, model.SourceStatcast))
		s.metrics.RecordPitcherRated(string(model.SourceStatcast))
	}

	if len(pending) > 0 {
		var pooled []*float64
		for _, d := range pending {
			pooled = append(pooled, d.prepared.Weighted()...)
		}
		stats := standardize.Fit(pooled)
		s.logger.Debug(ctx, "league standardization fitted",
			logger.Int("pitchers", len(pending)),
			logger.Int("pitches", stats.N),
			logger.Float64("mean", stats.Mean),
			logger.Float64("std", stats.Std),
		)
		for _, d := range pending {
			res := s.finish(ctx, d.prepared, &stats)
			report.Results[d.idx].StuffPlus = Round1(res.StuffPlus)
			s.metrics.RecordPitcherRated(string(model.SourceStatcast))
		}
	}

	finished := time.Now()
	s.metrics.RecordRateAll(finished.Sub(begin), finished)
	s.logger.Info(ctx, "rated roster",
		logger.Int("roster", len(roster)),
		logger.Int("rated", len(report.Results)),
		logger.Int("fallbacks", report.Fallbacks),
		logger.Int("skipped", len(report.Skipped)),
		logger.Duration("took", finished.Sub(begin)),
	)
	return report, runErr
}

// RateOrg runs RunOrg and returns the stored run in ranked form.
func (s *Service) RateOrg(ctx context.Context, opts RateOptions) (types.Leaderboard, error) {
	run, err := s.RunOrg(ctx, opts)
	if run.ID == "" {
		return types.Leaderboard{}, err
	}
	return ToLeaderboard(run), err
}

// RunOrg scrapes the roster, rates it and stores the run. A cancelled run
// is stored as partial and returned with the context error.
func (s *Service) RunOrg(ctx context.Context, opts RateOptions) (repository.Run, error) {
	if s.roster == nil {
		return repository.Run{}, fmt.Errorf("%w: roster source", ErrNotConfigured)
	}
	if opts.OrgID == "" {
		opts.OrgID = s.orgID
	}

	startedAt := s.now()
	roster, err := s.FetchRoster(ctx, opts.OrgID)
	if err != nil {
		return repository.Run{}, err
	}

	report, err := s.RateAll(ctx, roster, opts)
	if report == nil {
		return repository.Run{}, err
	}

	run := repository.Run{
		ID:         uuid.NewString(),
		OrgID:      opts.OrgID,
		Start:      opts.Start,
		End:        opts.End,
		StartedAt:  startedAt,
		FinishedAt: s.now(),
		Results:    report.Results,
		Skipped:    len(report.Skipped),
		Fallbacks:  report.Fallbacks,
		Partial:    err != nil,
	}
	stored, putErr := s.runs.Put(ctx, run)
	if putErr != nil {
		return repository.Run{}, putErr
	}

	s.mu.Lock()
	s.ratedRuns++
	s.lastRunID = stored.ID
	s.lastRunErr = err
	s.mu.Unlock()

	return stored, err
}

// FetchRoster returns the org's pitchers.
func (s *Service) FetchRoster(ctx context.Context, orgID string) ([]model.RosterEntry, error) {
	if s.roster == nil {
		return nil, fmt.Errorf("%w: roster source", ErrNotConfigured)
	}
	begin := time.Now()
	roster, err := s.roster.Pitchers(ctx, orgID)
	s.metrics.RecordFetch("roster", time.Since(begin), err)
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", orgID, err)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("%w: org %s", ErrNoRoster, orgID)
	}
	s.logger.Info(ctx, "fetched roster", logger.String("org", orgID), logger.Int("pitchers", len(roster)))
	return roster, nil
}

// finish standardizes a prepared sample with shared stats, or with a fit on
// the sample itself when stats is nil.
func (s *Service) finish(ctx context.Context, p *engine.Prepared, stats *standardize.Stats) *engine.Result {
	fit := standardize.Fit(p.Weighted())
	if stats != nil {
		fit = *stats
	}
	if fit.Degenerate {
		s.metrics.RecordDegenerateStandardization()
		s.logger.Debug(ctx, "degenerate standardization", logger.Int("n", fit.N))
	}
	return s.engine.Finish(p, fit)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, model.ErrNoIdentityMatch):
		return ReasonNoIdentity
	case errors.Is(err, model.ErrEmptySample):
		return ReasonEmptySample
	case errors.Is(err, model.ErrNoScorablePitches):
		return ReasonNoScorable
	default:
		return ReasonFetchError
	}
}

func resultRow(entry model.RosterEntry, score float64, source model.Source) model.PitcherResult {
	return model.PitcherResult{
		First:     entry.First,
		Last:      entry.Last,
		Level:     entry.Level,
		StuffPlus: Round1(score),
		Source:    source,
	}
}

// Round1 rounds half away from zero to one decimal.
func Round1(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloat(x).Round(1).InexactFloat64()
}
