package service

import (
	"fmt"

	repository "github.com/okian/otvplus/internal/adapters/repository"
	"github.com/okian/otvplus/internal/adapters/roster"
	"github.com/okian/otvplus/internal/adapters/statcast"
	"github.com/okian/otvplus/internal/config"
	"github.com/okian/otvplus/internal/domain/engine"
	"github.com/okian/otvplus/pkg/logger"
	"github.com/okian/otvplus/pkg/metrics"
)

// FromConfig assembles a Service with live roster and tracking sources.
// Extra options are applied last and may replace any collaborator.
func FromConfig(cfg *config.Config, l logger.Logger, extra ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start, end, err := cfg.FixedWindow()
	if err != nil {
		return nil, err
	}
	if l == nil {
		l = logger.Nop()
	}
	m := metrics.Default()

	rosterSrc := roster.New(
		roster.WithBaseURL(cfg.RosterURL),
		roster.WithTimeout(cfg.FetchTimeout()),
	)
	trackingSrc := statcast.New(
		statcast.WithStatsAPIURL(cfg.StatsAPIURL),
		statcast.WithSavantURL(cfg.SavantURL),
		statcast.WithTimeout(cfg.FetchTimeout()),
	)
	store := repository.NewMemoryStore(
		repository.WithCapacity(cfg.MaxRuns),
		repository.WithMetrics(m),
	)

	opts := []Option{
		WithEngine(engine.New(engine.WithConfig(cfg.Engine()))),
		WithRosterSource(rosterSrc),
		WithTrackingSource(trackingSrc),
		WithRunStore(store),
		WithOrgID(cfg.OrgID),
		WithSkipNoData(cfg.SkipNoData),
		WithGrades(cfg.Grades()),
		WithPitcherGrades(cfg.PitcherGradeTables()),
		WithWindow(start, end),
		WithLogger(l.Named("service")),
		WithMetrics(m),
	}
	svc := New(append(opts, extra...)...)
	if svc.roster == nil || svc.tracking == nil {
		return nil, fmt.Errorf("%w: sources", ErrNotConfigured)
	}
	return svc, nil
}
