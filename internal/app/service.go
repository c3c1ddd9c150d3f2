// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the rating CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	repository "github.com/okian/otvplus/internal/adapters/repository"
	"github.com/okian/otvplus/internal/domain/engine"
	"github.com/okian/otvplus/internal/domain/model"
	"github.com/okian/otvplus/internal/domain/types"
	"github.com/okian/otvplus/pkg/logger"
	"github.com/okian/otvplus/pkg/metrics"
)

// RosterSource lists an organization's pitchers.
type RosterSource interface {
	Pitchers(ctx context.Context, orgID string) ([]model.RosterEntry, error)
}

// TrackingSource resolves players and fetches their pitch-level samples.
type TrackingSource interface {
	// LookupPlayer returns the tracking id for a name, or an error wrapping
	// model.ErrNoIdentityMatch.
	LookupPlayer(ctx context.Context, first, last string) (int, error)
	// Pitches returns the sample in [start, end], or an error wrapping
	// model.ErrEmptySample when there is none.
	Pitches(ctx context.Context, playerID int, start, end time.Time) ([]model.PitchEvent, error)
}

// Service implements the rating operations.
type Service struct {
	mu sync.RWMutex

	// Collaborators
	engine   *engine.Engine
	roster   RosterSource
	tracking TrackingSource
	runs     repository.Store

	// Configuration
	orgID         string
	skipNoData    bool
	grades        model.GradeTable
	pitcherGrades map[string]model.GradeTable
	now           func() time.Time
	start, end    time.Time

	// State
	started    bool
	ratedRuns  int
	lastRunID  string
	lastRunErr error

	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithEngine sets the scoring engine.
func WithEngine(e *engine.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithRosterSource sets the roster collaborator.
func WithRosterSource(r RosterSource) Option {
	return func(s *Service) { s.roster = r }
}

// WithTrackingSource sets the tracking-data collaborator.
func WithTrackingSource(t TrackingSource) Option {
	return func(s *Service) { s.tracking = t }
}

// WithRunStore sets where completed org runs are kept.
func WithRunStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.runs = store
		}
	}
}

// WithOrgID sets the default organization.
func WithOrgID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.orgID = id
		}
	}
}

// WithSkipNoData sets the default skip-vs-fallback policy.
func WithSkipNoData(skip bool) Option {
	return func(s *Service) { s.skipNoData = skip }
}

// WithGrades sets the org-wide scouting grade table.
func WithGrades(g model.GradeTable) Option {
	return func(s *Service) {
		if g != nil {
			s.grades = g
		}
	}
}

// WithPitcherGrades sets per-pitcher grade overrides keyed by lower-cased
// "first last".
func WithPitcherGrades(g map[string]model.GradeTable) Option {
	return func(s *Service) {
		if g != nil {
			s.pitcherGrades = g
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithWindow fixes the default rating window. Zero values keep the
// Jan 1 through today default for that side.
func WithWindow(start, end time.Time) Option {
	return func(s *Service) {
		s.start, s.end = start, end
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service. Roster and tracking sources have no default;
// operations that need a missing one fail with ErrNotConfigured.
func New(opts ...Option) *Service {
	s := &Service{
		engine:        engine.New(),
		runs:          repository.NewMemoryStore(),
		orgID:         "4",
		pitcherGrades: map[string]model.GradeTable{},
		now:           time.Now,
		logger:        logger.Nop(),
		metrics:       metrics.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.grades == nil {
		s.grades = s.engine.Config().DefaultGrades
	}
	return s
}

// Start marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	cfg := s.engine.Config()
	s.started = true
	s.logger.Info(ctx, "stuff+ service started",
		logger.String("org", s.orgID),
		logger.String("scope", string(cfg.Scope)),
		logger.String("aggregate", string(cfg.Aggregate)),
		logger.Bool("usage_weighting", cfg.UseUsageWeighting),
		logger.Bool("skip_no_data", s.skipNoData),
	)
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "stuff+ service stopped")
}

// GradesFor returns the org table overlaid with the pitcher's overrides.
func (s *Service) GradesFor(first, last string) model.GradeTable {
	out := make(model.GradeTable, len(s.grades))
	for fam, g := range s.grades {
		out[fam] = g
	}
	for fam, g := range s.pitcherGrades[pitcherKey(first, last)] {
		out[fam] = g
	}
	return out
}

func pitcherKey(first, last string) string {
	return strings.ToLower(strings.Join(strings.Fields(first+" "+last), " "))
}

// RateProspect scores one pitcher's tracking sample on its own scale.
func (s *Service) RateProspect(ctx context.Context, first, last string, start, end time.Time) (*model.ScoredSample, error) {
	if s.tracking == nil {
		return nil, fmt.Errorf("%w: tracking source", ErrNotConfigured)
	}
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	if first == "" || last == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end before start", ErrInvalidInput)
	}

	id, prepared, err := s.trackingPath(ctx, first, last, start, end)
	if err != nil {
		return nil, err
	}
	res := s.finish(ctx, prepared, nil)
	return &model.ScoredSample{
		First:     first,
		Last:      last,
		PlayerID:  id,
		Pitches:   res.Pitches,
		Usage:     res.Usage,
		StuffPlus: Round1(res.StuffPlus),
		Families:  engine.FamilySummaries(res.Pitches),
		Trend:     engine.DailyTrend(res.Pitches),
	}, nil
}

// PlayerRef names a pitcher.
type PlayerRef = types.PlayerRef

// Compare scores two pitchers and lines up their per-family means.
func (s *Service) Compare(ctx context.Context, a, b PlayerRef, start, end time.Time) (types.Comparison, error) {
	left, err := s.RateProspect(ctx, a.First, a.Last, start, end)
	if err != nil {
		return types.Comparison{}, fmt.Errorf("%s %s: %w", a.First, a.Last, err)
	}
	right, err := s.RateProspect(ctx, b.First, b.Last, start, end)
	if err != nil {
		return types.Comparison{}, fmt.Errorf("%s %s: %w", b.First, b.Last, err)
	}
	return buildComparison(left, right), nil
}

// trackingPath resolves, fetches and prepares one pitcher.
func (s *Service) trackingPath(ctx context.Context, first, last string, start, end time.Time) (int, *engine.Prepared, error) {
	begin := time.Now()
	id, err := s.tracking.LookupPlayer(ctx, first, last)
	s.metrics.RecordFetch("identity", time.Since(begin), ignoreDomain(err))
	if err != nil {
		return 0, nil, err
	}

	begin = time.Now()
	events, err := s.tracking.Pitches(ctx, id, start, end)
	s.metrics.RecordFetch("tracking", time.Since(begin), ignoreDomain(err))
	if err != nil {
		return id, nil, err
	}

	prepared, err := s.engine.Prepare(events, s.GradesFor(first, last))
	if err != nil {
		return id, nil, err
	}
	for _, p := range prepared.Pitches {
		s.metrics.RecordPitch(string(p.Family), p.RawScore != nil)
	}
	s.logger.Debug(ctx, "tracking sample prepared",
		logger.String("first", first),
		logger.String("last", last),
		logger.Int("player_id", id),
		logger.Int("pitches", len(events)),
	)
	return id, prepared, nil
}

// ignoreDomain hides expected lookup outcomes from the fetch error counter.
func ignoreDomain(err error) error {
	if errors.Is(err, model.ErrNoIdentityMatch) || errors.Is(err, model.ErrEmptySample) {
		return nil
	}
	return err
}
