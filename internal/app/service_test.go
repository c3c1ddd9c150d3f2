package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	repository "github.com/okian/otvplus/internal/adapters/repository"
	"github.com/okian/otvplus/internal/domain/engine"
	"github.com/okian/otvplus/internal/domain/model"
	"github.com/okian/otvplus/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeRoster struct {
	entries []model.RosterEntry
	err     error
}

func (f *fakeRoster) Pitchers(context.Context, string) ([]model.RosterEntry, error) {
	return f.entries, f.err
}

type fakeTracking struct {
	ids       map[string]int
	samples   map[int][]model.PitchEvent
	errs      map[int]error
	onPitches func()
}

func (f *fakeTracking) LookupPlayer(_ context.Context, first, last string) (int, error) {
	id, ok := f.ids[first+" "+last]
	if !ok {
		return 0, fmt.Errorf("%s %s: %w", first, last, model.ErrNoIdentityMatch)
	}
	return id, nil
}

func (f *fakeTracking) Pitches(_ context.Context, id int, _, _ time.Time) ([]model.PitchEvent, error) {
	if f.onPitches != nil {
		f.onPitches()
	}
	if err := f.errs[id]; err != nil {
		return nil, err
	}
	if len(f.samples[id]) == 0 {
		return nil, fmt.Errorf("player %d: %w", id, model.ErrEmptySample)
	}
	return f.samples[id], nil
}

func fastballs(n int, ivb, hmove float64) []model.PitchEvent {
	eff := 0.97
	day := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.PitchEvent, n)
	for i := range out {
		out[i] = model.PitchEvent{
			PitchName:       "4-Seam Fastball",
			VerticalBreak:   -ivb / 12,
			HorizontalBreak: hmove / 12,
			ReleaseSpeed:    95,
			SpinEfficiency:  &eff,
			GameDate:        day.AddDate(0, 0, i%2),
		}
	}
	return out
}

func sweeper() model.PitchEvent {
	spin := 2900.0
	return model.PitchEvent{
		PitchName:       "Slider",
		VerticalBreak:   2.0 / 12,
		HorizontalBreak: 17.0 / 12,
		ReleaseSpeed:    85,
		SpinRate:        &spin,
		GameDate:        time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testMetrics() *metrics.Manager {
	return metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
}

func newTestService(tracking *fakeTracking, opts ...Option) *Service {
	m := testMetrics()
	base := []Option{
		WithTrackingSource(tracking),
		WithMetrics(m),
		WithRunStore(repository.NewMemoryStore(repository.WithMetrics(m))),
		WithClock(func() time.Time { return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC) }),
	}
	return New(append(base, opts...)...)
}

var window = RateOptions{
	Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
}

func TestRateAll(t *testing.T) {
	Convey("Given a roster and a tracking source", t, func() {
		ctx := context.Background()
		tracking := &fakeTracking{
			ids: map[string]int{
				"Jacob Misiorowski": 1,
				"Robert Gasser":     2,
				"Tobias Myers":      3,
			},
			samples: map[int][]model.PitchEvent{
				1: fastballs(3, 19, 2),
			},
			errs: map[int]error{
				3: errors.New("upstream 503"),
			},
		}
		roster := []model.RosterEntry{
			{First: "Jacob", Last: "Misiorowski", Level: "AAA"},
			{First: "Robert", Last: "Gasser", Level: "AA"},
			{First: "Tobias", Last: "Myers", Level: "A+"},
			{First: "Nobody", Last: "Known", Level: "A"},
		}

		Convey("When rating with fallback enabled", func() {
			svc := newTestService(tracking)
			report, err := svc.RateAll(ctx, roster, window)
			So(err, ShouldBeNil)

			Convey("Then every pitcher gets a row in roster order", func() {
				So(len(report.Results), ShouldEqual, 4)
				So(report.Results[0].Last, ShouldEqual, "Misiorowski")
				So(report.Results[3].Last, ShouldEqual, "Known")
				So(report.Skipped, ShouldBeEmpty)
				So(report.Fallbacks, ShouldEqual, 3)
			})

			Convey("And identical elite fastballs score 100.0 from tracking", func() {
				So(report.Results[0].StuffPlus, ShouldEqual, 100.0)
				So(report.Results[0].Source, ShouldEqual, model.SourceStatcast)
			})

			Convey("And an empty sample falls back to 105.0 from scouting", func() {
				So(report.Results[1].StuffPlus, ShouldEqual, 105.0)
				So(report.Results[1].Source, ShouldEqual, model.SourceScouting)
				So(report.Results[1].Level, ShouldEqual, "AA")
			})

			Convey("And upstream errors and unknown names also fall back", func() {
				So(report.Results[2].Source, ShouldEqual, model.SourceScouting)
				So(report.Results[3].Source, ShouldEqual, model.SourceScouting)
			})
		})

		Convey("When rating with skip_no_data", func() {
			svc := newTestService(tracking)
			opts := window
			opts.SkipNoData = true
			report, err := svc.RateAll(ctx, roster, opts)
			So(err, ShouldBeNil)

			Convey("Then pitchers without tracking data are absent", func() {
				So(len(report.Results), ShouldEqual, 1)
				So(report.Results[0].Last, ShouldEqual, "Misiorowski")
				So(len(report.Skipped), ShouldEqual, 3)
				So(report.Fallbacks, ShouldEqual, 0)
			})
		})

		Convey("When a pitcher has a grade override", func() {
			svc := newTestService(tracking, WithPitcherGrades(map[string]model.GradeTable{
				"robert gasser": {model.Fastball: 70},
			}))
			report, err := svc.RateAll(ctx, roster[1:2], window)
			So(err, ShouldBeNil)

			Convey("Then the override replaces only that family", func() {
				// (20 + 5 + 5 + 0) / 4
				So(report.Results[0].StuffPlus, ShouldEqual, 107.5)
			})
		})

		Convey("When the context is cancelled mid-run", func() {
			cctx, cancel := context.WithCancel(ctx)
			tracking.onPitches = cancel
			svc := newTestService(tracking)
			report, err := svc.RateAll(cctx, roster, window)

			Convey("Then the partial table is returned with the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(len(report.Results), ShouldEqual, 1)
				So(report.Results[0].Last, ShouldEqual, "Misiorowski")
			})
		})

		Convey("When the window is reversed", func() {
			svc := newTestService(tracking)
			_, err := svc.RateAll(ctx, roster, RateOptions{Start: window.End, End: window.Start})
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})
	})
}

func TestRateAllLeagueScope(t *testing.T) {
	Convey("Given two pitchers with different fastball shapes", t, func() {
		ctx := context.Background()
		tracking := &fakeTracking{
			ids: map[string]int{"Elite Arm": 1, "Flat Arm": 2},
			samples: map[int][]model.PitchEvent{
				1: fastballs(3, 19, 2),
				2: fastballs(3, 14, 8),
			},
		}
		roster := []model.RosterEntry{
			{First: "Elite", Last: "Arm", Level: "AA"},
			{First: "Flat", Last: "Arm", Level: "AA"},
		}

		Convey("Pitcher scope collapses both constant samples to 100", func() {
			svc := newTestService(tracking)
			report, err := svc.RateAll(ctx, roster, window)
			So(err, ShouldBeNil)
			So(report.Results[0].StuffPlus, ShouldEqual, 100.0)
			So(report.Results[1].StuffPlus, ShouldEqual, 100.0)
		})

		Convey("League scope separates them around a shared center", func() {
			cfg := engine.DefaultConfig()
			cfg.Scope = engine.ScopeLeague
			svc := newTestService(tracking, WithEngine(engine.New(engine.WithConfig(cfg))))
			report, err := svc.RateAll(ctx, roster, window)
			So(err, ShouldBeNil)

			elite, flat := report.Results[0].StuffPlus, report.Results[1].StuffPlus
			So(elite, ShouldBeGreaterThan, 100)
			So(flat, ShouldBeLessThan, 100)
			So(elite+flat, ShouldAlmostEqual, 200, 0.11)
			So(report.Results[0].Source, ShouldEqual, model.SourceStatcast)
		})
	})
}

func TestRateOrgAndQueries(t *testing.T) {
	Convey("Given a service with a roster source", t, func() {
		ctx := context.Background()
		tracking := &fakeTracking{
			ids:     map[string]int{"Jacob Misiorowski": 1},
			samples: map[int][]model.PitchEvent{1: fastballs(3, 19, 2)},
		}
		roster := &fakeRoster{entries: []model.RosterEntry{
			{First: "Jacob", Last: "Misiorowski", Level: "AAA"},
			{First: "Robert", Last: "Gasser", Level: "AAA"},
			{First: "Carlos", Last: "Rodriguez", Level: "AA"},
		}}
		svc := newTestService(tracking, WithRosterSource(roster), WithOrgID("4"))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When rating the org", func() {
			opts := svc.DefaultRateOptions()
			So(opts.Start.Format("2006-01-02"), ShouldEqual, "2024-01-01")
			So(opts.End.Format("2006-01-02"), ShouldEqual, "2024-06-15")

			run, err := svc.RunOrg(ctx, opts)
			So(err, ShouldBeNil)

			Convey("Then the run is stored with an id and ranked rows", func() {
				So(run.ID, ShouldNotBeEmpty)
				So(run.OrgID, ShouldEqual, "4")
				So(run.Fallbacks, ShouldEqual, 2)

				board, err := svc.Leaderboard(ctx, "")
				So(err, ShouldBeNil)
				So(board.Run.ID, ShouldEqual, run.ID)
				So(len(board.Entries), ShouldEqual, 3)
				So(board.Entries[0].StuffPlus, ShouldEqual, 105.0)
				So(board.Entries[0].Rank, ShouldEqual, 1)
				So(board.Entries[1].Rank, ShouldEqual, 1)
				So(board.Entries[2].Last, ShouldEqual, "Misiorowski")
				So(board.Entries[2].Rank, ShouldEqual, 2)
			})

			Convey("And level summaries group the table", func() {
				levels, err := svc.Levels(ctx, run.ID)
				So(err, ShouldBeNil)
				So(len(levels), ShouldEqual, 2)
				So(levels[0].Level, ShouldEqual, "AA")
				So(levels[0].Count, ShouldEqual, 1)
				So(levels[1].Level, ShouldEqual, "AAA")
				So(levels[1].Mean, ShouldEqual, 102.5)
				So(levels[1].Median, ShouldEqual, 102.5)
				So(levels[1].Min, ShouldEqual, 100.0)
				So(levels[1].Max, ShouldEqual, 105.0)
			})

			Convey("And stats reflect the run", func() {
				stats := svc.GetStats(ctx)
				So(stats["started"], ShouldEqual, true)
				So(stats["runsStored"], ShouldEqual, 1)
				So(stats["lastRunID"], ShouldEqual, run.ID)
				So(len(svc.Runs(ctx)), ShouldEqual, 1)
			})
		})

		Convey("When the run id is unknown", func() {
			_, err := svc.Leaderboard(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When the roster is empty", func() {
			roster.entries = nil
			_, err := svc.RunOrg(ctx, svc.DefaultRateOptions())
			So(errors.Is(err, ErrNoRoster), ShouldBeTrue)
		})
	})

	Convey("Given a service without a roster source", t, func() {
		svc := newTestService(&fakeTracking{})
		_, err := svc.RunOrg(context.Background(), window)
		So(errors.Is(err, ErrNotConfigured), ShouldBeTrue)
	})
}

func TestRateProspectAndCompare(t *testing.T) {
	Convey("Given two tracked pitchers", t, func() {
		ctx := context.Background()
		mixed := append(fastballs(2, 19, 2), sweeper())
		tracking := &fakeTracking{
			ids: map[string]int{"Jacob Misiorowski": 1, "Robert Gasser": 2},
			samples: map[int][]model.PitchEvent{
				1: mixed,
				2: fastballs(4, 19, 2),
			},
		}
		svc := newTestService(tracking)

		Convey("RateProspect returns the scored sample", func() {
			sample, err := svc.RateProspect(ctx, " Jacob ", "Misiorowski", window.Start, window.End)
			So(err, ShouldBeNil)
			So(sample.PlayerID, ShouldEqual, 1)
			So(sample.First, ShouldEqual, "Jacob")
			So(len(sample.Pitches), ShouldEqual, 3)
			So(sample.StuffPlus, ShouldEqual, 100.0)
			So(len(sample.Families), ShouldEqual, 2)
			So(sample.Usage[model.Fastball], ShouldAlmostEqual, 2.0/3.0)
			So(len(sample.Trend), ShouldEqual, 2)
		})

		Convey("RateProspect surfaces identity failures", func() {
			_, err := svc.RateProspect(ctx, "Nobody", "Known", window.Start, window.End)
			So(errors.Is(err, model.ErrNoIdentityMatch), ShouldBeTrue)
		})

		Convey("RateProspect rejects blank names", func() {
			_, err := svc.RateProspect(ctx, "", "Known", window.Start, window.End)
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("Compare lines up families and leaves gaps nil", func() {
			cmp, err := svc.Compare(ctx,
				PlayerRef{First: "Jacob", Last: "Misiorowski"},
				PlayerRef{First: "Robert", Last: "Gasser"},
				window.Start, window.End)
			So(err, ShouldBeNil)
			So(cmp.First.Pitches, ShouldEqual, 3)
			So(cmp.Second.Pitches, ShouldEqual, 4)
			So(len(cmp.Families), ShouldEqual, 2)
			So(cmp.Families[0].Family, ShouldEqual, "Fastball")
			So(*cmp.Families[0].Second, ShouldEqual, 100.0)
			So(cmp.Families[1].Family, ShouldEqual, "Slider")
			So(cmp.Families[1].First, ShouldNotBeNil)
			So(cmp.Families[1].Second, ShouldBeNil)
		})
	})
}

func TestRound1(t *testing.T) {
	Convey("Round1 rounds half away from zero", t, func() {
		So(Round1(104.25), ShouldEqual, 104.3)
		So(Round1(99.94), ShouldEqual, 99.9)
		So(Round1(-0.05), ShouldEqual, -0.1)
		So(Round1(100), ShouldEqual, 100.0)
	})
}

func TestDefaultWindowAndRateOrg(t *testing.T) {
	Convey("Given a service with a fixed window", t, func() {
		ctx := context.Background()
		start := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
		tracking := &fakeTracking{
			ids:     map[string]int{"Jacob Misiorowski": 1},
			samples: map[int][]model.PitchEvent{1: fastballs(3, 19, 2)},
		}
		roster := &fakeRoster{entries: []model.RosterEntry{{First: "Jacob", Last: "Misiorowski", Level: "AAA"}}}
		svc := newTestService(tracking, WithRosterSource(roster), WithOrgID("4"), WithWindow(start, time.Time{}))

		Convey("The fixed side overrides the default and the other keeps today", func() {
			opts := svc.DefaultRateOptions()
			So(opts.Start, ShouldEqual, start)
			So(opts.End.Format("2006-01-02"), ShouldEqual, "2024-06-15")
		})

		Convey("RateOrg returns the stored run as a leaderboard", func() {
			board, err := svc.RateOrg(ctx, svc.DefaultRateOptions())
			So(err, ShouldBeNil)
			So(board.Run.ID, ShouldNotBeEmpty)
			So(board.Run.Start, ShouldEqual, "2024-04-01")
			So(len(board.Entries), ShouldEqual, 1)
			So(board.Entries[0].Rank, ShouldEqual, 1)
			So(board.Entries[0].Source, ShouldEqual, "Statcast")

			stats := svc.GetStats(ctx)
			So(stats["runsStored"], ShouldEqual, 1)
		})
	})
}
