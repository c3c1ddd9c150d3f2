package ratecli

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	service "github.com/okian/otvplus/internal/app"
	"github.com/okian/otvplus/internal/config"
	"github.com/okian/otvplus/internal/domain/model"
	"github.com/okian/otvplus/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type stubRoster struct {
	entries []model.RosterEntry
	orgs    []string
}

func (s *stubRoster) Pitchers(_ context.Context, orgID string) ([]model.RosterEntry, error) {
	s.orgs = append(s.orgs, orgID)
	return s.entries, nil
}

type stubTracking struct {
	start, end time.Time
}

func (s *stubTracking) LookupPlayer(_ context.Context, first, last string) (int, error) {
	return 0, fmt.Errorf("%s %s: %w", first, last, model.ErrNoIdentityMatch)
}

func (s *stubTracking) Pitches(_ context.Context, _ int, start, end time.Time) ([]model.PitchEvent, error) {
	s.start, s.end = start, end
	return nil, model.ErrEmptySample
}

func readCSV(r io.Reader) [][]string {
	rows, err := csv.NewReader(r).ReadAll()
	So(err, ShouldBeNil)
	return rows
}

func TestRun(t *testing.T) {
	Convey("Given a roster without tracking data", t, func() {
		So(logger.InitWriter(io.Discard, logger.FormatText), ShouldBeNil)
		ctx := context.Background()
		roster := &stubRoster{entries: []model.RosterEntry{
			{First: "Robert", Last: "Gasser", Level: "AAA"},
			{First: "Carlos", Last: "Rodriguez", Level: "AA"},
		}}
		tracking := &stubTracking{}
		opts := []service.Option{service.WithRosterSource(roster), service.WithTrackingSource(tracking)}

		Convey("Every pitcher should fall back to scouting grades", func() {
			var out bytes.Buffer
			err := Run(ctx, &Config{OrgID: "11"}, &out, opts...)
			So(err, ShouldBeNil)
			So(roster.orgs, ShouldResemble, []string{"11"})

			rows := readCSV(&out)
			So(len(rows), ShouldEqual, 3)
			So(rows[0], ShouldResemble, []string{"First", "Last", "Level", "StuffPlus", "Source"})
			So(rows[1][4], ShouldEqual, "Scouting")
			So(rows[2][4], ShouldEqual, "Scouting")
		})

		Convey("Skipping pitchers without data should leave only the header", func() {
			var out bytes.Buffer
			err := Run(ctx, &Config{SkipNoData: true}, &out, opts...)
			So(err, ShouldBeNil)
			So(len(readCSV(&out)), ShouldEqual, 1)
		})

		Convey("Results should go to the output file when one is given", func() {
			path := filepath.Join(t.TempDir(), "org.csv")
			var out bytes.Buffer
			err := Run(ctx, &Config{OutputFile: path}, &out, opts...)
			So(err, ShouldBeNil)
			So(out.Len(), ShouldEqual, 0)

			f, err := os.Open(path)
			So(err, ShouldBeNil)
			defer f.Close()
			So(len(readCSV(f)), ShouldEqual, 3)
		})

		Convey("The command line window should override the default", func() {
			c, err := loadConfig(&Config{Start: "2024-04-01", End: "2024-04-30"})
			So(err, ShouldBeNil)
			So(c.StartDate, ShouldEqual, "2024-04-01")
			So(c.EndDate, ShouldEqual, "2024-04-30")
		})

		Convey("A reversed window should be rejected before any fetch", func() {
			var out bytes.Buffer
			err := Run(ctx, &Config{Start: "2024-05-01", End: "2024-04-01"}, &out, opts...)
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			So(roster.orgs, ShouldBeEmpty)
		})

		Convey("A cancelled run should fail", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			var out bytes.Buffer
			err := Run(cctx, &Config{}, &out, opts...)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestShowHelp(t *testing.T) {
	Convey("Given the help text", t, func() {
		var out strings.Builder
		ShowHelp(&out)
		So(out.String(), ShouldContainSubstring, "-skip-no-data")
		So(out.String(), ShouldContainSubstring, "-output")
	})
}

func TestSetupLogging(t *testing.T) {
	Convey("Given a log file", t, func() {
		path := filepath.Join(t.TempDir(), "rate.log")
		closer, err := SetupLogging(path, true)
		So(err, ShouldBeNil)

		logger.Get().Debug(context.Background(), "visible at debug")
		So(closer.Close(), ShouldBeNil)

		data, err := os.ReadFile(path)
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, "visible at debug")
		_ = logger.SetLevelString("info")
	})
}
