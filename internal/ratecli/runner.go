package ratecli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/otvplus/internal/adapters/export"
	repository "github.com/okian/otvplus/internal/adapters/repository"
	service "github.com/okian/otvplus/internal/app"
	"github.com/okian/otvplus/internal/config"
	"github.com/okian/otvplus/internal/domain/model"
	"github.com/okian/otvplus/pkg/logger"
)

// Run rates one org and writes the ranked table to stdout or cfg.OutputFile.
// A cancelled run still writes the rows rated so far and returns the
// context error. Extra options are passed to the service.
func Run(ctx context.Context, cfg *Config, stdout io.Writer, extra ...service.Option) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("rate-org")

	svcCfg, err := loadConfig(cfg)
	if err != nil {
		return err
	}
	svc, err := service.FromConfig(svcCfg, log, extra...)
	if err != nil {
		return fmt.Errorf("build service: %w", err)
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	opts := svc.DefaultRateOptions()
	stats.OrgID = opts.OrgID
	log.Info(ctx, "rating org",
		logger.String("org", opts.OrgID),
		logger.Time("start", opts.Start),
		logger.Time("end", opts.End),
		logger.Bool("skip_no_data", opts.SkipNoData),
		logger.String("output", outputName(cfg.OutputFile)),
	)

	run, runErr := svc.RunOrg(ctx, opts)
	if run.ID == "" {
		return fmt.Errorf("rate org %s: %w", opts.OrgID, runErr)
	}

	if err := writeOutput(cfg.OutputFile, stdout, ranked(run)); err != nil {
		return err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	stats.Rated = len(run.Results)
	stats.Fallbacks = run.Fallbacks
	stats.Statcast = stats.Rated - run.Fallbacks
	stats.Skipped = run.Skipped
	stats.Partial = run.Partial
	displayFinalStats(ctx, log, stats)

	if runErr != nil {
		return fmt.Errorf("rate org %s: %w", opts.OrgID, runErr)
	}
	return nil
}

func loadConfig(cfg *Config) (*config.Config, error) {
	path := cfg.ConfigPath
	if path == "" {
		path = os.Getenv("OTV_CONFIG")
	}
	c, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if cfg.OrgID != "" {
		c.OrgID = cfg.OrgID
	}
	if cfg.Start != "" {
		c.StartDate = cfg.Start
	}
	if cfg.End != "" {
		c.EndDate = cfg.End
	}
	if cfg.SkipNoData {
		c.SkipNoData = true
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ranked returns the run's results in leaderboard order.
func ranked(run repository.Run) []model.PitcherResult {
	out := make([]model.PitcherResult, len(run.Ranked))
	for i, e := range run.Ranked {
		out[i] = model.PitcherResult{
			First:     e.First,
			Last:      e.Last,
			Level:     e.Level,
			StuffPlus: e.StuffPlus,
			Source:    e.Source,
		}
	}
	return out
}

func writeOutput(path string, stdout io.Writer, results []model.PitcherResult) (err error) {
	if path == "" {
		return export.WriteResults(stdout, results)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()
	return export.WriteResults(file, results)
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}

func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	log.Info(ctx, "final statistics",
		logger.String("org", stats.OrgID),
		logger.Int("rated", stats.Rated),
		logger.Int("statcast", stats.Statcast),
		logger.Int("fallbacks", stats.Fallbacks),
		logger.Int("skipped", stats.Skipped),
		logger.Bool("partial", stats.Partial),
		logger.String("duration", stats.Duration.String()))
}
