package ratecli

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/otvplus/pkg/logger"
)

// File permission constants.
const (
	logFilePermission    = 0600
	outputFilePermission = 0644
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogging sends logs to stderr and, when logFile is set, to that file
// as well. Results stay on stdout. The returned closer releases the file.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, file)
		closer = file
	}
	if err := logger.InitWriter(w, logger.FormatText); err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return closer, nil
}

// ShowHelp prints usage information for the rating tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Stuff+ org rating tool
======================

Scrapes an organization's roster, rates every pitcher and writes the
results as CSV, highest Stuff+ first.

Usage:
  go run cmd/rate-org/main.go [options]

Options:
  -config string
        YAML config file (default: $OTV_CONFIG)
  -org string
        Organization id on the roster site (default from config, "4")
  -start string
        Window start YYYY-MM-DD (default: Jan 1 of the current year)
  -end string
        Window end YYYY-MM-DD (default: today)
  -skip-no-data
        Drop pitchers without tracking data instead of using scouting grades
  -output string
        CSV output file (default: stdout)
  -log string
        Also write logs to this file
  -verbose
        Enable debug logging
  -help
        Show this help message

Examples:
  # Rate the default org for the current season
  go run cmd/rate-org/main.go

  # Rate org 11 for April, tracking data only
  go run cmd/rate-org/main.go -org 11 -start 2024-04-01 -end 2024-04-30 -skip-no-data

  # Save results and logs
  go run cmd/rate-org/main.go -output org4.csv -log rate.log
`)
}
