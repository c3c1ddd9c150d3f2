package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/otvplus/internal/ratecli"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (default: $OTV_CONFIG)")
		orgID      = flag.String("org", "", "Organization id on the roster site")
		start      = flag.String("start", "", "Window start YYYY-MM-DD")
		end        = flag.String("end", "", "Window end YYYY-MM-DD")
		skipNoData = flag.Bool("skip-no-data", false, "Drop pitchers without tracking data")
		outputFile = flag.String("output", "", "CSV output file (default: stdout)")
		logFile    = flag.String("log", "", "Also write logs to this file")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		ratecli.ShowHelp(os.Stdout)
		return
	}

	closer, err := ratecli.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	// Ctrl-C stops between pitchers; rows rated so far are still written.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &ratecli.Config{
		ConfigPath: *configPath,
		OrgID:      *orgID,
		Start:      *start,
		End:        *end,
		SkipNoData: *skipNoData,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}
	if err := ratecli.Run(ctx, cfg, os.Stdout); err != nil {
		os.Stderr.WriteString("Rating failed: " + err.Error() + "\n")
		stop()
		_ = closer.Close()
		os.Exit(1)
	}
}
