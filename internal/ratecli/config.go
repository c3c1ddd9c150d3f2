// Package ratecli implements the one-shot org rating command.
package ratecli

import "time"

// Config holds the command line settings. Empty fields keep the values
// from the service configuration.
type Config struct {
	ConfigPath string // YAML file layered under env vars
	OrgID      string // org to rate
	Start      string // window start, YYYY-MM-DD
	End        string // window end, YYYY-MM-DD
	SkipNoData bool   // drop pitchers without tracking data
	OutputFile string // CSV destination, stdout when empty
	LogFile    string // copy of the log stream
	Verbose    bool   // debug logging
}

// Stats summarizes one command run.
type Stats struct {
	OrgID     string
	Rated     int
	Statcast  int
	Fallbacks int
	Skipped   int
	Partial   bool
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
