// Package repository keeps org rating runs in process memory.
package repository

import (
	"context"
	"time"

	"github.com/okian/otvplus/internal/domain/model"
)

// Run is one completed org rating pass.
type Run struct {
	ID         string
	OrgID      string
	Start      time.Time
	End        time.Time
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []model.PitcherResult
	// Ranked is Results ordered by score, filled in by the store on Put.
	Ranked    []Entry
	Skipped   int
	Fallbacks int
	// Partial marks a run cut short by cancellation.
	Partial bool
}

// Entry represents a ranked leaderboard row.
type Entry struct {
	Rank      int
	First     string
	Last      string
	Level     string
	StuffPlus float64
	Source    model.Source
}

// Store provides read/write access to completed runs.
type Store interface {
	// Put records a run; the oldest run is evicted once capacity is reached.
	Put(ctx context.Context, run Run) (Run, error)

	// Get returns the run with the given id.
	// Returns ErrNotFound if the run is unknown or evicted.
	Get(ctx context.Context, id string) (Run, error)

	// Latest returns the most recently stored run.
	// Returns ErrNotFound if nothing has been stored.
	Latest(ctx context.Context) (Run, error)

	// List returns stored runs, newest first, without their rows.
	List(ctx context.Context) []Run

	// Count returns the number of runs retained.
	Count(ctx context.Context) int
}
