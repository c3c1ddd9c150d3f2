// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	repository "github.com/okian/otvplus/internal/adapters/repository"
	"github.com/okian/otvplus/internal/domain/model"
	"github.com/okian/otvplus/internal/domain/types"
	"github.com/okian/otvplus/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	PlayerDependencies
	OrgDependencies
	StatsProvider
}

// PlayerDependencies scores individual pitchers.
type PlayerDependencies interface {
	RateProspect(ctx context.Context, first, last string, start, end time.Time) (*model.ScoredSample, error)
	Compare(ctx context.Context, a, b types.PlayerRef, start, end time.Time) (types.Comparison, error)
}

// OrgDependencies runs and reads org rating passes.
type OrgDependencies interface {
	DefaultRateOptions() types.RateRequest
	RateOrg(ctx context.Context, req types.RateRequest) (types.Leaderboard, error)
	Leaderboard(ctx context.Context, runID string) (types.Leaderboard, error)
	Levels(ctx context.Context, runID string) ([]types.LevelSummary, error)
	Runs(ctx context.Context) []types.RunInfo
}

// StatsProvider reports service statistics.
type StatsProvider interface {
	GetStats(ctx context.Context) map[string]any
}

// Server wires HTTP routes for the business API.
type Server struct {
	health  *HealthHandler
	players *PlayersHandler
	org     *OrgHandler
	pages   *pages
	logger  logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger used for failed requests.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	s := &Server{
		health:  NewHealthHandler(deps),
		players: NewPlayersHandler(deps, deps),
		org:     NewOrgHandler(deps),
		pages:   newPages(),
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.instrument("healthz", s.health.HandleHealth))
	mux.HandleFunc("/stats", s.instrument("stats", s.health.HandleStats))
	mux.HandleFunc("/metrics", s.health.HandleMetrics)
	mux.HandleFunc("/dashboard", s.pages.HandleDashboard)

	mux.HandleFunc("/players/score", s.instrument("players_score", s.players.HandleScore))
	mux.HandleFunc("/players/score.csv", s.instrument("players_score_csv", s.players.HandleScoreCSV))
	mux.HandleFunc("/players/compare", s.instrument("players_compare", s.players.HandleCompare))

	mux.HandleFunc("/org/rate", s.instrument("org_rate", s.org.HandleRate))
	mux.HandleFunc("/org/runs", s.instrument("org_runs", s.org.HandleRuns))
	mux.HandleFunc("/org/leaderboard", s.instrument("org_leaderboard", s.org.HandleLeaderboard))
	mux.HandleFunc("/org/leaderboard.csv", s.instrument("org_leaderboard_csv", s.org.HandleLeaderboardCSV))
	mux.HandleFunc("/org/levels", s.instrument("org_levels", s.org.HandleLevels))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps domain failures onto status codes.
func writeFailure(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, model.ErrNoIdentityMatch):
		writeError(w, http.StatusNotFound, "no_identity_match", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "run_not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, model.ErrEmptySample):
		writeError(w, http.StatusUnprocessableEntity, "empty_sample", Wrap(op, err))
	case errors.Is(err, model.ErrNoScorablePitches):
		writeError(w, http.StatusUnprocessableEntity, "no_scorable_pitches", Wrap(op, err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "cancelled", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
	}
}
