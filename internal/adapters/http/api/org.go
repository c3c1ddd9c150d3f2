package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/otvplus/internal/adapters/export"
)

// OrgHandler serves org rating runs.
type OrgHandler struct {
	deps OrgDependencies
}

// NewOrgHandler creates an org handler.
func NewOrgHandler(deps OrgDependencies) *OrgHandler {
	return &OrgHandler{deps: deps}
}

// HandleRate handles POST /org/rate?org=&start=&end=&skip_no_data=
// The run is stored even when cancelled part way; the response then carries
// the partial table.
func (h *OrgHandler) HandleRate(w http.ResponseWriter, r *http.Request) {
	const op = "api.org_rate"
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	q := r.URL.Query()
	req := h.deps.DefaultRateOptions()
	if org := strings.TrimSpace(q.Get("org")); org != "" {
		req.OrgID = org
	}
	var err error
	if req.Start, req.End, err = window(op, q, req.Start, req.End); err != nil {
		writeFailure(w, op, err)
		return
	}
	if req.SkipNoData, err = boolParam(op, q, "skip_no_data", req.SkipNoData); err != nil {
		writeFailure(w, op, err)
		return
	}

	board, err := h.deps.RateOrg(r.Context(), req)
	if err != nil && board.Run.ID == "" {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// HandleRuns handles GET /org/runs
func (h *OrgHandler) HandleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Runs(r.Context()))
}

// HandleLeaderboard handles GET /org/leaderboard?run=
func (h *OrgHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.org_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	board, err := h.deps.Leaderboard(r.Context(), r.URL.Query().Get("run"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// HandleLeaderboardCSV handles GET /org/leaderboard.csv?run=
func (h *OrgHandler) HandleLeaderboardCSV(w http.ResponseWriter, r *http.Request) {
	const op = "api.org_leaderboard_csv"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	board, err := h.deps.Leaderboard(r.Context(), r.URL.Query().Get("run"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "org_"+board.Run.OrgID+"_stuffplus.csv"))
	_ = export.WriteLeaderboard(w, board.Entries)
}

// HandleLevels handles GET /org/levels?run=
func (h *OrgHandler) HandleLevels(w http.ResponseWriter, r *http.Request) {
	const op = "api.org_levels"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	levels, err := h.deps.Levels(r.Context(), r.URL.Query().Get("run"))
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, levels)
}
