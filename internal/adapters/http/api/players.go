package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/otvplus/internal/adapters/export"
	"github.com/okian/otvplus/internal/domain/model"
	"github.com/okian/otvplus/internal/domain/types"
)

// PlayersHandler serves single-pitcher views.
type PlayersHandler struct {
	deps     PlayerDependencies
	defaults OrgDependencies
}

// NewPlayersHandler creates a players handler. Date windows default to the
// org defaults.
func NewPlayersHandler(deps PlayerDependencies, defaults OrgDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps, defaults: defaults}
}

// HandleScore handles GET /players/score?first=&last=&start=&end=
func (h *PlayersHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.players_score"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sample, err := h.score(op, r)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, sample)
}

// HandleScoreCSV handles GET /players/score.csv with the same parameters.
func (h *PlayersHandler) HandleScoreCSV(w http.ResponseWriter, r *http.Request) {
	const op = "api.players_score_csv"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sample, err := h.score(op, r)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	name := strings.ToLower(fmt.Sprintf("%s_%s_stuffplus.csv", sample.First, sample.Last))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_ = export.WriteSample(w, sample)
}

// HandleCompare handles GET /players/compare?first=&last=&first2=&last2=
func (h *PlayersHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "api.players_compare"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	first, last, err := nameParams(op, q, "first", "last")
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	first2, last2, err := nameParams(op, q, "first2", "last2")
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	def := h.defaults.DefaultRateOptions()
	start, end, err := window(op, q, def.Start, def.End)
	if err != nil {
		writeFailure(w, op, err)
		return
	}

	cmp, err := h.deps.Compare(r.Context(),
		types.PlayerRef{First: first, Last: last},
		types.PlayerRef{First: first2, Last: last2},
		start, end)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (h *PlayersHandler) score(op string, r *http.Request) (*model.ScoredSample, error) {
	q := r.URL.Query()
	first, last, err := nameParams(op, q, "first", "last")
	if err != nil {
		return nil, err
	}
	def := h.defaults.DefaultRateOptions()
	start, end, err := window(op, q, def.Start, def.End)
	if err != nil {
		return nil, err
	}
	return h.deps.RateProspect(r.Context(), first, last, start, end)
}
