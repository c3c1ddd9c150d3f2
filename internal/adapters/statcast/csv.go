package statcast

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/okian/otvplus/internal/domain/model"
)

// Savant column names.
const (
	colPitchName      = "pitch_name"
	colPfxX           = "pfx_x"
	colPfxZ           = "pfx_z"
	colReleaseSpeed   = "release_speed"
	colSpinRate       = "release_spin_rate"
	colSpinEfficiency = "spin_efficiency"
	colGameDate       = "game_date"
)

var requiredColumns = []string{colPitchName, colPfxX, colPfxZ, colReleaseSpeed}

// ParseCSV reads a Savant search export. Columns are located by header.
// Rows missing a pitch name, break or speed are dropped; spin columns are
// optional per row and per file.
func ParseCSV(r io.Reader) ([]model.PitchEvent, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	hdr, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrBadResponse, err)
	}
	idx := map[string]int{}
	for i, h := range hdr {
		h = strings.TrimPrefix(h, "\ufeff")
		idx[strings.ToLower(strings.Trim(strings.TrimSpace(h), `"`))] = i
	}
	for _, k := range requiredColumns {
		if _, ok := idx[k]; !ok {
			return nil, fmt.Errorf("%w: missing column %s", ErrBadResponse, k)
		}
	}

	field := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []model.PitchEvent
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadResponse, err)
		}

		name := field(rec, colPitchName)
		pfxX, okX := number(field(rec, colPfxX))
		pfxZ, okZ := number(field(rec, colPfxZ))
		speed, okS := number(field(rec, colReleaseSpeed))
		if name == "" || !okX || !okZ || !okS {
			continue
		}

		ev := model.PitchEvent{
			PitchName:       name,
			HorizontalBreak: pfxX,
			VerticalBreak:   pfxZ,
			ReleaseSpeed:    speed,
		}
		if v, ok := number(field(rec, colSpinRate)); ok {
			ev.SpinRate = model.Float(v)
		}
		if v, ok := number(field(rec, colSpinEfficiency)); ok {
			ev.SpinEfficiency = model.Float(v)
		}
		if d, err := time.Parse(dateLayout, field(rec, colGameDate)); err == nil {
			ev.GameDate = d
		}
		out = append(out, ev)
	}
	return out, nil
}

// number parses a finite float; blanks, "null" and NaN are missing.
func number(s string) (float64, bool) {
	if s == "" || strings.EqualFold(s, "null") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
