// Package movement converts raw tracking break factors into the movement
// metrics the pitch scorers read.
package movement

import "github.com/okian/otvplus/internal/domain/model"

// Conversion constants.
const (
	inchesPerFoot   = 12
	speedSeparation = 1.5
)

// Compute derives IVB, horizontal movement and vertical separation for one pitch.
func Compute(e model.PitchEvent) model.Derived {
	return model.Derived{
		IVB:   -e.VerticalBreak * inchesPerFoot,
		HMove: e.HorizontalBreak * inchesPerFoot,
		VSep:  e.ReleaseSpeed*speedSeparation - e.VerticalBreak*inchesPerFoot,
	}
}

// Derive attaches derived metrics to every event. The input slice is not modified.
func Derive(events []model.PitchEvent) []model.ScoredPitch {
	out := make([]model.ScoredPitch, len(events))
	for i, e := range events {
		out[i] = model.ScoredPitch{PitchEvent: e, Derived: Compute(e)}
	}
	return out
}
