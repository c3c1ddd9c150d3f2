package model

// GradeTable maps a pitch family to a 20-80 scouting grade.
type GradeTable map[PitchFamily]int

// Grade returns the grade for family or def when the table has none.
func (g GradeTable) Grade(family PitchFamily, def int) int {
	if v, ok := g[family]; ok {
		return v
	}
	return def
}

// Usage maps a pitch family to the fraction of a pitcher's pitches.
type Usage map[PitchFamily]float64
