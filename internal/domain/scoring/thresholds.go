package scoring

// FastballThresholds tunes the fastball ladder.
type FastballThresholds struct {
	EliteIVB         float64
	EliteIVBBonus    float64
	PlusIVB          float64
	PlusIVBBonus     float64
	TightHMove       float64
	TightHMoveBonus  float64
	WideHMove        float64
	WideHMovePenalty float64
	DeadZoneMinIVB   float64
	DeadZoneMaxIVB   float64
	DeadZoneMinHMove float64
	DeadZonePenalty  float64
	// SpinEfficiency is exclusive: only efficiencies above it earn the bonus.
	SpinEfficiency      float64
	SpinEfficiencyBonus float64
}

// SliderThresholds tunes the slider ladder.
type SliderThresholds struct {
	EliteHMove    float64
	EliteMaxIVB   float64
	EliteBonus    float64
	PlusHMove     float64
	PlusBonus     float64
	HighSpin      float64
	HighSpinBonus float64
	FlatMinHMove  float64
	FlatMaxHMove  float64
	FlatMinIVB    float64
	FlatMaxIVB    float64
	FlatPenalty   float64
	LiftIVB       float64
	LiftPenalty   float64
}

// CurveballThresholds tunes the curveball ladder.
type CurveballThresholds struct {
	EliteIVB       float64
	EliteSpin      float64
	EliteBonus     float64
	PlusIVB        float64
	PlusBonus      float64
	VerticalHMove  float64
	VerticalBonus  float64
	SlurveMinIVB   float64
	SlurveMaxIVB   float64
	SlurveHMove    float64
	SlurvePenalty  float64
	LowSpin        float64
	LowSpinPenalty float64
}

// ChangeupThresholds tunes the changeup ladder.
type ChangeupThresholds struct {
	EliteVSep       float64
	EliteBonus      float64
	PlusVSep        float64
	PlusBonus       float64
	LowSpin         float64
	LowSpinBonus    float64
	PoorVSep        float64
	PoorPenalty     float64
	HighSpin        float64
	HighSpinPenalty float64
}

// Thresholds is the full table of scoring constants.
type Thresholds struct {
	Fastball  FastballThresholds
	Slider    SliderThresholds
	Curveball CurveballThresholds
	Changeup  ChangeupThresholds
}

// DefaultThresholds returns the production scoring table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Fastball: FastballThresholds{
			EliteIVB:            18,
			EliteIVBBonus:       10,
			PlusIVB:             17,
			PlusIVBBonus:        5,
			TightHMove:          3,
			TightHMoveBonus:     5,
			WideHMove:           7,
			WideHMovePenalty:    -5,
			DeadZoneMinIVB:      12,
			DeadZoneMaxIVB:      15,
			DeadZoneMinHMove:    5,
			DeadZonePenalty:     -10,
			SpinEfficiency:      0.95,
			SpinEfficiencyBonus: 5,
		},
		Slider: SliderThresholds{
			EliteHMove:    16,
			EliteMaxIVB:   0,
			EliteBonus:    10,
			PlusHMove:     15,
			PlusBonus:     5,
			HighSpin:      2800,
			HighSpinBonus: 5,
			FlatMinHMove:  10,
			FlatMaxHMove:  14,
			FlatMinIVB:    0,
			FlatMaxIVB:    5,
			FlatPenalty:   -8,
			LiftIVB:       5,
			LiftPenalty:   -5,
		},
		Curveball: CurveballThresholds{
			EliteIVB:       -16,
			EliteSpin:      2600,
			EliteBonus:     10,
			PlusIVB:        -10,
			PlusBonus:      5,
			VerticalHMove:  6,
			VerticalBonus:  5,
			SlurveMinIVB:   -14,
			SlurveMaxIVB:   -8,
			SlurveHMove:    6,
			SlurvePenalty:  -10,
			LowSpin:        2000,
			LowSpinPenalty: -5,
		},
		Changeup: ChangeupThresholds{
			EliteVSep:       12,
			EliteBonus:      10,
			PlusVSep:        10,
			PlusBonus:       5,
			LowSpin:         1700,
			LowSpinBonus:    5,
			PoorVSep:        8,
			PoorPenalty:     -8,
			HighSpin:        2200,
			HighSpinPenalty: -5,
		},
	}
}
