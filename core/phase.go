package core

// Phase is the top-level game phase
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhaseInstructions
	PhaseCalibration
	PhaseCharging
	PhaseAssembling
	PhaseGameOver
	PhaseCount
)

var phaseNames = [PhaseCount]string{
	PhaseMenu:         "Menu",
	PhaseInstructions: "Instructions",
	PhaseCalibration:  "Calibration",
	PhaseCharging:     "Charging",
	PhaseAssembling:   "Assembling",
	PhaseGameOver:     "GameOver",
}

// String returns the phase name as used in the FSM graph
func (p Phase) String() string {
	if p < PhaseCount {
		return phaseNames[p]
	}
	return "Unknown"
}

// ParsePhase resolves an FSM state name to a Phase
func ParsePhase(name string) (Phase, bool) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), true
		}
	}
	return PhaseCount, false
}

// ClockRunning reports whether the round clock ticks in this phase
func (p Phase) ClockRunning() bool {
	return p == PhaseCharging || p == PhaseAssembling
}
