package engine

import (
	"github.com/lixenwraith/panic-burger/core"
	"github.com/lixenwraith/panic-burger/systems"
)

// Snapshot is a read-only copy of one frame's game state for presenters
type Snapshot struct {
	Frame int64
	RunID string
	Phase core.Phase

	// Round
	Time     int
	Score    int
	Burgers  int
	Expired  bool
	SubTicks int

	// Detector
	Power             int
	MaxPower          int
	Calibrated        bool
	Samples           int
	CalibrationFrames int
	BaselineY         float64
	HipY              float64
	Squat             core.SquatState
	Message           string

	// Order
	Order []core.Ingredient
	Stack []core.Ingredient

	// Customer
	Customer    systems.Customer
	HasCustomer bool
	Leaving     int
}

// Snapshot captures the current frame
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Frame:             c.frame.Load(),
		RunID:             c.runID,
		Phase:             c.phase,
		Time:              c.clock.Time(),
		Score:             c.score,
		Burgers:           c.burgers,
		Expired:           c.clock.Expired(),
		SubTicks:          c.clock.SubTicks(),
		Power:             c.detector.Power(),
		MaxPower:          c.detector.MaxPower(),
		Calibrated:        c.detector.Calibrated(),
		Samples:           c.detector.Samples(),
		CalibrationFrames: c.cfg.Squat.CalibrationFrames,
		BaselineY:         c.detector.BaselineY(),
		HipY:              c.detector.LastY(),
		Squat:             c.detector.State(),
		Message:           c.detector.Message(),
		Leaving:           len(c.patience.Leaving()),
	}
	if c.phase == core.PhaseAssembling {
		s.Order = c.orders.Order()
		s.Stack = c.orders.Stack()
	}
	s.Customer, s.HasCustomer = c.patience.Active()
	return s
}

// PowerRatio is power as a fraction of the full gauge
func (s Snapshot) PowerRatio() float64 {
	if s.MaxPower <= 0 {
		return 0
	}
	return float64(s.Power) / float64(s.MaxPower)
}
