package systems

import (
	"fmt"

	"github.com/lixenwraith/panic-burger/constants"
	"github.com/lixenwraith/panic-burger/core"
)

// Detector status messages shown on the HUD
const (
	MsgWaiting     = "WAITING FOR HIPS..."
	MsgCalibrating = "CALIBRATING... STAND TALL"
	MsgCalibrated  = "GO! SQUAT DOWN!"
	MsgNowUp       = "GOOD! NOW UP!"
	MsgStandUp     = "STAND UP!"
	MsgGreat       = "GREAT! +POWER"
	MsgManual      = "MANUAL SQUAT"
)

// DetectorConfig holds the squat detection tunables
type DetectorConfig struct {
	CalibrationFrames int
	Threshold         float64
	ReleaseRatio      float64
	PowerPerRep       int
	MaxPower          int
	MinConfidence     float64
}

// DefaultDetectorConfig returns the detector defaults from constants
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		CalibrationFrames: constants.CalibrationFrames,
		Threshold:         constants.SquatThreshold,
		ReleaseRatio:      constants.SquatReleaseRatio,
		PowerPerRep:       constants.PowerPerRep,
		MaxPower:          constants.MaxPower,
		MinConfidence:     constants.MinHipConfidence,
	}
}

// DetectorResult reports what one detector step produced
// The controller turns these into outbound events
type DetectorResult struct {
	Calibrated bool // baseline frozen on this step
	Repetition bool // one repetition granted
	PowerFull  bool // power reached max on this step
}

// PowerDetector converts vertical hip displacement into power
type PowerDetector struct {
	cfg DetectorConfig

	// Calibration
	samples    int
	sumY       float64
	baselineY  float64
	calibrated bool

	state   core.SquatState
	power   int
	lastY   float64
	message string
}

// NewPowerDetector creates an uncalibrated detector
func NewPowerDetector(cfg DetectorConfig) *PowerDetector {
	return &PowerDetector{cfg: cfg, message: MsgWaiting}
}

// SetConfig replaces tunables; takes effect from the next sample
func (d *PowerDetector) SetConfig(cfg DetectorConfig) {
	d.cfg = cfg
}

// StartCalibration discards any accumulated samples and the frozen baseline
func (d *PowerDetector) StartCalibration() {
	d.samples = 0
	d.sumY = 0
	d.baselineY = 0
	d.calibrated = false
	d.state = core.SquatUp
	d.message = MsgCalibrating
}

// Update consumes one pose sample
// A nil pose or a pose without both hips leaves all state untouched
func (d *PowerDetector) Update(pose *core.Pose) DetectorResult {
	y, ok := d.hipY(pose)
	if !ok {
		d.message = MsgWaiting
		return DetectorResult{}
	}
	d.lastY = y

	if !d.calibrated {
		d.sumY += y
		d.samples++
		if d.samples < d.cfg.CalibrationFrames {
			d.message = MsgCalibrating
			return DetectorResult{}
		}
		d.baselineY = d.sumY / float64(d.samples)
		d.calibrated = true
		d.message = MsgCalibrated
		return DetectorResult{Calibrated: true}
	}

	downLine := d.baselineY + d.cfg.Threshold
	switch d.state {
	case core.SquatUp:
		if y > downLine {
			d.state = core.SquatDown
			d.message = MsgNowUp
		} else {
			d.message = fmt.Sprintf("GO LOWER: %.0fpx", downLine-y)
		}
	case core.SquatDown:
		if y < d.baselineY+d.cfg.Threshold*d.cfg.ReleaseRatio {
			d.state = core.SquatUp
			d.message = MsgGreat
			return d.grant()
		}
		d.message = MsgStandUp
	}
	return DetectorResult{}
}

// ForceRepetition grants one repetition without any sensor input
func (d *PowerDetector) ForceRepetition() DetectorResult {
	d.message = MsgManual
	return d.grant()
}

func (d *PowerDetector) grant() DetectorResult {
	wasFull := d.IsFullPower()
	d.power = min(d.power+d.cfg.PowerPerRep, d.cfg.MaxPower)
	return DetectorResult{
		Repetition: true,
		PowerFull:  !wasFull && d.IsFullPower(),
	}
}

func (d *PowerDetector) hipY(pose *core.Pose) (float64, bool) {
	left, ok := pose.Find(core.LandmarkLeftHip)
	if !ok || left.Confidence < d.cfg.MinConfidence {
		return 0, false
	}
	right, ok := pose.Find(core.LandmarkRightHip)
	if !ok || right.Confidence < d.cfg.MinConfidence {
		return 0, false
	}
	return (left.Y + right.Y) / 2, true
}

// ResetPower empties the gauge; calibration is kept
func (d *PowerDetector) ResetPower() {
	d.power = 0
}

// IsFullPower reports power >= max
func (d *PowerDetector) IsFullPower() bool {
	return d.power >= d.cfg.MaxPower
}

func (d *PowerDetector) Power() int { return d.power }

func (d *PowerDetector) MaxPower() int { return d.cfg.MaxPower }

func (d *PowerDetector) Calibrated() bool { return d.calibrated }

func (d *PowerDetector) Samples() int { return d.samples }

func (d *PowerDetector) BaselineY() float64 { return d.baselineY }

// LastY is the most recent accepted hip height
func (d *PowerDetector) LastY() float64 { return d.lastY }

func (d *PowerDetector) State() core.SquatState { return d.state }

func (d *PowerDetector) Message() string { return d.message }
