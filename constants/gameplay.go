package constants

// Round Clock
const (
	// StartTime is the initial round time in seconds
	// Historical builds used 15, 30, 45 and 60; 45 is the latest
	StartTime = 45

	// FrameTick is the number of clock ticks per one-second decrement
	FrameTick = 60

	// OrderBonusSeconds is added to the clock on every served order
	OrderBonusSeconds = 10

	// OrderScore is awarded per served order
	OrderScore = 100
)

// Instructions Screen
const (
	// InstructionsTimeoutTicks auto-advances the instructions screen (8s at 60 FPS)
	InstructionsTimeoutTicks = 480
)

// Squat Detection
const (
	// CalibrationFrames is the number of hip samples averaged into the standing baseline
	CalibrationFrames = 60

	// SquatThreshold is the hip drop below baseline (sensor pixels) that registers Down
	SquatThreshold = 25.0

	// SquatReleaseRatio scales SquatThreshold for the Down -> Up release line
	SquatReleaseRatio = 0.5

	// PowerPerRep is the power granted by one repetition
	PowerPerRep = 20

	// MaxPower is the full-gauge value that unlocks assembly
	MaxPower = 100

	// MinHipConfidence ignores hip landmarks below this confidence (0 accepts all)
	MinHipConfidence = 0.0
)

// Orders
const (
	// MinOrderItems is the inclusive lower bound of an order length
	MinOrderItems = 3

	// MaxOrderItems is the exclusive upper bound of an order length
	MaxOrderItems = 6
)

// Customer Patience
const (
	// CustomerAngryTicks marks the waiting customer angry
	CustomerAngryTicks = 300

	// CustomerLeaveTicks makes the waiting customer walk out and ends the run
	CustomerLeaveTicks = 600

	// CustomerExitTicks is how long a leaving customer stays in the leaving list
	CustomerExitTicks = 120
)

// Sensorless Mode
const (
	// SensorlessHipY is the hip height of the synthetic standing pose
	SensorlessHipY = 240.0
)
