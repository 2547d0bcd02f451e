package events

// EventType represents the type of game event
// 0 is reserved for the FSM per-frame "Tick" trigger
type EventType int

const (
	EventTick EventType = iota

	// ===== INBOUND (input collaborators -> Controller) =====

	// EventAdvance signals the start/continue/restart input
	// Trigger: Space/Enter, POST /v1/input/advance
	// Consumer: FSM transitions | Payload: nil
	EventAdvance

	// EventIngredientSelected signals an ingredient button press
	// Trigger: arrow keys, 1-4, POST /v1/input/{ingredient}
	// Consumer: OrderEngine (Assembling only) | Payload: *IngredientPayload
	EventIngredientSelected

	// EventForceRepetition signals the operator fallback squat
	// Trigger: 's' key, POST /v1/input/squat
	// Consumer: PowerDetector (Charging only) | Payload: nil
	EventForceRepetition

	// EventRecalibrate signals a request to re-measure the standing baseline
	// Trigger: 'c' key, POST /v1/input/recalibrate
	// Consumer: FSM transitions (Calibration, Charging) | Payload: nil
	EventRecalibrate

	// ===== OUTBOUND (Controller -> presentation/audio) =====

	// EventPhaseChanged signals a completed phase transition
	// Payload: *PhaseChangedPayload
	EventPhaseChanged

	// EventCalibrationComplete signals the baseline was frozen
	// Payload: *CalibrationPayload
	EventCalibrationComplete

	// EventRepetitionCompleted signals one Down -> Up squat (or manual override)
	// Payload: *RepetitionPayload
	EventRepetitionCompleted

	// EventPowerFull signals the gauge reached MaxPower
	// Payload: nil
	EventPowerFull

	// EventOrderCreated signals a new order was drawn on Assembling entry
	// Payload: *OrderPayload
	EventOrderCreated

	// EventOrderMismatch signals a wrong ingredient; the stack was cleared
	// Payload: *MismatchPayload
	EventOrderMismatch

	// EventOrderCompleted signals the last correct ingredient was placed and scored
	// Payload: *OrderCompletedPayload
	EventOrderCompleted

	// EventTimeExpired signals the round clock reached zero
	// Payload: nil
	EventTimeExpired

	// EventCustomerArrived signals a new customer at the counter
	// Payload: *CustomerPayload
	EventCustomerArrived

	// EventCustomerAngry signals the waiting customer lost patience
	// Payload: *CustomerPayload
	EventCustomerAngry

	// EventCustomerLeft signals the waiting customer walked out unserved
	// Payload: *CustomerPayload
	EventCustomerLeft

	// EventCustomerServed signals the served customer started leaving
	// Payload: *CustomerPayload
	EventCustomerServed

	EventTypeCount
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64 // Frame the event was raised in
}

// String returns the registered event name
func (t EventType) String() string {
	return GetEventName(t)
}

// IsInput reports whether the event originates from an input collaborator
func (t EventType) IsInput() bool {
	return t >= EventAdvance && t <= EventRecalibrate
}
