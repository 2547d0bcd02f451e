package events

import "github.com/lixenwraith/panic-burger/core"

// IngredientPayload carries the decoded ingredient of a button press
type IngredientPayload struct {
	Ingredient core.Ingredient
}

// PhaseChangedPayload carries the old and new phase
type PhaseChangedPayload struct {
	From core.Phase
	To   core.Phase
}

// CalibrationPayload carries the frozen standing baseline
type CalibrationPayload struct {
	BaselineY float64
	Samples   int
}

// RepetitionPayload carries the power after a repetition
type RepetitionPayload struct {
	Power  int
	Manual bool // Operator override, no keypoints involved
}

// OrderPayload carries a freshly drawn order
type OrderPayload struct {
	Items []core.Ingredient
}

// MismatchPayload describes a rejected ingredient
type MismatchPayload struct {
	Expected core.Ingredient
	Got      core.Ingredient
	Position int // Stack length at the time of the mistake
}

// OrderCompletedPayload carries run totals after a served order
type OrderCompletedPayload struct {
	Items            int
	Score            int
	BurgersCompleted int
	TimeRemaining    int
}

// CustomerPayload identifies a customer
type CustomerPayload struct {
	ID     int
	Kind   int
	Waited int // Ticks spent waiting
}
