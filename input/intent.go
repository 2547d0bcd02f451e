package input

import "github.com/lixenwraith/panic-burger/core"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// Game intents, forwarded to the controller
	IntentAdvance     // Space, Enter
	IntentIngredient  // 1-4, arrows
	IntentSquat       // s: operator fallback repetition
	IntentRecalibrate // c

	// System-level intents, handled by the front-end
	IntentQuit        // q, Esc, Ctrl+C
	IntentToggleMute  // m
	IntentToggleDebug // d
)

var intentNames = map[IntentType]string{
	IntentNone:        "none",
	IntentAdvance:     "advance",
	IntentIngredient:  "ingredient",
	IntentSquat:       "squat",
	IntentRecalibrate: "recalibrate",
	IntentQuit:        "quit",
	IntentToggleMute:  "toggle_mute",
	IntentToggleDebug: "toggle_debug",
}

func (t IntentType) String() string {
	if n, ok := intentNames[t]; ok {
		return n
	}
	return "unknown"
}

// Game reports whether the intent is meant for the controller
func (t IntentType) Game() bool {
	return t >= IntentAdvance && t <= IntentRecalibrate
}

// Intent is one parsed key press
type Intent struct {
	Type       IntentType
	Ingredient core.Ingredient // Valid only for IntentIngredient
}
