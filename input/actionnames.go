package input

import "github.com/lixenwraith/panic-burger/core"

// actionRegistry maps canonical action names to KeyEntry structs
// Used by the keymap loader and the HTTP feed to resolve symbols
var actionRegistry map[string]KeyEntry

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]KeyEntry {
	reg := map[string]KeyEntry{
		// Unbind sentinel
		"none": {},

		"advance":      {Intent: IntentAdvance},
		"squat":        {Intent: IntentSquat},
		"recalibrate":  {Intent: IntentRecalibrate},
		"quit":         {Intent: IntentQuit},
		"toggle_mute":  {Intent: IntentToggleMute},
		"toggle_debug": {Intent: IntentToggleDebug},
	}
	for i := core.Ingredient(0); i < core.IngredientCount; i++ {
		reg[i.String()] = ingredient(i)
	}
	return reg
}

// ActionEntry returns the KeyEntry for a canonical action name
func ActionEntry(name string) (KeyEntry, bool) {
	e, ok := actionRegistry[name]
	return e, ok
}

// ActionNames returns all registered action names
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for k := range actionRegistry {
		names = append(names, k)
	}
	return names
}
