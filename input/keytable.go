package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/panic-burger/core"
)

// KeyEntry is what a key resolves to
type KeyEntry struct {
	Intent     IntentType
	Ingredient core.Ingredient
}

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Enter, Esc)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable rune bindings
	Runes map[rune]KeyEntry
}

func ingredient(i core.Ingredient) KeyEntry {
	return KeyEntry{Intent: IntentIngredient, Ingredient: i}
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {Intent: IntentQuit},
			tcell.KeyEscape: {Intent: IntentQuit},
			tcell.KeyEnter:  {Intent: IntentAdvance},
			tcell.KeyLeft:   ingredient(core.IngredientTomato),
			tcell.KeyUp:     ingredient(core.IngredientLettuce),
			tcell.KeyDown:   ingredient(core.IngredientCheese),
			tcell.KeyRight:  ingredient(core.IngredientPatty),
		},

		Runes: map[rune]KeyEntry{
			' ': {Intent: IntentAdvance},
			'1': ingredient(core.IngredientTomato),
			'2': ingredient(core.IngredientLettuce),
			'3': ingredient(core.IngredientCheese),
			'4': ingredient(core.IngredientPatty),
			's': {Intent: IntentSquat},
			'c': {Intent: IntentRecalibrate},
			'm': {Intent: IntentToggleMute},
			'd': {Intent: IntentToggleDebug},
			'q': {Intent: IntentQuit},
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: maps.Clone(kt.SpecialKeys),
		Runes:       maps.Clone(kt.Runes),
	}
}
