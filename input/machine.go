package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/panic-burger/core"
)

// Sink receives game intents; satisfied by *engine.Controller
type Sink interface {
	Submit(ing core.Ingredient)
	Advance()
	ForceRepetition()
	Recalibrate()
}

// Machine parses tcell key events into semantic Intents
type Machine struct {
	keyTable *KeyTable
}

// NewMachine creates a machine with the default bindings
func NewMachine() *Machine {
	return &Machine{keyTable: DefaultKeyTable()}
}

// SetKeyTable replaces the bindings; nil restores the defaults
func (m *Machine) SetKeyTable(kt *KeyTable) {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	m.keyTable = kt
}

// Process resolves one key event; unbound keys yield IntentNone
func (m *Machine) Process(ev *tcell.EventKey) Intent {
	if ev == nil {
		return Intent{}
	}
	var (
		entry KeyEntry
		ok    bool
	)
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		entry, ok = m.keyTable.Runes[r]
		if !ok {
			entry, ok = m.keyTable.Runes[unicode.ToLower(r)]
		}
	} else {
		entry, ok = m.keyTable.SpecialKeys[ev.Key()]
	}
	if !ok {
		return Intent{}
	}
	return Intent{Type: entry.Intent, Ingredient: entry.Ingredient}
}

// Dispatch forwards a game intent to sink; returns false for intents the caller must handle
func Dispatch(in Intent, sink Sink) bool {
	switch in.Type {
	case IntentAdvance:
		sink.Advance()
	case IntentIngredient:
		sink.Submit(in.Ingredient)
	case IntentSquat:
		sink.ForceRepetition()
	case IntentRecalibrate:
		sink.Recalibrate()
	default:
		return false
	}
	return true
}
