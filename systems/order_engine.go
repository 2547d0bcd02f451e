package systems

import "github.com/lixenwraith/panic-burger/core"

// SubmitResult classifies one ingredient submission
type SubmitResult uint8

const (
	SubmitIgnored SubmitResult = iota // order already complete
	SubmitAccepted
	SubmitMismatch
	SubmitCompleted
)

func (r SubmitResult) String() string {
	switch r {
	case SubmitAccepted:
		return "Accepted"
	case SubmitMismatch:
		return "Mismatch"
	case SubmitCompleted:
		return "Completed"
	default:
		return "Ignored"
	}
}

// SubmitOutcome carries the result plus mismatch context captured before the stack is cleared
type SubmitOutcome struct {
	Result   SubmitResult
	Expected core.Ingredient
	Position int
}

// OrderEngine draws random orders and validates sequential input against them
// One wrong ingredient clears the whole stack
type OrderEngine struct {
	rng      RandomSource
	minItems int
	maxItems int

	order    []core.Ingredient
	stack    []core.Ingredient
	complete bool
}

// NewOrderEngine creates an engine drawing lengths in [minItems, maxItems)
func NewOrderEngine(rng RandomSource, minItems, maxItems int) *OrderEngine {
	return &OrderEngine{
		rng:      rng,
		minItems: minItems,
		maxItems: maxItems,
		order:    make([]core.Ingredient, 0, maxItems),
		stack:    make([]core.Ingredient, 0, maxItems),
	}
}

// SetBounds replaces the order length bounds for subsequent orders
func (e *OrderEngine) SetBounds(minItems, maxItems int) {
	e.minItems = minItems
	e.maxItems = maxItems
}

// NewOrder discards the current order and stack and draws a fresh order
func (e *OrderEngine) NewOrder() []core.Ingredient {
	e.stack = e.stack[:0]
	e.order = e.order[:0]
	e.complete = false

	count := e.minItems
	if span := e.maxItems - e.minItems; span > 0 {
		count += e.rng.IntN(span)
	}
	for range count {
		e.order = append(e.order, core.Ingredient(e.rng.IntN(int(core.IngredientCount))))
	}
	return e.Order()
}

// Submit places one ingredient
func (e *OrderEngine) Submit(ing core.Ingredient) SubmitOutcome {
	if e.complete || len(e.order) == 0 {
		return SubmitOutcome{Result: SubmitIgnored}
	}

	pos := len(e.stack)
	expected := e.order[pos]
	if !ing.Valid() || ing != expected {
		e.stack = e.stack[:0]
		return SubmitOutcome{Result: SubmitMismatch, Expected: expected, Position: pos}
	}

	e.stack = append(e.stack, ing)
	if len(e.stack) == len(e.order) {
		e.complete = true
		return SubmitOutcome{Result: SubmitCompleted, Expected: expected, Position: pos}
	}
	return SubmitOutcome{Result: SubmitAccepted, Expected: expected, Position: pos}
}

// Order returns a copy of the current order
func (e *OrderEngine) Order() []core.Ingredient {
	return append([]core.Ingredient(nil), e.order...)
}

// Stack returns a copy of the correctly placed prefix
func (e *OrderEngine) Stack() []core.Ingredient {
	return append([]core.Ingredient(nil), e.stack...)
}

func (e *OrderEngine) OrderLen() int { return len(e.order) }

func (e *OrderEngine) StackLen() int { return len(e.stack) }

func (e *OrderEngine) Complete() bool { return e.complete }
