package fsm

import "github.com/lixenwraith/panic-burger/events"

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

// Machine is the generic Hierarchical Finite State Machine runtime
// T is the context type passed to actions and guards (e.g., *engine.Controller)
type Machine[T any] struct {
	// Graph Data (Immutable after load)
	nodes map[StateID]*Node[T]
	names map[string]StateID

	// Configuration
	InitialStateID StateID // Stored during load for reset/init

	// Runtime State
	activeStateID StateID   // The current leaf node
	ticksInState  int       // Update calls since the current leaf was entered
	activePath    []StateID // Stack of active states (Root -> Child -> Leaf)

	// Dependency Injection
	guardReg  map[string]GuardFunc[T]
	actionReg map[string]ActionFunc[T]

	// OnTransition runs after exits and transition actions, before entry actions
	// The machine already reports the target as active when it fires
	OnTransition func(ctx T, from, to StateID)
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Pre-calculated path from Root to this node, used for LCA lookup
	Path []StateID

	// Lifecycle Actions
	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    events.EventType // EventTick = evaluated every Update
	Guard    GuardFunc[T]     // nil = Always true
	Actions  []Action[T]      // Run between exit and entry
}

// Action represents a side-effect
type Action[T any] struct {
	Name string
	Func ActionFunc[T]
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T)
