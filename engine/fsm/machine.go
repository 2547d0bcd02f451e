package fsm

import (
	"fmt"

	"github.com/lixenwraith/panic-burger/events"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:     make(map[StateID]*Node[T]),
		names:     make(map[string]StateID),
		guardReg:  make(map[string]GuardFunc[T]),
		actionReg: make(map[string]ActionFunc[T]),
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// Init enters the initial state, running OnEnter from Root down to the leaf
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}

	m.activeStateID = node.ID
	m.ticksInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	if m.OnTransition != nil {
		m.OnTransition(ctx, StateNone, node.ID)
	}

	for _, id := range m.activePath {
		runActions(ctx, m.nodes[id].OnEnter)
	}
	return nil
}

// Update advances the FSM by one tick: leaf OnUpdate, then guarded Tick transitions
// Returns true if a transition fired
func (m *Machine[T]) Update(ctx T) bool {
	if m.activeStateID == StateNone {
		return false
	}

	m.ticksInState++

	leaf := m.nodes[m.activeStateID]
	runActions(ctx, leaf.OnUpdate)

	return m.fire(ctx, events.EventTick)
}

// HandleEvent routes an external event through the active path, leaf first
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, eventType events.EventType) bool {
	if m.activeStateID == StateNone || eventType == events.EventTick {
		return false
	}
	return m.fire(ctx, eventType)
}

// fire evaluates transitions for eventType, bubbling Leaf -> Parent -> Root
func (m *Machine[T]) fire(ctx T, eventType events.EventType) bool {
	currID := m.activeStateID
	for currID != StateNone {
		node := m.nodes[currID]
		for i := range node.Transitions {
			trans := &node.Transitions[i]
			if trans.Event != eventType {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx) {
				m.transition(ctx, trans)
				return true
			}
		}
		currID = node.ParentID
	}
	return false
}

// transition performs an external transition: exits up to the LCA, transition
// actions, then entries down to the target. Targeting the active state or one of
// its ancestors exits and re-enters it
func (m *Machine[T]) transition(ctx T, trans *Transition[T]) {
	targetNode, ok := m.nodes[trans.TargetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", trans.TargetID))
	}

	currentPath := m.activePath
	targetPath := targetNode.Path

	lcaIndex := -1
	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}
	// Target lies on the active path: leave and re-enter it
	if lcaIndex == len(targetPath)-1 {
		lcaIndex--
	}

	// Exit Phase: walk UP from current leaf to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		runActions(ctx, m.nodes[currentPath[i]].OnExit)
	}

	runActions(ctx, trans.Actions)

	from := m.activeStateID
	m.activeStateID = targetNode.ID
	m.ticksInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	if m.OnTransition != nil {
		m.OnTransition(ctx, from, targetNode.ID)
	}

	// Enter Phase: walk DOWN from LCA (exclusive) to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		runActions(ctx, m.nodes[targetPath[i]].OnEnter)
	}
}

// Reset exits the active path and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	for i := len(m.activePath) - 1; i >= 0; i-- {
		runActions(ctx, m.nodes[m.activePath[i]].OnExit)
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx)
}

// Active returns the current leaf state
func (m *Machine[T]) Active() StateID {
	return m.activeStateID
}

// ActiveName returns the current leaf state's name
func (m *Machine[T]) ActiveName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TicksInState returns the number of Update calls since the leaf was entered
func (m *Machine[T]) TicksInState() int {
	return m.ticksInState
}

// IsIn reports whether the named state is the leaf or one of its ancestors
func (m *Machine[T]) IsIn(name string) bool {
	id, ok := m.names[name]
	if !ok {
		return false
	}
	for _, a := range m.activePath {
		if a == id {
			return true
		}
	}
	return false
}

// StateName returns the name of a state ID
func (m *Machine[T]) StateName(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}

// GetStateID resolves a state name to ID
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	id, ok := m.names[name]
	return id, ok
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, a := range actions {
		a.Func(ctx)
	}
}
