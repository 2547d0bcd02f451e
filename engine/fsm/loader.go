package fsm

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/panic-burger/events"
)

// LoadConfig parses a YAML byte slice and populates the Machine
// Validates all references (states, guards, actions, events)
// Clears existing graph data before loading
func (m *Machine[T]) LoadConfig(data []byte) error {
	var config RootConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to unmarshal FSM config: %w", err)
	}
	return m.Load(&config)
}

// Load builds the graph from a decoded config
func (m *Machine[T]) Load(config *RootConfig) error {
	if len(config.States) == 0 {
		return fmt.Errorf("FSM config defines no states")
	}

	m.nodes = make(map[StateID]*Node[T])
	m.names = make(map[string]StateID)
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	m.ticksInState = 0

	// Root node is implicit
	m.AddState(StateRoot, "Root", StateNone)
	nameToID := map[string]StateID{"Root": StateRoot}

	// Sort keys for deterministic ID generation
	stateNames := make([]string, 0, len(config.States))
	for name := range config.States {
		if name != "Root" {
			stateNames = append(stateNames, name)
		}
	}
	sort.Strings(stateNames)

	nextID := StateRoot + 1
	for _, name := range stateNames {
		nameToID[name] = nextID
		nextID++
	}

	// Create nodes first so transitions can reference any state
	for _, name := range stateNames {
		pName := ""
		if cfg := config.States[name]; cfg != nil {
			pName = cfg.Parent
		}
		if pName == "" {
			pName = "Root"
		}
		parentID, ok := nameToID[pName]
		if !ok {
			return fmt.Errorf("state '%s' references unknown parent '%s'", name, pName)
		}
		m.AddState(nameToID[name], name, parentID)
	}

	for name, cfg := range config.States {
		if cfg == nil {
			continue
		}
		node := m.nodes[nameToID[name]]

		var err error
		if node.OnEnter, err = m.compileActions(cfg.OnEnter); err != nil {
			return fmt.Errorf("state '%s' on_enter: %w", name, err)
		}
		if node.OnUpdate, err = m.compileActions(cfg.OnUpdate); err != nil {
			return fmt.Errorf("state '%s' on_update: %w", name, err)
		}
		if node.OnExit, err = m.compileActions(cfg.OnExit); err != nil {
			return fmt.Errorf("state '%s' on_exit: %w", name, err)
		}
		if err := m.compileTransitions(node, cfg.Transitions, nameToID); err != nil {
			return fmt.Errorf("state '%s' transitions: %w", name, err)
		}
	}

	if err := m.CompilePaths(); err != nil {
		return err
	}

	initialID, ok := nameToID[config.InitialState]
	if !ok || initialID == StateRoot {
		return fmt.Errorf("initial state '%s' not found", config.InitialState)
	}
	m.InitialStateID = initialID

	return nil
}

func (m *Machine[T]) compileActions(configs []ActionConfig) ([]Action[T], error) {
	actions := make([]Action[T], 0, len(configs))
	for _, cfg := range configs {
		fn, ok := m.actionReg[cfg.Action]
		if !ok {
			return nil, fmt.Errorf("unknown action function '%s'", cfg.Action)
		}
		actions = append(actions, Action[T]{Name: cfg.Action, Func: fn})
	}
	return actions, nil
}

func (m *Machine[T]) compileTransitions(node *Node[T], configs []TransitionConfig, nameToID map[string]StateID) error {
	for _, cfg := range configs {
		targetID, ok := nameToID[cfg.Target]
		if !ok || targetID == StateRoot {
			return fmt.Errorf("transition references unknown target '%s'", cfg.Target)
		}

		eventType, ok := events.GetEventType(cfg.Trigger)
		if !ok {
			return fmt.Errorf("unknown event type '%s'", cfg.Trigger)
		}

		var guard GuardFunc[T]
		if cfg.Guard != "" {
			g, ok := m.guardReg[cfg.Guard]
			if !ok {
				return fmt.Errorf("unknown guard '%s'", cfg.Guard)
			}
			guard = g
		}

		actions, err := m.compileActions(cfg.Actions)
		if err != nil {
			return fmt.Errorf("transition to '%s': %w", cfg.Target, err)
		}

		node.Transitions = append(node.Transitions, Transition[T]{
			TargetID: targetID,
			Event:    eventType,
			Guard:    guard,
			Actions:  actions,
		})
	}
	return nil
}
