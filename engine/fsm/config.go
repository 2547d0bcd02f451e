package fsm

// DefaultConfigPath is the external graph file picked up when present
const DefaultConfigPath = "config/phases.yaml"

// RootConfig represents the top-level config structure
type RootConfig struct {
	InitialState string                  `yaml:"initial"`
	States       map[string]*StateConfig `yaml:"states"`
}

// StateConfig represents a single state definition
type StateConfig struct {
	Parent      string             `yaml:"parent,omitempty"`
	OnEnter     []ActionConfig     `yaml:"on_enter,omitempty"`
	OnUpdate    []ActionConfig     `yaml:"on_update,omitempty"`
	OnExit      []ActionConfig     `yaml:"on_exit,omitempty"`
	Transitions []TransitionConfig `yaml:"transitions,omitempty"`
}

// TransitionConfig represents a transition definition
type TransitionConfig struct {
	Trigger string         `yaml:"trigger"`           // Event Name or "Tick"
	Target  string         `yaml:"target"`            // Target state name
	Guard   string         `yaml:"guard,omitempty"`   // Guard function name
	Actions []ActionConfig `yaml:"actions,omitempty"` // Transition effects
}

// ActionConfig represents an action definition
type ActionConfig struct {
	Action string `yaml:"action"` // Action function name (e.g. "StartCalibration")
}
