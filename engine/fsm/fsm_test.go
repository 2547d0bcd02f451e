package fsm

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lixenwraith/panic-burger/events"
)

type recorder struct {
	log   []string
	ready bool
}

func (r *recorder) add(s string) { r.log = append(r.log, s) }

const testGraph = `
initial: Idle
states:
  Idle:
    transitions:
      - trigger: EventAdvance
        target: Charging
  Shift: {}
  Charging:
    parent: Shift
    on_enter:
      - action: EnterCharging
    on_exit:
      - action: ExitCharging
    transitions:
      - trigger: Tick
        target: Assembling
        guard: Ready
      - trigger: EventRecalibrate
        target: Charging
  Assembling:
    parent: Shift
    on_enter:
      - action: EnterAssembling
    on_update:
      - action: UpdateAssembling
    transitions:
      - trigger: EventAdvance
        target: Charging
        actions:
          - action: Serve
  Over:
    transitions:
      - trigger: EventAdvance
        target: Idle
`

func newTestMachine(t *testing.T, graph string) (*Machine[*recorder], *recorder) {
	t.Helper()
	m := NewMachine[*recorder]()
	for _, name := range []string{"EnterCharging", "ExitCharging", "EnterAssembling", "UpdateAssembling", "Serve"} {
		n := name
		m.RegisterAction(n, func(r *recorder) { r.add(n) })
	}
	m.RegisterGuard("Ready", func(r *recorder) bool { return r.ready })
	if err := m.LoadConfig([]byte(graph)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	return m, &recorder{}
}

// TestLoadAndInit verifies deterministic ID assignment and initial entry
func TestLoadAndInit(t *testing.T) {
	m, r := newTestMachine(t, testGraph)

	if err := m.Init(r); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if m.ActiveName() != "Idle" {
		t.Fatalf("Expected Idle, got %s", m.ActiveName())
	}

	// Sorted: Assembling, Charging, Idle, Over, Shift
	want := map[string]StateID{"Assembling": 2, "Charging": 3, "Idle": 4, "Over": 5, "Shift": 6}
	for name, id := range want {
		got, ok := m.GetStateID(name)
		if !ok || got != id {
			t.Errorf("State %s: expected ID %d, got %d (ok=%v)", name, id, got, ok)
		}
	}
	t.Logf("✓ Loaded graph with sorted IDs, active=%s", m.ActiveName())
}

// TestHierarchyAndEntryOrder verifies enter/exit ordering and parent membership
func TestHierarchyAndEntryOrder(t *testing.T) {
	m, r := newTestMachine(t, testGraph)
	_ = m.Init(r)

	if !m.HandleEvent(r, events.EventAdvance) {
		t.Fatal("Advance should move Idle -> Charging")
	}
	if !m.IsIn("Shift") || !m.IsIn("Charging") {
		t.Errorf("Expected to be in Shift/Charging, path=%v", m.activePath)
	}
	t.Logf("✓ Idle -> Charging inside Shift")

	// Guard blocks the Tick transition
	if m.Update(r) {
		t.Error("Tick transition should be blocked by guard")
	}
	if m.TicksInState() != 1 {
		t.Errorf("Expected 1 tick in state, got %d", m.TicksInState())
	}

	r.ready = true
	if !m.Update(r) {
		t.Fatal("Tick transition should fire once guard passes")
	}
	if m.ActiveName() != "Assembling" || m.TicksInState() != 0 {
		t.Errorf("Expected Assembling with 0 ticks, got %s/%d", m.ActiveName(), m.TicksInState())
	}

	m.Update(r)
	r.ready = false
	m.HandleEvent(r, events.EventAdvance)

	want := []string{"EnterCharging", "ExitCharging", "EnterAssembling", "UpdateAssembling", "Serve", "EnterCharging"}
	if !reflect.DeepEqual(r.log, want) {
		t.Errorf("Action order mismatch:\n got  %v\n want %v", r.log, want)
	}
	t.Logf("✓ Action order: %s", strings.Join(r.log, " -> "))
}

// TestSelfTransitionReenters verifies an external self-transition runs exit and enter
func TestSelfTransitionReenters(t *testing.T) {
	m, r := newTestMachine(t, testGraph)
	_ = m.Init(r)
	m.HandleEvent(r, events.EventAdvance)
	m.Update(r)
	r.log = nil

	if !m.HandleEvent(r, events.EventRecalibrate) {
		t.Fatal("Self transition should fire")
	}
	want := []string{"ExitCharging", "EnterCharging"}
	if !reflect.DeepEqual(r.log, want) {
		t.Errorf("Expected %v, got %v", want, r.log)
	}
	if m.TicksInState() != 0 {
		t.Errorf("Self transition should reset ticks, got %d", m.TicksInState())
	}
	t.Logf("✓ Self transition re-entered Charging")
}

// TestOnTransitionHook verifies the hook fires between exit and enter
func TestOnTransitionHook(t *testing.T) {
	m, r := newTestMachine(t, testGraph)
	m.OnTransition = func(r *recorder, from, to StateID) {
		r.add(m.StateName(from) + ">" + m.StateName(to))
	}
	_ = m.Init(r)
	m.HandleEvent(r, events.EventAdvance)

	want := []string{">Idle", "Idle>Charging", "EnterCharging"}
	if !reflect.DeepEqual(r.log, want) {
		t.Errorf("Expected %v, got %v", want, r.log)
	}
	t.Logf("✓ OnTransition ordering: %v", r.log)
}

// TestUnhandledEvents verifies events without edges are ignored
func TestUnhandledEvents(t *testing.T) {
	m, r := newTestMachine(t, testGraph)
	_ = m.Init(r)

	if m.HandleEvent(r, events.EventTimeExpired) {
		t.Error("Idle has no TimeExpired edge")
	}
	if m.HandleEvent(r, events.EventTick) {
		t.Error("HandleEvent must ignore Tick")
	}
	if m.ActiveName() != "Idle" {
		t.Errorf("State changed unexpectedly to %s", m.ActiveName())
	}
	t.Logf("✓ Unhandled events ignored")
}

// TestReset verifies Reset returns to the initial state
func TestReset(t *testing.T) {
	m, r := newTestMachine(t, testGraph)
	_ = m.Init(r)
	m.HandleEvent(r, events.EventAdvance)
	r.log = nil

	if err := m.Reset(r); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if m.ActiveName() != "Idle" {
		t.Errorf("Expected Idle after reset, got %s", m.ActiveName())
	}
	if len(r.log) != 1 || r.log[0] != "ExitCharging" {
		t.Errorf("Reset should exit active path, got %v", r.log)
	}
	t.Logf("✓ Reset to initial state")
}

// TestLoadErrors verifies graph validation catches bad references
func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		graph string
		want  string
	}{
		{"empty", "initial: A\n", "no states"},
		{"missing initial", "initial: B\nstates:\n  A: {}\n", "initial state"},
		{"unknown parent", "initial: A\nstates:\n  A:\n    parent: X\n", "unknown parent"},
		{"unknown target", "initial: A\nstates:\n  A:\n    transitions:\n      - trigger: EventAdvance\n        target: Z\n", "unknown target"},
		{"unknown event", "initial: A\nstates:\n  A:\n    transitions:\n      - trigger: EventNope\n        target: A\n", "unknown event"},
		{"unknown guard", "initial: A\nstates:\n  A:\n    transitions:\n      - trigger: Tick\n        target: A\n        guard: Nope\n", "unknown guard"},
		{"unknown action", "initial: A\nstates:\n  A:\n    on_enter:\n      - action: Nope\n", "unknown action"},
		{"parent cycle", "initial: A\nstates:\n  A:\n    parent: B\n  B:\n    parent: A\n", "cycle"},
		{"bad yaml", "initial: [\n", "unmarshal"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMachine[*recorder]()
			err := m.LoadConfig([]byte(tc.graph))
			if err == nil {
				t.Fatalf("Expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error containing %q, got %v", tc.want, err)
			}
			t.Logf("✓ %s: %v", tc.name, err)
		})
	}
}

// TestLoadConfigAuto verifies custom path priority over the embedded graph
func TestLoadConfigAuto(t *testing.T) {
	m, _ := newTestMachine(t, testGraph)

	src, err := LoadConfigAuto(m, "", []byte(testGraph))
	if err != nil {
		t.Fatalf("Embedded load failed: %v", err)
	}
	if src != "embedded" {
		t.Errorf("Expected embedded source, got %s", src)
	}

	path := filepath.Join(t.TempDir(), "custom.yaml")
	custom := "initial: Solo\nstates:\n  Solo: {}\n"
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err = LoadConfigAuto(m, path, []byte(testGraph))
	if err != nil {
		t.Fatalf("Custom load failed: %v", err)
	}
	if src != path {
		t.Errorf("Expected source %s, got %s", path, src)
	}
	if _, ok := m.GetStateID("Charging"); ok {
		t.Error("Custom graph should replace the previous one")
	}
	t.Logf("✓ LoadConfigAuto sources: embedded, %s", filepath.Base(path))

	if _, err := LoadConfigAuto(m, filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("Expected error for missing custom path")
	}
}
