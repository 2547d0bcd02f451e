package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/panic-burger/config"
	"github.com/lixenwraith/panic-burger/core"
	"github.com/lixenwraith/panic-burger/events"
	"github.com/lixenwraith/panic-burger/status"
)

// fixedRand returns the same draw for every call, reduced modulo n
type fixedRand int

func (r fixedRand) IntN(n int) int { return int(r) % n }

type harness struct {
	t    *testing.T
	c    *Controller
	reg  *status.Registry
	seen []events.GameEvent
	buf  []events.GameEvent
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	reg := status.NewRegistry()
	c, err := NewController(Options{Config: cfg, Random: fixedRand(0), Status: reg})
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	return &harness{t: t, c: c, reg: reg}
}

// step runs n frames and collects outbound events
func (h *harness) step(n int) {
	for i := 0; i < n; i++ {
		h.c.Update()
		h.buf = h.c.Outbound().Drain(h.buf[:0])
		h.seen = append(h.seen, h.buf...)
	}
}

func (h *harness) count(t events.EventType) int {
	n := 0
	for _, ev := range h.seen {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func (h *harness) last(t events.EventType) (events.GameEvent, bool) {
	for i := len(h.seen) - 1; i >= 0; i-- {
		if h.seen[i].Type == t {
			return h.seen[i], true
		}
	}
	return events.GameEvent{}, false
}

func (h *harness) expectPhase(want core.Phase) {
	h.t.Helper()
	if got := h.c.Phase(); got != want {
		h.t.Fatalf("Expected phase %s, got %s (frame %d)", want, got, h.c.Frame())
	}
}

func (h *harness) pose(y float64) {
	h.c.PublishPose(core.StandingPose(y))
}

// toCalibration drives Menu -> Instructions -> Calibration
func (h *harness) toCalibration() {
	h.t.Helper()
	h.c.Advance()
	h.step(1)
	h.expectPhase(core.PhaseInstructions)
	h.c.Advance()
	h.step(1)
	h.expectPhase(core.PhaseCalibration)
}

// toCharging calibrates on a standing pose at y
func (h *harness) toCharging(y float64) {
	h.t.Helper()
	h.toCalibration()
	h.pose(y)
	h.step(h.c.Config().Squat.CalibrationFrames)
	h.expectPhase(core.PhaseCharging)
}

// toAssembling charges with manual squats
func (h *harness) toAssembling() {
	h.t.Helper()
	h.toCharging(200)
	for i := 0; i < 5; i++ {
		h.c.ForceRepetition()
	}
	h.step(1)
	h.expectPhase(core.PhaseAssembling)
}

func TestInitialPhase(t *testing.T) {
	h := newHarness(t, nil)
	h.expectPhase(core.PhaseMenu)
	snap := h.c.Snapshot()
	if snap.Time != 45 || snap.RunID == "" {
		t.Errorf("Unexpected initial snapshot: time=%d run=%q", snap.Time, snap.RunID)
	}
	if h.reg.Strings.Get(status.KeyPhase).Load() != "Menu" {
		t.Errorf("Phase metric not published")
	}
	t.Logf("✓ Starts in Menu, run=%s", snap.RunID)
}

// TestFullChargeScenario walks menu to assembly with sensor squats
func TestFullChargeScenario(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Round.StartTime = 15 })
	h.toCalibration()

	h.pose(200)
	h.step(59)
	h.expectPhase(core.PhaseCalibration)
	if h.c.Snapshot().Samples != 59 {
		t.Fatalf("Expected 59 samples, got %d", h.c.Snapshot().Samples)
	}
	h.step(1)
	h.expectPhase(core.PhaseCharging)
	if h.count(events.EventCalibrationComplete) != 1 {
		t.Errorf("Expected one calibration event")
	}
	t.Logf("✓ 60th sample calibrates and enters Charging")

	for rep := 1; rep <= 5; rep++ {
		h.pose(230)
		h.step(1)
		h.expectPhase(core.PhaseCharging)
		h.pose(200)
		h.step(1)
		if rep < 5 {
			h.expectPhase(core.PhaseCharging)
			if p := h.c.Snapshot().Power; p != rep*20 {
				t.Fatalf("rep %d: expected power %d, got %d", rep, rep*20, p)
			}
		}
	}
	h.expectPhase(core.PhaseAssembling)
	if h.count(events.EventRepetitionCompleted) != 5 || h.count(events.EventPowerFull) != 1 {
		t.Errorf("Expected 5 reps and 1 power-full, got %d/%d",
			h.count(events.EventRepetitionCompleted), h.count(events.EventPowerFull))
	}
	ev, _ := h.last(events.EventRepetitionCompleted)
	if p := ev.Payload.(*events.RepetitionPayload); p.Power != 100 || p.Manual {
		t.Errorf("Unexpected repetition payload %+v", p)
	}
	t.Logf("✓ 5 squats -> power 100 -> Assembling")
}

// TestClockExpiryInCharging ends the run mid-squat and keeps power until reset
func TestClockExpiryInCharging(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Round.StartTime = 15 })
	h.toCharging(200)

	h.c.ForceRepetition()
	h.c.ForceRepetition()
	h.step(1)
	h.pose(230) // mid-squat
	for h.c.Phase() == core.PhaseCharging && h.c.Frame() < 10000 {
		h.step(1)
	}
	h.expectPhase(core.PhaseGameOver)
	snap := h.c.Snapshot()
	if snap.Time != 0 || !snap.Expired {
		t.Errorf("Expected expired clock at 0, got %d", snap.Time)
	}
	if snap.Power != 40 {
		t.Errorf("Power should survive until reset, got %d", snap.Power)
	}
	if h.count(events.EventTimeExpired) != 1 {
		t.Errorf("Expected one expiry event, got %d", h.count(events.EventTimeExpired))
	}
	t.Logf("✓ Expired in Charging at frame %d with power %d", h.c.Frame(), snap.Power)

	h.c.Advance()
	h.step(1)
	h.expectPhase(core.PhaseMenu)
	if h.c.Snapshot().Power != 0 || h.c.Snapshot().Time != 15 {
		t.Errorf("Run reset incomplete: power=%d time=%d", h.c.Snapshot().Power, h.c.Snapshot().Time)
	}
	h.toCharging(200)
	if h.c.Snapshot().Power != 0 {
		t.Errorf("New run should start with empty power")
	}
	t.Logf("✓ Restart resets power and clock")
}

// TestExpiryDiscardsFrameInput verifies input queued for the expiry frame is dropped
func TestExpiryDiscardsFrameInput(t *testing.T) {
	h := newHarness(t, func(c *config.Config) {
		c.Round.StartTime = 1
		c.Round.FrameTick = 10
	})
	h.toCharging(200)

	h.step(9 - h.c.clock.SubTicks())
	h.expectPhase(core.PhaseCharging)

	h.c.ForceRepetition()
	h.c.Advance()
	h.step(1)
	h.expectPhase(core.PhaseGameOver)
	if h.c.Snapshot().Power != 0 {
		t.Errorf("Repetition from expiry frame applied: power=%d", h.c.Snapshot().Power)
	}

	h.step(1)
	h.expectPhase(core.PhaseGameOver)
	t.Logf("✓ Expiry frame input discarded")
}

// TestAssemblyServe completes an order and returns to Charging
func TestAssemblyServe(t *testing.T) {
	h := newHarness(t, nil)
	h.toAssembling()

	order := h.c.Snapshot().Order
	if len(order) != 3 {
		t.Fatalf("fixedRand(0) should draw 3 items, got %v", order)
	}
	if h.count(events.EventOrderCreated) != 1 || h.count(events.EventCustomerArrived) != 1 {
		t.Errorf("Expected order and customer events")
	}
	timeBefore := h.c.Snapshot().Time

	for _, ing := range order {
		h.c.Submit(ing)
	}
	h.step(1)
	h.expectPhase(core.PhaseCharging)

	snap := h.c.Snapshot()
	if snap.Score != 100 || snap.Burgers != 1 {
		t.Errorf("Expected score 100 / 1 burger, got %d/%d", snap.Score, snap.Burgers)
	}
	if snap.Time < timeBefore+9 {
		t.Errorf("Expected bonus time, before=%d after=%d", timeBefore, snap.Time)
	}
	if snap.Power != 0 {
		t.Errorf("Charging re-entry should reset power, got %d", snap.Power)
	}
	ev, ok := h.last(events.EventOrderCompleted)
	if !ok {
		t.Fatal("Missing order completed event")
	}
	if p := ev.Payload.(*events.OrderCompletedPayload); p.Score != 100 || p.BurgersCompleted != 1 || p.Items != 3 {
		t.Errorf("Unexpected payload %+v", p)
	}
	if h.count(events.EventCustomerServed) != 1 || h.count(events.EventCustomerArrived) != 2 {
		t.Errorf("Expected served + new arrival, got %d/%d",
			h.count(events.EventCustomerServed), h.count(events.EventCustomerArrived))
	}
	if snap.Leaving != 1 || !snap.HasCustomer || snap.Customer.ID != 2 {
		t.Errorf("Customer hand-off wrong: leaving=%d customer=%+v", snap.Leaving, snap.Customer)
	}
	t.Logf("✓ Served order: score=%d time=%d", snap.Score, snap.Time)
}

// TestAssemblyMismatch resets the stack and keeps the order
func TestAssemblyMismatch(t *testing.T) {
	h := newHarness(t, nil)
	h.toAssembling()
	order := h.c.Snapshot().Order

	h.c.Submit(order[0])
	h.c.Submit(core.IngredientPatty) // fixedRand(0) orders are all Tomato
	h.step(1)
	h.expectPhase(core.PhaseAssembling)

	snap := h.c.Snapshot()
	if len(snap.Stack) != 0 {
		t.Errorf("Stack should be empty, got %v", snap.Stack)
	}
	ev, ok := h.last(events.EventOrderMismatch)
	if !ok {
		t.Fatal("Missing mismatch event")
	}
	p := ev.Payload.(*events.MismatchPayload)
	if p.Expected != core.IngredientTomato || p.Got != core.IngredientPatty || p.Position != 1 {
		t.Errorf("Unexpected mismatch payload %+v", p)
	}
	if h.reg.Ints.Get(status.KeyMismatches).Load() != 1 {
		t.Errorf("Mismatch metric not counted")
	}

	same := h.c.Snapshot().Order
	h.step(30)
	for i := range same {
		if h.c.Snapshot().Order[i] != same[i] {
			t.Fatal("Order redrawn without re-entering Assembling")
		}
	}
	if h.count(events.EventOrderCreated) != 1 {
		t.Errorf("NewOrder must run once per entry, ran %d times", h.count(events.EventOrderCreated))
	}
	t.Logf("✓ Mismatch cleared stack, order kept")
}

// TestInputGating verifies inputs outside their phase are ignored
func TestInputGating(t *testing.T) {
	h := newHarness(t, nil)

	h.c.Submit(core.IngredientTomato)
	h.c.ForceRepetition()
	h.step(1)
	h.expectPhase(core.PhaseMenu)
	if h.count(events.EventRepetitionCompleted) != 0 || h.count(events.EventOrderMismatch) != 0 {
		t.Error("Menu should ignore ingredient and squat inputs")
	}

	h.toAssembling()
	h.c.ForceRepetition()
	h.step(1)
	if h.count(events.EventRepetitionCompleted) != 5 {
		t.Errorf("Manual squat in Assembling should be ignored, reps=%d", h.count(events.EventRepetitionCompleted))
	}

	h.c.Recalibrate()
	h.step(1)
	h.expectPhase(core.PhaseAssembling)
	t.Logf("✓ Inputs gated by phase")
}

// TestCustomerPatience ends the run when the customer walks out
func TestCustomerPatience(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Round.StartTime = 100 })
	h.toAssembling()

	h.step(299)
	if h.count(events.EventCustomerAngry) != 0 {
		t.Fatal("Angry too early")
	}
	h.step(1)
	if h.count(events.EventCustomerAngry) != 1 {
		t.Fatal("Expected angry at 300 ticks")
	}
	if !h.reg.Bools.Get(status.KeyCustomerMad).Load() {
		t.Error("Angry metric not set")
	}
	t.Logf("✓ Customer angry after 300 ticks")

	h.step(299)
	h.expectPhase(core.PhaseAssembling)
	h.c.Advance()
	h.step(1)
	h.expectPhase(core.PhaseGameOver)
	if h.count(events.EventCustomerLeft) != 1 {
		t.Errorf("Expected one customer-left event")
	}
	h.step(1)
	h.expectPhase(core.PhaseGameOver)
	t.Logf("✓ Customer left at 600 ticks -> GameOver, same-frame advance discarded")
}

// TestPatienceIdleOutsideAssembly verifies waiting in Charging does not count
func TestPatienceIdleOutsideAssembly(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Round.StartTime = 100 })
	h.toCharging(200)
	h.step(700)
	h.expectPhase(core.PhaseCharging)
	if h.count(events.EventCustomerAngry) != 0 || h.c.Snapshot().Customer.Waited != 0 {
		t.Errorf("Patience accrued outside Assembling")
	}
	t.Logf("✓ Customer waits patiently while charging")
}

// TestRecalibrate restarts calibration from Charging and Calibration
func TestRecalibrate(t *testing.T) {
	h := newHarness(t, nil)
	h.toCalibration()
	h.pose(200)
	h.step(30)

	h.c.Recalibrate()
	h.step(1)
	h.expectPhase(core.PhaseCalibration)
	if s := h.c.Snapshot().Samples; s != 1 {
		t.Fatalf("Re-entry should restart accumulation, samples=%d", s)
	}
	t.Logf("✓ Recalibrate in Calibration restarts accumulation")

	h.step(59)
	h.expectPhase(core.PhaseCharging)
	h.c.ForceRepetition()
	h.step(1)

	h.c.Recalibrate()
	h.step(1)
	h.expectPhase(core.PhaseCalibration)
	if h.c.Snapshot().Calibrated {
		t.Error("Recalibrate should clear calibration")
	}
	h.step(60)
	h.expectPhase(core.PhaseCharging)
	if h.c.Snapshot().Power != 0 {
		t.Errorf("Charging re-entry should reset power")
	}
	t.Logf("✓ Recalibrate from Charging")
}

// TestInstructionsTimeout auto-advances after the configured ticks
func TestInstructionsTimeout(t *testing.T) {
	h := newHarness(t, nil)
	h.c.Advance()
	h.step(1)
	h.expectPhase(core.PhaseInstructions)

	h.step(478)
	h.expectPhase(core.PhaseInstructions)
	h.step(1)
	h.expectPhase(core.PhaseCalibration)
	t.Logf("✓ Instructions timed out after 480 ticks")
}

// TestNoPoseWaitsForever verifies calibration never completes without hips
func TestNoPoseWaitsForever(t *testing.T) {
	h := newHarness(t, nil)
	h.toCalibration()
	h.step(5000)
	h.expectPhase(core.PhaseCalibration)
	if h.c.Snapshot().Message == "" {
		t.Error("Expected waiting message")
	}
	t.Logf("✓ Calibration waits: %q", h.c.Snapshot().Message)
}

// TestSensorlessCalibrates verifies the synthetic pose completes calibration
func TestSensorlessCalibrates(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Sensorless = true })
	h.toCalibration()
	h.step(59)
	h.expectPhase(core.PhaseCharging)
	t.Logf("✓ Sensorless mode calibrates on synthetic pose")
}

// TestStagedConfigAppliesOnReset verifies rules change only between runs
func TestStagedConfigAppliesOnReset(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Round.StartTime = 2 })
	h.toCharging(200)

	next := config.Default()
	next.Round.StartTime = 30
	h.c.StageConfig(next)

	h.step(200)
	h.expectPhase(core.PhaseGameOver)
	if h.c.Config().Round.StartTime != 2 {
		t.Error("Staged config applied mid-run")
	}

	runID := h.c.Snapshot().RunID
	h.c.Advance()
	h.step(1)
	h.expectPhase(core.PhaseMenu)
	snap := h.c.Snapshot()
	if snap.Time != 30 || h.c.Config().Round.StartTime != 30 {
		t.Errorf("Staged config not applied: time=%d", snap.Time)
	}
	if snap.RunID == runID {
		t.Error("Run id should change on reset")
	}
	t.Logf("✓ Staged config applied at reset, run %s -> %s", runID, snap.RunID)
}

// TestPhaseChangedEvents verifies every transition is announced in order
func TestPhaseChangedEvents(t *testing.T) {
	h := newHarness(t, nil)
	h.toAssembling()

	var path []string
	for _, ev := range h.seen {
		if ev.Type == events.EventPhaseChanged {
			p := ev.Payload.(*events.PhaseChangedPayload)
			path = append(path, p.From.String()+">"+p.To.String())
		}
	}
	want := "Menu>Instructions Instructions>Calibration Calibration>Charging Charging>Assembling"
	if got := strings.Join(path, " "); got != want {
		t.Errorf("Phase path:\n got  %s\n want %s", got, want)
	}
	t.Logf("✓ %s", strings.Join(path, " -> "))
}

func TestCustomGraphRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phases.yaml")
	graph := "initial: Menu\nstates:\n  Menu:\n    on_enter:\n      - action: ResetRun\n"
	if err := os.WriteFile(path, []byte(graph), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewController(Options{Random: fixedRand(0), GraphPath: path})
	if err == nil || !strings.Contains(err.Error(), "missing state") {
		t.Errorf("Expected missing phase error, got %v", err)
	}

	bad := config.Default()
	bad.Orders.MaxItems = 1
	if _, err := NewController(Options{Config: bad}); err == nil {
		t.Error("Expected invalid config error")
	}
	t.Logf("✓ Incomplete graph and invalid config rejected")
}
