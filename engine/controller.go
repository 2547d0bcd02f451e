package engine

import (
	_ "embed"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/panic-burger/config"
	"github.com/lixenwraith/panic-burger/constants"
	"github.com/lixenwraith/panic-burger/core"
	"github.com/lixenwraith/panic-burger/engine/fsm"
	"github.com/lixenwraith/panic-burger/events"
	"github.com/lixenwraith/panic-burger/status"
	"github.com/lixenwraith/panic-burger/systems"
)

//go:embed phases.yaml
var DefaultGraph []byte

// Options wires the controller's collaborators
// Zero values select defaults: config.Default(), zerolog.Nop(), a seeded PCG source, a fresh registry
type Options struct {
	Config    *config.Config
	Logger    *zerolog.Logger
	Random    systems.RandomSource
	Status    *status.Registry
	GraphPath string // external phase graph; empty uses the embedded one
}

// Controller owns the phase machine and drives the mini-engines once per frame
// Update, Snapshot and Outbound draining belong to the frame goroutine
// Input methods and PublishPose are safe from any goroutine
type Controller struct {
	cfg    *config.Config
	staged atomic.Pointer[config.Config]
	log    zerolog.Logger

	machine *fsm.Machine[*Controller]
	phaseOf map[fsm.StateID]core.Phase
	phase   core.Phase

	detector *systems.PowerDetector
	orders   *systems.OrderEngine
	clock    *systems.RoundClock
	patience *systems.Patience

	input  *events.Queue
	output *events.Queue
	inbox  []events.GameEvent
	pose   atomic.Pointer[core.Pose]
	frame  atomic.Int64

	runID   string
	score   int
	burgers int

	metrics controllerMetrics
}

// NewController builds the controller, loads the phase graph and enters the initial phase
func NewController(opts Options) (*Controller, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("component", "controller").Logger()
	}

	rng := opts.Random
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		logger.Debug().Uint64("seed", seed).Msg("random source seeded")
		rng = systems.NewRandom(seed)
	}

	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	c := &Controller{
		cfg:      cfg,
		log:      logger,
		machine:  fsm.NewMachine[*Controller](),
		phaseOf:  make(map[fsm.StateID]core.Phase, core.PhaseCount),
		detector: systems.NewPowerDetector(cfg.Detector()),
		orders:   systems.NewOrderEngine(rng, cfg.Orders.MinItems, cfg.Orders.MaxItems),
		clock:    systems.NewRoundClock(cfg.Round.StartTime, cfg.Round.FrameTick),
		patience: systems.NewPatience(cfg.PatienceRules(), rng),
		input:    events.NewQueue(),
		output:   events.NewQueue(),
		inbox:    make([]events.GameEvent, 0, constants.EventQueueSize),
		metrics:  newControllerMetrics(reg),
	}

	registerPhaseComponents(c.machine)
	src, err := fsm.LoadConfigAuto(c.machine, opts.GraphPath, DefaultGraph)
	if err != nil {
		return nil, fmt.Errorf("failed to load phase graph: %w", err)
	}
	if err := c.bindPhases(); err != nil {
		return nil, fmt.Errorf("phase graph %s: %w", src, err)
	}
	c.machine.OnTransition = (*Controller).onTransition
	c.log.Info().Str("graph", src).Msg("phase graph loaded")

	if err := c.machine.Init(c); err != nil {
		return nil, fmt.Errorf("failed to init phase machine: %w", err)
	}
	c.metrics.publish(c)
	return c, nil
}

// bindPhases maps every game phase onto a graph state
func (c *Controller) bindPhases() error {
	for p := core.PhaseMenu; p < core.PhaseCount; p++ {
		id, ok := c.machine.GetStateID(p.String())
		if !ok {
			return fmt.Errorf("missing state for phase %s", p)
		}
		c.phaseOf[id] = p
	}
	return nil
}

func (c *Controller) onTransition(from, to fsm.StateID) {
	next, ok := c.phaseOf[to]
	if !ok {
		// Composite states are never a leaf
		c.log.Error().Str("state", c.machine.StateName(to)).Msg("transition to non-phase state")
		return
	}
	prev := c.phase
	c.phase = next
	if from == fsm.StateNone {
		return
	}
	c.emit(events.EventPhaseChanged, &events.PhaseChangedPayload{From: prev, To: next})
	c.log.Debug().
		Str("from", prev.String()).
		Str("to", next.String()).
		Int64("frame", c.frame.Load()).
		Msg("phase changed")
}

// Update advances the game by one frame
// Order: clock, customer patience, queued input, phase update and guarded transitions
func (c *Controller) Update() {
	c.frame.Add(1)
	defer c.metrics.publish(c)

	if c.phase.ClockRunning() && c.clock.Tick() {
		c.emit(events.EventTimeExpired, nil)
		c.machine.HandleEvent(c, events.EventTimeExpired)
		c.discardInput()
		return
	}

	if res := c.patience.Tick(c.phase == core.PhaseAssembling); res.Angry || res.Left {
		payload := customerPayload(res.Customer)
		if res.Angry {
			c.emit(events.EventCustomerAngry, payload)
		}
		if res.Left {
			c.emit(events.EventCustomerLeft, payload)
			if c.machine.HandleEvent(c, events.EventCustomerLeft) {
				c.discardInput()
				return
			}
		}
	}

	c.inbox = c.input.Drain(c.inbox[:0])
	for i := range c.inbox {
		c.handleInput(c.inbox[i])
	}

	c.machine.Update(c)
}

func (c *Controller) discardInput() {
	c.inbox = c.input.Drain(c.inbox[:0])
	if n := len(c.inbox); n > 0 {
		c.log.Debug().Int("count", n).Msg("input discarded on phase exit")
	}
}

func (c *Controller) handleInput(ev events.GameEvent) {
	switch ev.Type {
	case events.EventAdvance, events.EventRecalibrate:
		c.machine.HandleEvent(c, ev.Type)

	case events.EventForceRepetition:
		if c.phase == core.PhaseCharging {
			c.applyDetector(c.detector.ForceRepetition(), true)
		}

	case events.EventIngredientSelected:
		if c.phase != core.PhaseAssembling {
			return
		}
		ing := core.IngredientUnknown
		if p, ok := ev.Payload.(*events.IngredientPayload); ok {
			ing = p.Ingredient
		}
		c.submit(ing)
	}
}

func (c *Controller) submit(ing core.Ingredient) {
	out := c.orders.Submit(ing)
	switch out.Result {
	case systems.SubmitMismatch:
		c.metrics.mismatches.Add(1)
		c.emit(events.EventOrderMismatch, &events.MismatchPayload{
			Expected: out.Expected,
			Got:      ing,
			Position: out.Position,
		})
	case systems.SubmitCompleted:
		c.log.Debug().Int("items", c.orders.StackLen()).Msg("order assembled")
	}
}

// applyDetector turns detector results into outbound events
func (c *Controller) applyDetector(res systems.DetectorResult, manual bool) {
	if res.Calibrated {
		c.emit(events.EventCalibrationComplete, &events.CalibrationPayload{
			BaselineY: c.detector.BaselineY(),
			Samples:   c.detector.Samples(),
		})
		c.log.Info().Float64("baseline_y", c.detector.BaselineY()).Msg("calibration complete")
	}
	if res.Repetition {
		c.metrics.reps.Add(1)
		c.emit(events.EventRepetitionCompleted, &events.RepetitionPayload{
			Power:  c.detector.Power(),
			Manual: manual,
		})
	}
	if res.PowerFull {
		c.emit(events.EventPowerFull, nil)
	}
}

func (c *Controller) emit(t events.EventType, payload any) {
	c.output.Emit(t, payload, c.frame.Load())
}

func customerPayload(cu systems.Customer) *events.CustomerPayload {
	return &events.CustomerPayload{ID: cu.ID, Kind: cu.Kind, Waited: cu.Waited}
}

// Submit queues an ingredient press
func (c *Controller) Submit(ing core.Ingredient) {
	c.input.Emit(events.EventIngredientSelected, &events.IngredientPayload{Ingredient: ing}, c.frame.Load())
}

// Advance queues the start/continue/restart input
func (c *Controller) Advance() {
	c.input.Emit(events.EventAdvance, nil, c.frame.Load())
}

// ForceRepetition queues the operator squat override
func (c *Controller) ForceRepetition() {
	c.input.Emit(events.EventForceRepetition, nil, c.frame.Load())
}

// Recalibrate queues a baseline re-measure
func (c *Controller) Recalibrate() {
	c.input.Emit(events.EventRecalibrate, nil, c.frame.Load())
}

// PublishPose replaces the latest pose; the newest sample wins
func (c *Controller) PublishPose(p core.Pose) {
	cp := core.Pose{Keypoints: slices.Clone(p.Keypoints)}
	c.pose.Store(&cp)
	c.metrics.poses.Add(1)
}

// StageConfig holds cfg until the next run reset so rules never change mid-run
func (c *Controller) StageConfig(cfg *config.Config) {
	c.staged.Store(cfg.Clone())
	c.log.Info().Msg("config staged for next run")
}

// Outbound is the queue of events for presentation and audio collaborators
func (c *Controller) Outbound() *events.Queue {
	return c.output
}

// Phase returns the active phase
func (c *Controller) Phase() core.Phase {
	return c.phase
}

// Frame returns the number of Update calls so far
func (c *Controller) Frame() int64 {
	return c.frame.Load()
}

// Config returns the rules of the current run
func (c *Controller) Config() *config.Config {
	return c.cfg
}

// InputDropped counts inputs lost to queue overflow
func (c *Controller) InputDropped() uint64 {
	return c.input.Dropped()
}

// applyConfig swaps tunables on every mini-engine
func (c *Controller) applyConfig(cfg *config.Config) {
	c.cfg = cfg
	c.detector.SetConfig(cfg.Detector())
	c.orders.SetBounds(cfg.Orders.MinItems, cfg.Orders.MaxItems)
	c.clock.SetFrameTick(cfg.Round.FrameTick)
	c.patience.SetConfig(cfg.PatienceRules())
	c.log.Info().Int("start_time", cfg.Round.StartTime).Msg("staged config applied")
}

// newRunID is swapped in tests
var newRunID = uuid.NewString
