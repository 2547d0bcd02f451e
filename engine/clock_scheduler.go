package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/panic-burger/core"
	"github.com/lixenwraith/panic-burger/events"
)

// Presenter draws one frame; called on the scheduler goroutine after event dispatch
type Presenter interface {
	Present(s Snapshot)
}

// PresenterFunc adapts a function into a Presenter
type PresenterFunc func(s Snapshot)

func (f PresenterFunc) Present(s Snapshot) { f(s) }

// ClockScheduler runs the controller on a fixed tick
// Each tick: controller update, outbound event dispatch, present
type ClockScheduler struct {
	ctrl      *Controller
	router    *events.Router[Snapshot]
	presenter Presenter
	log       zerolog.Logger

	tickInterval     time.Duration
	nextTickDeadline time.Time

	// Runs on the scheduler goroutine before each Update
	beforeTick []func()

	tickCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewClockScheduler creates a scheduler for ctrl ticking every tickInterval
func NewClockScheduler(ctrl *Controller, tickInterval time.Duration, logger zerolog.Logger) *ClockScheduler {
	return &ClockScheduler{
		ctrl:         ctrl,
		router:       events.NewRouter[Snapshot](ctrl.Outbound()),
		log:          logger.With().Str("component", "scheduler").Logger(),
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
	}
}

// RegisterEventHandler adds an outbound event handler, must be called before Start()
func (cs *ClockScheduler) RegisterEventHandler(handler events.Handler[Snapshot]) {
	cs.router.Register(handler)
}

// SetPresenter installs the frame presenter, must be called before Start()
func (cs *ClockScheduler) SetPresenter(p Presenter) {
	cs.presenter = p
}

// BeforeTick adds a hook run on the scheduler goroutine ahead of each update, must be called before Start()
func (cs *ClockScheduler) BeforeTick(fn func()) {
	cs.beforeTick = append(cs.beforeTick, fn)
}

// Step executes one tick synchronously and returns the presented snapshot
func (cs *ClockScheduler) Step() Snapshot {
	for _, fn := range cs.beforeTick {
		fn()
	}

	cs.ctrl.Update()
	snap := cs.ctrl.Snapshot()
	cs.router.DispatchAll(snap)
	if cs.presenter != nil {
		cs.presenter.Present(snap)
	}

	cs.tickCount.Add(1)
	return snap
}

// TickCount returns the number of executed ticks
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for the current tick
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// schedulerLoop ticks against absolute deadlines to avoid drift
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.nextTickDeadline = time.Now().Add(cs.tickInterval)
	timer := time.NewTimer(cs.tickInterval)
	defer timer.Stop()

	cs.log.Debug().Dur("interval", cs.tickInterval).Msg("scheduler started")

	for {
		select {
		case <-cs.stopChan:
			cs.log.Debug().Uint64("ticks", cs.tickCount.Load()).Msg("scheduler stopped")
			return
		case <-timer.C:
		}

		now := time.Now()
		cs.Step()

		cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
		// Skip ahead instead of bursting after a stall
		if maxBehind := cs.tickInterval * 2; now.Sub(cs.nextTickDeadline) > maxBehind {
			cs.log.Warn().Dur("behind", now.Sub(cs.nextTickDeadline)).Msg("scheduler fell behind")
			cs.nextTickDeadline = now.Add(cs.tickInterval)
		}

		timer.Reset(max(time.Until(cs.nextTickDeadline), 0))
	}
}
