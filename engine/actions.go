package engine

import (
	"github.com/lixenwraith/panic-burger/constants"
	"github.com/lixenwraith/panic-burger/core"
	"github.com/lixenwraith/panic-burger/engine/fsm"
	"github.com/lixenwraith/panic-burger/events"
)

// registerPhaseComponents binds graph action and guard names to controller methods
func registerPhaseComponents(m *fsm.Machine[*Controller]) {
	// Actions
	m.RegisterAction("ResetRun", (*Controller).resetRun)
	m.RegisterAction("StartCalibration", (*Controller).startCalibration)
	m.RegisterAction("DetectPower", (*Controller).detectPower)
	m.RegisterAction("ResetPower", (*Controller).resetPower)
	m.RegisterAction("CustomerArrive", (*Controller).customerArrive)
	m.RegisterAction("NewOrder", (*Controller).newOrder)
	m.RegisterAction("ServeOrder", (*Controller).serveOrder)
	m.RegisterAction("EndRun", (*Controller).endRun)

	// Guards
	m.RegisterGuard("InstructionsTimedOut", func(c *Controller) bool {
		return c.machine.TicksInState() >= c.cfg.Round.InstructionsTimeoutTicks
	})
	m.RegisterGuard("Calibrated", func(c *Controller) bool {
		return c.detector.Calibrated()
	})
	m.RegisterGuard("PowerFull", func(c *Controller) bool {
		return c.detector.IsFullPower()
	})
	m.RegisterGuard("OrderComplete", func(c *Controller) bool {
		return c.orders.Complete()
	})
}

// resetRun starts a fresh run: staged config, clock, counters, customers
func (c *Controller) resetRun() {
	if cfg := c.staged.Swap(nil); cfg != nil {
		c.applyConfig(cfg)
	}

	c.clock.Reset(c.cfg.Round.StartTime)
	c.score = 0
	c.burgers = 0
	c.detector.ResetPower()
	c.patience.Reset()
	c.runID = newRunID()

	if c.cfg.Sensorless {
		c.PublishPose(core.StandingPose(constants.SensorlessHipY))
	}

	c.log.Info().
		Str("run_id", c.runID).
		Int("start_time", c.cfg.Round.StartTime).
		Msg("run reset")
}

func (c *Controller) startCalibration() {
	c.detector.StartCalibration()
}

// detectPower feeds the latest pose to the detector; the pose is not consumed
func (c *Controller) detectPower() {
	c.applyDetector(c.detector.Update(c.pose.Load()), false)
}

func (c *Controller) resetPower() {
	c.detector.ResetPower()
}

func (c *Controller) customerArrive() {
	if cu, arrived := c.patience.Arrive(); arrived {
		c.emit(events.EventCustomerArrived, customerPayload(cu))
	}
}

func (c *Controller) newOrder() {
	items := c.orders.NewOrder()
	c.emit(events.EventOrderCreated, &events.OrderPayload{Items: items})
	c.log.Debug().Int("items", len(items)).Msg("order created")
}

// serveOrder scores the completed order on the Assembling -> Charging edge
func (c *Controller) serveOrder() {
	c.score += c.cfg.Round.OrderScore
	c.burgers++
	c.clock.AddBonus(c.cfg.Round.OrderBonusSeconds)

	c.emit(events.EventOrderCompleted, &events.OrderCompletedPayload{
		Items:            c.orders.StackLen(),
		Score:            c.score,
		BurgersCompleted: c.burgers,
		TimeRemaining:    c.clock.Time(),
	})
	if cu, ok := c.patience.Serve(); ok {
		c.emit(events.EventCustomerServed, customerPayload(cu))
	}

	c.log.Info().
		Int("score", c.score).
		Int("burgers", c.burgers).
		Int("time", c.clock.Time()).
		Msg("order served")
}

func (c *Controller) endRun() {
	c.log.Info().
		Str("run_id", c.runID).
		Int("score", c.score).
		Int("burgers", c.burgers).
		Int64("frame", c.frame.Load()).
		Msg("game over")
}
