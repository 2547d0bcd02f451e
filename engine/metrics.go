package engine

import (
	"sync/atomic"

	"github.com/lixenwraith/panic-burger/status"
)

// controllerMetrics caches registry pointers written once per frame
type controllerMetrics struct {
	phase      *status.AtomicString
	runID      *status.AtomicString
	message    *status.AtomicString
	frame      *atomic.Int64
	time       *atomic.Int64
	score      *atomic.Int64
	burgers    *atomic.Int64
	power      *atomic.Int64
	reps       *atomic.Int64
	mismatches *atomic.Int64
	orderLen   *atomic.Int64
	stackLen   *atomic.Int64
	customerID *atomic.Int64
	dropped    *atomic.Int64
	poses      *atomic.Int64
	calibrated *atomic.Bool
	angry      *atomic.Bool
	baselineY  *status.AtomicFloat
	hipY       *status.AtomicFloat
}

func newControllerMetrics(reg *status.Registry) controllerMetrics {
	return controllerMetrics{
		phase:      reg.Strings.Get(status.KeyPhase),
		runID:      reg.Strings.Get(status.KeyRunID),
		message:    reg.Strings.Get(status.KeyMessage),
		frame:      reg.Ints.Get(status.KeyFrame),
		time:       reg.Ints.Get(status.KeyTime),
		score:      reg.Ints.Get(status.KeyScore),
		burgers:    reg.Ints.Get(status.KeyBurgers),
		power:      reg.Ints.Get(status.KeyPower),
		reps:       reg.Ints.Get(status.KeyReps),
		mismatches: reg.Ints.Get(status.KeyMismatches),
		orderLen:   reg.Ints.Get(status.KeyOrderLen),
		stackLen:   reg.Ints.Get(status.KeyStackLen),
		customerID: reg.Ints.Get(status.KeyCustomerID),
		dropped:    reg.Ints.Get(status.KeyDropped),
		poses:      reg.Ints.Get(status.KeyPoses),
		calibrated: reg.Bools.Get(status.KeyCalibrated),
		angry:      reg.Bools.Get(status.KeyCustomerMad),
		baselineY:  reg.Floats.Get(status.KeyBaselineY),
		hipY:       reg.Floats.Get(status.KeyHipY),
	}
}

func (m *controllerMetrics) publish(c *Controller) {
	m.phase.Store(c.phase.String())
	m.runID.Store(c.runID)
	m.message.Store(c.detector.Message())
	m.frame.Store(c.frame.Load())
	m.time.Store(int64(c.clock.Time()))
	m.score.Store(int64(c.score))
	m.burgers.Store(int64(c.burgers))
	m.power.Store(int64(c.detector.Power()))
	m.orderLen.Store(int64(c.orders.OrderLen()))
	m.stackLen.Store(int64(c.orders.StackLen()))
	m.dropped.Store(int64(c.input.Dropped()))
	m.calibrated.Store(c.detector.Calibrated())
	m.baselineY.Store(c.detector.BaselineY())
	m.hipY.Store(c.detector.LastY())

	cu, ok := c.patience.Active()
	m.customerID.Store(int64(cu.ID))
	m.angry.Store(ok && cu.Angry)
}
