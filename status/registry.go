package status

import "sync/atomic"

// Metric keys published by the controller
const (
	KeyPhase       = "phase"
	KeyRunID       = "run.id"
	KeyFrame       = "frame"
	KeyTime        = "clock.time"
	KeyScore       = "score"
	KeyBurgers     = "burgers"
	KeyPower       = "power"
	KeyCalibrated  = "detector.calibrated"
	KeyBaselineY   = "detector.baseline_y"
	KeyHipY        = "detector.hip_y"
	KeyMessage     = "detector.message"
	KeyReps        = "detector.reps"
	KeyMismatches  = "order.mismatches"
	KeyOrderLen    = "order.length"
	KeyStackLen    = "order.stack"
	KeyCustomerID  = "customer.id"
	KeyCustomerMad = "customer.angry"
	KeyDropped     = "events.dropped"
	KeyPoses       = "feed.poses"
	KeyMuted       = "audio.muted"
)

// Registry is the central metrics facade
// Writers cache pointers once; frame updates store straight into the atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot copies every metric into a plain map suitable for JSON
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Load() })
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	return out
}
