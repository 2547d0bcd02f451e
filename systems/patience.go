package systems

import "github.com/lixenwraith/panic-burger/constants"

// CustomerKinds is the number of customer looks
const CustomerKinds = 2

// Customer is one patron at the counter
type Customer struct {
	ID     int
	Kind   int
	Waited int // ticks spent waiting for an order
	Angry  bool
	Served bool
	Exit   int // ticks since leaving started
}

// PatienceConfig holds the patience thresholds in ticks
type PatienceConfig struct {
	AngryTicks int
	LeaveTicks int
	ExitTicks  int
}

// DefaultPatienceConfig returns the patience defaults from constants
func DefaultPatienceConfig() PatienceConfig {
	return PatienceConfig{
		AngryTicks: constants.CustomerAngryTicks,
		LeaveTicks: constants.CustomerLeaveTicks,
		ExitTicks:  constants.CustomerExitTicks,
	}
}

// PatienceResult reports thresholds crossed on one tick
type PatienceResult struct {
	Angry    bool
	Left     bool
	Customer Customer
}

// Patience tracks one waiting customer plus those walking out
type Patience struct {
	cfg PatienceConfig
	rng RandomSource

	nextID  int
	active  *Customer
	leaving []Customer
}

// NewPatience creates an empty counter
func NewPatience(cfg PatienceConfig, rng RandomSource) *Patience {
	return &Patience{cfg: cfg, rng: rng, nextID: 1}
}

func (p *Patience) SetConfig(cfg PatienceConfig) {
	p.cfg = cfg
}

// Arrive seats a new customer unless one is already waiting
func (p *Patience) Arrive() (Customer, bool) {
	if p.active != nil {
		return *p.active, false
	}
	p.active = &Customer{ID: p.nextID, Kind: p.rng.IntN(CustomerKinds)}
	p.nextID++
	return *p.active, true
}

// Tick ages the leaving list and, when accrue is set, the waiting customer
func (p *Patience) Tick(accrue bool) PatienceResult {
	p.prune()

	if !accrue || p.active == nil {
		return PatienceResult{}
	}

	c := p.active
	c.Waited++
	var res PatienceResult
	if !c.Angry && c.Waited >= p.cfg.AngryTicks {
		c.Angry = true
		res.Angry = true
	}
	if c.Waited >= p.cfg.LeaveTicks {
		res.Left = true
		p.startLeaving()
	}
	res.Customer = *c
	return res
}

// Serve sends the waiting customer away happy
func (p *Patience) Serve() (Customer, bool) {
	if p.active == nil {
		return Customer{}, false
	}
	p.active.Served = true
	c := *p.active
	p.startLeaving()
	return c, true
}

func (p *Patience) startLeaving() {
	p.leaving = append(p.leaving, *p.active)
	p.active = nil
}

func (p *Patience) prune() {
	kept := p.leaving[:0]
	for _, c := range p.leaving {
		c.Exit++
		if c.Exit < p.cfg.ExitTicks {
			kept = append(kept, c)
		}
	}
	p.leaving = kept
}

// Reset clears every customer; ids keep counting
func (p *Patience) Reset() {
	p.active = nil
	p.leaving = p.leaving[:0]
}

// Active returns the waiting customer
func (p *Patience) Active() (Customer, bool) {
	if p.active == nil {
		return Customer{}, false
	}
	return *p.active, true
}

// Leaving returns a copy of the customers walking out
func (p *Patience) Leaving() []Customer {
	return append([]Customer(nil), p.leaving...)
}
