package sim

import "github.com/sirupsen/logrus"

// ResourcePool is a capacity-bounded, FIFO-granting resource: the side-dish
// counter, the tray transport, the rice counter, and each staff group are all
// pools. Occupancy never exceeds capacity and never goes negative; breaking
// either aborts the run.
type ResourcePool struct {
	name      string
	capacity  int
	occupancy int
	waiters   []func(*Simulator) // FIFO wait list of suspended requesters
}

// NewResourcePool creates a pool with the given fixed capacity.
// Non-positive capacity is a configuration error, reported here rather than
// at request time.
func NewResourcePool(name string, capacity int) (*ResourcePool, error) {
	if capacity <= 0 {
		return nil, errInvalidConfig("pool %s: capacity must be positive, got %d", name, capacity)
	}
	return &ResourcePool{name: name, capacity: capacity}, nil
}

// Request suspends the caller until a slot is available. The resume
// continuation runs at the instant the slot is granted. Grants are strictly
// FIFO among waiters; requests arriving at the same simulated instant are
// granted in scheduling order.
func (p *ResourcePool) Request(sim *Simulator, resume func(*Simulator)) {
	if p.occupancy < p.capacity {
		p.grant(sim, resume)
		return
	}
	p.waiters = append(p.waiters, resume)
	logrus.Debugf("pool %s: full (%d/%d), %d waiting", p.name, p.occupancy, p.capacity, len(p.waiters))
}

// Release returns a slot. If anyone is waiting, the slot is granted to the
// head waiter at the same instant — no simulated time passes in between.
func (p *ResourcePool) Release(sim *Simulator) {
	p.occupancy--
	if p.occupancy < 0 {
		violate("pool %s: released below zero occupancy", p.name)
	}
	if len(p.waiters) > 0 {
		next := p.waiters[0]
		p.waiters = p.waiters[1:]
		p.grant(sim, next)
	}
}

// grant takes a slot and schedules the resume continuation at the current
// instant, so the grantee re-enters through the scheduler like every other
// resumption.
func (p *ResourcePool) grant(sim *Simulator, resume func(*Simulator)) {
	p.occupancy++
	if p.occupancy > p.capacity {
		violate("pool %s: occupancy %d exceeds capacity %d", p.name, p.occupancy, p.capacity)
	}
	sim.resumeNow(resume)
}

// Name returns the pool's identifier.
func (p *ResourcePool) Name() string { return p.name }

// Capacity returns the fixed slot count.
func (p *ResourcePool) Capacity() int { return p.capacity }

// Occupancy returns the number of currently-held slots.
func (p *ResourcePool) Occupancy() int { return p.occupancy }

// Waiting returns the number of suspended requesters.
func (p *ResourcePool) Waiting() int { return len(p.waiters) }
