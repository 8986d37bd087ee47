package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/canteen-sim/canteen-sim/sim/stats"
)

// EntityState tracks an entity's position in the service line.
type EntityState int

const (
	StateArrived EntityState = iota
	StateAcquiringSide
	StateTransporting
	StateAcquiringRice
	StateQueuedForService
	StateServing
	StateDeparted
)

func (s EntityState) String() string {
	switch s {
	case StateArrived:
		return "arrived"
	case StateAcquiringSide:
		return "acquiring_side"
	case StateTransporting:
		return "transporting"
	case StateAcquiringRice:
		return "acquiring_rice"
	case StateQueuedForService:
		return "queued_for_service"
	case StateServing:
		return "serving"
	case StateDeparted:
		return "departed"
	default:
		return "unknown"
	}
}

// Entity is one person traversing the line. Its traversal is an explicit
// state machine: each method below is one state transition, resumed by the
// scheduler when the blocking step it was waiting on (a pool grant, a timed
// hold, a buffer drain) completes. Transitions never skip or reorder, and
// every held slot is released exactly once.
type Entity struct {
	ID    int
	State EntityState

	ArrivedAt       float64
	QueueJoinedAt   float64
	ServiceStartAt  float64
	ServiceDuration float64
	Group           int
}

// spawnEntity creates the entity and starts it at the side-dish counter.
func (sim *Simulator) spawnEntity(id int) {
	e := &Entity{ID: id, State: StateArrived, ArrivedAt: sim.Clock}
	e.acquireSide(sim)
}

func (e *Entity) acquireSide(sim *Simulator) {
	e.State = StateAcquiringSide
	sim.SidePool.Request(sim, e.serveSide)
}

// serveSide runs once the side-dish slot is granted.
func (e *Entity) serveSide(sim *Simulator) {
	sim.hold(sim.sideHold, e.finishSide)
}

func (e *Entity) finishSide(sim *Simulator) {
	sim.SidePool.Release(sim)
	e.State = StateTransporting
	sim.Buffer.Put(sim, e.ID, e.acquireRice)
}

func (e *Entity) acquireRice(sim *Simulator) {
	e.State = StateAcquiringRice
	sim.RicePool.Request(sim, e.serveRice)
}

// serveRice runs once the rice slot is granted.
func (e *Entity) serveRice(sim *Simulator) {
	sim.hold(sim.riceHold, e.finishRice)
}

func (e *Entity) finishRice(sim *Simulator) {
	sim.RicePool.Release(sim)
	e.joinQueue(sim)
}

// joinQueue enters the main queue: the queue-length sample is recorded at
// this instant, the balancer is consulted once, and the entity requests the
// chosen group. Occupancy may change before the grant; the pool's FIFO order
// resolves any same-choice collisions.
func (e *Entity) joinQueue(sim *Simulator) {
	e.State = StateQueuedForService
	e.QueueJoinedAt = sim.Clock
	sim.mainQueueLen++
	sim.Collector.RecordQueueSample(sim.Clock, sim.mainQueueLen)
	e.Group = sim.balancer.SelectGroup(sim.Groups)
	sim.Groups[e.Group].Request(sim, e.beginService)
}

// beginService runs once a staff slot is granted. The service duration is
// drawn here, at service start, from the shared stream.
func (e *Entity) beginService(sim *Simulator) {
	e.State = StateServing
	e.ServiceStartAt = sim.Clock
	e.ServiceDuration = sim.service.Sample(sim.rand)
	sim.ScheduleAfter(e.ServiceDuration, e.depart)
}

// depart releases the staff slot, leaves the main queue, and finalizes the
// entity's record.
func (e *Entity) depart(sim *Simulator) {
	sim.Groups[e.Group].Release(sim)
	sim.mainQueueLen--
	if sim.mainQueueLen < 0 {
		violate("main queue length went negative at %.4f", sim.Clock)
	}
	e.State = StateDeparted
	sim.Collector.RecordDeparture(stats.EntityRecord{
		ID:              e.ID,
		ArrivedAt:       e.ArrivedAt,
		QueueJoinedAt:   e.QueueJoinedAt,
		ServiceStartAt:  e.ServiceStartAt,
		CompletedAt:     sim.Clock,
		Wait:            e.ServiceStartAt - e.QueueJoinedAt,
		ServiceDuration: e.ServiceDuration,
		Group:           e.Group,
	})
	logrus.Infof(">> departed: entity %d at %.4f (group %d, waited %.4f)",
		e.ID, sim.Clock, e.Group, e.ServiceStartAt-e.QueueJoinedAt)
}
