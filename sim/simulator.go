// sim/simulator.go
package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/canteen-sim/canteen-sim/sim/dist"
	"github.com/canteen-sim/canteen-sim/sim/stats"
)

// Simulator is the core object that holds simulated time, system state, and
// the event loop. Scheduling is single-threaded and cooperative: exactly one
// continuation executes at any simulated instant, so pools, the buffer, and
// the main-queue counter are mutated without locks. Do not run continuations
// in parallel — that discipline is the correctness property everything else
// leans on.
type Simulator struct {
	// Clock is the simulated time in minutes. It only moves forward, and
	// only the event loop moves it.
	Clock  float64
	Config Config

	// EventQueue has all pending resumptions, ordered by due-time then
	// insertion sequence.
	EventQueue *EventQueue

	SidePool  *ResourcePool
	RicePool  *ResourcePool
	Buffer    *BatchBuffer
	Groups    []*ResourcePool
	Collector *stats.Collector

	balancer LoadBalancer
	rng      *PartitionedRNG
	rand     *rand.Rand // shared workload stream: gaps, holds, service draws

	interarrival dist.Sampler
	sideHold     dist.Sampler
	riceHold     dist.Sampler
	service      dist.Sampler

	mainQueueLen int
}

// NewSimulator builds a simulator for the given config. All configuration
// errors surface here, before anything is scheduled.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sidePool, err := NewResourcePool("side_dish", SideDishCapacity)
	if err != nil {
		return nil, err
	}
	transportPool, err := NewResourcePool("transport", TransportCapacity)
	if err != nil {
		return nil, err
	}
	ricePool, err := NewResourcePool("rice", RiceCapacity)
	if err != nil {
		return nil, err
	}
	groups := make([]*ResourcePool, cfg.GroupCount)
	for i := range groups {
		groups[i], err = NewResourcePool(fmt.Sprintf("group_%d", i), cfg.StaffPerGroup)
		if err != nil {
			return nil, err
		}
	}

	interarrival, err := dist.NewExponential(cfg.MeanInterarrival)
	if err != nil {
		return nil, errInvalidConfig("interarrival: %v", err)
	}
	sideHold, err := dist.NewUniform(sideHoldMin, sideHoldMax)
	if err != nil {
		return nil, err
	}
	transportHold, err := dist.NewUniform(transportHoldMin, transportHoldMax)
	if err != nil {
		return nil, err
	}
	riceHold, err := dist.NewUniform(riceHoldMin, riceHoldMax)
	if err != nil {
		return nil, err
	}
	service, err := dist.NewServiceSampler(cfg.MinService, cfg.MaxService)
	if err != nil {
		return nil, errInvalidConfig("service time: %v", err)
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	balancer, err := NewLoadBalancer(cfg.Balancer, rng.ForSubsystem(SubsystemBalancer))
	if err != nil {
		return nil, err
	}

	sim := &Simulator{
		Config:       cfg,
		EventQueue:   NewEventQueue(),
		SidePool:     sidePool,
		RicePool:     ricePool,
		Groups:       groups,
		Collector:    stats.NewCollector(),
		balancer:     balancer,
		rng:          rng,
		rand:         rng.ForSubsystem(SubsystemWorkload),
		interarrival: interarrival,
		sideHold:     sideHold,
		riceHold:     riceHold,
		service:      service,
	}
	sim.Buffer = NewBatchBuffer(transportPool, transportHold)
	return sim, nil
}

// Schedule pushes an event into the event queue. Scheduling into the past is
// an invariant violation.
func (sim *Simulator) Schedule(ev Event) {
	if ev.Timestamp() < sim.Clock {
		violate("event scheduled at %.4f, before current time %.4f", ev.Timestamp(), sim.Clock)
	}
	sim.EventQueue.Push(ev)
}

// ScheduleAfter enqueues a continuation at Clock + delay.
func (sim *Simulator) ScheduleAfter(delay float64, fn func(*Simulator)) {
	if delay < 0 {
		violate("negative delay %.4f requested at %.4f", delay, sim.Clock)
	}
	sim.Schedule(&resumeEvent{time: sim.Clock + delay, fn: fn})
}

// resumeNow enqueues a continuation at the current instant. Same-instant
// resumptions still flow through the queue so their order stays the
// scheduling order.
func (sim *Simulator) resumeNow(fn func(*Simulator)) {
	sim.Schedule(&resumeEvent{time: sim.Clock, fn: fn})
}

// hold draws a duration from the sampler on the shared stream and schedules
// the continuation after it.
func (sim *Simulator) hold(s dist.Sampler, fn func(*Simulator)) {
	sim.ScheduleAfter(s.Sample(sim.rand), fn)
}

// scheduleNextArrival chains the arrival of entity id after an exponential
// gap, until the configured population has been spawned.
func (sim *Simulator) scheduleNextArrival(id int) {
	if id >= sim.Config.Population {
		return
	}
	gap := sim.interarrival.Sample(sim.rand)
	sim.Schedule(&ArrivalEvent{time: sim.Clock + gap, ID: id})
}

// MainQueueLen returns the current logical length of the main queue.
func (sim *Simulator) MainQueueLen() int {
	return sim.mainQueueLen
}

// Run executes the simulation to completion: the first entity arrives at
// t=0, and the loop pops events until none remain — which, with a finite
// population and finite holds, is exactly when the last entity has departed.
// It returns the collected output dataset.
func (sim *Simulator) Run() *stats.Result {
	sim.Schedule(&ArrivalEvent{time: 0, ID: 0})

	for !sim.EventQueue.IsEmpty() {
		ev := sim.EventQueue.Pop()
		if ev.Timestamp() < sim.Clock {
			violate("clock would move backwards: %.4f -> %.4f", sim.Clock, ev.Timestamp())
		}
		sim.Clock = ev.Timestamp()
		logrus.Debugf("[t %09.4f] executing %T", sim.Clock, ev)
		ev.Execute(sim)
	}

	logrus.Infof("[t %09.4f] simulation ended, %d departed", sim.Clock, sim.Collector.Departed())
	return sim.Collector.Result(sim.Clock)
}
