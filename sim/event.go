package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (simulated minutes) and an Execute method that
// advances simulation state when invoked. Events due at the same instant
// execute in the order they were scheduled.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ArrivalEvent represents one entity walking into the service line.
type ArrivalEvent struct {
	time float64
	ID   int // zero-based arrival index, used as the entity id
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute starts the entity's process and, if the target population has not
// been reached, chains the next ArrivalEvent after an exponential gap.
// The generator does not wait for spawned entities to finish.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	logrus.Infof("<< arrival: entity %d at %.4f", e.ID, e.time)
	sim.spawnEntity(e.ID)
	sim.scheduleNextArrival(e.ID + 1)
}

// resumeEvent reactivates a suspended entity process at its next state
// transition: a granted pool slot, an elapsed hold, or a finished batch
// drain. It is the continuation form of every blocking point in the model.
type resumeEvent struct {
	time float64
	fn   func(*Simulator)
}

func (e *resumeEvent) Timestamp() float64 {
	return e.time
}

func (e *resumeEvent) Execute(sim *Simulator) {
	e.fn(sim)
}
