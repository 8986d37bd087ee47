package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/canteen-sim/canteen-sim/sim/dist"
)

const (
	// drainThreshold is the buffer length that triggers a transport drain.
	drainThreshold = 4
	// drainMaxItems is the most items one drain removes.
	drainMaxItems = 5
)

// BatchBuffer models the tray-transport bottleneck: entities drop their id
// into an unbounded holding queue, and whenever an insertion brings the
// queue to the drain threshold, the inserting entity itself acquires a
// transport slot, holds it for a sampled duration, and then carries away up
// to drainMaxItems of the oldest entries.
//
// The triggering entity is not necessarily among the entries removed; it
// continues down the line regardless, and its own entry is cleared by a
// later drain. Several same-instant insertions can each observe the
// threshold and each start their own drain — that mirrors the modeled line,
// and under cooperative scheduling it stays fully deterministic.
type BatchBuffer struct {
	items     []int
	transport *ResourcePool
	hold      dist.Sampler

	inserted int
	removed  int
}

// NewBatchBuffer creates a buffer draining through the given transport pool,
// holding each drain for a duration drawn from hold.
func NewBatchBuffer(transport *ResourcePool, hold dist.Sampler) *BatchBuffer {
	return &BatchBuffer{transport: transport, hold: hold}
}

// Put appends the entity id and continues via done. If the insertion brings
// the buffer to the drain threshold, the inserting entity first performs a
// drain: acquire a transport slot, hold it, remove the oldest entries,
// release, and only then continue.
func (b *BatchBuffer) Put(sim *Simulator, id int, done func(*Simulator)) {
	b.items = append(b.items, id)
	b.inserted++

	if len(b.items) < drainThreshold {
		done(sim)
		return
	}

	b.transport.Request(sim, func(sim *Simulator) {
		sim.hold(b.hold, func(sim *Simulator) {
			n := b.drain()
			logrus.Debugf("buffer: entity %d drained %d items at %.4f, %d left", id, n, sim.Clock, len(b.items))
			b.transport.Release(sim)
			done(sim)
		})
	})
}

// drain removes up to drainMaxItems of the oldest entries, clamped to what
// is present. It never blocks and never leaves a negative length.
func (b *BatchBuffer) drain() int {
	n := min(drainMaxItems, len(b.items))
	b.items = b.items[n:]
	b.removed += n
	return n
}

// Len returns the current number of held entries.
func (b *BatchBuffer) Len() int { return len(b.items) }

// Inserted returns the total number of entries ever put.
func (b *BatchBuffer) Inserted() int { return b.inserted }

// Removed returns the total number of entries removed across all drains.
func (b *BatchBuffer) Removed() int { return b.removed }
