package stats

import "fmt"

// Collector accumulates records and samples while a simulation runs.
// It is a passive, append-only sink: entity processes write to it, nothing
// ever reads back during the run.
type Collector struct {
	records []EntityRecord
	samples []QueueLengthSample
	seen    map[int]bool
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		records: make([]EntityRecord, 0),
		samples: make([]QueueLengthSample, 0),
		seen:    make(map[int]bool),
	}
}

// RecordQueueSample appends a main-queue length observation.
// Samples must arrive in non-decreasing time order; the scheduler's
// monotonic clock guarantees this for in-simulation callers.
func (c *Collector) RecordQueueSample(time float64, length int) {
	if n := len(c.samples); n > 0 && time < c.samples[n-1].Time {
		panic(fmt.Sprintf("stats: queue sample at %.4f precedes previous sample at %.4f", time, c.samples[n-1].Time))
	}
	c.samples = append(c.samples, QueueLengthSample{Time: time, Length: length})
}

// RecordDeparture appends the finalized record of a departed entity.
// Recording the same entity twice indicates a broken entity state machine
// and panics.
func (c *Collector) RecordDeparture(rec EntityRecord) {
	if c.seen[rec.ID] {
		panic(fmt.Sprintf("stats: duplicate departure for entity %d", rec.ID))
	}
	c.seen[rec.ID] = true
	c.records = append(c.records, rec)
}

// Departed returns the number of entities recorded so far.
func (c *Collector) Departed() int {
	return len(c.records)
}

// Result snapshots the collected dataset. The returned slices are copies;
// the Collector can keep accumulating afterwards.
func (c *Collector) Result(endClock float64) *Result {
	records := make([]EntityRecord, len(c.records))
	copy(records, c.records)
	samples := make([]QueueLengthSample, len(c.samples))
	copy(samples, c.samples)
	return &Result{Records: records, QueueSamples: samples, EndClock: endClock}
}
