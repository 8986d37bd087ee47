// Package stats provides the output dataset of a simulation run: per-entity
// timing records and queue-length samples. This package has no dependencies
// on sim/ — it stores pure data types consumed by the presentation layer.
package stats

// EntityRecord is the finalized timing log for one entity's traversal of the
// service line. It is created when the entity joins the main queue and is
// immutable once the entity departs.
type EntityRecord struct {
	ID              int     `json:"id"`
	ArrivedAt       float64 `json:"arrivedAt"`       // simulated minutes
	QueueJoinedAt   float64 `json:"queueJoinedAt"`   // entered the main queue
	ServiceStartAt  float64 `json:"serviceStartAt"`  // staff slot granted
	CompletedAt     float64 `json:"completedAt"`     // left the line
	Wait            float64 `json:"wait"`            // ServiceStartAt - QueueJoinedAt
	ServiceDuration float64 `json:"serviceDuration"` // CompletedAt - ServiceStartAt
	Group           int     `json:"group"`           // zero-based staff group index
}

// QueueLengthSample captures the main-queue length at the instant an entity
// joined it. Samples are appended in join order, which is time-ordered by
// construction of the scheduler.
type QueueLengthSample struct {
	Time   float64 `json:"time"`
	Length int     `json:"length"`
}

// Result is the complete output dataset of one simulation run.
type Result struct {
	// Records holds one EntityRecord per departed entity, in departure order.
	Records []EntityRecord `json:"records"`
	// QueueSamples holds one sample per main-queue join, in join order.
	QueueSamples []QueueLengthSample `json:"queueSamples"`
	// EndClock is the simulated time at which the last event executed.
	EndClock float64 `json:"endClock"`
}
