// Package sim provides the discrete-event simulation engine for the canteen
// service line.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - eventqueue.go: time-ordered event heap with stable same-instant ordering
//   - entity.go: the per-entity state machine (arrive → side → transport →
//     rice → main queue → serve → depart)
//   - simulator.go: the event loop, pools, and arrival chaining
//
// # Architecture
//
// The sim package owns the engine; supporting concerns live in sub-packages:
//   - sim/dist: random-variate samplers (uniform, exponential, fixed)
//   - sim/stats: the output dataset (entity records, queue samples, summary)
//
// Concurrency is simulated, never real: one continuation executes per
// simulated instant, resumptions flow through the event queue, and ties at
// equal timestamps resolve by insertion order. Given the same Config
// (including seed) a run is bit-for-bit reproducible.
package sim
