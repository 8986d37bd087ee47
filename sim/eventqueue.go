package sim

import "container/heap"

// EventQueue is a priority queue for simulation events, ordered by timestamp.
// Events due at the same instant are ordered by insertion sequence, so two
// runs with the same seed pop events in exactly the same order.
type EventQueue struct {
	events  eventHeap
	nextSeq int64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	eq := &EventQueue{events: make(eventHeap, 0)}
	heap.Init(&eq.events)
	return eq
}

// Push adds an event to the queue, stamping it with the next sequence number.
func (eq *EventQueue) Push(ev Event) {
	heap.Push(&eq.events, scheduledEvent{ev: ev, seq: eq.nextSeq})
	eq.nextSeq++
}

// Pop removes and returns the next event, or nil if the queue is empty.
func (eq *EventQueue) Pop() Event {
	if eq.IsEmpty() {
		return nil
	}
	return heap.Pop(&eq.events).(scheduledEvent).ev
}

// Peek returns the next event without removing it, or nil if empty.
func (eq *EventQueue) Peek() Event {
	if eq.IsEmpty() {
		return nil
	}
	return eq.events[0].ev
}

// IsEmpty returns true if the queue holds no events.
func (eq *EventQueue) IsEmpty() bool {
	return eq.events.Len() == 0
}

// Len returns the number of pending events.
func (eq *EventQueue) Len() int {
	return eq.events.Len()
}

// scheduledEvent pairs an event with its insertion sequence number.
type scheduledEvent struct {
	ev  Event
	seq int64
}

// eventHeap implements heap.Interface for scheduledEvent.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventHeap []scheduledEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	ti, tj := h[i].ev.Timestamp(), h[j].ev.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(scheduledEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
