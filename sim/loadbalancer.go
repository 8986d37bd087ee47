package sim

import "math/rand"

// LoadBalancer defines the interface for assigning entities to staff groups.
type LoadBalancer interface {
	// SelectGroup returns the index of the group pool that should serve the
	// next entity, given the current state of all groups. The selection is a
	// hint, not a reservation: the entity still queues on the chosen pool's
	// FIFO wait list.
	SelectGroup(groups []*ResourcePool) int
}

// NewLoadBalancer creates a load balancer of the specified type.
// The rng is only consumed by the random balancer.
func NewLoadBalancer(lbType string, rng *rand.Rand) (LoadBalancer, error) {
	switch lbType {
	case "", "least-loaded":
		return &LeastLoadedBalancer{}, nil
	case "random":
		return NewRandomBalancer(rng), nil
	default:
		return nil, errInvalidConfig("unknown load balancer type: %s", lbType)
	}
}

// GetAvailableLoadBalancers returns the list of supported balancer types.
func GetAvailableLoadBalancers() []string {
	return []string{"least-loaded", "random"}
}

// LeastLoadedBalancer picks the group with the fewest currently-occupied
// slots at the instant of the call, breaking ties by lowest index.
type LeastLoadedBalancer struct{}

// SelectGroup scans all groups for the minimum occupancy. Linear scan is
// fine at this scale (single-digit group counts).
func (lb *LeastLoadedBalancer) SelectGroup(groups []*ResourcePool) int {
	best := 0
	for i := 1; i < len(groups); i++ {
		if groups[i].Occupancy() < groups[best].Occupancy() {
			best = i
		}
	}
	return best
}
