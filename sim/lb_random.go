package sim

import "math/rand"

// RandomBalancer assigns entities to staff groups uniformly at random.
// Mostly useful as a baseline to compare the least-loaded policy against.
type RandomBalancer struct {
	rand *rand.Rand
}

// SelectGroup returns a random group index.
func (lb *RandomBalancer) SelectGroup(groups []*ResourcePool) int {
	return lb.rand.Intn(len(groups))
}

// NewRandomBalancer creates a random balancer drawing from rng.
func NewRandomBalancer(rng *rand.Rand) *RandomBalancer {
	return &RandomBalancer{rand: rng}
}
