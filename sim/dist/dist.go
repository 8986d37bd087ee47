// Package dist provides the random-variate samplers used by the simulation:
// uniform holds, exponential interarrival gaps, and fixed (degenerate)
// durations for deterministic test scenarios. All samplers draw from an
// injected *rand.Rand so a run is reproducible given the same seed.
package dist

import (
	"fmt"
	"math/rand"
)

// Sampler generates one duration per call, in simulated minutes.
type Sampler interface {
	// Sample returns the next duration. Always returns a value >= 0.
	Sample(rng *rand.Rand) float64
}

// UniformSampler draws durations uniformly from [Min, Max).
type UniformSampler struct {
	Min float64
	Max float64
}

func (s *UniformSampler) Sample(rng *rand.Rand) float64 {
	return s.Min + rng.Float64()*(s.Max-s.Min)
}

// NewUniform creates a UniformSampler. Requires 0 <= min < max.
func NewUniform(min, max float64) (*UniformSampler, error) {
	if min < 0 {
		return nil, fmt.Errorf("uniform sampler: min %.4f must be >= 0", min)
	}
	if min >= max {
		return nil, fmt.Errorf("uniform sampler: min %.4f must be < max %.4f", min, max)
	}
	return &UniformSampler{Min: min, Max: max}, nil
}

// ExponentialSampler draws exponentially-distributed durations with the
// given mean, modeling Poisson arrival gaps.
type ExponentialSampler struct {
	Mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.Mean
}

// NewExponential creates an ExponentialSampler. Requires mean > 0.
func NewExponential(mean float64) (*ExponentialSampler, error) {
	if mean <= 0 {
		return nil, fmt.Errorf("exponential sampler: mean %.4f must be > 0", mean)
	}
	return &ExponentialSampler{Mean: mean}, nil
}

// FixedSampler always returns the same duration. Used for degenerate
// service-time bounds (min == max) in deterministic scenarios.
type FixedSampler struct {
	Value float64
}

func (s *FixedSampler) Sample(rng *rand.Rand) float64 {
	return s.Value
}

// NewFixed creates a FixedSampler. Requires value >= 0.
func NewFixed(value float64) (*FixedSampler, error) {
	if value < 0 {
		return nil, fmt.Errorf("fixed sampler: value %.4f must be >= 0", value)
	}
	return &FixedSampler{Value: value}, nil
}

// NewServiceSampler picks the sampler for a [min, max] service-time range:
// uniform when min < max, fixed when min == max.
func NewServiceSampler(min, max float64) (Sampler, error) {
	if min == max {
		return NewFixed(min)
	}
	return NewUniform(min, max)
}
