package sim

import "fmt"

// ConfigError reports an invalid simulation configuration. Configuration is
// checked before any event is scheduled, so a bad config never produces a
// partially-executed run.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", e.Message)
}

// errInvalidConfig creates a ConfigError with a formatted message.
func errInvalidConfig(format string, args ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, args...)}
}

// InvariantViolation marks a scheduling-invariant breach: a negative delay,
// occupancy outside [0, capacity], or a buffer underflow. These are
// implementation bugs, not runtime conditions; the run aborts instead of
// clamping.
type InvariantViolation struct {
	Message string
}

func (e InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation: %s", e.Message)
}

// violate aborts the run with an InvariantViolation.
func violate(format string, args ...any) {
	panic(InvariantViolation{Message: fmt.Sprintf(format, args...)})
}
