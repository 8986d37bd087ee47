package sim

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Fixed layout of the modeled line. These are properties of the canteen,
// not operator knobs: three side-dish servers, two tray carriers, two rice
// servers, with short uniformly-distributed handling times (minutes).
const (
	SideDishCapacity  = 3
	TransportCapacity = 2
	RiceCapacity      = 2

	sideHoldMin = 0.5
	sideHoldMax = 1.0

	transportHoldMin = 0.3
	transportHoldMax = 0.8

	riceHoldMin = 0.5
	riceHoldMax = 1.0
)

// Config parameterizes one simulation run. It is immutable for the duration
// of the run; a new run gets a fresh Config and a fresh random stream.
type Config struct {
	Population       int     `yaml:"population" json:"population"`             // entities to spawn
	GroupCount       int     `yaml:"group_count" json:"groupCount"`            // parallel staff groups
	StaffPerGroup    int     `yaml:"staff_per_group" json:"staffPerGroup"`     // slots per group
	MinService       float64 `yaml:"min_service" json:"minService"`            // minutes
	MaxService       float64 `yaml:"max_service" json:"maxService"`            // minutes
	MeanInterarrival float64 `yaml:"mean_interarrival" json:"meanInterarrival"` // minutes
	Seed             int64   `yaml:"seed" json:"seed"`
	Balancer         string  `yaml:"balancer" json:"balancer"` // "least-loaded" (default) or "random"
	StartHour        int     `yaml:"start_hour" json:"startHour"`     // start of day, wall-clock
	StartMinute      int     `yaml:"start_minute" json:"startMinute"`
}

// DefaultConfig returns the canonical lunch-rush scenario: 500 entities over
// a two-hour arrival window, two staff groups of two.
func DefaultConfig() Config {
	return Config{
		Population:       500,
		GroupCount:       2,
		StaffPerGroup:    2,
		MinService:       1.0,
		MaxService:       3.0,
		MeanInterarrival: 120.0 / 500.0,
		Seed:             42,
		Balancer:         "least-loaded",
		StartHour:        7,
		StartMinute:      0,
	}
}

// Validate checks the configuration. It is called before any scheduling, so
// an invalid config never partially executes.
func (c Config) Validate() error {
	if c.Population <= 0 {
		return errInvalidConfig("population must be positive, got %d", c.Population)
	}
	if c.GroupCount < 1 {
		return errInvalidConfig("group count must be at least 1, got %d", c.GroupCount)
	}
	if c.StaffPerGroup < 1 {
		return errInvalidConfig("staff per group must be at least 1, got %d", c.StaffPerGroup)
	}
	if c.MinService <= 0 {
		return errInvalidConfig("min service time must be positive, got %.4f", c.MinService)
	}
	if c.MinService > c.MaxService {
		return errInvalidConfig("min service time %.4f exceeds max %.4f", c.MinService, c.MaxService)
	}
	if c.MeanInterarrival <= 0 {
		return errInvalidConfig("mean interarrival must be positive, got %.4f", c.MeanInterarrival)
	}
	if c.StartHour < 0 || c.StartHour > 23 {
		return errInvalidConfig("start hour must be in [0, 23], got %d", c.StartHour)
	}
	if c.StartMinute < 0 || c.StartMinute > 59 {
		return errInvalidConfig("start minute must be in [0, 59], got %d", c.StartMinute)
	}
	return nil
}

// StartOfDay converts the start hour/minute to a wall-clock anchor.
// The date itself is arbitrary; only the time of day is meaningful.
func (c Config) StartOfDay() time.Time {
	return time.Date(2024, 1, 1, c.StartHour, c.StartMinute, 0, 0, time.UTC)
}

// LoadScenario reads a scenario YAML file over the defaults, so a file only
// needs to name the fields it changes.
func LoadScenario(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scenario %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return cfg, nil
}
