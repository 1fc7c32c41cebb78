package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .taskdeck.yaml configuration file.
type Config struct {
	Version int            `yaml:"version" mapstructure:"version"`
	Poll    PollConfig     `yaml:"poll" mapstructure:"poll"`
	Engine  EngineConfig   `yaml:"engine" mapstructure:"engine"`
	UI      UIConfig       `yaml:"ui" mapstructure:"ui"`
	Sources []SourceConfig `yaml:"sources" mapstructure:"sources"`
}

// PollConfig controls how monitors contact their backends.
type PollConfig struct {
	// Interval between polls. Per-source overrides win.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Timeout bounds a single poll.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// FailureThreshold is how many consecutive failures mark a backend
	// unreachable instead of merely degraded.
	FailureThreshold int `yaml:"failure_threshold" mapstructure:"failure_threshold"`
}

// EngineConfig tunes the state-sync core.
type EngineConfig struct {
	// BusCapacity is the bounded event bus size. Must be positive.
	BusCapacity int `yaml:"bus_capacity" mapstructure:"bus_capacity"`

	// RingCapacity is how many usage samples each task and backend
	// keeps for the sparklines.
	RingCapacity int `yaml:"ring_capacity" mapstructure:"ring_capacity"`

	// Retention is how long finished tasks stay on the dashboard.
	// Zero keeps them forever.
	Retention time.Duration `yaml:"retention" mapstructure:"retention"`

	// Tick is the housekeeping cadence for retention sweeps.
	Tick time.Duration `yaml:"tick" mapstructure:"tick"`
}

// UIConfig controls the terminal rendering.
type UIConfig struct {
	// Refresh is the minimum time between redraws.
	Refresh time.Duration `yaml:"refresh" mapstructure:"refresh"`

	// Theme: "dark" or "light".
	Theme string `yaml:"theme" mapstructure:"theme"`
}

// SourceConfig declares one backend to watch.
type SourceConfig struct {
	// Name identifies the backend on the dashboard. Must be unique.
	Name string `yaml:"name" mapstructure:"name"`

	// Type: "demo", "docker", "tes", or "local".
	Type string `yaml:"type" mapstructure:"type"`

	// URL is the service root for tes sources,
	// e.g. http://localhost:8000.
	URL string `yaml:"url,omitempty" mapstructure:"url"`

	// Patterns restrict local sources to processes whose name or
	// command line contains one of these strings.
	Patterns []string `yaml:"patterns,omitempty" mapstructure:"patterns"`

	// Interval overrides poll.interval for this source.
	Interval time.Duration `yaml:"interval,omitempty" mapstructure:"interval"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Poll: PollConfig{
			Interval:         time.Second,
			Timeout:          10 * time.Second,
			FailureThreshold: 3,
		},
		Engine: EngineConfig{
			BusCapacity:  256,
			RingCapacity: 100,
			Retention:    60 * time.Second,
			Tick:         time.Second,
		},
		UI: UIConfig{
			Refresh: 250 * time.Millisecond,
			Theme:   "dark",
		},
		Sources: []SourceConfig{
			{Name: "demo", Type: "demo"},
		},
	}
}
