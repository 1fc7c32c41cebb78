package config

import (
	"fmt"
	"strings"

	"github.com/taskdeck/taskdeck/internal/errors"
)

// SourceTypes are the backend kinds a source may declare.
var SourceTypes = map[string]bool{
	"demo":   true,
	"docker": true,
	"tes":    true,
	"local":  true,
}

// Validate checks the config for errors and returns structured error
// messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but taskdeck only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest taskdeck: https://github.com/taskdeck/taskdeck/releases")
	}

	if err := validatePoll(cfg.Poll); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'poll' section in your .taskdeck.yaml.")
	}
	if err := validateEngine(cfg.Engine); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'engine' section in your .taskdeck.yaml.")
	}
	if err := validateUI(cfg.UI); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'ui' section in your .taskdeck.yaml.")
	}

	if len(cfg.Sources) == 0 {
		return errors.New(errors.ErrConfig,
			"No sources configured - there is nothing to watch",
			"Add a source to .taskdeck.yaml, or run 'taskdeck dash --demo'.")
	}
	seen := make(map[string]bool, len(cfg.Sources))
	for i, src := range cfg.Sources {
		if err := validateSource(src); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
				fmt.Sprintf("Check sources[%d] in your .taskdeck.yaml.", i))
		}
		if seen[src.Name] {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Two sources are both called '%s'", src.Name),
				"Source names label backends on the dashboard, so each needs its own.")
		}
		seen[src.Name] = true
	}
	return nil
}

func validatePoll(p PollConfig) error {
	if p.Interval <= 0 {
		return fmt.Errorf("poll.interval must be positive, got %s", p.Interval)
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("poll.timeout must be positive, got %s", p.Timeout)
	}
	if p.FailureThreshold < 1 {
		return fmt.Errorf("poll.failure_threshold must be at least 1, got %d", p.FailureThreshold)
	}
	return nil
}

func validateEngine(e EngineConfig) error {
	if e.BusCapacity <= 0 {
		return fmt.Errorf("engine.bus_capacity must be positive, got %d", e.BusCapacity)
	}
	if e.RingCapacity <= 0 {
		return fmt.Errorf("engine.ring_capacity must be positive, got %d", e.RingCapacity)
	}
	if e.Retention < 0 {
		return fmt.Errorf("engine.retention cannot be negative, got %s", e.Retention)
	}
	if e.Tick < 0 {
		return fmt.Errorf("engine.tick cannot be negative, got %s", e.Tick)
	}
	return nil
}

func validateUI(u UIConfig) error {
	if u.Refresh <= 0 {
		return fmt.Errorf("ui.refresh must be positive, got %s", u.Refresh)
	}
	switch u.Theme {
	case "dark", "light":
		return nil
	default:
		return fmt.Errorf("ui.theme must be 'dark' or 'light', got %q", u.Theme)
	}
}

func validateSource(src SourceConfig) error {
	if strings.TrimSpace(src.Name) == "" {
		return fmt.Errorf("every source needs a name")
	}
	if !SourceTypes[src.Type] {
		return fmt.Errorf("source '%s' has unknown type %q (want demo, docker, tes, or local)", src.Name, src.Type)
	}
	if src.Type == "tes" && src.URL == "" {
		return fmt.Errorf("tes source '%s' needs a url", src.Name)
	}
	if src.Interval < 0 {
		return fmt.Errorf("source '%s' interval cannot be negative, got %s", src.Name, src.Interval)
	}
	return nil
}
