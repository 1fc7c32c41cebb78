package monitor

import (
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/errors"
)

// NewSource turns one config entry into a pollable source. The seed
// only matters for demo sources.
func NewSource(sc config.SourceConfig, seed int64) (Source, error) {
	switch sc.Type {
	case "demo":
		return NewDemoSource(sc.Name, DemoOptions{Seed: seed}), nil
	case "docker":
		return NewDockerSource(sc.Name)
	case "tes":
		return NewTESSource(sc.Name, sc.URL), nil
	case "local":
		return NewLocalSource(sc.Name, sc.Patterns), nil
	default:
		return nil, errors.New(errors.ErrConfig,
			"Unknown source type: "+sc.Type,
			"Supported types: demo, docker, tes, local")
	}
}
