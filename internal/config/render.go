package config

import (
	"gopkg.in/yaml.v3"

	"github.com/taskdeck/taskdeck/internal/errors"
)

// fileConfig mirrors Config with durations as strings, so the file we
// write says "1s" rather than nanosecond integers. The loader's decode
// hook accepts either form.
type fileConfig struct {
	Version int          `yaml:"version"`
	Poll    filePoll     `yaml:"poll"`
	Engine  fileEngine   `yaml:"engine"`
	UI      fileUI       `yaml:"ui"`
	Sources []fileSource `yaml:"sources"`
}

type filePoll struct {
	Interval         string `yaml:"interval"`
	Timeout          string `yaml:"timeout"`
	FailureThreshold int    `yaml:"failure_threshold"`
}

type fileEngine struct {
	BusCapacity  int    `yaml:"bus_capacity"`
	RingCapacity int    `yaml:"ring_capacity"`
	Retention    string `yaml:"retention"`
	Tick         string `yaml:"tick"`
}

type fileUI struct {
	Refresh string `yaml:"refresh"`
	Theme   string `yaml:"theme"`
}

type fileSource struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	URL      string   `yaml:"url,omitempty"`
	Patterns []string `yaml:"patterns,omitempty"`
	Interval string   `yaml:"interval,omitempty"`
}

// Render marshals cfg the way 'taskdeck init' writes it to disk.
func Render(cfg *Config) ([]byte, error) {
	out := fileConfig{
		Version: cfg.Version,
		Poll: filePoll{
			Interval:         cfg.Poll.Interval.String(),
			Timeout:          cfg.Poll.Timeout.String(),
			FailureThreshold: cfg.Poll.FailureThreshold,
		},
		Engine: fileEngine{
			BusCapacity:  cfg.Engine.BusCapacity,
			RingCapacity: cfg.Engine.RingCapacity,
			Retention:    cfg.Engine.Retention.String(),
			Tick:         cfg.Engine.Tick.String(),
		},
		UI: fileUI{
			Refresh: cfg.UI.Refresh.String(),
			Theme:   cfg.UI.Theme,
		},
	}
	for _, src := range cfg.Sources {
		fs := fileSource{
			Name:     src.Name,
			Type:     src.Type,
			URL:      src.URL,
			Patterns: src.Patterns,
		}
		if src.Interval > 0 {
			fs.Interval = src.Interval.String()
		}
		out.Sources = append(out.Sources, fs)
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}
	return data, nil
}
