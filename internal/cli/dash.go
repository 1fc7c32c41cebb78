package cli

import (
	"context"
	"time"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/dash"
	"github.com/taskdeck/taskdeck/internal/engine"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/internal/monitor"
)

type dashOptions struct {
	refresh time.Duration
	theme   string
	demo    bool
	seed    int64
}

// dashCommand wires config, engine, and monitors together, then hands
// the terminal to the dashboard until the user quits.
func dashCommand(opts dashOptions) error {
	log := logger.New("cli")

	cfg, err := config.LoadOrDefault(Config())
	if err != nil {
		return err
	}
	if opts.demo {
		// --demo replaces whatever sources the config declares.
		cfg.Sources = []config.SourceConfig{{Name: "demo", Type: "demo"}}
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	eng, err := engine.New(engine.Options{
		BusCapacity:  cfg.Engine.BusCapacity,
		RingCapacity: cfg.Engine.RingCapacity,
		Retention:    cfg.Engine.Retention,
		Tick:         cfg.Engine.Tick,
		Logger:       logger.New("engine"),
	})
	if err != nil {
		return err
	}

	for _, sc := range cfg.Sources {
		src, err := monitor.NewSource(sc, opts.seed)
		if err != nil {
			return err
		}
		eng.AddRunner(monitor.New(src, eng.Bus(), monitor.Options{
			Interval:         effectiveInterval(cfg, sc),
			Timeout:          cfg.Poll.Timeout,
			FailureThreshold: cfg.Poll.FailureThreshold,
			Logger:           logger.New("monitor"),
		}))
	}

	theme := cfg.UI.Theme
	if opts.theme != "" {
		theme = opts.theme
	}
	refresh := cfg.UI.Refresh
	if opts.refresh > 0 {
		refresh = opts.refresh
	}

	log.Info("dashboard starting: sources=%d refresh=%s theme=%s",
		len(cfg.Sources), refresh, theme)

	return dash.Run(context.Background(), eng, dash.Options{
		Refresh: refresh,
		Theme:   theme,
	})
}

// effectiveInterval picks the poll interval for one source; a
// per-source setting overrides the global one.
func effectiveInterval(cfg *config.Config, sc config.SourceConfig) time.Duration {
	if sc.Interval > 0 {
		return sc.Interval
	}
	return cfg.Poll.Interval
}
