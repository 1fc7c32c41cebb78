package dash

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/taskdeck/taskdeck/internal/engine"
	"github.com/taskdeck/taskdeck/internal/errors"
)

// DefaultStopTimeout bounds the engine drain after the TUI exits.
const DefaultStopTimeout = 5 * time.Second

// Options configures a dashboard run.
type Options struct {
	Refresh     time.Duration // snapshot poll interval (0 = DefaultRefresh)
	Theme       string        // "dark" or "light"
	StopTimeout time.Duration // engine drain budget (0 = DefaultStopTimeout)
}

// Run starts the engine, runs the TUI until the user quits, then
// drains the engine. Producers stop first, then the bus closes, then
// the reducer applies what is left, so the final snapshot reflects
// every event accepted before shutdown.
func Run(ctx context.Context, eng *engine.Engine, opts Options) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrConfig,
			"Standard output is not a terminal",
			"The dashboard needs an interactive terminal. Run taskdeck outside of a pipe or redirect.")
	}

	if opts.StopTimeout <= 0 {
		opts.StopTimeout = DefaultStopTimeout
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	eng.Start(runCtx)

	model := NewModel(eng, opts.Refresh, NewStyles(ThemeByName(opts.Theme)))
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, uiErr := p.Run()

	// Stop producers before waiting on the drain.
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), opts.StopTimeout)
	defer stopCancel()
	stopErr := eng.Stop(stopCtx)

	if uiErr != nil {
		return uiErr
	}
	return stopErr
}
