package dash

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/engine"
	"github.com/taskdeck/taskdeck/internal/intern"
	"github.com/taskdeck/taskdeck/internal/state"
)

// DefaultRefresh is the snapshot poll interval used when the config
// does not set one.
const DefaultRefresh = 250 * time.Millisecond

// spinnerInterval is the animation frame rate for the running spinner.
const spinnerInterval = 150 * time.Millisecond

// submitTimeout bounds how long a key-triggered command may block.
const submitTimeout = time.Second

// Model is the Bubble Tea model for the dashboard. It is a pure reader
// of the engine: every frame renders one published snapshot, and user
// input goes back through the engine's bus rather than mutating view
// state in place. Only the selection cursor and view mode live here.
type Model struct {
	eng     *engine.Engine
	styles  Styles
	refresh time.Duration

	snap       *engine.Snapshot
	rows       []*state.TaskRecord
	selected   int
	selectedID intern.ID

	width  int
	height int

	viewMode     ViewMode
	showHelp     bool
	quitting     bool
	spinnerFrame int
	notice       string

	// Detail view viewport for scrollable content
	detailViewport viewport.Model
	viewportReady  bool
}

// tickMsg signals a periodic snapshot refresh.
type tickMsg time.Time

// spinnerTickMsg signals a spinner animation frame update.
type spinnerTickMsg time.Time

// flushMsg asks for an immediate snapshot refresh after a submitted
// command, so criteria changes show up before the next tick.
type flushMsg struct{}

// submitErrMsg reports a user command the bus would not take.
type submitErrMsg struct{ err error }

// NewModel creates a dashboard model reading from the given engine.
// refresh is the snapshot poll interval (0 uses DefaultRefresh).
func NewModel(eng *engine.Engine, refresh time.Duration, styles Styles) Model {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}

	m := Model{
		eng:      eng,
		styles:   styles,
		refresh:  refresh,
		selected: -1,
	}

	m.snap = eng.Current()
	m.rebuildRows()
	return m
}

// Init starts the refresh and spinner timers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.spinnerTickCmd())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Initialize or resize the detail viewport.
		// Reserve space for header and footer.
		headerHeight := 3
		footerHeight := 2
		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.viewportReady {
			m.detailViewport = viewport.New(m.width, viewportHeight)
			m.detailViewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.detailViewport.Width = m.width
			m.detailViewport.Height = viewportHeight
		}

		if m.viewMode == ViewDetail {
			m.updateDetailViewportContent()
		}

	case tickMsg:
		m.refreshSnapshot()
		return m, m.tickCmd()

	case spinnerTickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % 10000
		return m, m.spinnerTickCmd()

	case flushMsg:
		m.refreshSnapshot()

	case submitErrMsg:
		m.notice = msg.err.Error()
	}

	return m, nil
}

// View renders the current mode, with the help overlay on top when
// toggled.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var view string
	switch m.viewMode {
	case ViewDetail:
		view = m.renderDetailView()
	default:
		view = m.renderDashboard()
	}

	if m.showHelp {
		return m.renderHelpOverlay(view)
	}
	return view
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// spinnerTickCmd returns a command that sends a spinner animation frame.
func (m Model) spinnerTickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// submitCmd sends a user command through the engine's bus. The command
// runs on the Bubble Tea goroutine pool, so a saturated bus delays only
// this command, never a frame.
func (m Model) submitCmd(kind engine.CommandKind) tea.Cmd {
	eng := m.eng
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		if err := eng.Submit(ctx, engine.UserCommand{Kind: kind}); err != nil {
			return submitErrMsg{err: err}
		}
		return flushMsg{}
	}
}

// refreshSnapshot picks up the latest published snapshot. Reads are
// free when nothing changed: the publisher hands back the identical
// pointer, and the rows are left untouched.
func (m *Model) refreshSnapshot() {
	snap := m.eng.Current()
	if snap == m.snap {
		return
	}

	m.snap = snap
	m.notice = ""
	m.rebuildRows()

	if m.viewMode == ViewDetail {
		m.updateDetailViewportContent()
	}
}

// rebuildRows recomputes the visible task rows from the current
// snapshot and re-anchors the selection by task id, so the cursor
// follows its task across re-sorts and filter changes.
func (m *Model) rebuildRows() {
	if m.snap == nil {
		m.rows = nil
		m.selected = -1
		m.selectedID = intern.None
		return
	}

	m.rows = m.snap.Tasks()

	if len(m.rows) == 0 {
		m.selected = -1
		m.selectedID = intern.None
		return
	}

	if m.selectedID != intern.None {
		for i, t := range m.rows {
			if t.ID == m.selectedID {
				m.selected = i
				return
			}
		}
	}

	// Selected task left the view; clamp to the nearest row.
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	m.selectedID = m.rows[m.selected].ID
}

// setSelection moves the cursor to row i and re-anchors the id.
func (m *Model) setSelection(i int) {
	if i < 0 || i >= len(m.rows) {
		return
	}
	m.selected = i
	m.selectedID = m.rows[i].ID
}

// moveSelection moves the cursor by delta rows, clamped to the list.
func (m *Model) moveSelection(delta int) {
	if len(m.rows) == 0 {
		return
	}
	next := m.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= len(m.rows) {
		next = len(m.rows) - 1
	}
	m.setSelection(next)
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (*state.TaskRecord, bool) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return nil, false
	}
	return m.rows[m.selected], true
}

// RunningSpinner returns the current frame of the running-task glyph.
func (m Model) RunningSpinner() string {
	return RunningSpinnerFrames[m.spinnerFrame%len(RunningSpinnerFrames)]
}
