package dash

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/engine"
)

// ViewMode defines the current display mode of the dashboard.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewDetail
)

// Key bindings as constants for consistency.
const (
	KeyQuit          = "q"
	KeyQuitAlt       = "ctrl+c"
	KeyTogglePause   = "p"
	KeyCycleSort     = "s"
	KeyStatusFilter  = "f"
	KeyBackendFilter = "b"
	KeyResetFilters  = "r"
	KeySelectPrev    = "up"
	KeySelectPrevK   = "k"
	KeySelectNext    = "down"
	KeySelectNextJ   = "j"
	KeySelectFirst   = "home"
	KeySelectLast    = "end"
	KeyExpand        = "enter"
	KeyCollapse      = "esc"
	KeyToggleHelp    = "?"
)

// HandleKeyMsg processes keyboard input and returns updated model state
// and command. Returns true if the key was handled, false otherwise.
// View criteria keys do not touch the model directly; they submit
// commands to the core and the next snapshot carries the change.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// If help is showing, Esc closes it
	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	// Detail view: Esc returns to the dashboard, navigation keys
	// scroll the viewport instead of moving the selection.
	if m.viewMode == ViewDetail {
		switch key {
		case KeyCollapse:
			m.viewMode = ViewDashboard
			return true, nil
		case KeySelectPrev, KeySelectPrevK, KeySelectNext, KeySelectNextJ:
			if m.viewportReady {
				var cmd tea.Cmd
				m.detailViewport, cmd = m.detailViewport.Update(msg)
				return true, cmd
			}
			return true, nil
		}
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyTogglePause:
		return true, m.submitCmd(engine.CmdTogglePause)

	case KeyCycleSort:
		return true, m.submitCmd(engine.CmdCycleSort)

	case KeyStatusFilter:
		return true, m.submitCmd(engine.CmdCycleStatusFilter)

	case KeyBackendFilter:
		return true, m.submitCmd(engine.CmdCycleBackendFilter)

	case KeyResetFilters:
		return true, m.submitCmd(engine.CmdResetFilters)

	case KeySelectPrev, KeySelectPrevK:
		m.moveSelection(-1)
		return true, nil

	case KeySelectNext, KeySelectNextJ:
		m.moveSelection(1)
		return true, nil

	case KeySelectFirst:
		if len(m.rows) > 0 {
			m.setSelection(0)
		}
		return true, nil

	case KeySelectLast:
		if len(m.rows) > 0 {
			m.setSelection(len(m.rows) - 1)
		}
		return true, nil

	case KeyExpand:
		if m.viewMode == ViewDashboard && m.selected >= 0 {
			m.viewMode = ViewDetail
			m.updateDetailViewportContent()
		}
		return true, nil

	case KeyCollapse:
		m.viewMode = ViewDashboard
		return true, nil
	}

	return false, nil
}
