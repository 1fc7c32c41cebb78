package dash

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/engine"
	"github.com/taskdeck/taskdeck/internal/state"
)

func TestViewRendersTaskTable(t *testing.T) {
	eng := newTestEngine(t)
	seedStandard(t, eng)

	m := resize(tick(newTestModel(t, eng)), 140, 40)
	plain := stripANSI(m.View())

	assert.Contains(t, plain, "taskdeck")
	assert.Contains(t, plain, "3 tasks")
	assert.Contains(t, plain, "2 active")

	assert.Contains(t, plain, "NAME")
	assert.Contains(t, plain, "BACKEND")
	assert.Contains(t, plain, "PROGRESS")

	for _, name := range []string{"alpha", "bravo", "charlie"} {
		assert.Contains(t, plain, name)
	}
	for _, status := range []string{"Running", "Queued", "Failed"} {
		assert.Contains(t, plain, status)
	}

	// alpha's usage sample shows up in the CPU and MEM columns.
	assert.Contains(t, plain, "42.0%")
	assert.Contains(t, plain, "1GiB")
	// Progress bar for alpha at 40%.
	assert.Contains(t, plain, "40%")

	assert.Contains(t, plain, "sort updated | filter all | backend all")
}

func TestViewMarksSelectedRow(t *testing.T) {
	eng := newTestEngine(t)
	seedStandard(t, eng)

	m := resize(tick(newTestModel(t, eng)), 140, 40)
	m = pressAndApply(t, m, eng, "s", func(s *engine.Snapshot) bool {
		return s.Sort == state.SortByName
	})
	m, _ = press(m, "home")
	m, _ = press(m, "down")

	plain := stripANSI(m.View())
	for _, line := range strings.Split(plain, "\n") {
		if strings.HasPrefix(line, "▸") {
			assert.Contains(t, line, "bravo")
			return
		}
	}
	t.Fatal("no selected row marker in output")
}

func TestViewShowsPausedBadge(t *testing.T) {
	eng := newTestEngine(t)
	seedStandard(t, eng)

	m := resize(tick(newTestModel(t, eng)), 140, 40)
	require.NotContains(t, stripANSI(m.View()), "PAUSED")

	m = pressAndApply(t, m, eng, "p", func(s *engine.Snapshot) bool {
		return s.Paused
	})

	assert.Contains(t, stripANSI(m.View()), "PAUSED")
}

func TestViewShowsRejectedCount(t *testing.T) {
	eng := newTestEngine(t)
	seedStandard(t, eng)

	// Failed -> Running is illegal; the rejection rides along with the
	// next applied event's snapshot.
	send(t, eng, engine.TaskUpdated{Delta: engine.TaskDelta{
		ID:     "charlie",
		Status: engine.StatusOf(state.StatusRunning),
	}})
	send(t, eng, engine.TaskUpdated{Delta: engine.TaskDelta{
		ID: "delta", Name: "delta", Backend: "local-box",
	}})
	require.Eventually(t, func() bool {
		return eng.Current().Rejected == 1
	}, 2*time.Second, 5*time.Millisecond)

	m := resize(tick(newTestModel(t, eng)), 140, 40)

	assert.Contains(t, stripANSI(m.View()), "1 rejected")
}

func TestViewEmptyStates(t *testing.T) {
	t.Run("no tasks at all", func(t *testing.T) {
		eng := newTestEngine(t)
		m := resize(newTestModel(t, eng), 140, 40)

		assert.Contains(t, stripANSI(m.View()), "No tasks yet")
	})

	t.Run("filter hides everything", func(t *testing.T) {
		eng := newTestEngine(t)
		send(t, eng, engine.TaskUpdated{Delta: engine.TaskDelta{
			ID: "alpha", Name: "alpha", Backend: "local-box",
			Status: engine.StatusOf(state.StatusRunning),
		}})
		require.Eventually(t, func() bool {
			return eng.Current().TaskCount() == 1
		}, 2*time.Second, 5*time.Millisecond)

		m := resize(tick(newTestModel(t, eng)), 140, 40)
		m = pressAndApply(t, m, eng, "f", func(s *engine.Snapshot) bool {
			return s.Filter == state.FilterQueued
		})

		assert.Contains(t, stripANSI(m.View()), "No tasks match the current filters")
	})
}

func TestViewBackendCard(t *testing.T) {
	eng := newTestEngine(t)
	seedStandard(t, eng)

	m := resize(tick(newTestModel(t, eng)), 140, 40)
	plain := stripANSI(m.View())

	assert.Contains(t, plain, "local-box")
	assert.Contains(t, plain, "2 active / 3 tracked")
	assert.Contains(t, plain, "cpu")
	assert.Contains(t, plain, "35%")
	assert.Contains(t, plain, "8GiB")
	assert.Contains(t, plain, "seen just now")
}

func TestViewBackendCardsShareRow(t *testing.T) {
	eng := newTestEngine(t)
	now := time.Now()
	for _, name := range []string{"box-a", "box-b"} {
		send(t, eng, engine.BackendUpdated{Delta: engine.BackendDelta{
			ID: name, Name: name, Kind: state.KindDocker,
			Health: state.HealthHealthy, SeenAt: now,
		}})
	}
	require.Eventually(t, func() bool {
		return eng.Current().BackendCount() == 2
	}, 2*time.Second, 5*time.Millisecond)

	m := resize(tick(newTestModel(t, eng)), 140, 40)
	plain := stripANSI(m.View())

	var found bool
	for _, line := range strings.Split(plain, "\n") {
		if strings.Contains(line, "box-a") && strings.Contains(line, "box-b") {
			found = true
			break
		}
	}
	assert.True(t, found, "both backend cards should share a row at 140 columns")
}

func TestViewBackendCardWithoutUsage(t *testing.T) {
	eng := newTestEngine(t)
	send(t, eng, engine.BackendUpdated{Delta: engine.BackendDelta{
		ID: "quiet", Name: "quiet", Kind: state.KindTES,
		Health: state.HealthDegraded, SeenAt: time.Now(),
	}})
	require.Eventually(t, func() bool {
		return eng.Current().BackendCount() == 1
	}, 2*time.Second, 5*time.Millisecond)

	m := resize(tick(newTestModel(t, eng)), 140, 40)
	plain := stripANSI(m.View())

	assert.Contains(t, plain, "quiet")
	assert.Contains(t, plain, "tes")
	assert.Contains(t, plain, "no usage data")
}

func TestDetailShowsErrorSection(t *testing.T) {
	eng := newTestEngine(t)
	seedStandard(t, eng)

	m := resize(tick(newTestModel(t, eng)), 120, 50)
	m = pressAndApply(t, m, eng, "s", func(s *engine.Snapshot) bool {
		return s.Sort == state.SortByName
	})
	m, _ = press(m, "end")
	require.Equal(t, "charlie", m.rows[m.selected].Name)

	m, _ = press(m, "enter")
	plain := stripANSI(m.View())

	assert.Contains(t, plain, "charlie")
	assert.Contains(t, plain, "Error")
	assert.Contains(t, plain, "exit status 1")
	// charlie failed on arrival and never reported usage.
	assert.Contains(t, plain, "no samples yet")
}

func TestPadAndTruncate(t *testing.T) {
	assert.Equal(t, "abc   ", pad("abc", 6))
	assert.Equal(t, "ab... ", pad("abcdef", 6))
	assert.Equal(t, "veryl...", truncate("verylongname", 8))
	assert.Equal(t, "short", truncate("short", 8))
}
