package cli

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/errors"
)

func TestEffectiveInterval(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Poll.Interval = 2 * time.Second

	global := effectiveInterval(cfg, config.SourceConfig{Name: "a", Type: "demo"})
	assert.Equal(t, 2*time.Second, global, "sources without an override use poll.interval")

	override := effectiveInterval(cfg, config.SourceConfig{
		Name: "b", Type: "demo", Interval: 500 * time.Millisecond,
	})
	assert.Equal(t, 500*time.Millisecond, override)
}

func TestDashCommandRequiresTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("stdout is a terminal; this test relies on piped output")
	}
	chdirTemp(t)

	err := dashCommand(dashOptions{demo: true})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "terminal")
}
