package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/errors"
)

// chdirTemp moves the test into a fresh directory one level under a
// temp HOME, so config discovery stops at home and never escapes into
// the developer's real config.
func chdirTemp(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	work := filepath.Join(home, "project")
	require.NoError(t, os.MkdirAll(work, 0o755))
	t.Setenv("HOME", home)
	t.Chdir(work)
	return work
}

func TestInitNonInteractiveWritesDemoConfig(t *testing.T) {
	tmpDir := chdirTemp(t)

	err := Init(InitOptions{NonInteractive: true})
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, config.ConfigFileName)
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "# taskdeck configuration", "should carry the header comment")
	assert.Contains(t, content, "type: demo")

	// The file we write must load and validate through our own loader.
	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	require.NoError(t, config.Validate(cfg))

	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "demo", cfg.Sources[0].Name)
	assert.Equal(t, "demo", cfg.Sources[0].Type)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, config.CurrentConfigVersion, cfg.Version)
}

func TestInitRefusesToOverwriteWithoutForce(t *testing.T) {
	tmpDir := chdirTemp(t)

	configPath := filepath.Join(tmpDir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("version: 1\n"), 0644))

	err := Init(InitOptions{NonInteractive: true})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "already exists")

	// Original content untouched
	data, readErr := os.ReadFile(configPath)
	require.NoError(t, readErr)
	assert.Equal(t, "version: 1\n", string(data))
}

func TestInitForceOverwrites(t *testing.T) {
	tmpDir := chdirTemp(t)

	configPath := filepath.Join(tmpDir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("version: 1\n"), 0644))

	err := Init(InitOptions{NonInteractive: true, Force: true})
	require.NoError(t, err)

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "demo", cfg.Sources[0].Type)
}

func TestInitDemoSkipsPrompts(t *testing.T) {
	tmpDir := chdirTemp(t)

	// Demo implies non-interactive; no terminal is attached here, so
	// this only passes if no form ever runs.
	err := Init(InitOptions{Demo: true, NonInteractive: true})
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(tmpDir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Sources[0].Type)
}

func TestMergeInitOptions(t *testing.T) {
	t.Run("CI env forces non-interactive", func(t *testing.T) {
		t.Setenv("CI", "true")
		t.Setenv("TASKDECK_NON_INTERACTIVE", "")

		merged := mergeInitOptions(InitOptions{})
		assert.True(t, merged.NonInteractive)
	})

	t.Run("TASKDECK_NON_INTERACTIVE forces non-interactive", func(t *testing.T) {
		t.Setenv("CI", "")
		t.Setenv("TASKDECK_NON_INTERACTIVE", "true")

		merged := mergeInitOptions(InitOptions{})
		assert.True(t, merged.NonInteractive)
	})

	t.Run("clean env leaves options alone", func(t *testing.T) {
		t.Setenv("CI", "")
		t.Setenv("TASKDECK_NON_INTERACTIVE", "")

		merged := mergeInitOptions(InitOptions{})
		assert.False(t, merged.NonInteractive)

		merged = mergeInitOptions(InitOptions{NonInteractive: true})
		assert.True(t, merged.NonInteractive)
	})
}
