package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/doctor"
)

func TestCollectChecksWithDefaults(t *testing.T) {
	chdirTemp(t)

	checks := collectChecks("")

	// Two config checks, one probe for the default demo source, two
	// environment checks.
	require.Len(t, checks, 5)

	cats := make([]string, len(checks))
	for i, c := range checks {
		cats[i] = c.Category()
	}
	assert.Equal(t, []string{"CONFIG", "CONFIG", "SOURCES", "ENVIRONMENT", "ENVIRONMENT"}, cats)
}

func TestCollectChecksSkipsProbesOnBrokenConfig(t *testing.T) {
	work := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(work, ".taskdeck.yaml"), []byte("version: [broken"), 0o644))

	checks := collectChecks("")

	for _, c := range checks {
		assert.NotEqual(t, "SOURCES", c.Category(),
			"unloadable config should not produce source probes")
	}
}

func TestOutputDoctorJSON(t *testing.T) {
	checks := []doctor.Check{
		&doctor.ConfigFileCheck{},
		&doctor.TerminalCheck{},
	}
	results := []doctor.CheckResult{
		{Name: "config_file", Status: doctor.StatusPass, Message: "Config file: .taskdeck.yaml"},
		{Name: "terminal", Status: doctor.StatusWarn, Message: "Standard output is not a terminal"},
	}

	var buf bytes.Buffer
	require.NoError(t, outputDoctorJSON(&buf, checks, results))

	var out DoctorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	require.Len(t, out.Categories, 2)
	assert.Equal(t, "CONFIG", out.Categories[0].Name)
	assert.Equal(t, "ENVIRONMENT", out.Categories[1].Name)

	assert.Equal(t, 1, out.Summary.Pass)
	assert.Equal(t, 1, out.Summary.Warn)
	assert.Zero(t, out.Summary.Fail)
	assert.False(t, out.Summary.AllClear, "warnings count as issues")
}

func TestDoctorCommandHasJSONFlag(t *testing.T) {
	flag := doctorCmd.Flags().Lookup("json")
	require.NotNil(t, flag, "doctor command should have --json flag")
	assert.Equal(t, "bool", flag.Value.Type())
}
