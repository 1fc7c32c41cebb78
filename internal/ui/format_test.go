package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0B", FormatBytes(0))
	assert.Equal(t, "0B", FormatBytes(-10))
	assert.Equal(t, "2KiB", FormatBytes(2048))
	assert.Equal(t, "1.5GiB", FormatBytes(1.5*(1<<30)))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "42.3%", FormatPercent(42.34))
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "100.0%", FormatPercent(100))
}

func TestFormatAgo(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "never", FormatAgo(time.Time{}, now))
	assert.Equal(t, "just now", FormatAgo(now, now))
	assert.Contains(t, FormatAgo(now.Add(-2*time.Minute), now), "minutes ago")
	assert.Contains(t, FormatAgo(now.Add(-3*time.Hour), now), "hours ago")
}
