package ui

import (
	"fmt"
	"time"

	"github.com/docker/go-units"
)

// FormatBytes renders a byte count in binary units, e.g. "1.5GiB".
func FormatBytes(b float64) string {
	if b <= 0 {
		return "0B"
	}
	return units.BytesSize(b)
}

// FormatPercent renders a percentage with one decimal, e.g. "42.3%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatAgo renders how long ago t was relative to now, e.g.
// "2 minutes ago". A zero time renders as "never".
func FormatAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	if d < time.Second {
		return "just now"
	}
	return units.HumanDuration(d) + " ago"
}
