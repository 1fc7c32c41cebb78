package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricColor(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    string
	}{
		{"idle is green", 0, string(ColorSuccess)},
		{"busy is green", 69.9, string(ColorSuccess)},
		{"warning threshold is yellow", 70, string(ColorWarning)},
		{"hot is yellow", 89.9, string(ColorWarning)},
		{"critical threshold is red", 90, string(ColorError)},
		{"pegged is red", 100, string(ColorError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(MetricColor(tt.percent)))
		})
	}
}

func TestMetricStyleAppliesColor(t *testing.T) {
	low := MetricStyle(10).Render("x")
	high := MetricStyle(95).Render("x")
	assert.NotEqual(t, low, high)
	assert.Equal(t, "x", stripANSI(low))
}
