package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatWalkDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		// 590 * 1.2 = 708 s = 11.8 min, rounded up.
		{"short walk rounds up", 590, "12 min walk"},
		// 3600 * 1.2 = 4320 s = exactly 72 min.
		{"hour boundary", 3600, "1 hr 12 min walk"},
		{"one minute", 30, "1 min walk"},
		{"exact hour", 3000, "1 hr 0 min walk"},
		{"multi hour", 7500, "2 hr 30 min walk"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatWalkDuration(tc.seconds))
		})
	}
}
