package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsNightTime(t *testing.T) {
	day := func(hour, minute int) time.Time {
		return time.Date(2026, 9, 2, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"just before dawn boundary", day(5, 59), true},
		{"dawn boundary", day(6, 0), false},
		{"midday", day(12, 0), false},
		{"night start boundary exact", day(22, 0), false},
		{"one minute past night start", day(22, 1), true},
		{"late night", day(23, 30), true},
		{"after midnight", day(1, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNightTime(tt.at))
		})
	}
}

func TestStartOfDay(t *testing.T) {
	at := time.Date(2026, 9, 2, 15, 42, 7, 123, time.UTC)
	start := StartOfDay(at)

	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), start)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "2h 15m", FormatDuration(2*time.Hour+15*time.Minute))
}
