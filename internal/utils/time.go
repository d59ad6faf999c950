package utils

import (
	"fmt"
	"time"
)

// IsNightTime reports whether a pickup falls in the night-surcharge window:
// before 06:00 or after 22:00. Exactly 22:00 is daytime, 22:01 is night.
func IsNightTime(t time.Time) bool {
	hour := t.Hour()
	if hour < NightEndHour || hour > NightStartHour {
		return true
	}
	return hour == NightStartHour && (t.Minute() > 0 || t.Second() > 0)
}

func FormatTimeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

func ParseTimeISO(timeStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, timeStr)
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func FormatDuration(duration time.Duration) string {
	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
