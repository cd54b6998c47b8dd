package model

import (
	"fmt"
	"time"
)

// FormatClock renders a remaining duration as MM:SS with both fields
// zero-padded to width 2. Negative durations clamp to zero.
func FormatClock(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
