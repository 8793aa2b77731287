package countdown

import (
	"fmt"
	"math"
	"time"
)

// SecondsRemaining computes floor((expiry - now) / 1s). The result is
// negative once the expiry has passed; callers treat non-positive values as
// "immediate refresh required".
func SecondsRemaining(expiry, now time.Time) int {
	return int(math.Floor(expiry.Sub(now).Seconds()))
}

// FormatClock renders a second count as a zero-padded HH:MM:SS countdown.
// Negative counts clamp to 00:00:00 for display; the raw value still drives
// the threshold decision.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hrs := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}
