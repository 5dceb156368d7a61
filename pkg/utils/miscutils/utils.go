// Package miscutils holds small formatting helpers shared by the commands.
package miscutils

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration renders a duration given in seconds, picking the unit by magnitude.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) {
		return "NaN"
	}
	if seconds == 0 {
		return "0"
	}

	d := time.Duration(seconds * float64(time.Second))
	abs := d.Abs()

	// Format based on magnitude.
	switch {
	case abs < time.Microsecond:
		return fmt.Sprintf("%.0fns", seconds*1e9)
	case abs < time.Millisecond:
		return fmt.Sprintf("%.1fu", seconds*1e6)
	case abs < time.Second:
		return fmt.Sprintf("%.1fm", seconds*1e3)
	case abs < time.Minute:
		return fmt.Sprintf("%.2fs", seconds)
	default:
		return fmt.Sprintf("%.1fM", d.Minutes())
	}
}
