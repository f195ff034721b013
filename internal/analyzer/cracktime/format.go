// Package cracktime estimates time-to-compromise for a password under two
// independently evolved attacker cost models. Both are kept as named
// strategies with their historical constants; only the duration formatter is
// shared. Unifying them is a product decision, not assumed here.
package cracktime

import (
	"fmt"
	"math"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerMonth  = 2592000  // 30 days
	secondsPerYear   = 31536000 // 365 days
)

// FormatDuration renders seconds as a human-readable bucketed string.
// Buckets grow monotonically, and the upper tiers deliberately avoid year
// arithmetic that would overflow on astronomical estimates: beyond ~10^10
// centuries the label becomes qualitative.
func FormatDuration(seconds float64) string {
	switch {
	case seconds < 0.001:
		return "instantly"
	case seconds < 1:
		return fmt.Sprintf("%.0f milliseconds", seconds*1000)
	case seconds < secondsPerMinute:
		return fmt.Sprintf("%.1f seconds", seconds)
	case seconds < secondsPerHour:
		return fmt.Sprintf("%.1f minutes", seconds/secondsPerMinute)
	case seconds < secondsPerDay:
		return fmt.Sprintf("%.1f hours", seconds/secondsPerHour)
	case seconds < secondsPerMonth:
		return fmt.Sprintf("%.1f days", seconds/secondsPerDay)
	case seconds < secondsPerYear:
		return fmt.Sprintf("%.1f months", seconds/secondsPerMonth)
	case seconds < 100*secondsPerYear:
		return fmt.Sprintf("%.1f years", seconds/secondsPerYear)
	case seconds < 10000*secondsPerYear:
		return fmt.Sprintf("%.0f years", seconds/secondsPerYear)
	}

	centuries := seconds / secondsPerYear / 100
	switch {
	case math.IsInf(centuries, 1) || centuries > 1e15:
		return "heat death of the universe"
	case centuries > 1e10:
		return "billions of billions of years"
	default:
		return fmt.Sprintf("%.0f centuries", centuries)
	}
}
