// Package timecalc holds the pure time arithmetic behind every report and
// balance in the system. All functions are total: malformed input degrades
// to zero or the InvalidTime sentinel instead of failing, so reporting
// stays robust on days with partial or absent punches. Do not tighten this
// into returned errors; callers rely on the neutral fallbacks.
package timecalc

import (
	"fmt"
	"strconv"
	"strings"
)

// InvalidTime is the sentinel for a clock time that could not be parsed.
const InvalidTime = -1

// DefaultDailyMinutes is the expected workload used when a user carries no
// shift assignment (a standard 8-hour day).
const DefaultDailyMinutes = 480

// TimeToMinutes parses "HH:MM" into minutes since midnight. Empty,
// malformed or non-numeric input yields InvalidTime, never an error.
func TimeToMinutes(t string) int {
	if t == "" {
		return InvalidTime
	}

	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return InvalidTime
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return InvalidTime
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return InvalidTime
	}

	return hours*60 + minutes
}

// WorkedMinutes computes the net worked span for one day from up to four
// punches. Without a parseable entry and exit the day counts as zero. The
// break interval is subtracted only when both boundaries parse and the
// break end is after the break start; otherwise it is ignored rather than
// treated as an error. Negative spans floor at zero.
func WorkedMinutes(entry, breakStart, breakEnd, exit string) int {
	entryMin := TimeToMinutes(entry)
	exitMin := TimeToMinutes(exit)
	if entryMin == InvalidTime || exitMin == InvalidTime {
		return 0
	}

	total := exitMin - entryMin

	bs := TimeToMinutes(breakStart)
	be := TimeToMinutes(breakEnd)
	if bs != InvalidTime && be != InvalidTime && be > bs {
		total -= be - bs
	}

	if total < 0 {
		return 0
	}
	return total
}

// ExpectedMinutes resolves a user's daily workload. A missing or
// non-positive shift total falls back to the standard 8-hour day.
func ExpectedMinutes(shiftTotal int) int {
	if shiftTotal <= 0 {
		return DefaultDailyMinutes
	}
	return shiftTotal
}

// Balance is worked minus expected, sign preserved. When expected is zero
// or absent the balance collapses to zero by convention.
func Balance(worked, expected int) int {
	if expected <= 0 {
		return 0
	}
	return worked - expected
}

// FormatMinutes renders a minute count as "Hh MMm", with a leading minus
// only for negative values.
func FormatMinutes(minutes int) string {
	abs := minutes
	sign := ""
	if minutes < 0 {
		abs = -minutes
		sign = "-"
	}

	return fmt.Sprintf("%s%dh %02dm", sign, abs/60, abs%60)
}
