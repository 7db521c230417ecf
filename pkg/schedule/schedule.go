// Package schedule computes due times for medication doses.
//
// Every function takes the current time as an explicit argument and performs
// no I/O, so the scheduling logic is deterministic and unit-testable without
// real time passing. The caller (the CLI command or the watch loop) supplies
// wall-clock time at the decision point.
package schedule

import (
	"fmt"
	"sort"
	"time"
)

// ParseClockTime parses an HH:MM string into minutes since midnight.
func ParseClockTime(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return h*60 + m, nil
}

// Normalize returns the clock times sorted ascending by minutes since
// midnight, deduplicated, and reformatted as zero-padded HH:MM. Unparseable
// entries are dropped. The result is the canonical form stored on a record;
// the set is unordered input, so any permutation normalizes identically.
func Normalize(times []string) []string {
	seen := make(map[int]bool, len(times))
	var mins []int
	for _, t := range times {
		v, err := ParseClockTime(t)
		if err != nil || seen[v] {
			continue
		}
		seen[v] = true
		mins = append(mins, v)
	}
	sort.Ints(mins)

	out := make([]string, 0, len(mins))
	for _, v := range mins {
		out = append(out, fmt.Sprintf("%02d:%02d", v/60, v%60))
	}
	return out
}

// DailyGrid generates the intraday dose times implied by a start time and an
// interval: floor(24/intervalHours) slots, each intervalHours apart, wrapping
// around midnight. This is what the registration form derives from "start at
// 08:00, every 8 hours" — {08:00, 16:00, 00:00}. Intervals that do not
// divide a day evenly produce fewer slots rather than drifting times.
func DailyGrid(start string, intervalHours float64) []string {
	startMin, err := ParseClockTime(start)
	if err != nil || intervalHours <= 0 || intervalHours > 24 {
		return nil
	}
	slots := int(24 / intervalHours)
	if slots < 1 {
		slots = 1
	}
	step := int(intervalHours * 60)
	times := make([]string, 0, slots)
	for i := 0; i < slots; i++ {
		v := (startMin + i*step) % (24 * 60)
		times = append(times, fmt.Sprintf("%02d:%02d", v/60, v%60))
	}
	return Normalize(times)
}

// NextDose resolves the next absolute due time from an intraday clock-time
// grid or a pure hour interval, relative to now.
//
// With a non-empty grid, the result is the earliest time strictly later than
// now's time of day, on today's date; if every grid time has already passed,
// it wraps to the earliest grid time on the next calendar day. The result is
// never in the past.
//
// With an empty grid (cadences longer than a day have no intraday grid), the
// result is now + frequencyHours, a pure relative offset with no clock-time
// snapping. If the frequency is also absent, NextDose degenerates to now:
// the caller receives "immediately due" rather than no value.
func NextDose(times []string, frequencyHours float64, now time.Time) time.Time {
	if len(times) == 0 {
		if frequencyHours <= 0 {
			return now
		}
		return now.Add(time.Duration(frequencyHours * float64(time.Hour)))
	}

	nowMin := now.Hour()*60 + now.Minute()
	var first, next int
	first, next = -1, -1
	for _, t := range Normalize(times) {
		v, err := ParseClockTime(t)
		if err != nil {
			continue
		}
		if first < 0 {
			first = v
		}
		if v > nowMin && next < 0 {
			next = v
		}
	}
	if first < 0 {
		// Nothing parseable survived; same degenerate fallback as no grid.
		return NextDose(nil, frequencyHours, now)
	}

	day := now
	target := next
	if target < 0 {
		// All grid times passed today: wrap to the earliest one tomorrow.
		day = now.AddDate(0, 0, 1)
		target = first
	}
	return time.Date(day.Year(), day.Month(), day.Day(), target/60, target%60, 0, 0, day.Location())
}
