package itinerary

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// MaxDurationHours caps any dwell or travel duration. Larger inputs are
// clamped so arrival arithmetic stays within a sane range of days.
const MaxDurationHours = 7 * 24

// ParseClock converts an "HH:MM" 24h value to minutes since midnight.
// An empty or malformed value parses to 0.
func ParseClock(s string) int {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0
	}
	mins, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return hours*60 + mins
}

// FormatClock renders minutes since midnight as "HH:MM", wrapping modulo one
// day. Day overflow is carried by Checkpoint.Day, never by the clock value.
func FormatClock(minutes int) string {
	m := ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// DurationBetween returns the hours from start to end rounded to one decimal.
// An end earlier than start is treated as running past midnight.
func DurationBetween(start, end string) float64 {
	s, e := ParseClock(start), ParseClock(end)
	if e < s {
		e += minutesPerDay
	}
	return round1(float64(e-s) / 60)
}

// hoursToMinutes converts a fractional hour count to whole minutes.
func hoursToMinutes(h float64) int {
	return int(math.Round(clampHours(h) * 60))
}

// clampHours bounds h to [0, MaxDurationHours].
func clampHours(h float64) float64 {
	return min(max(0, h), MaxDurationHours)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
