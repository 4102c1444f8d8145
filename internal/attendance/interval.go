package attendance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// parseClock converts "HH:MM" to minutes after midnight.
func parseClock(v string) (int, error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time of day %q, expected HH:MM", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", v)
	}
	return h*60 + m, nil
}

// durationHours is the wrapped-midnight duration between two times of day,
// in hours rounded to two decimals. A check-out numerically earlier than the
// check-in means the shift crossed midnight.
func durationHours(checkIn, checkOut string) (float64, error) {
	start, err := parseClock(checkIn)
	if err != nil {
		return 0, err
	}
	end, err := parseClock(checkOut)
	if err != nil {
		return 0, err
	}

	diff := (end - start + minutesPerDay) % minutesPerDay
	return math.Round(float64(diff)/60*100) / 100, nil
}

// interval is a half-open [start, end) window in minutes, already normalized
// for midnight crossing. fullDay marks a record with no endpoints at all; a
// full-day record conflicts with anything on the same key.
type interval struct {
	start   int
	end     int
	fullDay bool
}

func newInterval(checkIn, checkOut *string) (interval, error) {
	if checkIn == nil && checkOut == nil {
		return interval{fullDay: true}, nil
	}
	if checkIn == nil || checkOut == nil {
		// A single endpoint (open shift) blocks the whole day too.
		return interval{fullDay: true}, nil
	}

	start, err := parseClock(*checkIn)
	if err != nil {
		return interval{}, err
	}
	end, err := parseClock(*checkOut)
	if err != nil {
		return interval{}, err
	}
	if end < start {
		end += minutesPerDay
	}
	return interval{start: start, end: end}, nil
}

// overlaps is the half-open test, so back-to-back shifts do not conflict.
func (a interval) overlaps(b interval) bool {
	if a.fullDay || b.fullDay {
		return true
	}
	return a.start < b.end && a.end > b.start
}
