package score

import (
	"math"
	"time"
)

// Time is a point or span on the render timeline, in nanoseconds. It travels
// on the wire as a JSON number.
type Time float64

// TimeZero is the start of the timeline.
const TimeZero Time = 0

// Seconds converts seconds to a Time.
func Seconds(s float64) Time {
	return Time(s * 1e9)
}

// Milliseconds converts milliseconds to a Time.
func Milliseconds(ms float64) Time {
	return Time(ms * 1e6)
}

// Minutes converts minutes to a Time.
func Minutes(m float64) Time {
	return Time(m * 6e10)
}

// FromDuration converts a time.Duration to a Time.
func FromDuration(d time.Duration) Time {
	return Time(d.Nanoseconds())
}

// Duration converts t to a time.Duration, truncating fractional nanoseconds.
func (t Time) Duration() time.Duration {
	return time.Duration(t)
}

// Valid reports whether t is finite and not negative.
func (t Time) Valid() bool {
	f := float64(t)

	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}
