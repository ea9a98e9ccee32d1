package timetricks

import (
	"time"
)

const (
	dayFormat = "20060102"

	// maxDaySteps is well past the width of [MinInstant, MaxInstant] in days
	// and small enough that AddDate cannot wrap.
	maxDaySteps = 1 << 30
)

var (
	// MinInstant is the earliest instant a timeline will consider.
	MinInstant = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	// MaxInstant is the latest instant a timeline will consider.
	MaxInstant = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)
)

func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.Format(dayFormat)
}

// StartOfDay returns midnight UTC of the UTC calendar day containing t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InRange reports whether t lies within [MinInstant, MaxInstant].
func InRange(t time.Time) bool {
	return !t.Before(MinInstant) && !t.After(MaxInstant)
}

// AddDays moves t by n whole days. ok is false if the result would leave
// [MinInstant, MaxInstant], in which case t is returned unchanged.
func AddDays(t time.Time, n int) (time.Time, bool) {
	if n > maxDaySteps || n < -maxDaySteps {
		return t, false
	}
	next := t.AddDate(0, 0, n)
	if !InRange(next) {
		return t, false
	}
	return next, true
}

// UniqueDay returns a string representation of t that is unique by the day.
// For instance, two seperate times on the same calendar day return identical
// strings.
func UniqueDay(t time.Time) string {
	return t.Format(dayFormat)
}
