package sunphase

import (
	"fmt"
	"strings"
	"time"

	"github.com/spencer-p/sunphase/pkg/timetricks"
)

// Timeline is the set of instants at which any of a selection of phases
// occurs at fixed coordinates. It is immutable and safe for concurrent use
// as long as its Calculator is.
type Timeline struct {
	calc   Calculator
	coords Coordinates
	phases Phase
	names  []string
}

// New returns a Timeline of every kind present in at least one of phases.
// A single value (Sunrise|Dawn), a list (Sunrise, Dawn) and a slice
// (kinds...) all select the same set. Selecting nothing is allowed; such a
// timeline has no instants.
func New(calc Calculator, c Coordinates, phases ...Phase) *Timeline {
	var set Phase
	for _, p := range phases {
		set |= p
	}
	set &= AllPhases
	return &Timeline{
		calc:   calc,
		coords: c,
		phases: set,
		names:  set.Names(),
	}
}

// Sunrises returns the timeline of sunrises at c.
func Sunrises(calc Calculator, c Coordinates) *Timeline {
	return New(calc, c, Sunrise)
}

// Sunsets returns the timeline of sunsets at c.
func Sunsets(calc Calculator, c Coordinates) *Timeline {
	return New(calc, c, Sunset)
}

// Coordinates returns where the timeline's events are observed.
func (tl *Timeline) Coordinates() Coordinates {
	return tl.coords
}

// Phases returns the selected phase kinds.
func (tl *Timeline) Phases() Phase {
	return tl.phases
}

// String describes the selection and coordinates, e.g. "sunrise|sunset at 36.9741,-122.0308".
func (tl *Timeline) String() string {
	return fmt.Sprintf("%s at %s", tl.phases, tl.coords)
}

// Next returns the earliest selected event strictly after ref. ok is false
// if there is none before the supported date range runs out. ref must be
// UTC.
func (tl *Timeline) Next(ref time.Time) (next time.Time, ok bool, err error) {
	if ref.Location() != time.UTC {
		return time.Time{}, false, fmt.Errorf("next after %s: %w", ref, ErrNotUTC)
	}
	if len(tl.names) == 0 {
		return time.Time{}, false, nil
	}
	next, ok = tl.scan(ref, 1)
	return next, ok, nil
}

// Previous returns the latest selected event strictly before ref. ok is
// false if there is none after the supported date range begins. ref must be
// UTC.
func (tl *Timeline) Previous(ref time.Time) (prev time.Time, ok bool, err error) {
	if ref.Location() != time.UTC {
		return time.Time{}, false, fmt.Errorf("previous before %s: %w", ref, ErrNotUTC)
	}
	if len(tl.names) == 0 {
		return time.Time{}, false, nil
	}
	prev, ok = tl.scan(ref, -1)
	return prev, ok, nil
}

// IsInstant reports whether t is exactly an occurrence of a selected phase.
func (tl *Timeline) IsInstant(t time.Time) bool {
	if len(tl.names) == 0 {
		return false
	}
	events, ok := tl.dayEvents(timetricks.StartOfDay(t))
	if !ok {
		return false
	}
	for _, e := range events {
		if e.Time.Equal(t) {
			return true
		}
	}
	return false
}

// scan walks whole UTC days from the day containing ref in direction dir
// (+1 forward, -1 backward) looking for the event closest to ref on that
// side. Once a candidate turns up one more day is examined before the
// candidate is accepted. A day the calculator cannot answer ends the scan
// with no result; running off the end of the date range returns the best
// candidate seen.
func (tl *Timeline) scan(ref time.Time, dir int) (time.Time, bool) {
	var (
		best        time.Time
		bestGap     time.Duration
		found       bool
		continueFor = 1
		day         = timetricks.StartOfDay(ref)
	)

	for continueFor >= 0 {
		events, ok := tl.dayEvents(day)
		if !ok {
			return time.Time{}, false
		}

		for _, e := range events {
			gap := e.Time.Sub(ref)
			if dir < 0 {
				gap = -gap
			}
			if gap <= 0 {
				continue
			}
			if !found || gap < bestGap {
				best, bestGap, found = e.Time, gap, true
			}
		}

		if found {
			continueFor--
		}

		next, ok := timetricks.AddDays(day, dir)
		if !ok {
			break
		}
		day = next
	}

	return best, found
}

// dayEvents returns the selected events of one day. ok is false when the
// calculator could not produce the day.
func (tl *Timeline) dayEvents(day time.Time) ([]Event, bool) {
	events, err := tl.calc.DayEvents(day, tl.coords)
	if err != nil {
		return nil, false
	}
	var selected []Event
	for _, e := range events {
		if tl.selects(e.Name) {
			selected = append(selected, e)
		}
	}
	return selected, true
}

func (tl *Timeline) selects(name string) bool {
	for _, n := range tl.names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// Instants returns up to n consecutive events after ref, in order. It stops
// early when the timeline runs out.
func (tl *Timeline) Instants(ref time.Time, n int) ([]time.Time, error) {
	var result []time.Time
	for i := 0; i < n; i++ {
		next, ok, err := tl.Next(ref)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		result = append(result, next)
		ref = next
	}
	return result, nil
}
