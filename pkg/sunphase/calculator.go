package sunphase

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/spencer-p/sunphase/pkg/timetricks"
)

var (
	// ErrOutOfRange is returned by a Calculator for days outside
	// [timetricks.MinInstant, timetricks.MaxInstant].
	ErrOutOfRange = errors.New("date out of range")
	// ErrOverflow is returned by a Calculator when its arithmetic cannot
	// represent the requested day.
	ErrOverflow = errors.New("arithmetic overflow")

	// ErrNotUTC is returned for reference times in a location other than UTC.
	ErrNotUTC = errors.New("time is not UTC")
	// ErrLocalNotSet is returned by Local.Get when no coordinates were set.
	ErrLocalNotSet = errors.New("local coordinates not set")
	// ErrUnknownPhase is returned by ParsePhases for unrecognized names.
	ErrUnknownPhase = errors.New("unknown sun phase")
	// ErrUnknownCalculator is returned by NewCalculator for unregistered names.
	ErrUnknownCalculator = errors.New("unknown calculator")
	// ErrInvalidCoordinates is returned by Coordinates.Validate.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Event is a single phase occurrence produced by a Calculator.
type Event struct {
	Name string    `json:"name"`
	Time time.Time `json:"time"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Time.Format(time.RFC3339Nano), e.Name)
}

// Calculator computes the solar phase events of one UTC calendar day.
//
// DayEvents returns every event whose instant falls within
// [StartOfDay(day), StartOfDay(day)+24h). A phase that does not occur that
// day is simply absent. Repeated calls with the same arguments must return
// the same events. Days the calculator cannot handle fail with ErrOutOfRange
// or ErrOverflow.
type Calculator interface {
	DayEvents(day time.Time, c Coordinates) ([]Event, error)
}

// NewCalculator returns the calculator registered under name: "suncalc"
// (the default for ""), "keep94" or "noaa".
func NewCalculator(name string) (Calculator, error) {
	switch name {
	case "", "suncalc":
		return SunCalc{}, nil
	case "keep94":
		return KeepSunrise{}, nil
	case "noaa":
		return NOAASunrise{}, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownCalculator)
}

var (
	nanoMin = time.Unix(0, math.MinInt64).UTC()
	nanoMax = time.Unix(0, math.MaxInt64).UTC()
)

// checkDay rejects days outside the supported range. The calculators
// evaluate cycles one day either side of day, which time.Time represents for
// every day in range.
func checkDay(day time.Time) error {
	if !timetricks.InRange(day) {
		return fmt.Errorf("%s: %w", day.Format(time.RFC3339), ErrOutOfRange)
	}
	return nil
}

// checkNanoDay is checkDay for calculators that convert through nanoseconds
// since the Unix epoch. The cycles around day must fit in an int64 of
// nanoseconds.
func checkNanoDay(day time.Time) error {
	if err := checkDay(day); err != nil {
		return err
	}
	if day.AddDate(0, 0, -1).Before(nanoMin) || day.AddDate(0, 0, 2).After(nanoMax) {
		return fmt.Errorf("%s: %w", day.Format(time.RFC3339), ErrOverflow)
	}
	return nil
}

// dayCollector keeps the events that fall inside one UTC day.
type dayCollector struct {
	start, end time.Time
	events     []Event
}

func newDayCollector(day time.Time) *dayCollector {
	return &dayCollector{start: day, end: day.AddDate(0, 0, 1)}
}

func (d *dayCollector) add(name string, t time.Time) {
	if t.IsZero() {
		return
	}
	t = t.UTC()
	if t.Before(d.start) || !t.Before(d.end) {
		return
	}
	for _, e := range d.events {
		if e.Name == name && e.Time.Equal(t) {
			return
		}
	}
	d.events = append(d.events, Event{Name: name, Time: t})
}

// sorted returns the events ordered by time, then name.
func (d *dayCollector) sorted() []Event {
	sort.Slice(d.events, func(i, j int) bool {
		if d.events[i].Time.Equal(d.events[j].Time) {
			return d.events[i].Name < d.events[j].Name
		}
		return d.events[i].Time.Before(d.events[j].Time)
	})
	return d.events
}

// cycleNoons returns noon UTC of the day before, of and after day. Each
// calculator evaluates one solar cycle per noon; together the three cover
// every event that can land inside day.
func cycleNoons(day time.Time) [3]time.Time {
	var noons [3]time.Time
	for i := range noons {
		noons[i] = day.AddDate(0, 0, i-1).Add(12 * time.Hour)
	}
	return noons
}
