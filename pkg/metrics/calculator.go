package metrics

import (
	"errors"
	"time"

	"github.com/spencer-p/sunphase/pkg/sunphase"
)

type instrumented struct {
	name string
	next sunphase.Calculator
}

// InstrumentCalculator counts every day computed by calc under name.
func InstrumentCalculator(name string, calc sunphase.Calculator) sunphase.Calculator {
	return &instrumented{name: name, next: calc}
}

func (c *instrumented) DayEvents(day time.Time, coords sunphase.Coordinates) ([]sunphase.Event, error) {
	events, err := c.next.DayEvents(day, coords)
	ObserveDayQuery(c.name, outcome(events, err))
	return events, err
}

func outcome(events []sunphase.Event, err error) string {
	switch {
	case errors.Is(err, sunphase.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, sunphase.ErrOverflow):
		return "overflow"
	case err != nil:
		return "error"
	case len(events) == 0:
		return "empty"
	}
	return "ok"
}
