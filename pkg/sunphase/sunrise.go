package sunphase

import (
	"time"

	keep94 "github.com/keep94/sunrise"
	gosunrise "github.com/nathan-osman/go-sunrise"

	"github.com/spencer-p/sunphase/pkg/timetricks"
)

// KeepSunrise computes sunrise and sunset with github.com/keep94/sunrise.
// Height is ignored.
type KeepSunrise struct{}

func (KeepSunrise) DayEvents(day time.Time, c Coordinates) ([]Event, error) {
	day = timetricks.StartOfDay(day)
	if err := checkDay(day); err != nil {
		return nil, err
	}

	col := newDayCollector(day)
	for _, noon := range cycleNoons(day) {
		// Each cycle gets its own Around rather than AddDays so that a
		// given noon always produces bit-identical times.
		var s keep94.Sunrise
		s.Around(c.Latitude, c.Longitude, noon)
		col.add(Sunrise.Name(), s.Sunrise())
		col.add(Sunset.Name(), s.Sunset())
	}
	return col.sorted(), nil
}

// NOAASunrise computes sunrise and sunset with github.com/nathan-osman/go-sunrise,
// plus solar noon as the midpoint between them. Height is ignored.
type NOAASunrise struct{}

func (NOAASunrise) DayEvents(day time.Time, c Coordinates) ([]Event, error) {
	day = timetricks.StartOfDay(day)
	if err := checkDay(day); err != nil {
		return nil, err
	}

	col := newDayCollector(day)
	for _, noon := range cycleNoons(day) {
		// go-sunrise returns zero times when the sun never rises or sets.
		rise, set := gosunrise.SunriseSunset(
			c.Latitude, c.Longitude,
			noon.Year(), noon.Month(), noon.Day())
		col.add(Sunrise.Name(), rise)
		col.add(Sunset.Name(), set)
		if !rise.IsZero() && !set.IsZero() {
			col.add(SolarNoon.Name(), rise.Add(set.Sub(rise)/2))
		}
	}
	return col.sorted(), nil
}
