package sunphase

import (
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/spencer-p/sunphase/pkg/timetricks"
)

// SunCalc computes all fourteen phase kinds with github.com/sixdouglas/suncalc.
// It takes the observer height into account. suncalc converts times to
// Julian days through UnixNano, so days within a couple of days of the
// int64 nanosecond limits (1677 and 2262) fail with ErrOverflow.
type SunCalc struct{}

func (SunCalc) DayEvents(day time.Time, c Coordinates) ([]Event, error) {
	day = timetricks.StartOfDay(day)
	if err := checkNanoDay(day); err != nil {
		return nil, err
	}

	observer := suncalc.Observer{
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		Height:    c.Height,
		Location:  time.UTC,
	}
	col := newDayCollector(day)
	for _, noon := range cycleNoons(day) {
		for name, dt := range suncalc.GetTimesWithObserver(noon, observer) {
			col.add(string(name), dt.Value)
		}
	}
	return col.sorted(), nil
}
