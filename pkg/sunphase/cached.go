package sunphase

import (
	"time"

	"github.com/spencer-p/sunphase/pkg/cache"
	"github.com/spencer-p/sunphase/pkg/timetricks"
)

type dayKey struct {
	day    int64
	coords Coordinates
}

type dayResult struct {
	events []Event
	err    error
}

type cachedCalculator struct {
	next Calculator
	days *cache.Timed[dayKey, dayResult]
}

// Cached wraps calc so that each (day, coordinates) pair is computed at most
// once per ttl. Failures are cached too; day results never change. At most
// size days are held, or any number if size <= 0. The returned slices are
// shared and must not be modified.
func Cached(calc Calculator, ttl time.Duration, size int) Calculator {
	return &cachedCalculator{
		next: calc,
		days: cache.NewTimed[dayKey, dayResult](ttl, size),
	}
}

func (c *cachedCalculator) DayEvents(day time.Time, coords Coordinates) ([]Event, error) {
	key := dayKey{day: timetricks.StartOfDay(day).Unix(), coords: coords}
	if r, ok := c.days.Get(key); ok {
		return r.events, r.err
	}
	events, err := c.next.DayEvents(day, coords)
	c.days.Set(key, dayResult{events: events, err: err})
	return events, err
}
