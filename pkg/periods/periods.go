// Package periods builds timelines of periods out of two instant timelines,
// eg. daytime as the periods from each sunrise to the following sunset.
package periods

import (
	"fmt"
	"time"

	"github.com/spencer-p/sunphase/pkg/sunphase"
)

// Instants is a timeline of instants, as implemented by *sunphase.Timeline.
type Instants interface {
	Next(ref time.Time) (time.Time, bool, error)
	Previous(ref time.Time) (time.Time, bool, error)
	IsInstant(t time.Time) bool
}

var _ Instants = (*sunphase.Timeline)(nil)

// Period is the half open interval [Start, End).
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

func (p Period) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

func (p Period) String() string {
	return fmt.Sprintf("%s until %s", p.Start.Format(time.RFC3339), p.End.Format(time.RFC3339))
}

// Timeline is a sequence of periods, each running from a start instant to
// the first end instant after it. A period can span several days, as daytime
// does near the poles in summer.
type Timeline struct {
	start, end Instants
}

// Between returns the periods that run from start instants to end instants.
func Between(start, end Instants) *Timeline {
	return &Timeline{start: start, end: end}
}

// Daytime returns the periods from sunrise to sunset at c.
func Daytime(calc sunphase.Calculator, c sunphase.Coordinates) *Timeline {
	return Between(sunphase.Sunrises(calc, c), sunphase.Sunsets(calc, c))
}

// Nighttime returns the periods from sunset to sunrise at c.
func Nighttime(calc sunphase.Calculator, c sunphase.Coordinates) *Timeline {
	return Between(sunphase.Sunsets(calc, c), sunphase.Sunrises(calc, c))
}

// atOrBefore returns the latest instant of tl at or before t.
func atOrBefore(tl Instants, t time.Time) (time.Time, bool, error) {
	if tl.IsInstant(t) {
		return t, true, nil
	}
	return tl.Previous(t)
}

// Containing returns the period that t falls in. ok is false when t is not
// inside a period.
func (tl *Timeline) Containing(t time.Time) (p Period, ok bool, err error) {
	start, ok, err := atOrBefore(tl.start, t)
	if err != nil || !ok {
		return Period{}, false, err
	}
	end, ok, err := tl.end.Next(start)
	if err != nil || !ok {
		return Period{}, false, err
	}
	p = Period{Start: start, End: end}
	return p, p.Contains(t), nil
}

// Next returns the first period starting strictly after t.
func (tl *Timeline) Next(t time.Time) (p Period, ok bool, err error) {
	start, ok, err := tl.start.Next(t)
	if err != nil || !ok {
		return Period{}, false, err
	}
	end, ok, err := tl.end.Next(start)
	if err != nil || !ok {
		return Period{}, false, err
	}
	return Period{Start: start, End: end}, true, nil
}

// Previous returns the last period ending at or before t.
func (tl *Timeline) Previous(t time.Time) (p Period, ok bool, err error) {
	end, ok, err := atOrBefore(tl.end, t)
	if err != nil || !ok {
		return Period{}, false, err
	}
	start, ok, err := tl.start.Previous(end)
	if err != nil || !ok {
		return Period{}, false, err
	}
	// Walk back over start instants that have their own earlier end so
	// the period begins at the start that end actually closes.
	p = Period{Start: start, End: end}
	if e, ok, err := tl.end.Next(start); err != nil {
		return Period{}, false, err
	} else if ok && e.Before(end) {
		return tl.Previous(e)
	}
	return p, true, nil
}

// CurrentOrNext returns the period containing t or, failing that, the next
// one.
func (tl *Timeline) CurrentOrNext(t time.Time) (p Period, ok bool, err error) {
	if p, ok, err := tl.Containing(t); err != nil || ok {
		return p, ok, err
	}
	return tl.Next(t)
}
