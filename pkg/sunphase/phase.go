package sunphase

import (
	"fmt"
	"strings"
)

// Phase is a set of solar phase kinds. Each kind is a single bit so any
// combination can be requested at once, eg. Sunrise|Dawn.
type Phase uint32

const (
	SolarNoon Phase = 1 << iota
	Nadir
	Sunrise
	Sunset
	SunriseEnd
	SunsetStart
	Dawn
	Dusk
	NauticalDawn
	NauticalDusk
	NightEnd
	Night
	GoldenHourEnd
	GoldenHour

	None      Phase = 0
	AllPhases       = GoldenHour<<1 - 1
)

// phaseNames maps every kind to the event name calculators report for it.
var phaseNames = [...]struct {
	phase Phase
	name  string
}{
	{SolarNoon, "solarNoon"},
	{Nadir, "nadir"},
	{Sunrise, "sunrise"},
	{Sunset, "sunset"},
	{SunriseEnd, "sunriseEnd"},
	{SunsetStart, "sunsetStart"},
	{Dawn, "dawn"},
	{Dusk, "dusk"},
	{NauticalDawn, "nauticalDawn"},
	{NauticalDusk, "nauticalDusk"},
	{NightEnd, "nightEnd"},
	{Night, "night"},
	{GoldenHourEnd, "goldenHourEnd"},
	{GoldenHour, "goldenHour"},
}

// Names returns the event names of every kind present in p, in a fixed order.
// Bits that do not correspond to a kind are ignored.
func (p Phase) Names() []string {
	var names []string
	for _, pn := range phaseNames {
		if p&pn.phase != 0 {
			names = append(names, pn.name)
		}
	}
	return names
}

// Name returns the event name for a single kind, or "" if p is not exactly
// one kind.
func (p Phase) Name() string {
	for _, pn := range phaseNames {
		if p == pn.phase {
			return pn.name
		}
	}
	return ""
}

func (p Phase) String() string {
	names := p.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// PhaseByName finds the kind with the given event name, ignoring case.
func PhaseByName(name string) (Phase, bool) {
	for _, pn := range phaseNames {
		if strings.EqualFold(pn.name, name) {
			return pn.phase, true
		}
	}
	return None, false
}

// ParsePhases parses a comma or pipe separated list of phase names such as
// "sunrise,dawn". "all" selects every kind; "none" and the empty string
// select nothing.
func ParsePhases(s string) (Phase, error) {
	var set Phase
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|'
	})
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if strings.EqualFold(f, "all") {
			set |= AllPhases
			continue
		}
		if strings.EqualFold(f, "none") {
			continue
		}
		p, ok := PhaseByName(f)
		if !ok {
			return None, fmt.Errorf("%q: %w", f, ErrUnknownPhase)
		}
		set |= p
	}
	return set, nil
}
