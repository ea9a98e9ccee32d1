package periods

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/sunphase/pkg/sunphase"
)

// list is a timeline of a fixed, sorted set of instants.
type list []time.Time

func (l list) Next(ref time.Time) (time.Time, bool, error) {
	i := sort.Search(len(l), func(i int) bool { return l[i].After(ref) })
	if i == len(l) {
		return time.Time{}, false, nil
	}
	return l[i], true, nil
}

func (l list) Previous(ref time.Time) (time.Time, bool, error) {
	i := sort.Search(len(l), func(i int) bool { return !l[i].Before(ref) })
	if i == 0 {
		return time.Time{}, false, nil
	}
	return l[i-1], true, nil
}

func (l list) IsInstant(t time.Time) bool {
	for _, x := range l {
		if x.Equal(t) {
			return true
		}
	}
	return false
}

func at(day, hour int) time.Time {
	return time.Date(2021, time.June, day, hour, 0, 0, 0, time.UTC)
}

var (
	rises = list{at(1, 6), at(2, 6), at(3, 6), at(10, 6)}
	sets  = list{at(1, 18), at(2, 18), at(8, 18), at(9, 18), at(10, 18)}
)

func TestContaining(t *testing.T) {
	day := Between(rises, sets)
	table := []struct {
		name   string
		t      time.Time
		want   Period
		wantOK bool
	}{
		{"midday", at(2, 12), Period{at(2, 6), at(2, 18)}, true},
		{"at sunrise", at(2, 6), Period{at(2, 6), at(2, 18)}, true},
		{"at sunset", at(2, 18), Period{at(2, 6), at(2, 18)}, false},
		{"before first", at(1, 1), Period{}, false},
		{"polar day", at(5, 0), Period{at(3, 6), at(8, 18)}, true},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got, ok, err := day.Containing(tc.t)
			if err != nil {
				t.Fatalf("unexpected: %v", err)
			}
			if ok != tc.wantOK {
				t.Errorf("got ok %v, wanted %v", ok, tc.wantOK)
			}
			if ok {
				if diff := cmp.Diff(tc.want, got); diff != "" {
					t.Errorf("wrong period (-want,+got):\n%s", diff)
				}
			}
		})
	}
}

func TestNextPrevious(t *testing.T) {
	day := Between(rises, sets)

	next, ok, err := day.Next(at(2, 12))
	if err != nil || !ok {
		t.Fatalf("Next: %v, %v", ok, err)
	}
	if diff := cmp.Diff(Period{at(3, 6), at(8, 18)}, next); diff != "" {
		t.Errorf("Next (-want,+got):\n%s", diff)
	}

	// The sunset on the 9th closes nothing; the last period ended on the 8th.
	prev, ok, err := day.Previous(at(9, 20))
	if err != nil || !ok {
		t.Fatalf("Previous: %v, %v", ok, err)
	}
	if diff := cmp.Diff(Period{at(3, 6), at(8, 18)}, prev); diff != "" {
		t.Errorf("Previous (-want,+got):\n%s", diff)
	}

	if _, ok, _ := day.Next(at(10, 7)); ok {
		t.Errorf("Next past the last sunrise found a period")
	}

	cur, ok, _ := day.CurrentOrNext(at(2, 20))
	if diff := cmp.Diff(Period{at(3, 6), at(8, 18)}, cur); !ok || diff != "" {
		t.Errorf("CurrentOrNext (-want,+got):\n%s", diff)
	}
}

type failing struct{ list }

func (failing) Next(time.Time) (time.Time, bool, error) {
	return time.Time{}, false, sunphase.ErrNotUTC
}

func TestErrorsPropagate(t *testing.T) {
	day := Between(rises, failing{sets})
	if _, _, err := day.Containing(at(2, 12)); !errors.Is(err, sunphase.ErrNotUTC) {
		t.Errorf("got %v, wanted %v", err, sunphase.ErrNotUTC)
	}
}

func TestDaytimeSunCalc(t *testing.T) {
	santaCruz := sunphase.Coordinates{Latitude: 36.9741, Longitude: -122.0308}
	noon := time.Date(2020, time.October, 25, 20, 0, 0, 0, time.UTC)

	day, ok, err := Daytime(sunphase.SunCalc{}, santaCruz).Containing(noon)
	if err != nil || !ok {
		t.Fatalf("Containing: %v, %v", ok, err)
	}
	if d := day.Duration(); d < 10*time.Hour || d > 12*time.Hour {
		t.Errorf("daytime %v lasts %v", day, d)
	}

	night, ok, err := Nighttime(sunphase.SunCalc{}, santaCruz).Next(noon)
	if err != nil || !ok {
		t.Fatalf("Next: %v, %v", ok, err)
	}
	if !night.Start.Equal(day.End) {
		t.Errorf("night %v does not start at sunset %v", night, day.End)
	}
}
