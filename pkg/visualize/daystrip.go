package visualize

import (
	"fmt"
	"html"
	"io"
	"time"

	"github.com/spencer-p/sunphase/pkg/sunphase"
	"github.com/spencer-p/sunphase/pkg/timetricks"
)

const (
	width  = 1200
	height = 100
)

// DayStrip draws one UTC day as a horizontal strip with daylight shaded and
// a marker at every sun phase event.
type DayStrip struct {
	date   time.Time
	events []sunphase.Event
}

func NewDayStrip(events []sunphase.Event) *DayStrip {
	return &DayStrip{events: events}
}

func (img *DayStrip) SetDate(t time.Time) {
	img.date = timetricks.StartOfDay(t)
}

func (img *DayStrip) Encode(w io.Writer) (int, error) {
	var n int
	var err error
	io := func(nextn int, nexterr error) {
		n += nextn
		if nexterr != nil {
			err = nexterr
		}
	}

	io(fmt.Fprintf(w, `<svg viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, width, height))
	io(fmt.Fprintf(w, `<rect class="night" fill="midnightblue" x="0" y="0" width="%d" height="%d"/>`, width, height))

	// Shade daylight between sunrise and sunset. Either may be missing, or
	// sunset may come first when the day's sunrise belongs to tomorrow's
	// daylight.
	for _, span := range img.daylight() {
		io(fmt.Fprintf(w, `<rect class="daytime" fill="lightyellow" x="%d" y="%d" width="%d" height="%d"/>`,
			span[0], 0,
			span[1]-span[0], height))
	}

	for _, e := range img.events {
		if !timetricks.SameDay(e.Time, img.date) {
			continue
		}
		x := img.timeToX(e.Time)
		name := html.EscapeString(e.Name)
		io(fmt.Fprintf(w, `<line class="%s" stroke="darkorange" x1="%d" y1="0" x2="%d" y2="%d"><title>%s %s</title></line>`,
			name, x, x, height,
			name, e.Time.Format("15:04:05")))
	}

	// Insert date of this graph as unix.
	io(fmt.Fprintf(w, `<text class="unixtime" visibility="hidden">%d</text>`, img.date.Unix()))

	io(fmt.Fprintf(w, `</svg>`))

	return n, err
}

// daylight returns the x ranges of the strip that are in daylight.
func (img *DayStrip) daylight() [][2]int {
	rise, set := -1, -1
	for _, e := range img.events {
		if !timetricks.SameDay(e.Time, img.date) {
			continue
		}
		switch e.Name {
		case sunphase.Sunrise.Name():
			rise = img.timeToX(e.Time)
		case sunphase.Sunset.Name():
			set = img.timeToX(e.Time)
		}
	}

	switch {
	case rise >= 0 && set >= 0 && rise < set:
		return [][2]int{{rise, set}}
	case rise >= 0 && set >= 0:
		return [][2]int{{0, set}, {rise, width}}
	case rise >= 0:
		return [][2]int{{rise, width}}
	case set >= 0:
		return [][2]int{{0, set}}
	}
	return nil
}

func (img *DayStrip) timeToX(t time.Time) int {
	return int(t.Unix()-img.date.Unix()) * width / (60 * 60 * 24)
}
