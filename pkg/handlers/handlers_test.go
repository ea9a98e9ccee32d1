package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/spencer-p/sunphase/pkg/data"
	"github.com/spencer-p/sunphase/pkg/sunphase"
	"github.com/spencer-p/sunphase/pkg/timetricks"
)

// stubCalc rises at 06:00 and sets at 18:00 UTC every day from 2000 on.
type stubCalc struct{}

func (stubCalc) DayEvents(day time.Time, c sunphase.Coordinates) ([]sunphase.Event, error) {
	day = timetricks.StartOfDay(day)
	if day.Year() < 2000 {
		return nil, sunphase.ErrOutOfRange
	}
	return []sunphase.Event{
		{Name: "sunrise", Time: day.Add(6 * time.Hour)},
		{Name: "sunset", Time: day.Add(18 * time.Hour)},
	}, nil
}

type memPlaces map[string]data.Place

func (m memPlaces) PlaceByName(name string) (data.Place, error) {
	p, ok := m[name]
	if !ok {
		return data.Place{}, fmt.Errorf("%q: %w", name, data.ErrPlaceNotFound)
	}
	return p, nil
}

func (m memPlaces) SavePlace(name string, c sunphase.Coordinates) (data.Place, error) {
	p := data.Place{Name: name, Latitude: c.Latitude, Longitude: c.Longitude, Height: c.Height}
	m[name] = p
	return p, nil
}

var noon = time.Date(2021, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(local sunphase.Local) (*Server, http.Handler) {
	s := &Server{
		Calculator: stubCalc{},
		Places:     memPlaces{},
		Local:      local,
		Sessions:   NewCookieStore("session-key", "password", false),
		Logger:     zap.NewNop().Sugar(),
		Now:        func() time.Time { return noon },
	}
	r := mux.NewRouter()
	s.Register(r)
	return s, r
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAdjacent(t *testing.T) {
	_, h := newTestServer(sunphase.Local{})

	table := []struct {
		target   string
		wantCode int
		wantTime string
		wantOK   bool
	}{
		{"/api/v1/next?lat=36.97&lon=-122.03", 200, "2021-06-01T18:00:00Z", true},
		{"/api/v1/previous?lat=36.97&lon=-122.03", 200, "2021-06-01T06:00:00Z", true},
		{"/api/v1/next?lat=36.97&lon=-122.03&phases=sunrise", 200, "2021-06-02T06:00:00Z", true},
		{"/api/v1/next?lat=36.97&lon=-122.03&t=2021-06-01T20:00:00%2B02:00", 200, "2021-06-02T06:00:00Z", true},
		{"/api/v1/next?lat=36.97&lon=-122.03&phases=none", 200, "", false},
		{"/api/v1/previous?lat=36.97&lon=-122.03&t=2000-01-01T01:00:00Z", 200, "", false},
		{"/api/v1/next?lat=36.97&lon=-122.03&phases=moonrise", 400, "", false},
		{"/api/v1/next?lat=136.97&lon=-122.03", 400, "", false},
		{"/api/v1/next?lat=36.97", 400, "", false},
		{"/api/v1/next?lat=36.97&lon=-122.03&t=yesterday", 400, "", false},
		{"/api/v1/next", 400, "", false},
	}

	for _, tc := range table {
		t.Run(tc.target, func(t *testing.T) {
			rec := do(t, h, "GET", tc.target, nil)
			if rec.Code != tc.wantCode {
				t.Fatalf("got code %d, wanted %d: %s", rec.Code, tc.wantCode, rec.Body)
			}
			if rec.Code != 200 {
				return
			}
			var got struct {
				Time  *time.Time `json:"time"`
				Found bool       `json:"found"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("unexpected: %v", err)
			}
			if got.Found != tc.wantOK {
				t.Errorf("got found %v, wanted %v", got.Found, tc.wantOK)
			}
			if tc.wantOK && got.Time.Format(time.RFC3339) != tc.wantTime {
				t.Errorf("got %v, wanted %v", got.Time, tc.wantTime)
			}
		})
	}
}

func TestIsInstant(t *testing.T) {
	_, h := newTestServer(sunphase.NewLocal(sunphase.Coordinates{Latitude: 1, Longitude: 2}))

	table := []struct {
		target string
		want   bool
	}{
		{"/api/v1/is?t=2021-06-01T06:00:00Z", true},
		{"/api/v1/is?t=2021-06-01T06:00:00.000000001Z", false},
		{"/api/v1/is?t=2021-06-01T06:00:00Z&phases=sunset", false},
	}
	for _, tc := range table {
		target, want := tc.target, tc.want
		rec := do(t, h, "GET", target, nil)
		var got struct {
			Instant bool `json:"instant"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("%s: %v", target, err)
		}
		if got.Instant != want {
			t.Errorf("%s: got %v, wanted %v", target, got.Instant, want)
		}
	}
}

func TestEvents(t *testing.T) {
	_, h := newTestServer(sunphase.NewLocal(sunphase.Coordinates{Latitude: 1, Longitude: 2}))

	rec := do(t, h, "GET", "/api/v1/events?count=3", nil)
	if rec.Code != 200 {
		t.Fatalf("got code %d: %s", rec.Code, rec.Body)
	}
	var got struct {
		Instants []time.Time `json:"instants"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	want := []time.Time{
		noon.Add(6 * time.Hour),
		noon.Add(18 * time.Hour),
		noon.Add(30 * time.Hour),
	}
	if diff := cmp.Diff(want, got.Instants); diff != "" {
		t.Errorf("wrong instants (-want,+got):\n%s", diff)
	}

	if rec := do(t, h, "GET", "/api/v1/events?count=1001", nil); rec.Code != 400 {
		t.Errorf("got code %d for too many events", rec.Code)
	}
}

func TestDaytime(t *testing.T) {
	_, h := newTestServer(sunphase.NewLocal(sunphase.Coordinates{Latitude: 1, Longitude: 2}))

	rec := do(t, h, "GET", "/api/v1/daytime?t=2021-06-01T20:00:00Z", nil)
	var got struct {
		Found      bool `json:"found"`
		Containing bool `json:"containing"`
		Period     struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		} `json:"period"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if !got.Found || got.Containing {
		t.Errorf("got found %v containing %v", got.Found, got.Containing)
	}
	if want := noon.Add(18 * time.Hour); !got.Period.Start.Equal(want) {
		t.Errorf("got start %v, wanted %v", got.Period.Start, want)
	}
}

func TestDaySVG(t *testing.T) {
	_, h := newTestServer(sunphase.NewLocal(sunphase.Coordinates{Latitude: 1, Longitude: 2}))

	rec := do(t, h, "GET", "/api/v1/day.svg?date=2021-06-01", nil)
	if rec.Code != 200 {
		t.Fatalf("got code %d: %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/svg+xml" {
		t.Errorf("got content type %q", got)
	}
	if !strings.Contains(rec.Body.String(), `class="daytime"`) {
		t.Errorf("no daytime in %s", rec.Body)
	}

	if rec := do(t, h, "GET", "/api/v1/day.svg?date=1999-06-01", nil); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("got code %d for a day the calculator cannot handle", rec.Code)
	}
}

func TestSessionLocal(t *testing.T) {
	_, h := newTestServer(sunphase.Local{})

	if rec := do(t, h, "GET", "/api/v1/next", nil); rec.Code != 400 {
		t.Fatalf("got code %d without local coordinates", rec.Code)
	}

	rec := do(t, h, "POST", "/api/v1/local", url.Values{"lat": {"82.5"}, "lon": {"62.3"}})
	if rec.Code != 200 {
		t.Fatalf("got code %d: %s", rec.Code, rec.Body)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("no session cookie set")
	}

	rec = do(t, h, "GET", "/api/v1/next", nil, cookies...)
	if rec.Code != 200 {
		t.Fatalf("got code %d: %s", rec.Code, rec.Body)
	}
	var got struct {
		Coordinates sunphase.Coordinates `json:"coordinates"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if want := (sunphase.Coordinates{Latitude: 82.5, Longitude: 62.3}); got.Coordinates != want {
		t.Errorf("got %v, wanted %v", got.Coordinates, want)
	}
}

func TestPlaces(t *testing.T) {
	_, h := newTestServer(sunphase.Local{})

	if rec := do(t, h, "GET", "/api/v1/places/santacruz", nil); rec.Code != 404 {
		t.Errorf("got code %d for a missing place", rec.Code)
	}
	rec := do(t, h, "PUT", "/api/v1/places/santacruz", url.Values{"lat": {"36.9741"}, "lon": {"-122.0308"}})
	if rec.Code != 200 {
		t.Fatalf("got code %d: %s", rec.Code, rec.Body)
	}
	if rec := do(t, h, "GET", "/api/v1/places/santacruz", nil); rec.Code != 200 {
		t.Errorf("got code %d for a saved place", rec.Code)
	}
	if rec := do(t, h, "GET", "/api/v1/next?place=santacruz", nil); rec.Code != 200 {
		t.Errorf("got code %d querying by place", rec.Code)
	}
}
