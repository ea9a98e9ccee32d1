package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spencer-p/sunphase/pkg/sunphase"
)

var errNoPlaces = errors.New("places are not configured")

// coordinates resolves the coordinates of a request. In order of preference:
// the place parameter, lat and lon parameters, the session's local
// coordinates and finally the server's local coordinates.
func (s *Server) coordinates(r *http.Request) (sunphase.Coordinates, error) {
	if name := r.FormValue("place"); name != "" {
		if s.Places == nil {
			return sunphase.Coordinates{}, badRequest(errNoPlaces)
		}
		place, err := s.Places.PlaceByName(name)
		if err != nil {
			return sunphase.Coordinates{}, err
		}
		return place.Coordinates(), nil
	}

	if r.FormValue("lat") != "" || r.FormValue("lon") != "" {
		return coordinatesFromForm(r)
	}

	return s.sessionLocal(r).Or(s.Local).Get()
}

func coordinatesFromForm(r *http.Request) (sunphase.Coordinates, error) {
	var c sunphase.Coordinates
	var err error
	if c.Latitude, err = floatParam(r, "lat", 0, true); err != nil {
		return c, err
	}
	if c.Longitude, err = floatParam(r, "lon", 0, true); err != nil {
		return c, err
	}
	if c.Height, err = floatParam(r, "height", 0, false); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func floatParam(r *http.Request, key string, def float64, required bool) (float64, error) {
	v := r.FormValue(key)
	if v == "" {
		if required {
			return 0, badRequest(fmt.Errorf("missing %s", key))
		}
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, badRequest(fmt.Errorf("%s %q not a number: %w", key, v, err))
	}
	return f, nil
}

func intParam(r *http.Request, key string, def int) (int, error) {
	v := r.FormValue(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, badRequest(fmt.Errorf("%s %q not an integer: %w", key, v, err))
	}
	return i, nil
}

// timeParam reads an RFC 3339 time, defaulting to now. Times in other zones
// are converted to UTC.
func (s *Server) timeParam(r *http.Request, key string) (time.Time, error) {
	v := r.FormValue(key)
	if v == "" {
		return s.now(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, badRequest(fmt.Errorf("%s %q: %w", key, v, err))
	}
	return t.UTC(), nil
}
