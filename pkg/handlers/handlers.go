package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/spencer-p/sunphase/pkg/data"
	"github.com/spencer-p/sunphase/pkg/periods"
	"github.com/spencer-p/sunphase/pkg/sunphase"
	"github.com/spencer-p/sunphase/pkg/visualize"
)

const (
	defaultCount = 10
	maxCount     = 1000
)

// PlaceStore looks up and saves named coordinates.
type PlaceStore interface {
	PlaceByName(name string) (data.Place, error)
	SavePlace(name string, c sunphase.Coordinates) (data.Place, error)
}

// Server answers sun phase queries over HTTP.
type Server struct {
	Calculator sunphase.Calculator
	// Places is optional; without it place lookups fail.
	Places PlaceStore
	// Local is used when a request has neither coordinates nor session
	// local coordinates.
	Local    sunphase.Local
	Sessions sessions.Store
	Logger   *zap.SugaredLogger
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *Server) Register(r *mux.Router) {
	r.HandleFunc("/api/v1/next", s.serveNext).Methods("GET")
	r.HandleFunc("/api/v1/previous", s.servePrevious).Methods("GET")
	r.HandleFunc("/api/v1/is", s.serveIsInstant).Methods("GET")
	r.HandleFunc("/api/v1/events", s.serveEvents).Methods("GET")
	r.HandleFunc("/api/v1/daytime", s.serveDaytime).Methods("GET")
	r.HandleFunc("/api/v1/day.svg", s.serveDaySVG).Methods("GET")
	r.HandleFunc("/api/v1/local", s.serveSetLocal).Methods("POST")
	r.HandleFunc("/api/v1/places/{name}", s.serveGetPlace).Methods("GET")
	r.HandleFunc("/api/v1/places/{name}", s.servePutPlace).Methods("PUT")
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

type instantResponse struct {
	Time        *time.Time           `json:"time,omitempty"`
	Found       bool                 `json:"found"`
	Phases      string               `json:"phases"`
	Coordinates sunphase.Coordinates `json:"coordinates"`
}

func (s *Server) serveNext(w http.ResponseWriter, r *http.Request) {
	s.serveAdjacent(w, r, (*sunphase.Timeline).Next)
}

func (s *Server) servePrevious(w http.ResponseWriter, r *http.Request) {
	s.serveAdjacent(w, r, (*sunphase.Timeline).Previous)
}

func (s *Server) serveAdjacent(w http.ResponseWriter, r *http.Request,
	query func(*sunphase.Timeline, time.Time) (time.Time, bool, error)) {
	tl, err := s.timeline(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ref, err := s.timeParam(r, "t")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	found, ok, err := query(tl, ref)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := instantResponse{
		Found:       ok,
		Phases:      tl.Phases().String(),
		Coordinates: tl.Coordinates(),
	}
	if ok {
		resp.Time = &found
	}
	s.writeJSON(w, r, resp)
}

func (s *Server) serveIsInstant(w http.ResponseWriter, r *http.Request) {
	tl, err := s.timeline(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.timeParam(r, "t")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, map[string]any{
		"time":    t,
		"instant": tl.IsInstant(t),
	})
}

func (s *Server) serveEvents(w http.ResponseWriter, r *http.Request) {
	tl, err := s.timeline(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	from, err := s.timeParam(r, "from")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	count, err := intParam(r, "count", defaultCount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if count < 0 || count > maxCount {
		s.writeError(w, r, badRequest(fmt.Errorf("count %d not in [0, %d]", count, maxCount)))
		return
	}

	instants, err := tl.Instants(from, count)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if instants == nil {
		instants = []time.Time{}
	}
	s.writeJSON(w, r, map[string]any{
		"phases":      tl.Phases().String(),
		"coordinates": tl.Coordinates(),
		"instants":    instants,
	})
}

func (s *Server) serveDaytime(w http.ResponseWriter, r *http.Request) {
	c, err := s.coordinates(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.timeParam(r, "t")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	daytime := periods.Daytime(s.Calculator, c)
	p, ok, err := daytime.CurrentOrNext(t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := map[string]any{
		"coordinates": c,
		"found":       ok,
	}
	if ok {
		resp["period"] = p
		resp["containing"] = p.Contains(t)
	}
	s.writeJSON(w, r, resp)
}

func (s *Server) serveDaySVG(w http.ResponseWriter, r *http.Request) {
	c, err := s.coordinates(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	day := s.now()
	if v := r.FormValue("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			s.writeError(w, r, badRequest(fmt.Errorf("date %q: %w", v, err)))
			return
		}
		day = parsed
	}
	phases := sunphase.AllPhases
	if v := r.FormValue("phases"); v != "" {
		if phases, err = sunphase.ParsePhases(v); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	events, err := s.Calculator.DayEvents(day, c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var selected []sunphase.Event
	for _, e := range events {
		if p, ok := sunphase.PhaseByName(e.Name); ok && phases&p != 0 {
			selected = append(selected, e)
		}
	}

	img := visualize.NewDayStrip(selected)
	img.SetDate(day)
	w.Header().Add("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if _, err := img.Encode(w); err != nil {
		s.Logger.Errorw("Failed to encode day strip", "error", err)
	}
}

// timeline builds the timeline a request asks for.
func (s *Server) timeline(r *http.Request) (*sunphase.Timeline, error) {
	c, err := s.coordinates(r)
	if err != nil {
		return nil, err
	}
	phases := sunphase.Sunrise | sunphase.Sunset
	if v := r.FormValue("phases"); v != "" {
		if phases, err = sunphase.ParsePhases(v); err != nil {
			return nil, err
		}
	}
	return sunphase.New(s.Calculator, c, phases), nil
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Errorw("Failed to encode JSON result", "path", r.URL.Path, "error", err)
	}
}

// requestError carries an HTTP status for an error caused by the request.
type requestError struct {
	code int
	err  error
}

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &requestError{code: http.StatusBadRequest, err: err}
}

func statusCode(err error) int {
	var re *requestError
	switch {
	case errors.As(err, &re):
		return re.code
	case errors.Is(err, data.ErrPlaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, sunphase.ErrLocalNotSet),
		errors.Is(err, sunphase.ErrUnknownPhase),
		errors.Is(err, sunphase.ErrInvalidCoordinates),
		errors.Is(err, sunphase.ErrNotUTC):
		return http.StatusBadRequest
	case errors.Is(err, sunphase.ErrOutOfRange),
		errors.Is(err, sunphase.ErrOverflow):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	if code >= http.StatusInternalServerError {
		s.Logger.Errorw("Request failed", "method", r.Method, "url", r.URL.String(), "error", err)
	} else {
		s.Logger.Infow("Bad request", "method", r.Method, "url", r.URL.String(), "error", err)
	}
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(code)
	fmt.Fprintf(w, "%v\n", err)
}
