package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
)

var errNoSessions = errors.New("sessions are not configured")

func (s *Server) serveGetPlace(w http.ResponseWriter, r *http.Request) {
	if s.Places == nil {
		s.writeError(w, r, badRequest(errNoPlaces))
		return
	}
	place, err := s.Places.PlaceByName(mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, map[string]any{
		"name":        place.Name,
		"coordinates": place.Coordinates(),
	})
}

func (s *Server) servePutPlace(w http.ResponseWriter, r *http.Request) {
	if s.Places == nil {
		s.writeError(w, r, badRequest(errNoPlaces))
		return
	}
	c, err := coordinatesFromForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	place, err := s.Places.SavePlace(mux.Vars(r)["name"], c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Logger.Infow("Saved place", "name", place.Name, "coordinates", c.String())
	s.writeJSON(w, r, map[string]any{
		"name":        place.Name,
		"coordinates": place.Coordinates(),
	})
}
