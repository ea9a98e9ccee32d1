package handlers

import (
	"crypto/sha1"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/pbkdf2"

	"github.com/spencer-p/sunphase/pkg/sunphase"
)

const (
	sessionName = "sunphase"
	localLat    = "local-lat"
	localLon    = "local-lon"
	localHeight = "local-height"
	// See https://developer.chrome.com/blog/cookie-max-age-expires.
	defaultMaxAge = 60 * 60 * 24 * 400 // 400 days in seconds.
)

// NewCookieStore returns a session store signed with sessionKey and
// encrypted with a key derived from password.
func NewCookieStore(sessionKey, password string, secure bool) *sessions.CookieStore {
	store := &sessions.CookieStore{
		Codecs: securecookie.CodecsFromPairs(
			[]byte(sessionKey),
			pbkdf2.Key([]byte(password), []byte(sessionName), 4096, 32, sha1.New),
		),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   defaultMaxAge,
			Secure:   secure,
			HttpOnly: true,
		},
	}
	store.MaxAge(defaultMaxAge)
	return store
}

// sessionLocal returns the local coordinates saved in the request's session,
// if any.
func (s *Server) sessionLocal(r *http.Request) sunphase.Local {
	if s.Sessions == nil {
		return sunphase.Local{}
	}
	session, err := s.Sessions.Get(r, sessionName)
	if err != nil {
		s.Logger.Infow("Ignoring unreadable session", "error", err)
		return sunphase.Local{}
	}
	lat, ok1 := session.Values[localLat].(float64)
	lon, ok2 := session.Values[localLon].(float64)
	height, _ := session.Values[localHeight].(float64)
	if !ok1 || !ok2 {
		return sunphase.Local{}
	}
	return sunphase.NewLocal(sunphase.Coordinates{Latitude: lat, Longitude: lon, Height: height})
}

// serveSetLocal stores lat, lon and height as the session's local
// coordinates.
func (s *Server) serveSetLocal(w http.ResponseWriter, r *http.Request) {
	if s.Sessions == nil {
		s.writeError(w, r, badRequest(errNoSessions))
		return
	}
	c, err := coordinatesFromForm(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// A broken cookie still yields a fresh session to overwrite.
	session, _ := s.Sessions.Get(r, sessionName)
	session.Values[localLat] = c.Latitude
	session.Values[localLon] = c.Longitude
	session.Values[localHeight] = c.Height
	if err := session.Save(r, w); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Logger.Infow("Saved session local coordinates", "coordinates", c.String())
	s.writeJSON(w, r, c)
}
