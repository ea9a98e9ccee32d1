package sunphase

import (
	"fmt"
	"math"
)

// Coordinates is a geographic position. Height is in meters relative to the
// horizon.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    float64 `json:"height"`
}

func (c Coordinates) String() string {
	if c.Height == 0 {
		return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
	}
	return fmt.Sprintf("%.4f,%.4f@%gm", c.Latitude, c.Longitude, c.Height)
}

// Validate checks that the latitude and longitude are on the globe.
func (c Coordinates) Validate() error {
	switch {
	case math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90:
		return fmt.Errorf("latitude %v: %w", c.Latitude, ErrInvalidCoordinates)
	case math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180:
		return fmt.Errorf("longitude %v: %w", c.Longitude, ErrInvalidCoordinates)
	case math.IsNaN(c.Height) || math.IsInf(c.Height, 0):
		return fmt.Errorf("height %v: %w", c.Height, ErrInvalidCoordinates)
	}
	return nil
}

// Local is an optional set of "local" coordinates handed to code that has no
// coordinates of its own. The zero value is unset.
type Local struct {
	coords *Coordinates
}

// NewLocal returns a Local set to c.
func NewLocal(c Coordinates) Local {
	return Local{coords: &c}
}

// IsSet reports whether coordinates have been provided.
func (l Local) IsSet() bool {
	return l.coords != nil
}

// Get returns the local coordinates or ErrLocalNotSet.
func (l Local) Get() (Coordinates, error) {
	if l.coords == nil {
		return Coordinates{}, ErrLocalNotSet
	}
	return *l.coords, nil
}

// Or returns l if it is set and other otherwise.
func (l Local) Or(other Local) Local {
	if l.IsSet() {
		return l
	}
	return other
}
