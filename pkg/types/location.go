package types

import (
	"encoding/json"
	"fmt"
	"math"

	pkgerrors "github.com/pkg/errors"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
	MinElevation = -90.0
	MaxElevation = 90.0

	// CivilTwilightElevation is the sun elevation at which civil twilight
	// begins or ends.
	CivilTwilightElevation = -6.0

	DefaultElevationHigh = 3.0
	DefaultElevationLow  = CivilTwilightElevation
)

type Latitude float64

func NewLatitude(v float64) (Latitude, error) {
	if math.IsNaN(v) || v < MinLatitude || v > MaxLatitude {
		return 0, pkgerrors.Wrapf(ErrOutOfRange, "latitude %g not in [%g, %g]", v, MinLatitude, MaxLatitude)
	}
	return Latitude(v), nil
}

type Longitude float64

func NewLongitude(v float64) (Longitude, error) {
	if math.IsNaN(v) || v < MinLongitude || v > MaxLongitude {
		return 0, pkgerrors.Wrapf(ErrOutOfRange, "longitude %g not in [%g, %g]", v, MinLongitude, MaxLongitude)
	}
	return Longitude(v), nil
}

// Location is a point on earth. The zero value is (0, 0).
type Location struct {
	Lat Latitude  `json:"latitude"`
	Lon Longitude `json:"longitude"`
}

func NewLocation(lat, lon float64) (Location, error) {
	la, err := NewLatitude(lat)
	if err != nil {
		return Location{}, err
	}
	lo, err := NewLongitude(lon)
	if err != nil {
		return Location{}, err
	}
	return Location{Lat: la, Lon: lo}, nil
}

// IsDefault reports whether l is the (0, 0) fallback location.
func (l Location) IsDefault() bool {
	return l == Location{}
}

func (l Location) String() string {
	ns, ew := "N", "E"
	lat, lon := float64(l.Lat), float64(l.Lon)
	if lat < 0 {
		ns = "S"
	}
	if lon < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.2f°%s, %.2f°%s", math.Abs(lat), ns, math.Abs(lon), ew)
}

// UnmarshalJSON validates both coordinates.
func (l *Location) UnmarshalJSON(b []byte) error {
	var raw struct {
		Lat float64 `json:"latitude"`
		Lon float64 `json:"longitude"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	loc, err := NewLocation(raw.Lat, raw.Lon)
	if err != nil {
		return err
	}
	*l = loc
	return nil
}

// Elevation is the angle of the sun above the horizon in degrees.
type Elevation float64

func NewElevation(v float64) (Elevation, error) {
	if math.IsNaN(v) || v < MinElevation || v > MaxElevation {
		return 0, pkgerrors.Wrapf(ErrOutOfRange, "elevation %g° not in [%g, %g]", v, MinElevation, MaxElevation)
	}
	return Elevation(v), nil
}

func (e Elevation) String() string {
	return fmt.Sprintf("%.2f°", float64(e))
}

// ElevationRange is the band of sun elevations in which day and night
// blend into each other.
type ElevationRange struct {
	High Elevation `json:"high"`
	Low  Elevation `json:"low"`
}

func NewElevationRange(high, low Elevation) (ElevationRange, error) {
	if high < low {
		return ElevationRange{}, pkgerrors.Wrapf(ErrInvalidOrder, "elevation high %s is below low %s", high, low)
	}
	return ElevationRange{High: high, Low: low}, nil
}

func DefaultElevationRange() ElevationRange {
	return ElevationRange{High: DefaultElevationHigh, Low: DefaultElevationLow}
}

func (r ElevationRange) String() string {
	return fmt.Sprintf("high %s, low %s", r.High, r.Low)
}
