package gridref

import (
	"fmt"
	"math"
	"strconv"

	"github.com/golang/geo/s2"
)

// LatLon is a geodetic position in degrees on an ellipsoid. A zero Ellipsoid
// means WGS84.
//
// Convergence (degrees) and Scale are the grid convergence and point scale
// of the UTM projection the position was recovered from. They are zero on
// positions built by the caller and are ignored as input.
type LatLon struct {
	Lat         float64
	Lon         float64
	Ellipsoid   Ellipsoid
	Convergence float64
	Scale       float64
}

// LatLonFromLatLng converts an s2.LatLng into a LatLon on the given
// ellipsoid.
func LatLonFromLatLng(ll s2.LatLng, e Ellipsoid) LatLon {
	return LatLon{
		Lat:       ll.Lat.Degrees(),
		Lon:       ll.Lng.Degrees(),
		Ellipsoid: e,
	}
}

// LatLng returns the position as an s2.LatLng. The ellipsoid is dropped.
func (p LatLon) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lon)
}

func (p LatLon) String() string {
	return fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lon)
}

func (p LatLon) validate() (Ellipsoid, error) {
	if !isFinite(p.Lat) || !isFinite(p.Lon) {
		return Ellipsoid{}, fmt.Errorf("%w: latitude %v, longitude %v", ErrInvalidPoint, p.Lat, p.Lon)
	}
	e := p.Ellipsoid.orDefault()
	if err := e.Validate(); err != nil {
		return Ellipsoid{}, fmt.Errorf("%w: %s", ErrInvalidPoint, err)
	}
	return e, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// wrapLongitude folds lon into [-180, 180]. Longitudes already in range are
// returned untouched.
func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// roundTo rounds x to the given number of decimal places, going through the
// decimal representation so the result is the double nearest to the printed
// value.
func roundTo(x float64, places int) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return v
}
