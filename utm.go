package gridref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
)

// Hemisphere represents the hemisphere, north or south
type Hemisphere byte

// Hemisphere constants
const (
	HemisphereInvalid Hemisphere = iota
	HemisphereNorth
	HemisphereSouth
)

func (h Hemisphere) String() string {
	switch h {
	case HemisphereNorth:
		return "N"
	case HemisphereSouth:
		return "S"
	}
	return "?"
}

// ParseHemisphere parses "N" or "S", in either case.
func ParseHemisphere(s string) (Hemisphere, error) {
	switch strings.ToUpper(s) {
	case "N":
		return HemisphereNorth, nil
	case "S":
		return HemisphereSouth, nil
	}
	return HemisphereInvalid, fmt.Errorf("invalid hemisphere %q", s)
}

// UTMCoord is a UTM coordinate. Convergence is the meridian convergence in
// degrees and Scale the point scale factor; both are zero when the
// coordinate was not produced by a projection.
type UTMCoord struct {
	Zone        int
	Hemisphere  Hemisphere
	Easting     float64
	Northing    float64
	Ellipsoid   Ellipsoid
	Convergence float64
	Scale       float64
}

const utmScaleFactor = 0.9996
const utmFalseEasting = 500000.0
const utmFalseNorthing = 10000000.0

// ToUTM converts the point to UTM in the zone given by ResolveZoneBand.
// Easting and northing are rounded to 6 decimal places, convergence to 9 and
// scale to 12.
func (p LatLon) ToUTM() (UTMCoord, error) {
	zb, err := ResolveZoneBand(p.Lat, p.Lon)
	if err != nil {
		return UTMCoord{}, err
	}
	return p.toUTM(zb.Zone, zb.CentralMeridian)
}

// ToUTMZone converts the point to UTM in the requested zone, which must be
// the zone ToUTM would use or one of its neighbours.
func (p LatLon) ToUTMZone(zone int) (UTMCoord, error) {
	zb, err := ResolveZoneBand(p.Lat, p.Lon)
	if err != nil {
		return UTMCoord{}, err
	}
	if zone == zb.Zone {
		return p.toUTM(zb.Zone, zb.CentralMeridian)
	}
	if zone < 1 || zone > 60 ||
		!(adjacentZone(zone, zb.Zone) || adjacentZone(zone, naturalZone(wrapLongitude(p.Lon)))) {
		return UTMCoord{}, fmt.Errorf("%w: zone %d is not usable at %s", ErrOutOfRange, zone, p)
	}
	return p.toUTM(zone, CentralMeridian(zone))
}

func (p LatLon) toUTM(zone int, centralMeridian s1.Angle) (UTMCoord, error) {
	ellipsoid, err := p.validate()
	if err != nil {
		return UTMCoord{}, err
	}
	transverseMercator, err := NewTransverseMercator(ellipsoid, utmScaleFactor)
	if err != nil {
		return UTMCoord{}, fmt.Errorf("%w: %s", ErrInvalidPoint, err)
	}

	phi := toRadians(p.Lat)
	lambda := toRadians(wrapLongitude(p.Lon)) - centralMeridian.Radians()
	easting, northing, convergence, scale := transverseMercator.Forward(phi, lambda)

	easting += utmFalseEasting
	if northing < 0 {
		northing += utmFalseNorthing
	}
	hemisphere := HemisphereNorth
	if p.Lat < 0 {
		hemisphere = HemisphereSouth
	}

	return UTMCoord{
		Zone:        zone,
		Hemisphere:  hemisphere,
		Easting:     roundTo(easting, 6),
		Northing:    roundTo(northing, 6),
		Ellipsoid:   p.Ellipsoid,
		Convergence: roundTo(toDegrees(convergence), 9),
		Scale:       roundTo(scale, 12),
	}, nil
}

// ToLatLon converts the UTM coordinate to latitude and longitude. Latitude
// and longitude are rounded to 11 decimal places, convergence to 9 and scale
// to 12.
func (u UTMCoord) ToLatLon() (LatLon, error) {
	ll, _, err := u.toLatLon()
	return ll, err
}

// toLatLon also returns the Newton iteration count of the inverse projection.
func (u UTMCoord) toLatLon() (LatLon, int, error) {
	ellipsoid, err := u.validate()
	if err != nil {
		return LatLon{}, 0, err
	}
	transverseMercator, err := NewTransverseMercator(ellipsoid, utmScaleFactor)
	if err != nil {
		return LatLon{}, 0, fmt.Errorf("%w: %s", ErrInvalidCoordinate, err)
	}

	x := u.Easting - utmFalseEasting
	y := u.Northing
	if u.Hemisphere == HemisphereSouth {
		y -= utmFalseNorthing
	}

	phi, lambda, convergence, scale, iterations, err := transverseMercator.inverse(x, y)
	if err != nil {
		return LatLon{}, iterations, fmt.Errorf("zone %d easting %v northing %v: %w", u.Zone, u.Easting, u.Northing, err)
	}
	lambda += CentralMeridian(u.Zone).Radians()

	return LatLon{
		Lat:         roundTo(toDegrees(phi), 11),
		Lon:         wrapLongitude(roundTo(toDegrees(lambda), 11)),
		Ellipsoid:   u.Ellipsoid,
		Convergence: roundTo(toDegrees(convergence), 9),
		Scale:       roundTo(scale, 12),
	}, iterations, nil
}

func (u UTMCoord) validate() (Ellipsoid, error) {
	if u.Zone < 1 || u.Zone > 60 {
		return Ellipsoid{}, fmt.Errorf("%w: zone %d out of range", ErrInvalidCoordinate, u.Zone)
	}
	if u.Hemisphere != HemisphereNorth && u.Hemisphere != HemisphereSouth {
		return Ellipsoid{}, fmt.Errorf("%w: hemisphere out of range", ErrInvalidCoordinate)
	}
	if !isFinite(u.Easting) || !isFinite(u.Northing) {
		return Ellipsoid{}, fmt.Errorf("%w: easting %v, northing %v", ErrInvalidCoordinate, u.Easting, u.Northing)
	}
	e := u.Ellipsoid.orDefault()
	if err := e.Validate(); err != nil {
		return Ellipsoid{}, fmt.Errorf("%w: %s", ErrInvalidCoordinate, err)
	}
	return e, nil
}

// String formats the coordinate as "31 N 448252 5411933", rounded to the
// meter.
func (u UTMCoord) String() string {
	return fmt.Sprintf("%02d %s %.0f %.0f", u.Zone, u.Hemisphere, u.Easting, u.Northing)
}

// ParseUTM parses a UTM coordinate of the form "31 N 448251 5411932":
// zone, hemisphere, easting and northing separated by white space.
func ParseUTM(s string, ellipsoid Ellipsoid) (UTMCoord, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return UTMCoord{}, fmt.Errorf("%w: %q: want 4 fields, got %d", ErrInvalidUtmString, s, len(fields))
	}

	zone, err := strconv.Atoi(fields[0])
	if err != nil || zone < 1 || zone > 60 {
		return UTMCoord{}, fmt.Errorf("%w: %q: zone %q out of range", ErrInvalidUtmString, s, fields[0])
	}
	hemisphere, err := ParseHemisphere(fields[1])
	if err != nil {
		return UTMCoord{}, fmt.Errorf("%w: %q: %s", ErrInvalidUtmString, s, err)
	}
	easting, err := strconv.ParseFloat(fields[2], 64)
	if err != nil || !isFinite(easting) {
		return UTMCoord{}, fmt.Errorf("%w: %q: invalid easting %q", ErrInvalidUtmString, s, fields[2])
	}
	northing, err := strconv.ParseFloat(fields[3], 64)
	if err != nil || !isFinite(northing) {
		return UTMCoord{}, fmt.Errorf("%w: %q: invalid northing %q", ErrInvalidUtmString, s, fields[3])
	}

	return UTMCoord{
		Zone:       zone,
		Hemisphere: hemisphere,
		Easting:    easting,
		Northing:   northing,
		Ellipsoid:  ellipsoid,
	}, nil
}
