package gridref

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

const utmMinLat = -80.0
const utmMaxLat = 84.0

// latBands holds the latitude band letters from 80°S northwards in 8° steps.
// X is repeated so that 80-84°N also resolves to band X.
const latBands = "CDEFGHJKLMNPQRSTUVWXX"

// ZoneBand is the UTM zone and MGRS latitude band of a point, along with the
// central meridian of the zone.
type ZoneBand struct {
	Zone            int
	Band            byte
	CentralMeridian s1.Angle
}

// ResolveZoneBand computes the UTM zone and latitude band for a latitude and
// longitude in degrees. The irregular zones over southern Norway (32V) and
// Svalbard (31X, 33X, 35X, 37X) are applied.
func ResolveZoneBand(lat, lon float64) (ZoneBand, error) {
	if !isFinite(lat) || !isFinite(lon) {
		return ZoneBand{}, fmt.Errorf("%w: %w: latitude %v, longitude %v",
			ErrInvalidPoint, ErrOutOfRange, lat, lon)
	}
	band, err := LatitudeBand(lat)
	if err != nil {
		return ZoneBand{}, err
	}

	lon = wrapLongitude(lon)
	zone := naturalZone(lon)
	centralMeridian := toRadians(float64((zone-1)*6 - 180 + 3))
	sixDegrees := toRadians(6)

	// Norway
	if zone == 31 && band == 'V' && lon >= 3 {
		zone++
		centralMeridian += sixDegrees
	}
	// Svalbard
	if zone == 32 && band == 'X' && lon < 9 {
		zone--
		centralMeridian -= sixDegrees
	}
	if zone == 32 && band == 'X' && lon >= 9 {
		zone++
		centralMeridian += sixDegrees
	}
	if zone == 34 && band == 'X' && lon < 21 {
		zone--
		centralMeridian -= sixDegrees
	}
	if zone == 34 && band == 'X' && lon >= 21 {
		zone++
		centralMeridian += sixDegrees
	}
	if zone == 36 && band == 'X' && lon < 33 {
		zone--
		centralMeridian -= sixDegrees
	}
	if zone == 36 && band == 'X' && lon >= 33 {
		zone++
		centralMeridian += sixDegrees
	}

	return ZoneBand{
		Zone:            zone,
		Band:            band,
		CentralMeridian: s1.Angle(centralMeridian),
	}, nil
}

// LatitudeBand returns the MGRS latitude band letter for a latitude in
// degrees.
func LatitudeBand(lat float64) (byte, error) {
	if !isFinite(lat) {
		return 0, fmt.Errorf("%w: %w: latitude %v", ErrInvalidPoint, ErrOutOfRange, lat)
	}
	if lat < utmMinLat || lat > utmMaxLat {
		return 0, fmt.Errorf("%w: latitude %v", ErrOutOfRange, lat)
	}
	return latBands[int(math.Floor(lat/8+10))], nil
}

// CentralMeridian returns the central meridian of a regular UTM zone.
func CentralMeridian(zone int) s1.Angle {
	return s1.Angle(toRadians(float64((zone-1)*6 - 180 + 3)))
}

// naturalZone is the regular 6° zone containing lon, ignoring the Norway and
// Svalbard exceptions. lon must already be wrapped into [-180, 180].
func naturalZone(lon float64) int {
	zone := int(math.Floor((lon+180)/6)) + 1
	// 180°E belongs to zone 60
	if zone > 60 {
		zone = 60
	}
	return zone
}

// adjacentZone reports whether zone is the same as, or a neighbour of, other,
// allowing for the wrap between zones 60 and 1.
func adjacentZone(zone, other int) bool {
	if (zone == 1 && other == 60) || (zone == 60 && other == 1) {
		return true
	}
	return other-1 <= zone && zone <= other+1
}
