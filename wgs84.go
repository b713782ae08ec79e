package gridref

import (
	"fmt"
	"sort"
	"strings"
)

// WGS84 is the World Geodetic System 1984 ellipsoid.
var WGS84 = Ellipsoid{A: 6378137, F: 1 / 298.257223563}

// GRS80 is the Geodetic Reference System 1980 ellipsoid used by NAD83 and
// ETRS89.
var GRS80 = Ellipsoid{A: 6378137, F: 1 / 298.257222101}

var namedEllipsoids = map[string]Ellipsoid{
	"wgs84": WGS84,
	"grs80": GRS80,
}

// EllipsoidByName looks up a named ellipsoid, ignoring case.
func EllipsoidByName(name string) (Ellipsoid, error) {
	e, ok := namedEllipsoids[strings.ToLower(name)]
	if !ok {
		return Ellipsoid{}, fmt.Errorf("unknown ellipsoid %q, want one of %s", name, strings.Join(EllipsoidNames(), ", "))
	}
	return e, nil
}

// EllipsoidNames lists the names EllipsoidByName accepts.
func EllipsoidNames() []string {
	names := make([]string, 0, len(namedEllipsoids))
	for name := range namedEllipsoids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
