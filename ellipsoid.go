// Package gridref converts positions on an ellipsoidal earth between
// latitude/longitude, UTM and MGRS.
//
// Projections use Karney's 6th order Krüger series for the transverse
// Mercator, which is accurate to a few nanometers within a UTM zone.
package gridref

import (
	"fmt"
	"math"
)

// Ellipsoid is a reference ellipsoid given by its semi-major axis in meters
// and its flattening. The zero value stands for WGS84.
type Ellipsoid struct {
	A float64
	F float64
}

// IsZero reports whether e is the zero Ellipsoid.
func (e Ellipsoid) IsZero() bool {
	return e.A == 0 && e.F == 0
}

// orDefault returns WGS84 for the zero Ellipsoid and e otherwise.
func (e Ellipsoid) orDefault() Ellipsoid {
	if e.IsZero() {
		return WGS84
	}
	return e
}

// Validate checks that the semi-major axis is positive and that the
// flattening lies in (0, 1).
func (e Ellipsoid) Validate() error {
	if math.IsNaN(e.A) || math.IsInf(e.A, 0) || e.A <= 0 {
		return fmt.Errorf("semi-major axis must be greater than zero, got %v", e.A)
	}
	if math.IsNaN(e.F) || e.F <= 0 || e.F >= 1 {
		return fmt.Errorf("flattening must be between 0 and 1, got %v", e.F)
	}
	return nil
}
