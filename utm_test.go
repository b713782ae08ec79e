package gridref_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/gridref"
)

func TestUTMRoundTrip(t *testing.T) {
	const latInc = 0.5
	const lngInc = 0.5
	for lng := -190.0; lng < 190; lng += lngInc {
		for lat := -100.0; lat < 100; lat += latInc {
			geo := gridref.LatLon{Lat: lat, Lon: lng}
			uc, err := geo.ToUTM()
			if err != nil {
				if lat >= -80 && lat <= 84 {
					t.Fatalf("unexpected error at %s (%s)", geo, err)
				}
				require.ErrorIs(t, err, gridref.ErrOutOfRange)
				continue
			}
			geo2, err := uc.ToLatLon()
			if err != nil {
				t.Fatalf("expected no error in round trip, got one at %s (%s)", geo, err)
			}
			if d := distanceMeters(geo.LatLng(), geo2.LatLng()); d > 1e-5 {
				t.Fatalf("expected %s, got %s (%gm)", geo, geo2, d)
			}

			// reproject in the same zone, the point may sit on a zone edge
			uc2, err := geo2.ToUTMZone(uc.Zone)
			if err != nil {
				t.Fatalf("error reprojecting %s into zone %d (%s)", geo2, uc.Zone, err)
			}
			// at most one step of the 6 place rounding apart
			if math.Abs(uc.Easting-uc2.Easting) > 2e-6 || math.Abs(uc.Northing-uc2.Northing) > 2e-6 {
				t.Fatalf("expected %+v, got %+v", uc, uc2)
			}
			if uc.Hemisphere != uc2.Hemisphere {
				t.Fatalf("hemisphere changed from %s to %s at %s", uc.Hemisphere, uc2.Hemisphere, geo)
			}
		}
	}
}

func TestLatLonToUTM(t *testing.T) {
	tests := []struct {
		name        string
		ll          gridref.LatLon
		zone        int
		hemisphere  gridref.Hemisphere
		easting     float64
		northing    float64
		convergence float64
		scale       float64
	}{
		{"eiffel tower", eiffelTower, 31, gridref.HemisphereNorth, 448251.795206, 5411932.677670, -0.531312209, 0.99963289743},
		{"null island", gridref.LatLon{}, 31, gridref.HemisphereNorth, 166021.443081, 0, 0, 1.000981061508},
		{"sydney", gridref.LatLon{Lat: -33.8568, Lon: 151.2153}, 56, gridref.HemisphereSouth, 334900.569652, 6252288.752888, 0.994515432, 0.999936032471},
		{"antimeridian east", gridref.LatLon{Lat: 10, Lon: 180}, 60, gridref.HemisphereNorth, 828928.736059, 1106908.854243, 0.521415845, 1.000939061304},
		{"antimeridian west", gridref.LatLon{Lat: 10, Lon: -180}, 1, gridref.HemisphereNorth, 171071.263941, 1106908.854243, -0.521415845, 1.000939061304},
		{"north limit", gridref.LatLon{Lat: 84, Lon: 0}, 31, gridref.HemisphereNorth, 465005.344939, 9329005.182447, -2.983595468, 0.999614959162},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, err := tc.ll.ToUTM()
			require.NoError(t, err)
			assert.Equal(t, tc.zone, u.Zone)
			assert.Equal(t, tc.hemisphere, u.Hemisphere)
			assert.InDelta(t, tc.easting, u.Easting, 2e-6)
			assert.InDelta(t, tc.northing, u.Northing, 2e-6)
			assert.InDelta(t, tc.convergence, u.Convergence, 2e-9)
			assert.InDelta(t, tc.scale, u.Scale, 2e-12)
		})
	}
}

func TestUTMToLatLon(t *testing.T) {
	u := gridref.UTMCoord{Zone: 31, Hemisphere: gridref.HemisphereNorth, Easting: 448251.795, Northing: 5411932.678}
	ll, err := u.ToLatLon()
	require.NoError(t, err)
	assert.InDelta(t, 48.8582, ll.Lat, 1e-7)
	assert.InDelta(t, 2.2945, ll.Lon, 1e-7)
	assert.InDelta(t, -0.531312, ll.Convergence, 1e-6)
	assert.InDelta(t, 0.999632897, ll.Scale, 1e-9)

	u = gridref.UTMCoord{Zone: 56, Hemisphere: gridref.HemisphereSouth, Easting: 334900.569652, Northing: 6252288.752888}
	ll, err = u.ToLatLon()
	require.NoError(t, err)
	assert.InDelta(t, -33.8568, ll.Lat, 1e-9)
	assert.InDelta(t, 151.2153, ll.Lon, 1e-9)
}

func TestToUTMLatitudeLimits(t *testing.T) {
	_, err := gridref.LatLon{Lat: 84, Lon: 10}.ToUTM()
	assert.NoError(t, err)
	_, err = gridref.LatLon{Lat: -80, Lon: 10}.ToUTM()
	assert.NoError(t, err)

	_, err = gridref.LatLon{Lat: 84.0001, Lon: 10}.ToUTM()
	assert.ErrorIs(t, err, gridref.ErrOutOfRange)
	_, err = gridref.LatLon{Lat: -80.0001, Lon: 10}.ToUTM()
	assert.ErrorIs(t, err, gridref.ErrOutOfRange)
}

func TestToUTMInvalidPoint(t *testing.T) {
	for _, ll := range []gridref.LatLon{
		{Lat: math.NaN(), Lon: 0},
		{Lat: 0, Lon: math.NaN()},
		{Lat: math.Inf(1), Lon: 0},
		{Lat: 0, Lon: math.Inf(-1)},
	} {
		_, err := ll.ToUTM()
		assert.ErrorIs(t, err, gridref.ErrInvalidPoint, "%v", ll)
		assert.ErrorIs(t, err, gridref.ErrOutOfRange, "%v", ll)
	}

	_, err := gridref.LatLon{Lat: 10, Lon: 10, Ellipsoid: gridref.Ellipsoid{A: -1, F: 0.003}}.ToUTM()
	assert.ErrorIs(t, err, gridref.ErrInvalidPoint)
}

func TestToUTMZone(t *testing.T) {
	u, err := eiffelTower.ToUTMZone(30)
	require.NoError(t, err)
	assert.Equal(t, 30, u.Zone)
	assert.InDelta(t, 888276.962080, u.Easting, 2e-6)
	assert.InDelta(t, 5425220.842522, u.Northing, 2e-6)

	ll, err := u.ToLatLon()
	require.NoError(t, err)
	assert.InDelta(t, eiffelTower.Lat, ll.Lat, 1e-9)
	assert.InDelta(t, eiffelTower.Lon, ll.Lon, 1e-9)

	_, err = eiffelTower.ToUTMZone(33)
	assert.ErrorIs(t, err, gridref.ErrOutOfRange)
	_, err = eiffelTower.ToUTMZone(0)
	assert.ErrorIs(t, err, gridref.ErrOutOfRange)

	// zones 60 and 1 are neighbours
	u, err = gridref.LatLon{Lat: 10, Lon: 179}.ToUTMZone(1)
	require.NoError(t, err)
	assert.Equal(t, 1, u.Zone)
}

func TestUTMWithGRS80(t *testing.T) {
	wgs, err := eiffelTower.ToUTM()
	require.NoError(t, err)
	p := eiffelTower
	p.Ellipsoid = gridref.GRS80
	grs, err := p.ToUTM()
	require.NoError(t, err)

	assert.Equal(t, gridref.GRS80, grs.Ellipsoid)
	assert.NotEqual(t, wgs.Northing, grs.Northing)
	assert.InDelta(t, wgs.Easting, grs.Easting, 1e-3)
	assert.InDelta(t, wgs.Northing, grs.Northing, 1e-3)

	ll, err := grs.ToLatLon()
	require.NoError(t, err)
	assert.Equal(t, gridref.GRS80, ll.Ellipsoid)
	assert.InDelta(t, eiffelTower.Lat, ll.Lat, 1e-9)
}

func TestUTMToLatLonErrors(t *testing.T) {
	tests := []struct {
		name string
		u    gridref.UTMCoord
		want error
	}{
		{"zone 0", gridref.UTMCoord{Zone: 0, Hemisphere: gridref.HemisphereNorth, Easting: 500000}, gridref.ErrInvalidCoordinate},
		{"zone 61", gridref.UTMCoord{Zone: 61, Hemisphere: gridref.HemisphereNorth, Easting: 500000}, gridref.ErrInvalidCoordinate},
		{"no hemisphere", gridref.UTMCoord{Zone: 31, Easting: 500000}, gridref.ErrInvalidCoordinate},
		{"nan easting", gridref.UTMCoord{Zone: 31, Hemisphere: gridref.HemisphereNorth, Easting: math.NaN()}, gridref.ErrInvalidCoordinate},
		{"infinite northing", gridref.UTMCoord{Zone: 31, Hemisphere: gridref.HemisphereSouth, Easting: 500000, Northing: math.Inf(1)}, gridref.ErrInvalidCoordinate},
		{"bad ellipsoid", gridref.UTMCoord{Zone: 31, Hemisphere: gridref.HemisphereNorth, Easting: 500000, Ellipsoid: gridref.Ellipsoid{A: 6378137, F: 2}}, gridref.ErrInvalidCoordinate},
		{"far outside any zone", gridref.UTMCoord{Zone: 31, Hemisphere: gridref.HemisphereNorth, Easting: 1e9}, gridref.ErrConvergenceFailure},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.u.ToLatLon()
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseUTM(t *testing.T) {
	u, err := gridref.ParseUTM("31 N 448251.795 5411932.678", gridref.Ellipsoid{})
	require.NoError(t, err)
	assert.Equal(t, gridref.UTMCoord{
		Zone:       31,
		Hemisphere: gridref.HemisphereNorth,
		Easting:    448251.795,
		Northing:   5411932.678,
	}, u)
	assert.Equal(t, "31 N 448252 5411933", u.String())

	u, err = gridref.ParseUTM(" 4\ts 1000 2000 ", gridref.GRS80)
	require.NoError(t, err)
	assert.Equal(t, gridref.HemisphereSouth, u.Hemisphere)
	assert.Equal(t, gridref.GRS80, u.Ellipsoid)
	assert.Equal(t, "04 S 1000 2000", u.String())

	for _, s := range []string{
		"",
		"31 N 448251",
		"31 N 448251 5411932 7",
		"31N 448251 5411932",
		"x N 448251 5411932",
		"0 N 448251 5411932",
		"61 N 448251 5411932",
		"31 Q 448251 5411932",
		"31 N east 5411932",
		"31 N 448251 NaN",
		"31 N Inf 5411932",
	} {
		_, err := gridref.ParseUTM(s, gridref.Ellipsoid{})
		assert.ErrorIs(t, err, gridref.ErrInvalidUtmString, "%q", s)
	}
}
