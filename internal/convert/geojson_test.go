package convert_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGeoJSON(t *testing.T) {
	in := strings.NewReader("48.8582, 2.2945\nnot a coordinate\n31U DQ 482 119\n")
	var out bytes.Buffer

	failed, err := newTestConverter(3).RunGeoJSON(context.Background(), in, &out)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	fc, err := geojson.UnmarshalFeatureCollection(out.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	eiffel := orb.Point{2.2945, 48.8582}
	for _, f := range fc.Features {
		assert.Equal(t, "31U DQ 482 119", f.Properties.MustString("mgrs"))
		assert.Equal(t, 100.0, f.Properties.MustFloat64("accuracy"))

		poly, ok := f.Geometry.(orb.Polygon)
		require.True(t, ok, "geometry is %T", f.Geometry)
		require.Len(t, poly, 1)
		assert.Len(t, poly[0], 5)
		assert.True(t, poly.Bound().Contains(eiffel))
	}
	assert.Equal(t, "latlon", fc.Features[0].Properties.MustString("kind"))
	assert.Equal(t, "mgrs", fc.Features[1].Properties.MustString("kind"))
	assert.Equal(t, "31 N 448252 5411933", fc.Features[0].Properties.MustString("utm"))
}

func TestResultFeatureInvalidReference(t *testing.T) {
	res, err := newTestConverter(5).Convert("48.8582, 2.2945")
	require.NoError(t, err)
	res.MGRS.Band = 'I'

	_, err = res.Feature()
	assert.Error(t, err)
}
