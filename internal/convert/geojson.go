package convert

import (
	"context"
	"io"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature returns the result as a GeoJSON feature whose geometry is the MGRS
// square the coordinate falls in, at the converter's precision.
func (r Result) Feature() (*geojson.Feature, error) {
	bounds, err := r.MGRS.Bounds()
	if err != nil {
		return nil, err
	}

	f := geojson.NewFeature(rectPolygon(bounds))
	f.Properties["input"] = r.Input
	f.Properties["kind"] = r.Kind.String()
	f.Properties["lat"] = r.LatLon.Lat
	f.Properties["lon"] = r.LatLon.Lon
	f.Properties["utm"] = r.UTM.String()
	f.Properties["mgrs"] = r.MGRS.String()
	f.Properties["convergence"] = r.UTM.Convergence
	f.Properties["scale"] = r.UTM.Scale
	f.Properties["accuracy"] = r.MGRS.Accuracy()
	return f, nil
}

func rectPolygon(rect s2.Rect) orb.Polygon {
	lo, hi := rect.Lo(), rect.Hi()
	return orb.Polygon{orb.Ring{
		{lo.Lng.Degrees(), lo.Lat.Degrees()},
		{hi.Lng.Degrees(), lo.Lat.Degrees()},
		{hi.Lng.Degrees(), hi.Lat.Degrees()},
		{lo.Lng.Degrees(), hi.Lat.Degrees()},
		{lo.Lng.Degrees(), lo.Lat.Degrees()},
	}}
}

// RunGeoJSON converts the lines of in like Run, but writes a single GeoJSON
// FeatureCollection with one feature per converted coordinate. Failed lines
// are logged and left out.
func (c *Converter) RunGeoJSON(ctx context.Context, in io.Reader, out io.Writer) (int, error) {
	fc := geojson.NewFeatureCollection()
	failed, err := c.each(ctx, in,
		func(res Result) error {
			f, err := res.Feature()
			if err != nil {
				return err
			}
			fc.Append(f)
			return nil
		},
		func(string, error) error { return nil })
	if err != nil {
		return failed, err
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return failed, err
	}
	if _, err := out.Write(append(data, '\n')); err != nil {
		return failed, err
	}
	return failed, nil
}
