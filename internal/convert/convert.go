// Package convert detects the kind of a textual coordinate and converts it to
// latitude/longitude, UTM and MGRS.
package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tzneal/gridref"
)

// Kind is the notation a coordinate is written in.
type Kind int

// Kind constants
const (
	KindLatLon Kind = iota
	KindUTM
	KindMGRS
)

func (k Kind) String() string {
	switch k {
	case KindLatLon:
		return "latlon"
	case KindUTM:
		return "utm"
	case KindMGRS:
		return "mgrs"
	}
	return "unknown"
}

// Result is one coordinate in all three notations.
type Result struct {
	Input  string
	Kind   Kind
	LatLon gridref.LatLon
	UTM    gridref.UTMCoord
	MGRS   gridref.MGRSRef
}

// String formats the result as "lat lon | utm | mgrs".
func (r Result) String() string {
	return fmt.Sprintf("%.6f %.6f | %s | %s", r.LatLon.Lat, r.LatLon.Lon, r.UTM, r.MGRS)
}

// Converter converts coordinates on one ellipsoid, writing MGRS references at
// a fixed precision.
type Converter struct {
	log       *slog.Logger
	ellipsoid gridref.Ellipsoid
	precision int
}

// NewConverter creates a Converter.
func NewConverter(log *slog.Logger, ellipsoid gridref.Ellipsoid, precision int) *Converter {
	return &Converter{
		log:       log,
		ellipsoid: ellipsoid,
		precision: precision,
	}
}

// Detect guesses the notation of s. Text with a comma or two fields is a
// latitude and longitude, four fields with a hemisphere second is UTM and
// anything else is taken to be MGRS.
func Detect(s string) Kind {
	if strings.Contains(s, ",") {
		return KindLatLon
	}
	fields := strings.Fields(s)
	switch len(fields) {
	case 2:
		return KindLatLon
	case 4:
		if _, err := gridref.ParseHemisphere(fields[1]); err == nil {
			return KindUTM
		}
	}
	return KindMGRS
}

// Convert parses s in whatever notation Detect finds and converts it to the
// other two.
func (c *Converter) Convert(s string) (Result, error) {
	s = strings.TrimSpace(s)
	res := Result{Input: s, Kind: Detect(s)}

	switch res.Kind {
	case KindLatLon:
		ll, err := parseLatLon(s)
		if err != nil {
			return Result{}, err
		}
		ll.Ellipsoid = c.ellipsoid
		utm, err := ll.ToUTM()
		if err != nil {
			return Result{}, err
		}
		mgrs, err := ll.ToMGRS(c.precision)
		if err != nil {
			return Result{}, err
		}
		res.LatLon, res.UTM, res.MGRS = ll, utm, mgrs

	case KindUTM:
		utm, err := gridref.ParseUTM(s, c.ellipsoid)
		if err != nil {
			return Result{}, err
		}
		ll, err := utm.ToLatLon()
		if err != nil {
			return Result{}, err
		}
		mgrs, err := utm.ToMGRS(c.precision)
		if err != nil {
			return Result{}, err
		}
		utm.Convergence, utm.Scale = ll.Convergence, ll.Scale
		res.LatLon, res.UTM, res.MGRS = ll, utm, mgrs

	case KindMGRS:
		mgrs, err := gridref.ParseMGRS(s)
		if err != nil {
			return Result{}, err
		}
		mgrs.Ellipsoid = c.ellipsoid
		utm, err := mgrs.ToUTM()
		if err != nil {
			return Result{}, err
		}
		ll, err := utm.ToLatLon()
		if err != nil {
			return Result{}, err
		}
		utm.Convergence, utm.Scale = ll.Convergence, ll.Scale
		res.LatLon, res.UTM, res.MGRS = ll, utm, mgrs
	}
	return res, nil
}

func parseLatLon(s string) (gridref.LatLon, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != 2 {
		return gridref.LatLon{}, fmt.Errorf("%w: %q: want latitude and longitude", gridref.ErrInvalidPoint, s)
	}
	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return gridref.LatLon{}, fmt.Errorf("%w: %q: invalid latitude %q", gridref.ErrInvalidPoint, s, fields[0])
	}
	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return gridref.LatLon{}, fmt.Errorf("%w: %q: invalid longitude %q", gridref.ErrInvalidPoint, s, fields[1])
	}
	return gridref.LatLon{Lat: lat, Lon: lon}, nil
}

// Run converts every non-blank line of in and writes one line per input to
// out. Lines starting with # are skipped. A line that fails is logged and
// written as "error: ..." and the batch goes on. Run returns the number of
// failed lines, and an error only if reading, writing or ctx fails.
func (c *Converter) Run(ctx context.Context, in io.Reader, out io.Writer) (int, error) {
	return c.each(ctx, in,
		func(res Result) error {
			_, err := fmt.Fprintln(out, res)
			return err
		},
		func(_ string, convErr error) error {
			_, err := fmt.Fprintf(out, "error: %s\n", convErr)
			return err
		})
}

// each converts the lines of in, handing every result to ok and every
// conversion error to failed. Counting and logging of failures happen here.
func (c *Converter) each(ctx context.Context, in io.Reader,
	ok func(Result) error, failed func(string, error) error) (int, error) {
	nFailed := 0
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nFailed, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		res, err := c.Convert(line)
		if err != nil {
			nFailed++
			c.log.WarnContext(ctx, "conversion failed", "input", line, "error", err)
			if err := failed(line, err); err != nil {
				return nFailed, err
			}
			continue
		}

		c.log.DebugContext(ctx, "converted", "input", line, "kind", res.Kind.String(),
			"convergence", res.UTM.Convergence, "scale", res.UTM.Scale)
		if err := ok(res); err != nil {
			return nFailed, err
		}
	}
	return nFailed, sc.Err()
}
