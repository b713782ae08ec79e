package gridref

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/golang/geo/s2"
)

const mgrsMaxPrecision = 5 // Maximum precision of easting & northing
const mgrsSquareSize = 100000.0
const mgrsRowCycle = 2000000.0

// mgrsBands are the latitude band letters a grid reference may carry.
const mgrsBands = "CDEFGHJKLMNPQRSTUVWX"

// e100kLetters are the column letters of the 100km squares, one set per
// (zone-1)%3. Column 1 starts 100km east of the zone's false origin.
var e100kLetters = [3]string{"ABCDEFGH", "JKLMNPQR", "STUVWXYZ"}

// n100kLetters are the row letters of the 100km squares, one set per
// (zone-1)%2. Rows repeat every 2,000km of northing.
var n100kLetters = [2]string{"ABCDEFGHJKLMNPQRSTUV", "FGHJKLMNPQRSTUVABCDE"}

// bandMinNorthing is the minimum northing of each band in mgrsBands, rounded
// down to the 100km square.
var bandMinNorthing = [20]float64{
	1100000.0, // C
	2000000.0, // D
	2800000.0, // E
	3700000.0, // F
	4600000.0, // G
	5500000.0, // H
	6400000.0, // J
	7300000.0, // K
	8200000.0, // L
	9100000.0, // M
	0.0,       // N
	800000.0,  // P
	1700000.0, // Q
	2600000.0, // R
	3500000.0, // S
	4400000.0, // T
	5300000.0, // U
	6200000.0, // V
	7000000.0, // W
	7900000.0, // X
}

// MGRSRef is an MGRS grid reference.
//
// Easting and Northing are the meters within the 100km square, truncated to
// Precision digits per axis. A zero Precision means 5 (1m).
type MGRSRef struct {
	Zone      int
	Band      byte
	E100k     byte
	N100k     byte
	Easting   uint32
	Northing  uint32
	Precision int
	Ellipsoid Ellipsoid
}

// computeScale returns the size in meters of the last digit at the given
// precision.
func computeScale(prec int) float64 {
	return math.Pow10(mgrsMaxPrecision - prec)
}

// ToMGRS encodes the coordinate as an MGRS grid reference with precision
// digits per axis (1 is 10km, 5 is 1m). Digits are truncated, not rounded,
// so the reference names the square containing the coordinate. The band is
// taken from the coordinate's latitude; a coordinate whose zone and band do
// not form a grid zone, such as 32X, fails with ErrInvalidGridRef.
func (u UTMCoord) ToMGRS(precision int) (MGRSRef, error) {
	if _, err := u.validate(); err != nil {
		return MGRSRef{}, err
	}
	if u.Northing < 0 {
		return MGRSRef{}, fmt.Errorf("%w: northing %v is negative", ErrInvalidCoordinate, u.Northing)
	}

	ll, err := u.ToLatLon()
	if err != nil {
		return MGRSRef{}, err
	}
	band, err := LatitudeBand(ll.Lat)
	if err != nil {
		return MGRSRef{}, err
	}
	return u.toMGRS(band, precision)
}

// ToMGRS converts the point to an MGRS grid reference in the zone and band
// given by ResolveZoneBand.
func (p LatLon) ToMGRS(precision int) (MGRSRef, error) {
	zb, err := ResolveZoneBand(p.Lat, p.Lon)
	if err != nil {
		return MGRSRef{}, err
	}
	u, err := p.toUTM(zb.Zone, zb.CentralMeridian)
	if err != nil {
		return MGRSRef{}, err
	}
	return u.toMGRS(zb.Band, precision)
}

func (u UTMCoord) toMGRS(band byte, precision int) (MGRSRef, error) {
	if precision < 1 || precision > mgrsMaxPrecision {
		return MGRSRef{}, fmt.Errorf("%w: precision %d out of range", ErrInvalidGridRef, precision)
	}

	col := int(math.Floor(u.Easting / mgrsSquareSize))
	if col < 1 || col > 8 {
		return MGRSRef{}, fmt.Errorf("%w: easting %v is outside the zone's 100km columns",
			ErrInvalidCoordinate, u.Easting)
	}
	row := int(math.Floor(u.Northing/mgrsSquareSize)) % 20

	scale := uint32(computeScale(precision))
	easting := uint32(math.Floor(roundTo(math.Mod(u.Easting, mgrsSquareSize), 6)))
	northing := uint32(math.Floor(roundTo(math.Mod(u.Northing, mgrsSquareSize), 6)))
	// the 6 place rounding can carry a value up to the next square
	if easting >= mgrsSquareSize {
		easting = mgrsSquareSize - 1
	}
	if northing >= mgrsSquareSize {
		northing = mgrsSquareSize - 1
	}

	r := MGRSRef{
		Zone:      u.Zone,
		Band:      band,
		E100k:     e100kLetters[(u.Zone-1)%3][col-1],
		N100k:     n100kLetters[(u.Zone-1)%2][row],
		Easting:   easting / scale * scale,
		Northing:  northing / scale * scale,
		Precision: precision,
		Ellipsoid: u.Ellipsoid,
	}
	if err := r.Validate(); err != nil {
		return MGRSRef{}, fmt.Errorf("%s has no MGRS reference: %w", u, err)
	}
	return r, nil
}

// NewMGRSRef builds a grid reference from its parts. The easting and northing
// digit strings must have the same length, from 1 to 5 digits; shorter
// strings name a coarser square, so "482" means 48200m.
func NewMGRSRef(zone int, band, e100k, n100k byte, easting, northing string) (MGRSRef, error) {
	if len(easting) != len(northing) {
		return MGRSRef{}, fmt.Errorf("%w: easting %q and northing %q differ in length",
			ErrInvalidGridRef, easting, northing)
	}
	precision := len(easting)
	if precision < 1 || precision > mgrsMaxPrecision {
		return MGRSRef{}, fmt.Errorf("%w: %d digits per axis", ErrInvalidGridRef, precision)
	}

	e, err := parseDigits(easting)
	if err != nil {
		return MGRSRef{}, fmt.Errorf("%w: easting: %s", ErrInvalidGridRef, err)
	}
	n, err := parseDigits(northing)
	if err != nil {
		return MGRSRef{}, fmt.Errorf("%w: northing: %s", ErrInvalidGridRef, err)
	}
	scale := uint32(computeScale(precision))

	r := MGRSRef{
		Zone:      zone,
		Band:      toupper(band),
		E100k:     toupper(e100k),
		N100k:     toupper(n100k),
		Easting:   e * scale,
		Northing:  n * scale,
		Precision: precision,
	}
	if err := r.Validate(); err != nil {
		return MGRSRef{}, err
	}
	return r, nil
}

func parseDigits(s string) (uint32, error) {
	for i := 0; i < len(s); i++ {
		if !isdigit(s[i]) {
			return 0, fmt.Errorf("invalid digit %q", s[i])
		}
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Validate checks that the reference names a square that exists.
func (r MGRSRef) Validate() error {
	if r.Zone < 1 || r.Zone > 60 {
		return fmt.Errorf("%w: zone %d out of range", ErrInvalidGridRef, r.Zone)
	}
	if strings.IndexByte(mgrsBands, r.Band) < 0 {
		return fmt.Errorf("%w: invalid band %q", ErrInvalidGridRef, r.Band)
	}
	if strings.IndexByte(e100kLetters[(r.Zone-1)%3], r.E100k) < 0 {
		return fmt.Errorf("%w: column %q not used in zone %d", ErrInvalidGridRef, r.E100k, r.Zone)
	}
	if strings.IndexByte(n100kLetters[(r.Zone-1)%2], r.N100k) < 0 {
		return fmt.Errorf("%w: invalid row %q", ErrInvalidGridRef, r.N100k)
	}

	// Svalbard and southern Norway
	if r.Band == 'X' && (r.Zone == 32 || r.Zone == 34 || r.Zone == 36) {
		return fmt.Errorf("%w: zone %d%c does not exist", ErrInvalidGridRef, r.Zone, r.Band)
	}
	if r.Band == 'V' && r.Zone == 31 && r.E100k > 'D' {
		return fmt.Errorf("%w: square %c%c lies in zone 32V", ErrInvalidGridRef, r.E100k, r.N100k)
	}

	if r.Easting >= mgrsSquareSize || r.Northing >= mgrsSquareSize {
		return fmt.Errorf("%w: easting %d, northing %d", ErrInvalidGridRef, r.Easting, r.Northing)
	}
	if r.Precision < 0 || r.Precision > mgrsMaxPrecision {
		return fmt.Errorf("%w: precision %d out of range", ErrInvalidGridRef, r.Precision)
	}
	return nil
}

func (r MGRSRef) precision() int {
	if r.Precision == 0 {
		return mgrsMaxPrecision
	}
	return r.Precision
}

// Accuracy returns the side length in meters of the square the reference
// designates.
func (r MGRSRef) Accuracy() float64 {
	return computeScale(r.precision())
}

// ToUTM decodes the reference to the UTM coordinate of the south west corner
// of its square. Convergence and Scale are left zero.
func (r MGRSRef) ToUTM() (UTMCoord, error) {
	if err := r.Validate(); err != nil {
		return UTMCoord{}, err
	}

	hemisphere := HemisphereSouth
	if r.Band >= 'N' {
		hemisphere = HemisphereNorth
	}

	col := strings.IndexByte(e100kLetters[(r.Zone-1)%3], r.E100k) + 1
	row := strings.IndexByte(n100kLetters[(r.Zone-1)%2], r.N100k)
	gridEasting := float64(col) * mgrsSquareSize
	gridNorthing := float64(row) * mgrsSquareSize

	// pick the 2,000km row cycle that reaches the band
	minNorthing := bandMinNorthing[strings.IndexByte(mgrsBands, r.Band)]
	for gridNorthing < minNorthing {
		gridNorthing += mgrsRowCycle
	}

	return UTMCoord{
		Zone:       r.Zone,
		Hemisphere: hemisphere,
		Easting:    gridEasting + float64(r.Easting),
		Northing:   gridNorthing + float64(r.Northing),
		Ellipsoid:  r.Ellipsoid,
	}, nil
}

// ToLatLon converts the south west corner of the square to latitude and
// longitude.
func (r MGRSRef) ToLatLon() (LatLon, error) {
	u, err := r.ToUTM()
	if err != nil {
		return LatLon{}, err
	}
	return u.ToLatLon()
}

// Bounds returns the latitude/longitude rectangle covering the square the
// reference designates.
func (r MGRSRef) Bounds() (s2.Rect, error) {
	sw, err := r.ToUTM()
	if err != nil {
		return s2.EmptyRect(), err
	}
	size := r.Accuracy()

	rect := s2.EmptyRect()
	for _, corner := range [4][2]float64{{0, 0}, {size, 0}, {0, size}, {size, size}} {
		u := sw
		u.Easting += corner[0]
		u.Northing += corner[1]
		ll, err := u.ToLatLon()
		if err != nil {
			return s2.EmptyRect(), err
		}
		rect = rect.AddPoint(ll.LatLng())
	}
	return rect, nil
}

// String formats the reference in its spaced form, "31U DQ 48251 11932".
func (r MGRSRef) String() string {
	return r.format(" ")
}

// Compact formats the reference without spaces, "31UDQ4825111932".
func (r MGRSRef) Compact() string {
	return r.format("")
}

func (r MGRSRef) format(sep string) string {
	prec := r.precision()
	scale := uint32(computeScale(prec))
	return fmt.Sprintf("%02d%c%s%c%c%s%0*d%s%0*d",
		r.Zone, r.Band, sep, r.E100k, r.N100k, sep,
		prec, r.Easting/scale, sep, prec, r.Northing/scale)
}

// ParseMGRS parses a grid reference in spaced form ("31U DQ 48251 11932") or
// compact form ("31UDQ4825111932"). Letters may be in either case.
func ParseMGRS(s string) (MGRSRef, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return MGRSRef{}, fmt.Errorf("%w: empty string", ErrInvalidMgrsString)
	}

	var gzd, square, easting, northing string
	if strings.IndexFunc(s, unicode.IsSpace) < 0 {
		var err error
		gzd, square, easting, northing, err = breakMGRSString(s)
		if err != nil {
			return MGRSRef{}, fmt.Errorf("%w: %q: %w", ErrInvalidMgrsString, s, err)
		}
	} else {
		fields := strings.Fields(s)
		if len(fields) != 4 {
			return MGRSRef{}, fmt.Errorf("%w: %q: want 4 fields, got %d", ErrInvalidMgrsString, s, len(fields))
		}
		gzd, square, easting, northing = fields[0], fields[1], fields[2], fields[3]
	}

	if len(gzd) < 2 || len(gzd) > 3 || !isalpha(gzd[len(gzd)-1]) {
		return MGRSRef{}, fmt.Errorf("%w: %q: invalid grid zone %q", ErrInvalidMgrsString, s, gzd)
	}
	zoneDigits := gzd[:len(gzd)-1]
	for i := 0; i < len(zoneDigits); i++ {
		if !isdigit(zoneDigits[i]) {
			return MGRSRef{}, fmt.Errorf("%w: %q: invalid grid zone %q", ErrInvalidMgrsString, s, gzd)
		}
	}
	zone, err := strconv.Atoi(zoneDigits)
	if err != nil {
		return MGRSRef{}, fmt.Errorf("%w: %q: %s", ErrInvalidMgrsString, s, err)
	}
	if len(square) != 2 {
		return MGRSRef{}, fmt.Errorf("%w: %q: invalid 100km square %q", ErrInvalidMgrsString, s, square)
	}

	r, err := NewMGRSRef(zone, gzd[len(gzd)-1], square[0], square[1], easting, northing)
	if err != nil {
		return MGRSRef{}, fmt.Errorf("%w: %q: %w", ErrInvalidMgrsString, s, err)
	}
	return r, nil
}

// breakMGRSString splits a compact reference into its grid zone designator,
// 100km square letters and easting/northing digits.
func breakMGRSString(s string) (gzd, square, easting, northing string, err error) {
	i := 0
	for i < len(s) && isdigit(s[i]) {
		i++
	}
	if i < 1 || i > 2 {
		return "", "", "", "", fmt.Errorf("want 1 or 2 zone digits, got %d", i)
	}
	j := i
	for i < len(s) && isalpha(s[i]) {
		i++
	}
	if i-j != 3 {
		return "", "", "", "", fmt.Errorf("want 3 letters, got %d", i-j)
	}
	digits := s[i:]
	for k := 0; k < len(digits); k++ {
		if !isdigit(digits[k]) {
			return "", "", "", "", fmt.Errorf("invalid character %q", digits[k])
		}
	}
	if len(digits)%2 != 0 {
		return "", "", "", "", fmt.Errorf("%w: odd number of digits %d", ErrInvalidGridRef, len(digits))
	}
	half := len(digits) / 2
	return s[:j+1], s[j+1 : j+3], digits[:half], digits[half:], nil
}

func isdigit(r byte) bool {
	return r >= '0' && r <= '9'
}

func isalpha(r byte) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func toupper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
