package gridref

import "errors"

// Errors returned by the conversions. Every error returned by this package
// wraps one or more of these, so callers should test with errors.Is.
var (
	// ErrInvalidPoint reports a non-finite latitude or longitude.
	ErrInvalidPoint = errors.New("invalid point")
	// ErrOutOfRange reports a latitude outside the UTM limits of [-80, 84]
	// degrees, or a zone that cannot be used for a point.
	ErrOutOfRange = errors.New("outside UTM limits")
	// ErrInvalidCoordinate reports a UTM coordinate with a non-finite or
	// impossible field.
	ErrInvalidCoordinate = errors.New("invalid UTM coordinate")
	// ErrConvergenceFailure reports that the inverse projection did not
	// settle within maxInverseIterations.
	ErrConvergenceFailure = errors.New("inverse projection did not converge")
	// ErrInvalidUtmString reports malformed UTM text.
	ErrInvalidUtmString = errors.New("invalid UTM string")
	// ErrInvalidMgrsString reports malformed MGRS text.
	ErrInvalidMgrsString = errors.New("invalid MGRS string")
	// ErrInvalidGridRef reports an MGRS grid reference whose letters, digits
	// or precision are not valid.
	ErrInvalidGridRef = errors.New("invalid MGRS grid reference")
)
