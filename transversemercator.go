package gridref

import (
	"errors"
	"fmt"
	"math"
)

const nTerms = 6

// maxInverseIterations bounds the Newton iteration that recovers the
// geodetic latitude from the conformal latitude. Valid UTM input settles in
// two or three steps.
const maxInverseIterations = 10

const inverseTolerance = 1e-12

// TransverseMercator provides conversions between geodetic coordinates and
// transverse Mercator coordinates relative to a central meridian, using the
// 6th order Krüger series in the third flattening (Karney 2011).
//
// Coordinates are in radians on the geodetic side and meters on the grid
// side, without false easting or northing.
type TransverseMercator struct {
	// Ellipsoid Parameters
	semiMajorAxis float64
	flattening    float64

	tranMercEps float64 // Eccentricity
	tranMercN   float64 // Third flattening, (a - b)/(a + b)
	tranMercA   float64 // Rectifying radius; 2πA is the meridian circumference

	tranMercScaleFactor float64 // Scale factor on the central meridian
	tranMercK0A         float64 // SCALE_FACTOR*A

	tranMercAlpha [nTerms]float64 // α1..α6, conformal to rectifying
	tranMercBeta  [nTerms]float64 // β1..β6, rectifying to conformal
}

// NewTransverseMercator constructs a new TransverseMercator converter for the
// ellipsoid with the given central scale factor.
func NewTransverseMercator(ellipsoid Ellipsoid, scaleFactor float64) (*TransverseMercator, error) {
	ellipsoid = ellipsoid.orDefault()
	if err := ellipsoid.Validate(); err != nil {
		return nil, err
	}

	const minScaleFactor = 0.1
	const maxScaleFactor = 10.0
	if !(scaleFactor >= minScaleFactor && scaleFactor <= maxScaleFactor) {
		return nil, errors.New("scale factor out of range")
	}

	t := &TransverseMercator{
		semiMajorAxis:       ellipsoid.A,
		flattening:          ellipsoid.F,
		tranMercScaleFactor: scaleFactor,
	}
	f := ellipsoid.F
	t.tranMercEps = math.Sqrt(f * (2 - f))
	t.tranMercN = f / (2 - f)
	t.generateCoefficients()
	t.tranMercK0A = t.tranMercScaleFactor * t.tranMercA
	return t, nil
}

// generateCoefficients fills the Krüger series coefficients α and β and the
// rectifying radius A from the third flattening n. These are Karney (2011)
// eqs. 14 and 15 truncated after n⁶.
func (t *TransverseMercator) generateCoefficients() {
	n := t.tranMercN
	n2 := n * n
	n3 := n * n2
	n4 := n * n3
	n5 := n * n4
	n6 := n * n5

	t.tranMercA = t.semiMajorAxis / (1 + n) * (1 + 1.0/4*n2 + 1.0/64*n4 + 1.0/256*n6)

	t.tranMercAlpha = [nTerms]float64{
		1.0/2*n - 2.0/3*n2 + 5.0/16*n3 + 41.0/180*n4 - 127.0/288*n5 + 7891.0/37800*n6,
		13.0/48*n2 - 3.0/5*n3 + 557.0/1440*n4 + 281.0/630*n5 - 1983433.0/1935360*n6,
		61.0/240*n3 - 103.0/140*n4 + 15061.0/26880*n5 + 167603.0/181440*n6,
		49561.0/161280*n4 - 179.0/168*n5 + 6601661.0/7257600*n6,
		34729.0/80640*n5 - 3418889.0/1995840*n6,
		212378941.0 / 319334400 * n6,
	}

	t.tranMercBeta = [nTerms]float64{
		1.0/2*n - 2.0/3*n2 + 37.0/96*n3 - 1.0/360*n4 - 81.0/512*n5 + 96199.0/604800*n6,
		1.0/48*n2 + 1.0/15*n3 - 437.0/1440*n4 + 46.0/105*n5 - 1118711.0/3870720*n6,
		17.0/480*n3 - 37.0/840*n4 - 209.0/4480*n5 + 5569.0/90720*n6,
		4397.0/161280*n4 - 11.0/504*n5 - 830251.0/7257600*n6,
		4583.0/161280*n5 - 108847.0/3991680*n6,
		20648693.0 / 638668800 * n6,
	}
}

// Forward projects the geodetic latitude phi and the longitude lambda
// measured from the central meridian (both radians). It returns the easting
// x and northing y in meters relative to the projection origin, the meridian
// convergence gamma in radians and the point scale k.
func (t *TransverseMercator) Forward(phi, lambda float64) (x, y, gamma, k float64) {
	e := t.tranMercEps

	cosLam := math.Cos(lambda)
	sinLam := math.Sin(lambda)
	tanLam := math.Tan(lambda)

	// Ellipsoid to conformal sphere: τ ≡ tanφ, τʹ ≡ tanφʹ
	tau := math.Tan(phi)
	sigma := math.Sinh(e * math.Atanh(e*tau/math.Sqrt(1+tau*tau)))
	tauP := tau*math.Sqrt(1+sigma*sigma) - sigma*math.Sqrt(1+tau*tau)

	// Sphere to the spherical transverse Mercator plane
	xiP := math.Atan2(tauP, cosLam)
	etaP := math.Asinh(sinLam / math.Sqrt(tauP*tauP+cosLam*cosLam))

	c2kxi, s2kxi := computeTrigSeries(xiP)
	c2keta, s2keta := computeHyperbolicSeries(etaP)

	xi := xiP
	for j := 1; j <= nTerms; j++ {
		xi += t.tranMercAlpha[j-1] * s2kxi[j-1] * c2keta[j-1]
	}
	eta := etaP
	for j := 1; j <= nTerms; j++ {
		eta += t.tranMercAlpha[j-1] * c2kxi[j-1] * s2keta[j-1]
	}

	x = t.tranMercK0A * eta
	y = t.tranMercK0A * xi

	// Convergence, Karney eqs. 23 and 24
	pP := 1.0
	for j := 1; j <= nTerms; j++ {
		pP += 2 * float64(j) * t.tranMercAlpha[j-1] * c2kxi[j-1] * c2keta[j-1]
	}
	qP := 0.0
	for j := 1; j <= nTerms; j++ {
		qP += 2 * float64(j) * t.tranMercAlpha[j-1] * s2kxi[j-1] * s2keta[j-1]
	}
	gammaP := math.Atan(tauP / math.Sqrt(1+tauP*tauP) * tanLam)
	gammaPP := math.Atan2(qP, pP)
	gamma = gammaP + gammaPP

	// Scale, Karney eq. 25
	sinPhi := math.Sin(phi)
	kP := math.Sqrt(1-e*e*sinPhi*sinPhi) * math.Sqrt(1+tau*tau) / math.Sqrt(tauP*tauP+cosLam*cosLam)
	kPP := t.tranMercA / t.semiMajorAxis * math.Sqrt(pP*pP+qP*qP)
	k = t.tranMercScaleFactor * kP * kPP
	return x, y, gamma, k
}

// Inverse is the reverse of Forward: it takes x and y in meters relative to
// the projection origin and returns the latitude phi, the longitude lambda
// from the central meridian, the convergence gamma (all radians) and the
// point scale k.
func (t *TransverseMercator) Inverse(x, y float64) (phi, lambda, gamma, k float64, err error) {
	phi, lambda, gamma, k, _, err = t.inverse(x, y)
	return phi, lambda, gamma, k, err
}

func (t *TransverseMercator) inverse(x, y float64) (phi, lambda, gamma, k float64, iterations int, err error) {
	e := t.tranMercEps

	eta := x / t.tranMercK0A
	xi := y / t.tranMercK0A

	c2kxi, s2kxi := computeTrigSeries(xi)
	c2keta, s2keta := computeHyperbolicSeries(eta)

	xiP := xi
	for j := 1; j <= nTerms; j++ {
		xiP -= t.tranMercBeta[j-1] * s2kxi[j-1] * c2keta[j-1]
	}
	etaP := eta
	for j := 1; j <= nTerms; j++ {
		etaP -= t.tranMercBeta[j-1] * c2kxi[j-1] * s2keta[j-1]
	}

	sinhEtaP := math.Sinh(etaP)
	sinXiP := math.Sin(xiP)
	cosXiP := math.Cos(xiP)

	tauP := sinXiP / math.Sqrt(sinhEtaP*sinhEtaP+cosXiP*cosXiP)

	tau, iterations, err := geodeticTau(tauP, e)
	if err != nil {
		return 0, 0, 0, 0, iterations, err
	}

	phi = math.Atan(tau)
	lambda = math.Atan2(sinhEtaP, cosXiP)

	// Convergence, Karney eqs. 26 and 27
	p := 1.0
	for j := 1; j <= nTerms; j++ {
		p -= 2 * float64(j) * t.tranMercBeta[j-1] * c2kxi[j-1] * c2keta[j-1]
	}
	q := 0.0
	for j := 1; j <= nTerms; j++ {
		q += 2 * float64(j) * t.tranMercBeta[j-1] * s2kxi[j-1] * s2keta[j-1]
	}
	gammaP := math.Atan(math.Tan(xiP) * math.Tanh(etaP))
	gammaPP := math.Atan2(q, p)
	gamma = gammaP + gammaPP

	// Scale, Karney eq. 28
	sinPhi := math.Sin(phi)
	kP := math.Sqrt(1-e*e*sinPhi*sinPhi) * math.Sqrt(1+tau*tau) * math.Sqrt(sinhEtaP*sinhEtaP+cosXiP*cosXiP)
	kPP := t.tranMercA / t.semiMajorAxis / math.Sqrt(p*p+q*q)
	k = t.tranMercScaleFactor * kP * kPP
	return phi, lambda, gamma, k, iterations, nil
}

// geodeticTau inverts the conformal latitude relation τʹ(τ) by Newton's
// method, seeded with τ = τʹ (Karney 2011 eqs. 19-21).
func geodeticTau(tauP, e float64) (tau float64, iterations int, err error) {
	e2 := e * e
	tauI := tauP
	for iterations < maxInverseIterations {
		iterations++
		sigmaI := math.Sinh(e * math.Atanh(e*tauI/math.Sqrt(1+tauI*tauI)))
		tauIP := tauI*math.Sqrt(1+sigmaI*sigmaI) - sigmaI*math.Sqrt(1+tauI*tauI)
		deltaTauI := (tauP - tauIP) / math.Sqrt(1+tauIP*tauIP) *
			(1 + (1-e2)*tauI*tauI) / ((1 - e2) * math.Sqrt(1+tauI*tauI))
		if !isFinite(deltaTauI) {
			return 0, iterations, fmt.Errorf("%w: non-finite step from τʹ %v", ErrConvergenceFailure, tauP)
		}
		tauI += deltaTauI
		if math.Abs(deltaTauI) <= inverseTolerance {
			return tauI, iterations, nil
		}
	}
	return 0, iterations, fmt.Errorf("%w: no fix after %d iterations from τʹ %v",
		ErrConvergenceFailure, iterations, tauP)
}

// computeTrigSeries returns c[k] = cos(2(k+1)x) and s[k] = sin(2(k+1)x) for
// k = 0 .. nTerms-1.
func computeTrigSeries(x float64) (c2kx, s2kx [nTerms]float64) {
	for j := 1; j <= nTerms; j++ {
		c2kx[j-1] = math.Cos(2 * float64(j) * x)
		s2kx[j-1] = math.Sin(2 * float64(j) * x)
	}
	return c2kx, s2kx
}

// computeHyperbolicSeries returns c[k] = cosh(2(k+1)x) and
// s[k] = sinh(2(k+1)x) for k = 0 .. nTerms-1.
func computeHyperbolicSeries(x float64) (c2kx, s2kx [nTerms]float64) {
	for j := 1; j <= nTerms; j++ {
		c2kx[j-1] = math.Cosh(2 * float64(j) * x)
		s2kx[j-1] = math.Sinh(2 * float64(j) * x)
	}
	return c2kx, s2kx
}
