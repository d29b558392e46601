package core

import (
	"math"
	"time"

	"github.com/signalsfoundry/eo-mission-engine/model"
)

// WGS-84 ellipsoid constants.
const (
	wgs84SemiMajorKm    = 6378.137
	wgs84Flattening     = 1 / 298.257223563
	wgs84EccentricitySq = wgs84Flattening * (2 - wgs84Flattening)
)

const (
	keplerTolerance     = 1e-8
	keplerMaxIterations = 100

	// geodeticIterations of the prime-vertical fixed point give
	// sub-millimetre convergence at LEO/GEO altitudes.
	geodeticIterations = 5

	j2000JD = 2451545.0
)

// TLEToGeodetic recovers the instantaneous sub-satellite geodetic position
// at a TLE's own epoch: mean motion to semi-major axis, Kepler's equation,
// perifocal position, the 3-1-3 rotation into ECI, GMST at the epoch, and an
// iterative WGS-84 inversion from ECEF.
//
// Pure; numerical edge cases degrade silently (a capped Kepler solve returns
// its last iterate) per the engine-wide error model.
func TLEToGeodetic(e model.TLEElements) model.GeodeticPosition {
	// Mean motion rev/day -> rad/s -> semi-major axis.
	nRad := e.MeanMotionRevPerDay * 2 * math.Pi / 86400
	semiMajorKm := math.Cbrt(EarthMuKm3PerS2 / (nRad * nRad))

	meanAnomaly := e.MeanAnomalyDeg * math.Pi / 180
	eccAnomaly := solveKepler(meanAnomaly, e.Eccentricity)

	// Eccentric -> true anomaly via the half-angle atan2 form, stable near
	// e -> 1 and nu -> pi where the arccos form loses precision.
	ecc := e.Eccentricity
	trueAnomaly := 2 * math.Atan2(
		math.Sqrt(1+ecc)*math.Sin(eccAnomaly/2),
		math.Sqrt(1-ecc)*math.Cos(eccAnomaly/2),
	)

	// Perifocal position; equivalent to [a(cos E - e), a sqrt(1-e^2) sin E, 0].
	radiusKm := semiMajorKm * (1 - ecc*math.Cos(eccAnomaly))
	perifocal := Vec3{
		X: radiusKm * math.Cos(trueAnomaly),
		Y: radiusKm * math.Sin(trueAnomaly),
	}

	// Perifocal -> ECI: 3-1-3 rotation by argument of perigee, inclination,
	// RAAN.
	eci := perifocal.
		RotateZ(e.ArgPerigeeDeg * math.Pi / 180).
		RotateX(e.InclinationDeg * math.Pi / 180).
		RotateZ(e.RAANDeg * math.Pi / 180)

	gmst := gmstFromJulianDate(epochJulianDate(e.EpochYear, e.EpochDay))

	// ECI -> ECEF: rotate by -GMST about Z.
	ecef := eci.RotateZ(-gmst)

	return ecefToGeodetic(ecef)
}

// solveKepler finds the eccentric anomaly E with E - e sin E = M by
// Newton-Raphson. The initial guess is M for modest eccentricities and pi
// when e >= 0.8, where M is a poor start. The iteration cap is a hard stop,
// not an error: the last iterate is returned with silently degraded accuracy.
func solveKepler(meanAnomaly, ecc float64) float64 {
	eccAnomaly := meanAnomaly
	if ecc >= 0.8 {
		eccAnomaly = math.Pi
	}
	for i := 0; i < keplerMaxIterations; i++ {
		delta := (eccAnomaly - ecc*math.Sin(eccAnomaly) - meanAnomaly) /
			(1 - ecc*math.Cos(eccAnomaly))
		eccAnomaly -= delta
		if math.Abs(delta) < keplerTolerance {
			break
		}
	}
	return eccAnomaly
}

// epochJulianDate converts a TLE epoch (two- or four-digit year plus
// fractional day of year, where day 1.0 is Jan 1 00:00 UTC) to Julian Date.
func epochJulianDate(epochYear int, epochDay float64) float64 {
	year := epochYear
	if year < 57 {
		year += 2000
	} else if year < 100 {
		year += 1900
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return julianDate(yearStart) + epochDay - 1
}

// julianDate converts a UTC time to Julian Date using the standard
// astronomical algorithm.
func julianDate(t time.Time) float64 {
	t = t.UTC()
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())
	h := float64(t.Hour())
	min := float64(t.Minute())
	s := float64(t.Second()) + float64(t.Nanosecond())/1e9

	// January and February count as months 13 and 14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	jd := math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + d + b - 1524.5
	return jd + (h+min/60+s/3600)/24
}

// gmstFromJulianDate evaluates the IAU-82 Greenwich Mean Sidereal Time
// polynomial (Vallado Eq 3-47), returning radians in [0, 2*pi).
func gmstFromJulianDate(jd float64) float64 {
	tUT1 := (jd - j2000JD) / 36525

	gmstSec := 67310.54841 +
		(3155760000.0+8640184.812866)*tUT1 +
		0.093104*tUT1*tUT1 -
		6.2e-6*tUT1*tUT1*tUT1

	gmstSec = math.Mod(gmstSec, 86400)
	if gmstSec < 0 {
		gmstSec += 86400
	}
	return gmstSec / 86400 * 2 * math.Pi
}

// ecefToGeodetic inverts an ECEF position (kilometres) to WGS-84 geodetic
// coordinates with a fixed number of prime-vertical refinement iterations.
func ecefToGeodetic(ecef Vec3) model.GeodeticPosition {
	p := math.Hypot(ecef.X, ecef.Y)
	lon := math.Atan2(ecef.Y, ecef.X)

	lat := math.Atan2(ecef.Z, p*(1-wgs84EccentricitySq))
	var primeVertical, altKm float64
	for i := 0; i < geodeticIterations; i++ {
		sinLat := math.Sin(lat)
		primeVertical = wgs84SemiMajorKm / math.Sqrt(1-wgs84EccentricitySq*sinLat*sinLat)
		altKm = p/math.Cos(lat) - primeVertical
		lat = math.Atan2(ecef.Z, p*(1-wgs84EccentricitySq*primeVertical/(primeVertical+altKm)))
	}

	return model.GeodeticPosition{
		LatitudeDeg:  lat * 180 / math.Pi,
		LongitudeDeg: lon * 180 / math.Pi,
		AltitudeKm:   altKm,
	}
}
