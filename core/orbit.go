package core

import (
	"math"
	"time"

	"github.com/signalsfoundry/eo-mission-engine/model"
)

const (
	// EarthMuKm3PerS2 is Earth's gravitational parameter.
	EarthMuKm3PerS2 = 398600.4418

	// siderealRateDegPerMin is Earth's rotation relative to inertial space:
	// one revolution per sidereal day (1436.07 minutes).
	siderealRateDegPerMin = 360.0 / 1436.07

	// Ground-track sampling bounds. Short spans are sampled every two
	// minutes; long spans are subsampled so the output never exceeds
	// maxTrackSamples points.
	minTrackSamples = 100
	maxTrackSamples = 500
)

// PropagateOrbit produces the ground track of a circular two-body orbit over
// the requested time span, with timestamps relative to the Unix epoch. The
// output is a finite ordered sequence; each call recomputes it fresh.
func PropagateOrbit(e model.OrbitalElements, timeSpanHours float64) []model.GroundTrackPoint {
	return PropagateOrbitFrom(e, time.Unix(0, 0).UTC(), timeSpanHours)
}

// PropagateOrbitFrom is PropagateOrbit anchored at an explicit start time.
//
// The orbit is treated as circular: a constant angular rate from Kepler's
// third law, with the sub-satellite longitude corrected for the sidereal
// Earth rotation accumulated since the start of the span.
func PropagateOrbitFrom(e model.OrbitalElements, start time.Time, timeSpanHours float64) []model.GroundTrackPoint {
	semiMajorKm := EarthRadiusKm + e.AltitudeKm
	periodMin := 2 * math.Pi * math.Sqrt(semiMajorKm*semiMajorKm*semiMajorKm/EarthMuKm3PerS2) / 60
	meanMotionDegPerMin := 360 / periodMin

	totalMinutes := timeSpanHours * 60
	samples := trackSampleCount(totalMinutes)

	inclination := e.InclinationDeg * math.Pi / 180
	raan := e.RAANDeg * math.Pi / 180

	track := make([]model.GroundTrackPoint, samples)
	for i := 0; i < samples; i++ {
		tMin := totalMinutes * float64(i) / float64(samples-1)

		nu := (e.TrueAnomalyDeg + meanMotionDegPerMin*tMin) * math.Pi / 180

		// Unit position in the orbital plane, rotated by inclination about
		// the line of nodes and then by RAAN about the pole.
		p := Vec3{X: math.Cos(nu), Y: math.Sin(nu)}.RotateX(inclination).RotateZ(raan)

		lat := math.Asin(p.Z) * 180 / math.Pi
		lon := math.Atan2(p.Y, p.X)*180/math.Pi - siderealRateDegPerMin*tMin

		track[i] = model.GroundTrackPoint{
			LatitudeDeg:  lat,
			LongitudeDeg: normalizeLongitude(lon),
			Time:         start.Add(time.Duration(tMin * float64(time.Minute))),
		}
	}
	return track
}

func trackSampleCount(totalMinutes float64) int {
	n := int(totalMinutes / 2)
	if n < minTrackSamples {
		return minTrackSamples
	}
	if n > maxTrackSamples {
		return maxTrackSamples
	}
	return n
}

// normalizeLongitude wraps a longitude into [-180, 180] by repeated
// wraparound. Long spans accumulate many revolutions of sidereal correction,
// so the input can be arbitrarily far outside the range.
func normalizeLongitude(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
