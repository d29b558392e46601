package core

import (
	"math"

	"github.com/signalsfoundry/eo-mission-engine/model"
)

// ComputeSensorGeometry derives ground resolution, footprint and the pointing
// error budget for a sensor/orbit combination.
//
// Two fixed-shape estimates come back: Nominal points the sensor at nadir and
// WorstCase points it at the configured maximum off-nadir angle, both
// evaluated at the worst-case (maximum) altitude. Off-nadir viewing stretches
// the ground pixel twice over: the slant range grows as 1/cos(theta) and the
// incidence obliquity adds another 1/cos(theta), so the centre pixel scales
// as 1/cos^2(theta).
//
// The function is pure and never raises. Out-of-contract inputs (validated by
// model.SensorInputs.Validate) propagate NaN/Inf through the arithmetic; that
// is the agreed failure signal.
func ComputeSensorGeometry(in model.SensorInputs) model.CalculationResults {
	return model.CalculationResults{
		Nominal:   geometryAt(in, in.NominalOffNadirDeg),
		WorstCase: geometryAt(in, in.MaxOffNadirDeg),
	}
}

func geometryAt(in model.SensorInputs, offNadirDeg float64) model.GeometryEstimate {
	altitude := in.AltitudeMaxM
	offNadir := offNadirDeg * math.Pi / 180

	// Instantaneous field of view of a single pixel, radians. Pitch is in
	// micrometres and focal length in millimetres; the 1e-3 reconciles them.
	ifov := in.PixelPitchUm * 1e-3 / in.FocalLengthMm

	// Full field of view across the horizontal axis of the detector.
	sensorHalfWidthMm := in.PixelPitchUm * 1e-3 * float64(in.PixelCountH) / 2
	fov := 2 * math.Atan(sensorHalfWidthMm/in.FocalLengthMm)

	cosOff := math.Cos(offNadir)
	slantRange := altitude / cosOff

	// Centre pixel: slant range stretch plus incidence obliquity.
	groundPixel := ifov * slantRange / cosOff

	// Edge pixel: same geometry at the look angle of the outermost pixel.
	edgeAngle := offNadir + fov/2
	cosEdge := math.Cos(edgeAngle)
	edgePixel := ifov * (altitude / cosEdge) / cosEdge

	// Pointing budget. Attitude knowledge error maps to a ground arc of
	// (error x slant range), amplified by the same obliquity factor as the
	// pixel footprint; roll and pitch contribute equally, yaw is folded in
	// as a third equal contributor in the RSS below.
	attErrRad := in.AttitudeAccuracyDeg * math.Pi / 180
	attDisplacement := attErrRad * slantRange / cosOff

	rss := math.Sqrt(3*attDisplacement*attDisplacement + in.GPSAccuracyM*in.GPSAccuracyM)

	return model.GeometryEstimate{
		GroundPixelSizeM:  groundPixel,
		EdgePixelSizeM:    edgePixel,
		SubtendedAngleDeg: fov * 180 / math.Pi,
		AlongTrackErrorM:  attDisplacement,
		CrossTrackErrorM:  attDisplacement,
		GPSErrorM:         in.GPSAccuracyM,
		TotalErrorM:       rss,
	}
}
