package model

import (
	"fmt"
	"math"
)

// SensorInputs describes an electro-optical payload and the orbit geometry
// it operates in. Units follow the remote-sensing convention: pixel pitch in
// micrometres, focal length and aperture in millimetres, altitudes and GPS
// accuracy in metres, angles in degrees.
type SensorInputs struct {
	PixelPitchUm float64
	PixelCountH  int
	PixelCountV  int

	// GSDRequirementM is the target ground sample distance in metres.
	GSDRequirementM float64

	AltitudeMinM float64
	AltitudeMaxM float64

	FocalLengthMm float64
	ApertureMm    float64

	// AttitudeAccuracyDeg is the attitude determination accuracy (3-sigma).
	AttitudeAccuracyDeg float64

	NominalOffNadirDeg float64
	MaxOffNadirDeg     float64

	// GPSAccuracyM is the position knowledge error contribution.
	GPSAccuracyM float64
}

// Validate checks the invariants the geometry engine assumes. The engine
// itself never raises; invalid inputs degrade to NaN/Inf results, so callers
// are expected to run Validate before invoking it.
func (s SensorInputs) Validate() error {
	if err := requirePositive("pixelPitchUm", s.PixelPitchUm); err != nil {
		return err
	}
	if s.PixelCountH <= 0 || s.PixelCountV <= 0 {
		return fmt.Errorf("pixel counts must be positive, got %dx%d", s.PixelCountH, s.PixelCountV)
	}
	if err := requirePositive("gsdRequirementM", s.GSDRequirementM); err != nil {
		return err
	}
	if err := requirePositive("altitudeMinM", s.AltitudeMinM); err != nil {
		return err
	}
	if err := requirePositive("altitudeMaxM", s.AltitudeMaxM); err != nil {
		return err
	}
	if s.AltitudeMaxM < s.AltitudeMinM {
		return fmt.Errorf("altitudeMaxM (%g) must be >= altitudeMinM (%g)", s.AltitudeMaxM, s.AltitudeMinM)
	}
	if err := requirePositive("focalLengthMm", s.FocalLengthMm); err != nil {
		return err
	}
	if err := requirePositive("apertureMm", s.ApertureMm); err != nil {
		return err
	}
	if err := requirePositive("attitudeAccuracyDeg", s.AttitudeAccuracyDeg); err != nil {
		return err
	}
	if err := requireAngle("nominalOffNadirDeg", s.NominalOffNadirDeg); err != nil {
		return err
	}
	if err := requireAngle("maxOffNadirDeg", s.MaxOffNadirDeg); err != nil {
		return err
	}
	if err := requirePositive("gpsAccuracyM", s.GPSAccuracyM); err != nil {
		return err
	}
	return nil
}

func requirePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%s must be a positive finite number, got %g", name, v)
	}
	return nil
}

func requireNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fmt.Errorf("%s must be a non-negative finite number, got %g", name, v)
	}
	return nil
}

// requireAngle accepts pointing angles in [0, 90) degrees.
func requireAngle(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v >= 90 {
		return fmt.Errorf("%s must be in [0, 90) degrees, got %g", name, v)
	}
	return nil
}
