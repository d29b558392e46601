package model

import (
	"fmt"
	"time"
)

// OrbitalElements describes a circular-orbit approximation used by the
// ground-track propagator: altitude above the mean Earth radius plus the
// three orientation angles that matter for a circular orbit.
type OrbitalElements struct {
	AltitudeKm     float64
	InclinationDeg float64
	RAANDeg        float64

	// TrueAnomalyDeg is the initial in-plane phase at t=0.
	TrueAnomalyDeg float64
}

// Validate checks the propagator preconditions.
func (e OrbitalElements) Validate() error {
	if err := requirePositive("altitudeKm", e.AltitudeKm); err != nil {
		return err
	}
	if e.InclinationDeg < 0 || e.InclinationDeg > 180 {
		return fmt.Errorf("inclinationDeg must be in [0, 180], got %g", e.InclinationDeg)
	}
	return nil
}

// GroundTrackPoint is a single sub-satellite point sample.
type GroundTrackPoint struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	Time         time.Time
}

// Satellite names one platform in a constellation analysis. Either Elements
// or a TLE pair drives its ground track; when both are set the TLE wins.
type Satellite struct {
	Name     string
	Elements OrbitalElements

	// TLELine1/TLELine2 optionally select SGP4 propagation from a real
	// two-line element set instead of the circular approximation.
	TLELine1 string
	TLELine2 string
}

// HasTLE reports whether this satellite carries a usable TLE pair.
func (s Satellite) HasTLE() bool {
	return s.TLELine1 != "" && s.TLELine2 != ""
}

// TLEElements is the standard orbital-element set decoded from a two-line
// element set, in the units the format uses natively.
type TLEElements struct {
	EpochYear int     // two- or four-digit year
	EpochDay  float64 // fractional day of year

	InclinationDeg float64
	RAANDeg        float64
	Eccentricity   float64
	ArgPerigeeDeg  float64
	MeanAnomalyDeg float64

	// MeanMotionRevPerDay is the mean motion in revolutions per day.
	MeanMotionRevPerDay float64
}

// Validate checks the element-set preconditions for the geodetic converter.
func (t TLEElements) Validate() error {
	if t.EpochDay < 0 || t.EpochDay > 367 {
		return fmt.Errorf("epochDay must be in [0, 367], got %g", t.EpochDay)
	}
	if t.Eccentricity < 0 || t.Eccentricity >= 1 {
		return fmt.Errorf("eccentricity must be in [0, 1), got %g", t.Eccentricity)
	}
	if t.InclinationDeg < 0 || t.InclinationDeg > 180 {
		return fmt.Errorf("inclinationDeg must be in [0, 180], got %g", t.InclinationDeg)
	}
	return requirePositive("meanMotionRevPerDay", t.MeanMotionRevPerDay)
}

// GeodeticPosition is a WGS-84 latitude/longitude/altitude triple.
type GeodeticPosition struct {
	LatitudeDeg  float64
	LongitudeDeg float64
	AltitudeKm   float64
}
