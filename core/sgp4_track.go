package core

import (
	"fmt"
	"math"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/signalsfoundry/eo-mission-engine/model"
)

// PropagateTLE produces a ground track from a real two-line element set via
// SGP4, sampled with the same bounds as PropagateOrbit. Positions come back
// in the TEME frame from go-satellite, are rotated into ECEF with the
// library's GMST, and then inverted to geodetic coordinates.
//
// Unlike the circular-element propagator this can fail: malformed TLE lines
// are rejected up front since the library assumes well-formed input.
func PropagateTLE(line1, line2 string, start time.Time, timeSpanHours float64) ([]model.GroundTrackPoint, error) {
	if err := validateTLELines(line1, line2); err != nil {
		return nil, err
	}

	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS84)
	if sat.Error != 0 {
		return nil, fmt.Errorf("sgp4 init failed: code=%d %s", sat.Error, sat.ErrorStr)
	}

	totalMinutes := timeSpanHours * 60
	samples := trackSampleCount(totalMinutes)

	track := make([]model.GroundTrackPoint, 0, samples)
	for i := 0; i < samples; i++ {
		tMin := totalMinutes * float64(i) / float64(samples-1)
		at := start.Add(time.Duration(tMin * float64(time.Minute))).UTC()

		year, month, day := at.Date()
		hour, min, sec := at.Clock()

		posECI, _ := satellite.Propagate(sat, year, int(month), day, hour, min, sec)
		if math.IsNaN(posECI.X) || math.IsNaN(posECI.Y) || math.IsNaN(posECI.Z) {
			return nil, fmt.Errorf("sgp4 propagation produced NaN at t=%s", at.Format(time.RFC3339))
		}

		jd := satellite.JDay(year, int(month), day, hour, min, sec)
		gmst := satellite.ThetaG_JD(jd)
		posECEF := satellite.ECIToECEF(posECI, gmst)

		geo := ecefToGeodetic(Vec3{X: posECEF.X, Y: posECEF.Y, Z: posECEF.Z})
		track = append(track, model.GroundTrackPoint{
			LatitudeDeg:  geo.LatitudeDeg,
			LongitudeDeg: normalizeLongitude(geo.LongitudeDeg),
			Time:         at,
		})
	}
	return track, nil
}

// validateTLELines performs basic format validation so garbage never reaches
// the SGP4 library, which is fatal on parse errors.
func validateTLELines(line1, line2 string) error {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)

	if len(line1) != 69 {
		return fmt.Errorf("tle line1 length %d, expected 69", len(line1))
	}
	if len(line2) != 69 {
		return fmt.Errorf("tle line2 length %d, expected 69", len(line2))
	}
	if line1[0] != '1' {
		return fmt.Errorf("tle line1 must start with '1', got %q", line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("tle line2 must start with '2', got %q", line2[0])
	}
	return nil
}
