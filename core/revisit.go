package core

import (
	"math"
	"time"

	"github.com/signalsfoundry/eo-mission-engine/model"
)

const (
	// revisitSensorHalfAngleDeg is the fixed half-angle of the imaging swath
	// used for coverage accumulation.
	revisitSensorHalfAngleDeg = 15.0

	// kmPerDegree approximates one degree of great-circle arc.
	kmPerDegree = 111.0
)

// AccumulateRevisits runs every satellite's ground track over the time span
// and counts, per discretised (latitude, longitude) cell, how many track
// samples' sensor swaths cover it. The grid is Resolution rows by
// 2*Resolution columns; cell increments are commutative and associative, so
// the result is independent of satellite and sample order.
//
// Satellites carrying a TLE are propagated with SGP4; a TLE that fails to
// propagate contributes nothing, consistent with the engine's silent local
// degradation model.
func AccumulateRevisits(sats []model.Satellite, timeSpanHours float64, gridResolution int) model.RevisitGrid {
	return AccumulateRevisitsFrom(sats, time.Unix(0, 0).UTC(), timeSpanHours, gridResolution)
}

// AccumulateRevisitsFrom is AccumulateRevisits anchored at an explicit start
// time, which matters for TLE-driven satellites whose SGP4 state is only
// meaningful near the element-set epoch.
func AccumulateRevisitsFrom(sats []model.Satellite, start time.Time, timeSpanHours float64, gridResolution int) model.RevisitGrid {
	grid := model.NewRevisitGrid(gridResolution)

	for _, sat := range sats {
		var track []model.GroundTrackPoint
		if sat.HasTLE() {
			t, err := PropagateTLE(sat.TLELine1, sat.TLELine2, start, timeSpanHours)
			if err != nil {
				continue
			}
			track = t
		} else {
			track = PropagateOrbit(sat.Elements, timeSpanHours)
		}

		altitudeKm := sat.Elements.AltitudeKm
		for _, point := range track {
			accumulateSwath(&grid, point, altitudeKm)
		}
	}

	grid.MaxCount = maxCell(grid)
	return grid
}

// accumulateSwath increments every grid cell covered by the instantaneous
// sensor swath centred on one track sample. The swath half-width follows
// from the fixed sensor half-angle and the altitude under the small-angle
// approximation (degrees ~ km / 111); the longitude half-width widens by
// 1/cos(lat) for meridian convergence.
func accumulateSwath(grid *model.RevisitGrid, p model.GroundTrackPoint, altitudeKm float64) {
	halfWidthKm := altitudeKm * math.Tan(revisitSensorHalfAngleDeg*math.Pi/180)
	latHalfDeg := halfWidthKm / kmPerDegree

	cosLat := math.Cos(p.LatitudeDeg * math.Pi / 180)
	lonHalfDeg := latHalfDeg
	if cosLat > 1e-6 {
		lonHalfDeg = latHalfDeg / cosLat
	} else {
		// Swath touches the pole; cover the full longitude band.
		lonHalfDeg = 180
	}

	rows, cols := grid.Rows(), grid.Cols()

	rowMin := clampIndex(latToRow(p.LatitudeDeg+latHalfDeg, rows), rows)
	rowMax := clampIndex(latToRow(p.LatitudeDeg-latHalfDeg, rows), rows)
	colMin := clampIndex(lonToCol(p.LongitudeDeg-lonHalfDeg, cols), cols)
	colMax := clampIndex(lonToCol(p.LongitudeDeg+lonHalfDeg, cols), cols)

	for r := rowMin; r <= rowMax; r++ {
		for c := colMin; c <= colMax; c++ {
			grid.Counts[r][c]++
		}
	}
}

// latToRow maps latitude to a row index: +90 at row 0, -90 at the last row.
func latToRow(latDeg float64, rows int) int {
	return int(math.Floor((90 - latDeg) * float64(rows) / 180))
}

// lonToCol maps longitude to a column index: -180 at column 0.
func lonToCol(lonDeg float64, cols int) int {
	return int(math.Floor((lonDeg + 180) * float64(cols) / 360))
}

// clampIndex bounds an index into [0, n-1] so a swath spilling past the
// coordinate domain never writes outside the grid.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func maxCell(grid model.RevisitGrid) int {
	max := 0
	for _, row := range grid.Counts {
		for _, c := range row {
			if c > max {
				max = c
			}
		}
	}
	return max
}
