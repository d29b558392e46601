package model

// GeometryEstimate is one fixed-shape record of the sensor geometry output.
// Lengths are metres, angles degrees. All values are non-negative for valid
// inputs; invalid inputs propagate NaN/Inf instead of raising.
type GeometryEstimate struct {
	// GroundPixelSizeM is the ground sample distance of a pixel on the
	// optical axis.
	GroundPixelSizeM float64

	// EdgePixelSizeM is the ground sample distance of a pixel at the edge of
	// the field of view, where the look angle is steepest.
	EdgePixelSizeM float64

	// SubtendedAngleDeg is the full field of view across the detector.
	SubtendedAngleDeg float64

	// AlongTrackErrorM and CrossTrackErrorM are the ground displacements
	// induced by the attitude knowledge error on each axis.
	AlongTrackErrorM float64
	CrossTrackErrorM float64

	// GPSErrorM is the position-knowledge contribution.
	GPSErrorM float64

	// TotalErrorM is the root-sum-square of all independent contributors.
	TotalErrorM float64
}

// CalculationResults pairs the nadir-pointing estimate with the maximum
// off-nadir estimate, both at worst-case altitude. Results are value types:
// recomputed wholesale, never mutated.
type CalculationResults struct {
	Nominal   GeometryEstimate
	WorstCase GeometryEstimate
}

// PSFSample is one point of a radial PSF profile: normalised intensity and
// cumulative encircled energy at a focal-plane radius.
type PSFSample struct {
	RadiusUm        float64
	Intensity       float64
	EncircledEnergy float64
}

// PSFResults holds the derived point-spread-function quality metrics plus the
// sampled PSF surface and radial profile.
type PSFResults struct {
	AiryDiameterUm     float64
	DiffractionFWHMUm  float64
	AtmosphericFWHMUm  float64
	DefocusFWHMUm      float64
	TotalFWHMUm        float64
	StrehlRatio        float64
	RMSSpotUm          float64
	EE50RadiusUm       float64
	EE80RadiusUm       float64
	EE95RadiusUm       float64

	// Grid is a normalised 2-D PSF sampled on a square focal-plane patch,
	// peak value 1.
	Grid [][]float64

	// RadialProfile is the tabulated radial intensity and encircled-energy
	// curve the EE radii are interpolated from.
	RadialProfile []PSFSample
}

// MTFResults holds the sampled transfer-function curves and the scalar
// metrics derived from them. All curves share the Frequencies axis
// (cycles/mm).
type MTFResults struct {
	Frequencies []float64
	OpticsMTF   []float64
	DetectorMTF []float64
	MotionMTF   []float64
	OverallMTF  []float64

	// MTF50CyclesPerMm is 0 when the overall curve never crosses 0.5 within
	// the sampled range; callers must disambiguate via the full curve.
	MTF50CyclesPerMm float64

	NyquistCyclesPerMm float64
	CutoffCyclesPerMm  float64

	// SamplingEfficiency is the overall MTF at the first sampled frequency
	// at or above Nyquist, clamped to [0, 1].
	SamplingEfficiency float64

	// GroundSampleDistanceM and MotionBlurPixels are reported for context.
	GroundSampleDistanceM float64
	MotionBlurPixels      float64
}

// RevisitGrid is a discretised revisit-count map of the Earth's surface.
// Rows span +90..-90 latitude, columns -180..+180 longitude; dimensions are
// Resolution x 2*Resolution.
type RevisitGrid struct {
	Resolution int
	Counts     [][]int
	MaxCount   int
}

// NewRevisitGrid allocates a zeroed grid for the given resolution.
func NewRevisitGrid(resolution int) RevisitGrid {
	counts := make([][]int, resolution)
	for i := range counts {
		counts[i] = make([]int, resolution*2)
	}
	return RevisitGrid{Resolution: resolution, Counts: counts}
}

// Rows returns the number of latitude cells.
func (g RevisitGrid) Rows() int { return g.Resolution }

// Cols returns the number of longitude cells.
func (g RevisitGrid) Cols() int { return g.Resolution * 2 }

// Sum returns the total of all cell counts.
func (g RevisitGrid) Sum() int {
	total := 0
	for _, row := range g.Counts {
		for _, c := range row {
			total += c
		}
	}
	return total
}
