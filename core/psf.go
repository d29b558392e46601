package core

import (
	"math"

	"github.com/signalsfoundry/eo-mission-engine/model"
)

// Atmospheric seeing model constants per condition bucket: the focal-plane
// FWHM contribution at nadir (micrometres) and the Kolmogorov rolloff break
// frequency used by the MTF model (cycles/mm).
var atmosphereFWHMUm = map[model.AtmosphereCondition]float64{
	model.AtmosphereClear:  0.4,
	model.AtmosphereHazy:   1.0,
	model.AtmosphereCloudy: 2.5,
}

var atmosphereBreakFreq = map[model.AtmosphereCondition]float64{
	model.AtmosphereClear:  250,
	model.AtmosphereHazy:   120,
	model.AtmosphereCloudy: 60,
}

const (
	// fwhmToSigma converts a Gaussian FWHM to its standard deviation.
	fwhmToSigma = 1 / 2.3548200450309493

	// psfGridSize is the sampling of the 2-D PSF surface (odd, centred).
	psfGridSize = 33

	// psfProfileSamples is the tabulation density of the radial profile.
	psfProfileSamples = 100

	// psfProfileExtentSigmas bounds the sampled radius; encircled-energy
	// radii are never interpolated past it.
	psfProfileExtentSigmas = 3.0
)

// ComputePSF evaluates the point-spread-function model: Airy-disk scale,
// the three independent FWHM contributions combined in quadrature, Strehl
// ratio, and an analytic Gaussian encircled-energy curve.
//
// Pure and deterministic; invalid inputs degrade to NaN rather than raising.
func ComputePSF(in model.PSFInputs) model.PSFResults {
	fNumber := in.FocalLengthMm / in.ApertureMm
	wavelengthUm := in.WavelengthNm * 1e-3

	airyDiameter := 2.44 * wavelengthUm * fNumber
	diffractionFWHM := 1.22 * wavelengthUm * fNumber

	// Atmospheric contribution grows with the air mass along the slant
	// path, 1/cos(offNadir), softened to the 0.6 power.
	offNadir := in.OffNadirDeg * math.Pi / 180
	airMass := 1 / math.Cos(offNadir)
	atmosphericFWHM := atmosphereFWHMUm[in.Atmosphere] * math.Pow(airMass, 0.6)

	// Geometric defocus blur: a defocus distance d in front of an f/N beam
	// spreads over a disk of diameter d/N.
	defocusFWHM := in.DefocusUm / fNumber

	// Independent Gaussian-like blurs convolve; variances add.
	totalFWHM := math.Sqrt(diffractionFWHM*diffractionFWHM +
		atmosphericFWHM*atmosphericFWHM +
		defocusFWHM*defocusFWHM)

	strehl := strehlRatio(in, fNumber, wavelengthUm)

	sigma := totalFWHM * fwhmToSigma
	rmsSpot := sigma * math.Sqrt2

	profile := radialProfile(sigma)
	ee50 := encircledEnergyRadius(profile, 0.50)
	ee80 := encircledEnergyRadius(profile, 0.80)
	ee95 := encircledEnergyRadius(profile, 0.95)

	return model.PSFResults{
		AiryDiameterUm:    airyDiameter,
		DiffractionFWHMUm: diffractionFWHM,
		AtmosphericFWHMUm: atmosphericFWHM,
		DefocusFWHMUm:     defocusFWHM,
		TotalFWHMUm:       totalFWHM,
		StrehlRatio:       strehl,
		RMSSpotUm:         rmsSpot,
		EE50RadiusUm:      ee50,
		EE80RadiusUm:      ee80,
		EE95RadiusUm:      ee95,
		Grid:              psfGrid(sigma),
		RadialProfile:     profile,
	}
}

// strehlRatio applies the Marechal approximation exp(-(2*pi*WFE/lambda)^2).
// The wavefront error combines the defocus term (lambda/4 at the Rayleigh
// defocus 2*lambda*N^2, hence d/(8N^2)) with an off-axis aberration term
// quadratic in the pointing angle, in quadrature.
func strehlRatio(in model.PSFInputs, fNumber, wavelengthUm float64) float64 {
	wfeDefocus := in.DefocusUm / (8 * fNumber * fNumber)
	wfeOffAxis := wavelengthUm * (in.OffNadirDeg * in.OffNadirDeg) / 8100
	wfe := math.Sqrt(wfeDefocus*wfeDefocus + wfeOffAxis*wfeOffAxis)

	phase := 2 * math.Pi * wfe / wavelengthUm
	return math.Exp(-phase * phase)
}

// radialProfile tabulates the Gaussian PSF intensity and its cumulative
// encircled energy 1 - exp(-r^2 / 2 sigma^2) out to the profile extent.
func radialProfile(sigma float64) []model.PSFSample {
	maxRadius := psfProfileExtentSigmas * sigma
	profile := make([]model.PSFSample, psfProfileSamples)
	for i := range profile {
		r := maxRadius * float64(i) / float64(psfProfileSamples-1)
		profile[i] = model.PSFSample{
			RadiusUm:        r,
			Intensity:       math.Exp(-r * r / (2 * sigma * sigma)),
			EncircledEnergy: 1 - math.Exp(-r*r/(2*sigma*sigma)),
		}
	}
	return profile
}

// encircledEnergyRadius linearly interpolates the tabulated curve for the
// radius containing the given energy fraction. If the curve never reaches the
// fraction within the sampled extent, the last sampled radius is returned;
// the curve is never extrapolated.
func encircledEnergyRadius(profile []model.PSFSample, fraction float64) float64 {
	for i := 1; i < len(profile); i++ {
		if profile[i].EncircledEnergy >= fraction {
			prev, cur := profile[i-1], profile[i]
			span := cur.EncircledEnergy - prev.EncircledEnergy
			if span <= 0 {
				return cur.RadiusUm
			}
			t := (fraction - prev.EncircledEnergy) / span
			return prev.RadiusUm + t*(cur.RadiusUm-prev.RadiusUm)
		}
	}
	return profile[len(profile)-1].RadiusUm
}

// psfGrid samples the normalised 2-D Gaussian PSF on a square patch spanning
// +/- the profile extent, peak value 1 at the centre cell.
func psfGrid(sigma float64) [][]float64 {
	extent := psfProfileExtentSigmas * sigma
	grid := make([][]float64, psfGridSize)
	half := psfGridSize / 2
	for i := range grid {
		grid[i] = make([]float64, psfGridSize)
		for j := range grid[i] {
			x := extent * float64(j-half) / float64(half)
			y := extent * float64(i-half) / float64(half)
			grid[i][j] = math.Exp(-(x*x + y*y) / (2 * sigma * sigma))
		}
	}
	return grid
}
