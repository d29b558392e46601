package model

import "fmt"

// AtmosphereCondition buckets the atmospheric seeing contribution used by the
// PSF and MTF models.
type AtmosphereCondition string

const (
	AtmosphereClear  AtmosphereCondition = "clear"
	AtmosphereHazy   AtmosphereCondition = "hazy"
	AtmosphereCloudy AtmosphereCondition = "cloudy"
)

// Valid reports whether the condition is one of the recognised buckets.
func (a AtmosphereCondition) Valid() bool {
	switch a {
	case AtmosphereClear, AtmosphereHazy, AtmosphereCloudy:
		return true
	}
	return false
}

// PSFInputs parameterises the point-spread-function model.
type PSFInputs struct {
	PixelPitchUm  float64
	ApertureMm    float64
	FocalLengthMm float64
	WavelengthNm  float64

	Atmosphere  AtmosphereCondition
	OffNadirDeg float64

	// DefocusUm is the focal-plane defocus distance; zero means in focus.
	DefocusUm float64
}

// Validate checks the PSF model preconditions. Angles and defocus may be
// zero; everything else must be strictly positive.
func (p PSFInputs) Validate() error {
	if err := requirePositive("pixelPitchUm", p.PixelPitchUm); err != nil {
		return err
	}
	if err := requirePositive("apertureMm", p.ApertureMm); err != nil {
		return err
	}
	if err := requirePositive("focalLengthMm", p.FocalLengthMm); err != nil {
		return err
	}
	if err := requirePositive("wavelengthNm", p.WavelengthNm); err != nil {
		return err
	}
	if !p.Atmosphere.Valid() {
		return fmt.Errorf("unknown atmosphere condition %q", p.Atmosphere)
	}
	if err := requireAngle("offNadirDeg", p.OffNadirDeg); err != nil {
		return err
	}
	return requireNonNegative("defocusUm", p.DefocusUm)
}

// MTFInputs parameterises the modulation-transfer-function model. It extends
// the PSF parameter set with detector and platform-motion properties plus the
// spatial-frequency sampling range.
type MTFInputs struct {
	PixelPitchUm  float64
	ApertureMm    float64
	FocalLengthMm float64
	WavelengthNm  float64

	Atmosphere  AtmosphereCondition
	OffNadirDeg float64
	DefocusUm   float64

	// QuantumEfficiency scales the detector MTF; 1.0 is an ideal detector.
	QuantumEfficiency float64

	// ElectronicNoiseE is the read noise in electrons. Carried through to the
	// results for reporting; it does not shape the MTF curves.
	ElectronicNoiseE float64

	GroundVelocityMps float64
	IntegrationTimeS  float64
	AltitudeM         float64

	// FreqMin/FreqMax bound the sampled spatial-frequency range in
	// cycles/mm. FreqMax <= 0 selects a default of twice Nyquist.
	FreqMinCyclesPerMm float64
	FreqMaxCyclesPerMm float64
}

// Validate checks the MTF model preconditions.
func (m MTFInputs) Validate() error {
	psf := PSFInputs{
		PixelPitchUm:  m.PixelPitchUm,
		ApertureMm:    m.ApertureMm,
		FocalLengthMm: m.FocalLengthMm,
		WavelengthNm:  m.WavelengthNm,
		Atmosphere:    m.Atmosphere,
		OffNadirDeg:   m.OffNadirDeg,
		DefocusUm:     m.DefocusUm,
	}
	if err := psf.Validate(); err != nil {
		return err
	}
	if m.QuantumEfficiency <= 0 || m.QuantumEfficiency > 1 {
		return fmt.Errorf("quantumEfficiency must be in (0, 1], got %g", m.QuantumEfficiency)
	}
	if err := requireNonNegative("electronicNoiseE", m.ElectronicNoiseE); err != nil {
		return err
	}
	if err := requirePositive("groundVelocityMps", m.GroundVelocityMps); err != nil {
		return err
	}
	if err := requirePositive("integrationTimeS", m.IntegrationTimeS); err != nil {
		return err
	}
	if err := requirePositive("altitudeM", m.AltitudeM); err != nil {
		return err
	}
	if err := requireNonNegative("freqMinCyclesPerMm", m.FreqMinCyclesPerMm); err != nil {
		return err
	}
	if m.FreqMaxCyclesPerMm != 0 && m.FreqMaxCyclesPerMm <= m.FreqMinCyclesPerMm {
		return fmt.Errorf("freqMaxCyclesPerMm (%g) must exceed freqMinCyclesPerMm (%g)",
			m.FreqMaxCyclesPerMm, m.FreqMinCyclesPerMm)
	}
	return nil
}
