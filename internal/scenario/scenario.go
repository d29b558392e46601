// Package scenario loads and validates YAML analysis scenarios: the
// constellation, the sensor, and the analysis parameters a missionsim run
// needs. Validation is strict here because the engines themselves never
// raise; every input crosses this boundary checked.
package scenario

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/eo-mission-engine/catalog"
	"github.com/signalsfoundry/eo-mission-engine/model"
)

// Scenario is a fully validated analysis description.
type Scenario struct {
	Name           string
	Start          time.Time
	TimeSpanHours  float64
	GridResolution int
	Sensor         model.SensorInputs
	Satellites     []model.Satellite
}

// YAML shapes are unexported so the file format can evolve independently of
// the model types.
type scenarioYAML struct {
	Name           string          `yaml:"name"`
	StartTime      string          `yaml:"startTime"` // RFC 3339; empty = Unix epoch
	TimeSpanHours  float64         `yaml:"timeSpanHours"`
	GridResolution int             `yaml:"gridResolution"`
	Sensor         sensorYAML      `yaml:"sensor"`
	Satellites     []satelliteYAML `yaml:"satellites"`
}

type sensorYAML struct {
	PixelPitchUm        float64 `yaml:"pixelPitchUm"`
	PixelCountH         int     `yaml:"pixelCountH"`
	PixelCountV         int     `yaml:"pixelCountV"`
	GSDRequirementM     float64 `yaml:"gsdRequirementM"`
	AltitudeMinKm       float64 `yaml:"altitudeMinKm"`
	AltitudeMaxKm       float64 `yaml:"altitudeMaxKm"`
	FocalLengthMm       float64 `yaml:"focalLengthMm"`
	ApertureMm          float64 `yaml:"apertureMm"`
	AttitudeAccuracyDeg float64 `yaml:"attitudeAccuracyDeg"`
	NominalOffNadirDeg  float64 `yaml:"nominalOffNadirDeg"`
	MaxOffNadirDeg      float64 `yaml:"maxOffNadirDeg"`
	GPSAccuracyM        float64 `yaml:"gpsAccuracyM"`
}

type satelliteYAML struct {
	Name     string       `yaml:"name"`
	Elements elementsYAML `yaml:"elements"`
	TLELine1 string       `yaml:"tleLine1"`
	TLELine2 string       `yaml:"tleLine2"`
}

type elementsYAML struct {
	AltitudeKm     float64 `yaml:"altitudeKm"`
	InclinationDeg float64 `yaml:"inclinationDeg"`
	RAANDeg        float64 `yaml:"raanDeg"`
	TrueAnomalyDeg float64 `yaml:"trueAnomalyDeg"`
}

// LoadFile reads and validates a scenario from a YAML file.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads and validates a scenario from a reader.
func Load(r io.Reader) (*Scenario, error) {
	var payload scenarioYAML
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}

	start := time.Unix(0, 0).UTC()
	if payload.StartTime != "" {
		parsed, err := time.Parse(time.RFC3339, payload.StartTime)
		if err != nil {
			return nil, fmt.Errorf("parse startTime: %w", err)
		}
		start = parsed.UTC()
	}

	if payload.TimeSpanHours <= 0 {
		return nil, fmt.Errorf("timeSpanHours must be positive, got %g", payload.TimeSpanHours)
	}
	if payload.GridResolution <= 0 {
		return nil, fmt.Errorf("gridResolution must be positive, got %d", payload.GridResolution)
	}

	// Scenario altitude is in kilometres for readability; the sensor model
	// works in metres.
	sensor := model.SensorInputs{
		PixelPitchUm:        payload.Sensor.PixelPitchUm,
		PixelCountH:         payload.Sensor.PixelCountH,
		PixelCountV:         payload.Sensor.PixelCountV,
		GSDRequirementM:     payload.Sensor.GSDRequirementM,
		AltitudeMinM:        payload.Sensor.AltitudeMinKm * 1000,
		AltitudeMaxM:        payload.Sensor.AltitudeMaxKm * 1000,
		FocalLengthMm:       payload.Sensor.FocalLengthMm,
		ApertureMm:          payload.Sensor.ApertureMm,
		AttitudeAccuracyDeg: payload.Sensor.AttitudeAccuracyDeg,
		NominalOffNadirDeg:  payload.Sensor.NominalOffNadirDeg,
		MaxOffNadirDeg:      payload.Sensor.MaxOffNadirDeg,
		GPSAccuracyM:        payload.Sensor.GPSAccuracyM,
	}
	if err := sensor.Validate(); err != nil {
		return nil, fmt.Errorf("sensor: %w", err)
	}

	if len(payload.Satellites) == 0 {
		return nil, fmt.Errorf("scenario has no satellites")
	}

	// The catalog enforces naming and element invariants; building one here
	// surfaces duplicates before any engine runs.
	cat := catalog.New()
	for _, sy := range payload.Satellites {
		sat := model.Satellite{
			Name: sy.Name,
			Elements: model.OrbitalElements{
				AltitudeKm:     sy.Elements.AltitudeKm,
				InclinationDeg: sy.Elements.InclinationDeg,
				RAANDeg:        sy.Elements.RAANDeg,
				TrueAnomalyDeg: sy.Elements.TrueAnomalyDeg,
			},
			TLELine1: sy.TLELine1,
			TLELine2: sy.TLELine2,
		}
		if err := cat.Add(sat); err != nil {
			return nil, err
		}
	}

	return &Scenario{
		Name:           payload.Name,
		Start:          start,
		TimeSpanHours:  payload.TimeSpanHours,
		GridResolution: payload.GridResolution,
		Sensor:         sensor,
		Satellites:     cat.List(),
	}, nil
}
