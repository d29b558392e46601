package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/signalsfoundry/eo-mission-engine/core"
	"github.com/signalsfoundry/eo-mission-engine/internal/logging"
	"github.com/signalsfoundry/eo-mission-engine/internal/observability"
	"github.com/signalsfoundry/eo-mission-engine/internal/render"
	"github.com/signalsfoundry/eo-mission-engine/internal/scenario"
	"github.com/signalsfoundry/eo-mission-engine/model"
)

func main() {
	scenarioPath := flag.String("scenario", "scenario.yaml", "path to the YAML analysis scenario")
	heatmapPath := flag.String("heatmap", "", "optional output PNG for the revisit heatmap")
	heatmapScale := flag.Int("heatmap-scale", 4, "integer upscale factor for the heatmap image")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "tracing init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdown, log)

	collector, err := observability.NewEngineCollector(nil)
	if err != nil {
		log.Error(ctx, "metrics init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	sc, err := scenario.LoadFile(*scenarioPath)
	if err != nil {
		log.Error(ctx, "scenario load failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info(ctx, "scenario loaded",
		logging.String("name", sc.Name),
		logging.Int("satellites", len(sc.Satellites)),
		logging.Float64("span_hours", sc.TimeSpanHours),
	)

	engine := core.NewEngine(log, collector)

	geometry := engine.SensorGeometry(ctx, sc.Sensor)
	grid := engine.Revisits(ctx, sc.Satellites, sc.Start, sc.TimeSpanHours, sc.GridResolution)

	printReport(sc, geometry, grid)

	if *heatmapPath != "" {
		img := render.Heatmap(grid, *heatmapScale)
		if err := render.WritePNG(*heatmapPath, img); err != nil {
			log.Error(ctx, "heatmap write failed", logging.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info(ctx, "heatmap written", logging.String("path", *heatmapPath))
	}
}

func printReport(sc *scenario.Scenario, geometry model.CalculationResults, grid model.RevisitGrid) {
	fmt.Printf("Scenario: %s\n\n", sc.Name)

	fmt.Println("Sensor geometry (worst-case altitude):")
	fmt.Printf("  nominal GSD:       %.2f m (requirement %.2f m)\n",
		geometry.Nominal.GroundPixelSizeM, sc.Sensor.GSDRequirementM)
	fmt.Printf("  worst-case GSD:    %.2f m at %.1f deg off-nadir\n",
		geometry.WorstCase.GroundPixelSizeM, sc.Sensor.MaxOffNadirDeg)
	fmt.Printf("  field of view:     %.3f deg\n", geometry.Nominal.SubtendedAngleDeg)

	swathKm := geometry.Nominal.GroundPixelSizeM * float64(sc.Sensor.PixelCountH) / 1000
	fmt.Printf("  swath width:       %s km\n", humanize.CommafWithDigits(swathKm, 1))
	fmt.Printf("  pointing error:    %.1f m RSS (worst case %.1f m)\n",
		geometry.Nominal.TotalErrorM, geometry.WorstCase.TotalErrorM)

	fmt.Println("\nRevisit coverage:")
	fmt.Printf("  satellites:        %d\n", len(sc.Satellites))
	fmt.Printf("  span:              %s hours\n", humanize.CommafWithDigits(sc.TimeSpanHours, 1))
	fmt.Printf("  grid:              %dx%d cells\n", grid.Rows(), grid.Cols())
	fmt.Printf("  max revisits:      %s\n", humanize.Comma(int64(grid.MaxCount)))
	fmt.Printf("  total samples:     %s\n", humanize.Comma(int64(grid.Sum())))
}
