package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/signalsfoundry/eo-mission-engine/core"
	"github.com/signalsfoundry/eo-mission-engine/internal/logging"
	"github.com/signalsfoundry/eo-mission-engine/internal/observability"
)

func main() {
	inPath := flag.String("in", "", "input PNG image")
	outPath := flag.String("out", "restored.png", "output PNG image")
	kernelType := flag.String("kernel", "gaussian", "blur kernel type: motion | gaussian | defocus")
	length := flag.Float64("length", 9, "motion blur length in pixels")
	angle := flag.Float64("angle", 0, "motion blur angle in degrees")
	sigma := flag.Float64("sigma", 2, "gaussian blur standard deviation in pixels")
	radius := flag.Int("radius", 4, "defocus blur disk radius in pixels")
	iterations := flag.Int("iterations", 10, "Richardson-Lucy iteration count")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: deconv -in blurred.png [-out restored.png] [-kernel type] [-iterations n]")
		os.Exit(2)
	}

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
	engine := core.NewEngine(log, collector)

	channels, bounds, err := readChannels(*inPath)
	if err != nil {
		log.Error(ctx, "image read failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	kernel, err := engine.Kernel(ctx, core.KernelType(*kernelType), core.KernelParams{
		LengthPx: *length,
		AngleDeg: *angle,
		Sigma:    *sigma,
		RadiusPx: *radius,
	})
	if err != nil {
		log.Error(ctx, "kernel estimation failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	// Each colour channel restores independently; they share nothing.
	for i := range channels {
		channels[i] = engine.Restore(ctx, channels[i], kernel, *iterations)
	}

	if err := writeChannels(*outPath, channels, bounds); err != nil {
		log.Error(ctx, "image write failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info(ctx, "restoration complete",
		logging.String("kernel", *kernelType),
		logging.Int("iterations", *iterations),
		logging.String("output", *outPath),
	)
}
