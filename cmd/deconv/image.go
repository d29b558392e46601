package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/signalsfoundry/eo-mission-engine/model"
)

// readChannels decodes a PNG into three independent channels with values
// normalised to [0, 1].
func readChannels(path string) ([]model.Channel, image.Rectangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, image.Rectangle{}, fmt.Errorf("decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	height, width := bounds.Dy(), bounds.Dx()

	channels := []model.Channel{
		model.NewChannel(height, width),
		model.NewChannel(height, width),
		model.NewChannel(height, width),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			channels[0][y][x] = float64(r) / 65535
			channels[1][y][x] = float64(g) / 65535
			channels[2][y][x] = float64(b) / 65535
		}
	}
	return channels, bounds, nil
}

// writeChannels reassembles three channels into an opaque RGBA PNG, clamping
// values back into [0, 1]; deconvolution can overshoot slightly at edges.
func writeChannels(path string, channels []model.Channel, bounds image.Rectangle) error {
	height, width := bounds.Dy(), bounds.Dx()
	out := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.Set(x, y, color.RGBA{
				R: toByte(channels[0][y][x]),
				G: toByte(channels[1][y][x]),
				B: toByte(channels[2][y][x]),
				A: 255,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func toByte(v float64) uint8 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
