// Package render turns revisit grids into heatmap images for quick visual
// inspection of coverage patterns.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/signalsfoundry/eo-mission-engine/model"
)

// Heatmap renders the revisit grid as a thermal-ramp image, one source pixel
// per grid cell, upscaled by the given integer factor with nearest-neighbour
// sampling so cell boundaries stay crisp. Scale values below 1 are treated
// as 1.
func Heatmap(grid model.RevisitGrid, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	rows, cols := grid.Rows(), grid.Cols()

	base := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t := 0.0
			if grid.MaxCount > 0 {
				t = float64(grid.Counts[r][c]) / float64(grid.MaxCount)
			}
			base.Set(c, r, thermal(t))
		}
	}
	if scale == 1 {
		return base
	}

	dst := image.NewRGBA(image.Rect(0, 0, cols*scale, rows*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	return dst
}

// WritePNG encodes the image to a PNG file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// thermal maps a normalised value to a black -> red -> yellow -> white ramp.
func thermal(t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	var r, g, b float64
	switch {
	case t < 1.0/3:
		r = t * 3
	case t < 2.0/3:
		r = 1
		g = (t - 1.0/3) * 3
	default:
		r = 1
		g = 1
		b = (t - 2.0/3) * 3
	}

	return color.RGBA{
		R: uint8(r * 255),
		G: uint8(g * 255),
		B: uint8(b * 255),
		A: 255,
	}
}
