package core

import (
	"fmt"
	"math"

	"github.com/signalsfoundry/eo-mission-engine/model"
)

// KernelType selects the blur model a synthesized kernel approximates.
type KernelType string

const (
	KernelMotion   KernelType = "motion"
	KernelGaussian KernelType = "gaussian"
	KernelDefocus  KernelType = "defocus"
)

// KernelParams carries the per-type kernel parameters. Only the fields for
// the requested type are read.
type KernelParams struct {
	// Motion: blur length in pixels and direction in degrees.
	LengthPx float64
	AngleDeg float64

	// Gaussian: standard deviation in pixels.
	Sigma float64

	// Defocus: disk radius in pixels.
	RadiusPx int

	// Size optionally forces the kernel side length; 0 derives a size that
	// contains the blur support. Odd sizes keep the kernel centred.
	Size int
}

// EstimateKernel synthesizes a discrete PSF kernel: a rasterized line segment
// for motion blur, a sampled 2-D normal for gaussian blur, or a uniform disk
// for defocus. Every kernel is non-negative and normalised to unit sum.
func EstimateKernel(kind KernelType, p KernelParams) (model.Kernel, error) {
	switch kind {
	case KernelMotion:
		return motionKernel(p), nil
	case KernelGaussian:
		return gaussianKernel(p), nil
	case KernelDefocus:
		return defocusKernel(p), nil
	default:
		return model.Kernel{}, fmt.Errorf("unknown kernel type %q", kind)
	}
}

func motionKernel(p KernelParams) model.Kernel {
	size := p.Size
	if size <= 0 {
		size = 2*int(math.Ceil(p.LengthPx/2)) + 1
	}
	k := emptyKernel(size)

	// Rasterize the segment by stepping sub-pixel increments along the blur
	// direction, centred on the middle cell.
	angle := p.AngleDeg * math.Pi / 180
	dx, dy := math.Cos(angle), math.Sin(angle)
	half := float64(size) / 2
	steps := int(math.Max(1, math.Ceil(p.LengthPx*2)))
	for i := 0; i <= steps; i++ {
		t := p.LengthPx * (float64(i)/float64(steps) - 0.5)
		x := int(half + t*dx)
		y := int(half + t*dy)
		if x >= 0 && x < size && y >= 0 && y < size {
			k.Data[y][x] = 1
		}
	}
	return normalizeKernel(k)
}

func gaussianKernel(p KernelParams) model.Kernel {
	size := p.Size
	if size <= 0 {
		size = 2*int(math.Ceil(3*p.Sigma)) + 1
	}
	k := emptyKernel(size)

	center := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			k.Data[y][x] = math.Exp(-(dx*dx + dy*dy) / (2 * p.Sigma * p.Sigma))
		}
	}
	return normalizeKernel(k)
}

func defocusKernel(p KernelParams) model.Kernel {
	size := p.Size
	if size <= 0 {
		size = 2*p.RadiusPx + 1
	}
	k := emptyKernel(size)

	center := float64(size-1) / 2
	radius := float64(p.RadiusPx)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			if dx*dx+dy*dy <= radius*radius {
				k.Data[y][x] = 1
			}
		}
	}
	return normalizeKernel(k)
}

func emptyKernel(size int) model.Kernel {
	data := make([][]float64, size)
	for i := range data {
		data[i] = make([]float64, size)
	}
	return model.Kernel{Size: size, Data: data}
}

// normalizeKernel scales the kernel to unit sum. A degenerate all-zero
// kernel (possible when rasterization misses every cell) falls back to an
// identity tap at the centre.
func normalizeKernel(k model.Kernel) model.Kernel {
	sum := k.Sum()
	if sum <= 0 {
		k.Data[k.Size/2][k.Size/2] = 1
		return k
	}
	for i := range k.Data {
		for j := range k.Data[i] {
			k.Data[i][j] /= sum
		}
	}
	return k
}
