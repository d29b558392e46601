package core

import (
	"github.com/signalsfoundry/eo-mission-engine/model"
)

// Deconvolve restores a single image channel blurred by a known kernel using
// Richardson-Lucy iteration: the estimate starts at the observed channel,
// and each pass re-blurs the estimate, divides the observation by the
// re-blur (a zero denominator yields ratio 0), back-projects the ratio
// through the spatially flipped kernel, and multiplies the estimate by that
// correction. With a non-negative unit-sum kernel the update preserves total
// energy and non-negativity.
//
// The iteration count is entirely caller-owned; there is no internal
// convergence check, so the convergence/over-sharpening tradeoff stays with
// the caller.
func Deconvolve(observed model.Channel, kernel model.Kernel, iterations int) model.Channel {
	estimate := observed.Clone()
	flipped := flipKernel(kernel)

	for it := 0; it < iterations; it++ {
		reblurred := convolve(estimate, kernel)

		height, width := observed.Dims()
		ratio := model.NewChannel(height, width)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if reblurred[y][x] != 0 {
					ratio[y][x] = observed[y][x] / reblurred[y][x]
				}
			}
		}

		correction := convolve(ratio, flipped)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				estimate[y][x] *= correction[y][x]
			}
		}
	}
	return estimate
}

// convolve performs direct 2-D convolution with zero-padded borders:
// out-of-bounds kernel taps contribute zero.
func convolve(ch model.Channel, kernel model.Kernel) model.Channel {
	height, width := ch.Dims()
	out := model.NewChannel(height, width)
	half := kernel.Size / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			acc := 0.0
			for ky := 0; ky < kernel.Size; ky++ {
				sy := y + ky - half
				if sy < 0 || sy >= height {
					continue
				}
				row := ch[sy]
				krow := kernel.Data[ky]
				for kx := 0; kx < kernel.Size; kx++ {
					sx := x + kx - half
					if sx < 0 || sx >= width {
						continue
					}
					acc += row[sx] * krow[kx]
				}
			}
			out[y][x] = acc
		}
	}
	return out
}

// flipKernel reverses the kernel along both axes, turning convolution with
// it into correlation with the original.
func flipKernel(k model.Kernel) model.Kernel {
	flipped := emptyKernel(k.Size)
	for y := 0; y < k.Size; y++ {
		for x := 0; x < k.Size; x++ {
			flipped.Data[y][x] = k.Data[k.Size-1-y][k.Size-1-x]
		}
	}
	return flipped
}
