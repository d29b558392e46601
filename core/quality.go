package core

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/signalsfoundry/eo-mission-engine/model"
)

// RestorationQuality compares a restored channel against a reference.
type RestorationQuality struct {
	// PSNRdB is the peak signal-to-noise ratio assuming unit peak signal.
	// +Inf when the channels are identical.
	PSNRdB float64

	// SSIM is the structural similarity index over the whole channel
	// (single global window), in [-1, 1].
	SSIM float64

	MeanAbsErr float64
}

// SSIM stabilisation constants for unit dynamic range.
const (
	ssimC1 = 0.01 * 0.01
	ssimC2 = 0.03 * 0.03
)

// CompareChannels computes restoration quality metrics between a reference
// channel and a restored one. Both must have identical dimensions; mismatched
// inputs yield NaN metrics rather than raising, matching the engine-wide
// degradation model.
func CompareChannels(reference, restored model.Channel) RestorationQuality {
	rh, rw := reference.Dims()
	sh, sw := restored.Dims()
	if rh != sh || rw != sw || rh == 0 || rw == 0 {
		return RestorationQuality{PSNRdB: math.NaN(), SSIM: math.NaN(), MeanAbsErr: math.NaN()}
	}

	ref := flatten(reference)
	res := flatten(restored)

	var sumSq, sumAbs float64
	for i := range ref {
		d := ref[i] - res[i]
		sumSq += d * d
		sumAbs += math.Abs(d)
	}
	n := float64(len(ref))
	mse := sumSq / n

	psnr := math.Inf(1)
	if mse > 0 {
		psnr = 10 * math.Log10(1/mse)
	}

	muX := stat.Mean(ref, nil)
	muY := stat.Mean(res, nil)
	sigmaX := stat.Variance(ref, nil)
	sigmaY := stat.Variance(res, nil)
	sigmaXY := stat.Covariance(ref, res, nil)

	ssim := ((2*muX*muY + ssimC1) * (2*sigmaXY + ssimC2)) /
		((muX*muX + muY*muY + ssimC1) * (sigmaX + sigmaY + ssimC2))

	return RestorationQuality{
		PSNRdB:     psnr,
		SSIM:       ssim,
		MeanAbsErr: sumAbs / n,
	}
}

func flatten(ch model.Channel) []float64 {
	h, w := ch.Dims()
	out := make([]float64, 0, h*w)
	for _, row := range ch {
		out = append(out, row...)
	}
	return out
}
