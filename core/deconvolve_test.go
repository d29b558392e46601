package core

import (
	"math"
	"testing"

	"github.com/signalsfoundry/eo-mission-engine/model"
)

// identityKernel is a single centre tap: blurring with it is a no-op.
func identityKernel(size int) model.Kernel {
	k := emptyKernel(size)
	k.Data[size/2][size/2] = 1
	return k
}

// testScene builds a deterministic channel with structure: a bright square on
// a graded background, values in [0, 1].
func testScene(height, width int) model.Channel {
	ch := model.NewChannel(height, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ch[y][x] = 0.1 + 0.2*float64(x)/float64(width)
		}
	}
	for y := height / 4; y < height/2; y++ {
		for x := width / 4; x < width/2; x++ {
			ch[y][x] = 0.9
		}
	}
	return ch
}

func TestDeconvolve_IdentityKernelIsExactNoOp(t *testing.T) {
	// With a pure centre tap the re-blur equals the estimate, every nonzero
	// ratio is exactly 1 and zero pixels stay zero, so iterations change
	// nothing.
	scene := testScene(16, 16)
	scene[0][0] = 0

	restored := Deconvolve(scene, identityKernel(3), 10)
	for y := range scene {
		for x := range scene[y] {
			if restored[y][x] != scene[y][x] {
				t.Fatalf("pixel (%d,%d) changed under identity kernel: %v -> %v",
					y, x, scene[y][x], restored[y][x])
			}
		}
	}
}

func TestDeconvolve_DoesNotMutateInput(t *testing.T) {
	scene := testScene(12, 12)
	original := scene.Clone()

	kernel, err := EstimateKernel(KernelGaussian, KernelParams{Sigma: 1})
	if err != nil {
		t.Fatalf("EstimateKernel: %v", err)
	}
	Deconvolve(scene, kernel, 5)

	for y := range scene {
		for x := range scene[y] {
			if scene[y][x] != original[y][x] {
				t.Fatalf("input pixel (%d,%d) mutated", y, x)
			}
		}
	}
}

func TestDeconvolve_ImprovesBlurredScene(t *testing.T) {
	scene := testScene(16, 16)
	kernel, err := EstimateKernel(KernelGaussian, KernelParams{Sigma: 1})
	if err != nil {
		t.Fatalf("EstimateKernel: %v", err)
	}
	blurred := convolve(scene, kernel)

	restored := Deconvolve(blurred, kernel, 20)

	mse := func(a, b model.Channel) float64 {
		var sum float64
		for y := range a {
			for x := range a[y] {
				d := a[y][x] - b[y][x]
				sum += d * d
			}
		}
		return sum
	}
	before := mse(scene, blurred)
	after := mse(scene, restored)
	if after >= before {
		t.Fatalf("restoration did not improve the blurred scene: mse %v -> %v", before, after)
	}
}

func TestDeconvolve_PreservesNonNegativity(t *testing.T) {
	scene := testScene(16, 16)
	kernel, err := EstimateKernel(KernelMotion, KernelParams{LengthPx: 5, AngleDeg: 30})
	if err != nil {
		t.Fatalf("EstimateKernel: %v", err)
	}
	blurred := convolve(scene, kernel)

	restored := Deconvolve(blurred, kernel, 15)
	for y := range restored {
		for x, v := range restored[y] {
			if v < 0 || math.IsNaN(v) {
				t.Fatalf("pixel (%d,%d) = %v after restoration", y, x, v)
			}
		}
	}
}

func TestConvolve_ZeroPaddedBorders(t *testing.T) {
	// A uniform 3x3 box over a constant image attenuates the corners, which
	// see only 4 of the 9 taps.
	ch := model.NewChannel(8, 8)
	for y := range ch {
		for x := range ch[y] {
			ch[y][x] = 1
		}
	}
	box := emptyKernel(3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			box.Data[y][x] = 1.0 / 9
		}
	}

	out := convolve(ch, box)
	if math.Abs(out[4][4]-1) > 1e-12 {
		t.Fatalf("interior pixel %v, want 1", out[4][4])
	}
	if math.Abs(out[0][0]-4.0/9) > 1e-12 {
		t.Fatalf("corner pixel %v, want 4/9", out[0][0])
	}
}

func TestFlipKernel_ReversesBothAxes(t *testing.T) {
	k := emptyKernel(3)
	k.Data[0][1] = 0.25
	k.Data[2][0] = 0.75

	f := flipKernel(k)
	if f.Data[2][1] != 0.25 || f.Data[0][2] != 0.75 {
		t.Fatalf("flip misplaced taps: %+v", f.Data)
	}
}
