package core

import (
	"math"
	"testing"
)

func TestVec3_NormAndDot(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 0}
	if got := v.Norm(); math.Abs(got-5) > 1e-12 {
		t.Fatalf("norm %v, want 5", got)
	}
	if got := v.Dot(Vec3{X: 1, Y: 1, Z: 1}); math.Abs(got-7) > 1e-12 {
		t.Fatalf("dot %v, want 7", got)
	}
	if got := v.Scale(2).Norm(); math.Abs(got-10) > 1e-12 {
		t.Fatalf("scaled norm %v, want 10", got)
	}
}

func TestVec3_RotationsPreserveNorm(t *testing.T) {
	v := Vec3{X: 1.5, Y: -2.25, Z: 0.75}
	for _, theta := range []float64{0, math.Pi / 6, math.Pi / 2, math.Pi, 5} {
		if got := v.RotateX(theta).Norm(); math.Abs(got-v.Norm()) > 1e-12 {
			t.Fatalf("RotateX(%v) changed norm: %v != %v", theta, got, v.Norm())
		}
		if got := v.RotateZ(theta).Norm(); math.Abs(got-v.Norm()) > 1e-12 {
			t.Fatalf("RotateZ(%v) changed norm: %v != %v", theta, got, v.Norm())
		}
	}
}

func TestVec3_QuarterTurns(t *testing.T) {
	// A quarter turn about Z maps +X to +Y.
	got := Vec3{X: 1}.RotateZ(math.Pi / 2)
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y-1) > 1e-12 || got.Z != 0 {
		t.Fatalf("RotateZ(pi/2) of +X = %+v, want +Y", got)
	}

	// A quarter turn about X maps +Y to +Z.
	got = Vec3{Y: 1}.RotateX(math.Pi / 2)
	if got.X != 0 || math.Abs(got.Y) > 1e-12 || math.Abs(got.Z-1) > 1e-12 {
		t.Fatalf("RotateX(pi/2) of +Y = %+v, want +Z", got)
	}
}

func TestVec3_RotationRoundTrip(t *testing.T) {
	v := Vec3{X: 0.3, Y: 0.6, Z: -0.9}
	got := v.RotateZ(1.1).RotateX(0.7).RotateX(-0.7).RotateZ(-1.1)
	if math.Abs(got.X-v.X) > 1e-12 || math.Abs(got.Y-v.Y) > 1e-12 || math.Abs(got.Z-v.Z) > 1e-12 {
		t.Fatalf("inverse rotations did not recover %+v, got %+v", v, got)
	}
}
