package game

import (
	"math"
	"testing"
)

func TestAnimateIsPure(t *testing.T) {
	for _, tt := range []float64{0, 0.016, 1, 12.5, 3600} {
		a := Animate(tt, 85)
		b := Animate(tt, 85)
		if a != b {
			t.Fatalf("Animate(%v) not deterministic: %+v vs %+v", tt, a, b)
		}
	}
}

func TestAnimateAtZero(t *testing.T) {
	lucidia := Animate(0, 99)
	alice := Animate(0, 85)

	if want := 1.5 + math.Sin(99)*0.3; lucidia.Height != want {
		t.Fatalf("LUCIDIA height = %v, want %v", lucidia.Height, want)
	}
	if want := 1.5 + math.Sin(85)*0.3; alice.Height != want {
		t.Fatalf("ALICE height = %v, want %v", alice.Height, want)
	}
	if lucidia.Height == alice.Height {
		t.Fatal("agents with different levels should bob independently")
	}
	if lucidia.Rotation != 0 || alice.Rotation != 0 {
		t.Fatalf("rotation at t=0 should be 0, got %v and %v", lucidia.Rotation, alice.Rotation)
	}
}

func TestAnimateRotation(t *testing.T) {
	tr := Animate(2, 1)
	if math.Abs(tr.Rotation-1.6) > 1e-12 {
		t.Fatalf("rotation = %v, want 1.6", tr.Rotation)
	}

	// Long sessions stay within one turn
	tr = Animate(1e6, 1)
	if tr.Rotation < 0 || tr.Rotation >= 2*math.Pi {
		t.Fatalf("rotation %v not normalised", tr.Rotation)
	}
	want := math.Mod(1e6*SpinRate, 2*math.Pi)
	if math.Abs(tr.Rotation-want) > 1e-9 {
		t.Fatalf("rotation = %v, want %v", tr.Rotation, want)
	}
}

func TestBobPhaseDiffersByLevel(t *testing.T) {
	levels := []int{99, 85, 78, 72, 68, 90}
	for _, tt := range []float64{0, 0.5, 10, 123.456} {
		for _, a := range levels {
			for _, b := range levels {
				diff := BobPhase(tt, a) - BobPhase(tt, b)
				if math.Abs(diff-float64(a-b)) > 1e-9 {
					t.Fatalf("t=%v: phase difference %v != level difference %d", tt, diff, a-b)
				}
			}
		}
	}
}

func TestAnimateHeightBounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		tr := Animate(float64(i)*0.037, i%100)
		if tr.Height < BaseHeight-BobHeight-1e-12 || tr.Height > BaseHeight+BobHeight+1e-12 {
			t.Fatalf("height %v out of range", tr.Height)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := normalizeAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
