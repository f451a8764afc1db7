package utils

import "testing"

func TestNormalizeColor(t *testing.T) {
	got, err := NormalizeColor("#9C27B0")
	if err != nil {
		t.Fatalf("NormalizeColor: %v", err)
	}
	if got != "#9c27b0" {
		t.Fatalf("NormalizeColor = %q, want #9c27b0", got)
	}

	if _, err := NormalizeColor("purple"); err == nil {
		t.Fatal("expected error for named color")
	}
}

func TestShadeColor(t *testing.T) {
	if got := ShadeColor("#ffffff", 1); got != "#000000" {
		t.Fatalf("full shade = %q, want #000000", got)
	}
	if got := ShadeColor("#ffffff", 0); got != "#ffffff" {
		t.Fatalf("no shade = %q, want #ffffff", got)
	}
	if got := ShadeColor("nope", 0.5); got != "nope" {
		t.Fatalf("invalid color should pass through, got %q", got)
	}
}

func TestLuminance(t *testing.T) {
	if l := Luminance("#000000"); l != 0 {
		t.Fatalf("black luminance = %v", l)
	}
	if l := Luminance("#ffffff"); l < 0.99 {
		t.Fatalf("white luminance = %v", l)
	}
	if Luminance("#ffeb3b") <= Luminance("#9c27b0") {
		t.Fatal("yellow should be brighter than purple")
	}
}
