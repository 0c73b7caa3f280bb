package utils

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func TestEaseLinear(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 1} {
		if got := EaseLinear(v); got != v {
			t.Errorf("EaseLinear(%v) = %v", v, got)
		}
	}
}

func TestEaseOutQuad(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.75},
		{1, 1},
	}
	for _, tt := range tests {
		if got := EaseOutQuad(tt.in); math.Abs(got-tt.want) > epsilon {
			t.Errorf("EaseOutQuad(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	// 缓出：前半段走完超过一半的路程
	if EaseOutQuad(0.5) <= EaseLinear(0.5) {
		t.Error("EaseOutQuad should lead linear at t=0.5")
	}
}

func TestEaseInQuad(t *testing.T) {
	if got := EaseInQuad(0.5); math.Abs(got-0.25) > epsilon {
		t.Errorf("EaseInQuad(0.5) = %v, want 0.25", got)
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{10, 0, 0.25, 7.5},
		{-5, 5, 0.5, 0},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > epsilon {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestLerpVec2WithEasing(t *testing.T) {
	from := mgl64.Vec2{0, 0}
	to := mgl64.Vec2{100, -40}

	got := LerpVec2(from, to, EaseOutQuad(0.5))
	want := mgl64.Vec2{75, -30}
	if !got.ApproxEqual(want) {
		t.Errorf("LerpVec2 = %v, want %v", got, want)
	}
	if end := LerpVec2(from, to, 1); !end.ApproxEqual(to) {
		t.Errorf("LerpVec2 at t=1 = %v, want %v", end, to)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name              string
		elapsed, duration float64
		want              float64
	}{
		{"start", 0, 0.2, 0},
		{"half", 0.1, 0.2, 0.5},
		{"overshoot", 0.5, 0.2, 1},
		{"negative", -1, 0.2, 0},
		{"zero duration", 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.elapsed, tt.duration); math.Abs(got-tt.want) > epsilon {
				t.Errorf("Progress(%v, %v) = %v, want %v", tt.elapsed, tt.duration, got, tt.want)
			}
		})
	}
}
