// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGBA
		wantErr bool
	}{
		{"#fff", RGBA{1, 1, 1, 1}, false},
		{"f008", RGBA{1, 0, 0, 136.0 / 255}, false},
		{"#00ff00", RGBA{0, 1, 0, 1}, false},
		{"0000ff80", RGBA{0, 0, 1, 128.0 / 255}, false},
		{"#12", RGBA{}, true},
		{"zzzzzz", RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if math.Abs(got.R-tt.want.R) > 1e-9 || math.Abs(got.G-tt.want.G) > 1e-9 ||
				math.Abs(got.B-tt.want.B) > 1e-9 || math.Abs(got.A-tt.want.A) > 1e-9 {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRGBAString(t *testing.T) {
	if got := Red.String(); got != "#ff0000ff" {
		t.Errorf("Red.String() = %q, want #ff0000ff", got)
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	m := Translate(10, 0).Multiply(Scale(2, 2))
	x, y := m.TransformPoint(1, 1)
	if x != 12 || y != 2 {
		t.Errorf("TransformPoint = (%v, %v), want (12, 2)", x, y)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 2, H: 2}
	b := Rect{X: 5, Y: -1, W: 1, H: 1}
	got := a.Union(b)
	want := Rect{X: 0, Y: -1, W: 6, H: 3}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
	if got := (Rect{}).Union(a); got != a {
		t.Errorf("empty.Union(a) = %+v, want %+v", got, a)
	}
}
