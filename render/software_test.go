// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.Color) *Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return NewImage(img)
}

func TestNewImageIDsAreUnique(t *testing.T) {
	a := NewImage(image.NewAlpha(image.Rect(0, 0, 1, 1)))
	b := NewImage(image.NewAlpha(image.Rect(0, 0, 1, 1)))
	if a.ID() == b.ID() {
		t.Errorf("IDs = %d, %d, want distinct", a.ID(), b.ID())
	}
}

func TestSoftwareFillRect(t *testing.T) {
	s := NewSoftware(10, 10)
	if err := s.FillRect(Rect{X: 2, Y: 3, W: 4, H: 2}, Red); err != nil {
		t.Fatalf("FillRect() error = %v", err)
	}
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{2, 3, color.RGBA{255, 0, 0, 255}},
		{5, 4, color.RGBA{255, 0, 0, 255}},
		{6, 4, color.RGBA{}},
		{2, 5, color.RGBA{}},
		{1, 3, color.RGBA{}},
	}
	for _, tt := range tests {
		if got := s.Image().RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSoftwareTransformStack(t *testing.T) {
	s := NewSoftware(20, 20)
	s.PushTransform(Translate(10, 10))
	if err := s.FillRect(Rect{W: 2, H: 2}, White); err != nil {
		t.Fatal(err)
	}
	s.PopTransform()
	if got := s.Image().RGBAAt(10, 10); got.A != 255 {
		t.Errorf("translated pixel alpha = %d, want 255", got.A)
	}
	if got := s.Image().RGBAAt(0, 0); got.A != 0 {
		t.Errorf("origin pixel alpha = %d, want 0", got.A)
	}
	if !s.Transform().IsIdentity() {
		t.Errorf("Transform() after pop = %+v, want identity", s.Transform())
	}

	s.PopTransform()
	if !errors.Is(s.Err(), ErrUnbalancedPop) {
		t.Errorf("Err() = %v, want %v", s.Err(), ErrUnbalancedPop)
	}
}

func TestSoftwareDrawImageTint(t *testing.T) {
	s := NewSoftware(8, 8)
	img := solidImage(4, 4, color.White)
	if err := s.DrawImage(img, Rect{W: 4, H: 4}, RGB(0, 0, 1)); err != nil {
		t.Fatal(err)
	}
	got := s.Image().RGBAAt(1, 1)
	if got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("tinted pixel = %v, want opaque blue", got)
	}
	if got := s.Image().RGBAAt(6, 6); got.A != 0 {
		t.Errorf("pixel outside dst alpha = %d, want 0", got.A)
	}
	if err := s.DrawImage(nil, Rect{W: 1, H: 1}, White); err == nil {
		t.Error("DrawImage(nil) error = nil, want error")
	}
}

func TestSoftwareDrawTriangles(t *testing.T) {
	s := NewSoftware(10, 10)
	quad := []Vertex{
		{X: 0, Y: 0, R: 0, G: 1, B: 0, A: 1},
		{X: 0, Y: 10, R: 0, G: 1, B: 0, A: 1},
		{X: 10, Y: 10, R: 0, G: 1, B: 0, A: 1},
		{X: 0, Y: 0, R: 0, G: 1, B: 0, A: 1},
		{X: 10, Y: 10, R: 0, G: 1, B: 0, A: 1},
		{X: 10, Y: 0, R: 0, G: 1, B: 0, A: 1},
	}
	if err := s.DrawTriangles(nil, quad); err != nil {
		t.Fatal(err)
	}
	for _, p := range []image.Point{{0, 0}, {9, 9}, {5, 2}, {2, 5}} {
		if got := s.Image().RGBAAt(p.X, p.Y); got != (color.RGBA{0, 255, 0, 255}) {
			t.Errorf("pixel %v = %v, want opaque green", p, got)
		}
	}
	if err := s.DrawTriangles(nil, quad[:4]); err == nil {
		t.Error("DrawTriangles with 4 vertices error = nil, want error")
	}
}

func TestSoftwareDegenerateTrianglesDrawNothing(t *testing.T) {
	s := NewSoftware(4, 4)
	zero := make([]Vertex, 6)
	if err := s.DrawTriangles(nil, zero); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if s.Image().RGBAAt(x, y).A != 0 {
				t.Fatalf("pixel (%d,%d) painted by degenerate triangle", x, y)
			}
		}
	}
}

func TestTintAlphaMask(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 2, 1))
	mask.SetAlpha(0, 0, color.Alpha{A: 255})
	out := Tint(mask, RGB(1, 0, 0))
	if got := out.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Tint(0,0) = %v, want opaque red", got)
	}
	if got := out.RGBAAt(1, 0); got.A != 0 {
		t.Errorf("Tint(1,0) alpha = %d, want 0", got.A)
	}
}

func TestRegistry(t *testing.T) {
	if !IsRegistered("software") {
		t.Fatal("software device not registered")
	}
	dev, err := NewDevice("software", 4, 4)
	if err != nil {
		t.Fatalf("NewDevice(software) error = %v", err)
	}
	if _, ok := dev.(*Software); !ok {
		t.Errorf("NewDevice(software) = %T, want *Software", dev)
	}
	if _, err := NewDevice("software", 0, 4); err == nil {
		t.Error("NewDevice with zero width error = nil, want error")
	}
	if _, err := NewDevice("nope", 1, 1); err == nil {
		t.Error("NewDevice(nope) error = nil, want error")
	}

	Register("test-device", func(int, int) (Device, error) { return NewSoftware(1, 1), nil })
	defer Unregister("test-device")
	found := false
	for _, name := range Devices() {
		if name == "test-device" {
			found = true
		}
	}
	if !found {
		t.Errorf("Devices() = %v, missing test-device", Devices())
	}
}
