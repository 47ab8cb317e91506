// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"sync/atomic"
)

// Device is the capability surface geometry is drawn to.
//
// Transforms compose: PushTransform multiplies the current transform by m
// (m applies first) and PopTransform restores the previous one.
type Device interface {
	PushTransform(m Matrix)
	PopTransform()

	// DrawImage draws img stretched to dst, modulated by tint.
	DrawImage(img *Image, dst Rect, tint RGBA) error

	// FillRect fills dst with c.
	FillRect(dst Rect, c RGBA) error

	// DrawTriangles draws a triangle list textured by img. Every three
	// vertices form one triangle; a nil img draws vertex colors only.
	DrawTriangles(img *Image, verts []Vertex) error
}

// TextureUploader makes images resident on a GPU.
type TextureUploader interface {
	Upload(img *Image) error
	Release(img *Image)
}

var imageIDs atomic.Uint64

// Image is an immutable bitmap handle shared by reference between drawable
// objects. The pixels must not be modified after NewImage.
type Image struct {
	id  uint64
	pix image.Image
}

// NewImage wraps pix. Every call yields a distinct ID.
func NewImage(pix image.Image) *Image {
	return &Image{id: imageIDs.Add(1), pix: pix}
}

// ID returns the unique image identifier.
func (i *Image) ID() uint64 { return i.id }

// Pix returns the underlying pixels.
func (i *Image) Pix() image.Image { return i.pix }

// Width returns the image width in pixels.
func (i *Image) Width() int { return i.pix.Bounds().Dx() }

// Height returns the image height in pixels.
func (i *Image) Height() int { return i.pix.Bounds().Dy() }

// Rect is an axis-aligned rectangle in device units.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Union returns the smallest rectangle containing r and o. Empty
// rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Vertex is one corner of a textured triangle. U and V are normalized
// texture coordinates; R, G, B, A modulate the sampled texel.
type Vertex struct {
	X, Y       float32
	U, V       float32
	R, G, B, A float32
}
