// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucanvas

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/textgeom"
	"github.com/gogpu/textgeom/render"
)

// Uploader makes images resident as gogpu textures. It implements
// render.TextureUploader and is typically used for glyph atlases.
type Uploader struct {
	dc       gpucontext.TextureDrawer
	textures map[uint64]any
}

var _ render.TextureUploader = (*Uploader)(nil)

// NewUploader creates an uploader that creates textures through dc.
func NewUploader(dc gpucontext.TextureDrawer) (*Uploader, error) {
	if dc.TextureCreator() == nil {
		return nil, ErrNoTextureCreator
	}
	return &Uploader{dc: dc, textures: make(map[uint64]any)}, nil
}

// Upload creates a texture holding img. Uploading an image again
// replaces its texture.
func (u *Uploader) Upload(img *render.Image) error {
	tex, err := newTexture(u.dc, img.Width(), img.Height(), rgbaBytes(img.Pix()))
	if err != nil {
		return fmt.Errorf("gpucanvas: upload image %d: %w", img.ID(), err)
	}
	destroy(u.textures[img.ID()])
	u.textures[img.ID()] = tex
	textgeom.Logger().Info("gpucanvas: image uploaded", "id", img.ID(), "width", img.Width(), "height", img.Height())
	return nil
}

// Release destroys the texture of img, if any.
func (u *Uploader) Release(img *render.Image) {
	if tex, ok := u.textures[img.ID()]; ok {
		destroy(tex)
		delete(u.textures, img.ID())
	}
}

// Texture returns the texture created for img.
func (u *Uploader) Texture(img *render.Image) (gpucontext.Texture, bool) {
	tex, ok := u.textures[img.ID()].(gpucontext.Texture)
	return tex, ok
}

// Len returns the number of resident textures.
func (u *Uploader) Len() int { return len(u.textures) }

// rgbaBytes converts src to tightly packed premultiplied RGBA. Alpha
// masks become white ink.
func rgbaBytes(src image.Image) []byte {
	b := src.Bounds()
	if rgba, ok := src.(*image.RGBA); ok && rgba.Stride == 4*b.Dx() && b.Min == (image.Point{}) {
		return append([]byte(nil), rgba.Pix...)
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst.Pix
}
