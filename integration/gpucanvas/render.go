// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/textgeom"
)

// Presentation errors.
var (
	// ErrNoTextureCreator is returned when the draw context cannot create
	// textures.
	ErrNoTextureCreator = errors.New("gpucanvas: draw context has no texture creator")

	// ErrNotGPUTexture is returned when a created texture is not a
	// gpucontext.Texture.
	ErrNotGPUTexture = errors.New("gpucanvas: texture is not a gpucontext.Texture")
)

// Present uploads the canvas if it changed and draws it with its
// top-left corner at (x, y).
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.Present(dc.AsTextureDrawer(), 0, 0)
//	})
func (c *Canvas) Present(dc gpucontext.TextureDrawer, x, y float32) error {
	tex, err := c.Flush()
	if err != nil {
		return err
	}
	if p, ok := tex.(*pendingTexture); ok {
		// Creation waits for the GPU, so the replaced texture is idle
		// once it returns.
		created, err := newTexture(dc, p.width, p.height, p.data)
		if err != nil {
			return err
		}
		c.texture = created
		tex = created
		destroy(c.oldTexture)
		c.oldTexture = nil
		textgeom.Logger().Debug("gpucanvas: texture created", "width", p.width, "height", p.height)
	}
	gt, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrNotGPUTexture
	}
	return dc.DrawTexture(gt, x, y)
}

// newTexture creates a premultiplied RGBA texture through dc.
func newTexture(dc gpucontext.TextureDrawer, w, h int, data []byte) (any, error) {
	creator := dc.TextureCreator()
	if creator == nil {
		return nil, ErrNoTextureCreator
	}
	tex, err := creator.NewTextureFromRGBA(w, h, data)
	if err != nil {
		return nil, fmt.Errorf("gpucanvas: create %dx%d texture: %w", w, h, err)
	}
	// Windows blend premultiplied textures with BlendFactorOne.
	if pm, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pm.SetPremultiplied(true)
	}
	return tex, nil
}
