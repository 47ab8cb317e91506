// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/textgeom"
	"github.com/gogpu/textgeom/render"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("gpucanvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("gpucanvas: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("gpucanvas: nil DeviceProvider")
)

// textureDestroyer matches the Destroy method of gogpu textures.
type textureDestroyer interface {
	Destroy()
}

func destroy(tex any) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

// Canvas is a render.Device backed by a CPU image that is uploaded to the
// GPU when presented. Drawing marks it dirty; only dirty canvases are
// uploaded again.
type Canvas struct {
	dev         *render.Software
	provider    gpucontext.DeviceProvider
	texture     any // created lazily by Present
	oldTexture  any // destroyed once the replacement is written
	dirty       bool
	sizeChanged bool
	closed      bool
}

var _ render.Device = (*Canvas)(nil)

// New creates a canvas for a window whose device comes from provider.
func New(provider gpucontext.DeviceProvider, width, height int) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	c, err := newCanvas(width, height)
	if err != nil {
		return nil, err
	}
	c.provider = provider
	return c, nil
}

func newCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	return &Canvas{dev: render.NewSoftware(width, height), dirty: true}, nil
}

// MustNew is like New but panics on error.
func MustNew(provider gpucontext.DeviceProvider, width, height int) *Canvas {
	c, err := New(provider, width, height)
	if err != nil {
		panic(err)
	}
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.dev.Width() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.dev.Height() }

// Size returns width and height as a convenience.
func (c *Canvas) Size() (width, height int) { return c.Width(), c.Height() }

// Software returns the CPU device the canvas draws into.
func (c *Canvas) Software() *render.Software { return c.dev }

// IsDirty reports whether the canvas has changes not yet uploaded.
func (c *Canvas) IsDirty() bool { return c.dirty }

// MarkDirty flags the canvas for upload on the next Flush.
func (c *Canvas) MarkDirty() { c.dirty = true }

// Clear fills the canvas with col.
func (c *Canvas) Clear(col render.RGBA) {
	if c.closed {
		return
	}
	c.dev.Clear(col)
	c.dirty = true
}

// Draw renders r onto the canvas.
func (c *Canvas) Draw(r textgeom.Renderable) error {
	if c.closed {
		return ErrCanvasClosed
	}
	c.dirty = true
	return r.Render(c)
}

// PushTransform implements render.Device.
func (c *Canvas) PushTransform(m render.Matrix) { c.dev.PushTransform(m) }

// PopTransform implements render.Device.
func (c *Canvas) PopTransform() { c.dev.PopTransform() }

// DrawImage implements render.Device.
func (c *Canvas) DrawImage(img *render.Image, dst render.Rect, tint render.RGBA) error {
	if c.closed {
		return ErrCanvasClosed
	}
	c.dirty = true
	return c.dev.DrawImage(img, dst, tint)
}

// FillRect implements render.Device.
func (c *Canvas) FillRect(dst render.Rect, col render.RGBA) error {
	if c.closed {
		return ErrCanvasClosed
	}
	c.dirty = true
	return c.dev.FillRect(dst, col)
}

// DrawTriangles implements render.Device.
func (c *Canvas) DrawTriangles(img *render.Image, verts []render.Vertex) error {
	if c.closed {
		return ErrCanvasClosed
	}
	c.dirty = true
	return c.dev.DrawTriangles(img, verts)
}

// Resize changes the canvas dimensions and clears it.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if width == c.Width() && height == c.Height() {
		return nil
	}
	c.dev = render.NewSoftware(width, height)
	c.sizeChanged = true
	c.dirty = true
	return nil
}

// Flush prepares the canvas pixels for upload if dirty and returns the
// current texture, or a pending placeholder until Present creates one.
func (c *Canvas) Flush() (any, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}

	// The old texture may still be read by in-flight command buffers; it is
	// destroyed in Present after the new one has been written.
	if c.sizeChanged {
		if c.texture != nil {
			destroy(c.oldTexture)
			c.oldTexture = c.texture
			c.texture = nil
		}
		c.sizeChanged = false
	}

	if !c.dirty && c.texture != nil {
		return c.texture, nil
	}

	data := c.pixels()
	if c.texture == nil {
		c.texture = &pendingTexture{width: c.Width(), height: c.Height(), data: data}
		c.dirty = false
		return c.texture, nil
	}
	if p, ok := c.texture.(*pendingTexture); ok {
		p.data = data
		c.dirty = false
		return p, nil
	}

	if updater, ok := c.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(data); err != nil {
			return nil, fmt.Errorf("gpucanvas: texture update failed: %w", err)
		}
	}
	c.dirty = false
	return c.texture, nil
}

// pixels returns a copy of the premultiplied RGBA canvas bytes.
func (c *Canvas) pixels() []byte {
	img := c.dev.Image()
	return append([]byte(nil), img.Pix...)
}

// Texture returns the current GPU texture without flushing.
func (c *Canvas) Texture() any { return c.texture }

// Provider returns the DeviceProvider, or nil once closed.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	if c.closed {
		return nil
	}
	return c.provider
}

// Close releases the textures. Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	destroy(c.oldTexture)
	destroy(c.texture)
	c.oldTexture, c.texture = nil, nil
	c.provider = nil
	textgeom.Logger().Debug("gpucanvas: canvas closed")
	return nil
}

// pendingTexture holds pixels until Present has a texture creator.
type pendingTexture struct {
	width  int
	height int
	data   []byte
}
