package wgpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/textgeom"
	"github.com/gogpu/textgeom/render"
)

// TextureFormat is the format of every uploaded texture.
const TextureFormat = gputypes.TextureFormatRGBA8Unorm

type resident struct {
	texture hal.Texture
	view    hal.TextureView
	width   int
	height  int
}

// AtlasUploader creates textures on a hal device. It implements
// render.TextureUploader.
//
// AtlasUploader is not safe for concurrent use.
type AtlasUploader struct {
	device   hal.Device
	queue    hal.Queue
	textures map[uint64]*resident
}

var _ render.TextureUploader = (*AtlasUploader)(nil)

// NewAtlasUploader creates an uploader for device and queue.
func NewAtlasUploader(device hal.Device, queue hal.Queue) *AtlasUploader {
	return &AtlasUploader{device: device, queue: queue, textures: make(map[uint64]*resident)}
}

// Upload writes img to a texture, creating it on first use. Uploading
// an image of the same size again rewrites the existing texture.
func (u *AtlasUploader) Upload(img *render.Image) error {
	w, h := img.Width(), img.Height()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("wgpu: upload image %d: empty image", img.ID())
	}

	r := u.textures[img.ID()]
	if r != nil && (r.width != w || r.height != h) {
		u.destroy(r)
		r = nil
	}
	if r == nil {
		var err error
		if r, err = u.create(img.ID(), w, h); err != nil {
			return err
		}
		u.textures[img.ID()] = r
	}

	size := hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1} //nolint:gosec // image sizes fit uint32
	u.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: r.texture, MipLevel: 0},
		toRGBA(img.Pix()),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(w) * 4, //nolint:gosec // image sizes fit uint32
			RowsPerImage: uint32(h),     //nolint:gosec // image sizes fit uint32
		},
		&size,
	)
	textgeom.Logger().Info("wgpu: texture uploaded", "id", img.ID(), "width", w, "height", h)
	return nil
}

func (u *AtlasUploader) create(id uint64, w, h int) (*resident, error) {
	tex, err := u.device.CreateTexture(&hal.TextureDescriptor{
		Label:         fmt.Sprintf("textgeom_atlas_%d", id),
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}, //nolint:gosec // image sizes fit uint32
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        TextureFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %d: %w", id, err)
	}
	view, err := u.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         fmt.Sprintf("textgeom_atlas_%d_view", id),
		Format:        TextureFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		u.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture view %d: %w", id, err)
	}
	return &resident{texture: tex, view: view, width: w, height: h}, nil
}

// View returns the texture view created for img.
func (u *AtlasUploader) View(img *render.Image) (hal.TextureView, bool) {
	r, ok := u.textures[img.ID()]
	if !ok {
		return nil, false
	}
	return r.view, true
}

// Len returns the number of resident textures.
func (u *AtlasUploader) Len() int { return len(u.textures) }

// Release destroys the texture of img, if any.
func (u *AtlasUploader) Release(img *render.Image) {
	if r, ok := u.textures[img.ID()]; ok {
		u.destroy(r)
		delete(u.textures, img.ID())
	}
}

// Destroy releases every texture.
func (u *AtlasUploader) Destroy() {
	for id, r := range u.textures {
		u.destroy(r)
		delete(u.textures, id)
	}
}

func (u *AtlasUploader) destroy(r *resident) {
	if r.view != nil {
		u.device.DestroyTextureView(r.view)
	}
	if r.texture != nil {
		u.device.DestroyTexture(r.texture)
	}
}

// toRGBA packs src as RGBA8. Alpha masks become white with the mask in
// the alpha channel, which is what the atlas text shader samples.
func toRGBA(src image.Image) []byte {
	b := src.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*4)
	if a, ok := src.(*image.Alpha); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := a.Pix[a.PixOffset(b.Min.X, y):a.PixOffset(b.Max.X, y)]
			for _, v := range row {
				out = append(out, 255, 255, 255, v)
			}
		}
		return out
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := render.FromColor(src.At(x, y)).NRGBA()
			out = append(out, c.R, c.G, c.B, c.A)
		}
	}
	return out
}
