package wgpu

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/textgeom/render"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		t.Fatal("noop instance has no adapters")
	}
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

var errNoView = errors.New("no view")

// countingDevice records texture lifetimes on top of a real hal device.
type countingDevice struct {
	hal.Device
	created, destroyed         int
	viewsCreated, viewsDropped int
	failViews                  bool
	sizes                      []hal.Extent3D
}

func (d *countingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	tex, err := d.Device.CreateTexture(desc)
	if err == nil {
		d.created++
		d.sizes = append(d.sizes, desc.Size)
	}
	return tex, err
}

func (d *countingDevice) DestroyTexture(tex hal.Texture) {
	d.destroyed++
	d.Device.DestroyTexture(tex)
}

func (d *countingDevice) CreateTextureView(tex hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	if d.failViews {
		return nil, errNoView
	}
	view, err := d.Device.CreateTextureView(tex, desc)
	if err == nil {
		d.viewsCreated++
	}
	return view, err
}

func (d *countingDevice) DestroyTextureView(view hal.TextureView) {
	d.viewsDropped++
	d.Device.DestroyTextureView(view)
}

func newTestUploader(t *testing.T) (*AtlasUploader, *countingDevice) {
	t.Helper()
	device, queue := createNoopDevice(t)
	d := &countingDevice{Device: device}
	return NewAtlasUploader(d, queue), d
}

func TestAtlasUploaderUpload(t *testing.T) {
	u, d := newTestUploader(t)
	img := render.NewImage(image.NewAlpha(image.Rect(0, 0, 8, 4)))

	if _, ok := u.View(img); ok {
		t.Error("View() before Upload reported a texture")
	}
	if err := u.Upload(img); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if u.Len() != 1 || d.created != 1 || d.viewsCreated != 1 {
		t.Fatalf("after Upload: Len = %d, textures = %d, views = %d, want 1 1 1", u.Len(), d.created, d.viewsCreated)
	}
	if want := (hal.Extent3D{Width: 8, Height: 4, DepthOrArrayLayers: 1}); d.sizes[0] != want {
		t.Errorf("texture size = %+v, want %+v", d.sizes[0], want)
	}
	if _, ok := u.View(img); !ok {
		t.Error("View() after Upload reported no texture")
	}

	if err := u.Upload(img); err != nil {
		t.Fatalf("second Upload() error = %v", err)
	}
	if d.created != 1 || d.destroyed != 0 {
		t.Errorf("same size Upload: created %d destroyed %d, want 1 0", d.created, d.destroyed)
	}
}

func TestAtlasUploaderUploadResized(t *testing.T) {
	u, d := newTestUploader(t)
	mask := image.NewAlpha(image.Rect(0, 0, 8, 8))
	img := render.NewImage(mask)
	if err := u.Upload(img); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	*mask = *image.NewAlpha(image.Rect(0, 0, 16, 8))
	if err := u.Upload(img); err != nil {
		t.Fatalf("resized Upload() error = %v", err)
	}
	if d.created != 2 || d.destroyed != 1 || d.viewsDropped != 1 {
		t.Errorf("resize: created %d destroyed %d views dropped %d, want 2 1 1", d.created, d.destroyed, d.viewsDropped)
	}
	if u.Len() != 1 {
		t.Errorf("Len() = %d, want 1", u.Len())
	}
	if want := (hal.Extent3D{Width: 16, Height: 8, DepthOrArrayLayers: 1}); d.sizes[1] != want {
		t.Errorf("recreated size = %+v, want %+v", d.sizes[1], want)
	}
}

func TestAtlasUploaderEmptyImage(t *testing.T) {
	u, d := newTestUploader(t)
	img := render.NewImage(image.NewAlpha(image.Rect(0, 0, 0, 4)))
	if err := u.Upload(img); err == nil {
		t.Fatal("Upload(empty) error = nil, want error")
	}
	if u.Len() != 0 || d.created != 0 {
		t.Errorf("empty Upload left Len = %d, created = %d", u.Len(), d.created)
	}
}

func TestAtlasUploaderViewFailure(t *testing.T) {
	u, d := newTestUploader(t)
	d.failViews = true
	img := render.NewImage(image.NewAlpha(image.Rect(0, 0, 4, 4)))

	err := u.Upload(img)
	if !errors.Is(err, errNoView) {
		t.Fatalf("Upload() error = %v, want %v", err, errNoView)
	}
	if d.created != 1 || d.destroyed != 1 {
		t.Errorf("created %d destroyed %d, want the texture destroyed after the view failed", d.created, d.destroyed)
	}
	if u.Len() != 0 {
		t.Errorf("Len() = %d, want 0", u.Len())
	}
	if _, ok := u.View(img); ok {
		t.Error("View() reported a texture after a failed upload")
	}
}

func TestAtlasUploaderRelease(t *testing.T) {
	u, d := newTestUploader(t)
	a := render.NewImage(image.NewAlpha(image.Rect(0, 0, 4, 4)))
	b := render.NewImage(image.NewAlpha(image.Rect(0, 0, 2, 2)))
	for _, img := range []*render.Image{a, b} {
		if err := u.Upload(img); err != nil {
			t.Fatalf("Upload() error = %v", err)
		}
	}

	u.Release(a)
	if u.Len() != 1 || d.destroyed != 1 || d.viewsDropped != 1 {
		t.Errorf("Release: Len %d destroyed %d views dropped %d, want 1 1 1", u.Len(), d.destroyed, d.viewsDropped)
	}
	if _, ok := u.View(a); ok {
		t.Error("View() of released image reported a texture")
	}
	u.Release(a)
	if d.destroyed != 1 {
		t.Errorf("second Release destroyed %d textures, want 1", d.destroyed)
	}

	u.Destroy()
	if u.Len() != 0 || d.destroyed != 2 || d.viewsDropped != 2 {
		t.Errorf("Destroy: Len %d destroyed %d views dropped %d, want 0 2 2", u.Len(), d.destroyed, d.viewsDropped)
	}
	if _, ok := u.View(b); ok {
		t.Error("View() after Destroy reported a texture")
	}
}
