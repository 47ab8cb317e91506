package drawlist

import "github.com/gogpu/textgeom/render"

// ResourcePool stores the images referenced by a list, each once.
type ResourcePool struct {
	images []*render.Image
	index  map[*render.Image]ImageRef
}

// NewResourcePool creates an empty pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{index: make(map[*render.Image]ImageRef)}
}

// AddImage returns the reference for img, adding it on first use.
// A nil image yields InvalidRef.
func (p *ResourcePool) AddImage(img *render.Image) ImageRef {
	if img == nil {
		return InvalidRef
	}
	if ref, ok := p.index[img]; ok {
		return ref
	}
	ref := ImageRef(len(p.images))
	p.images = append(p.images, img)
	p.index[img] = ref
	return ref
}

// GetImage returns the image for ref, or nil for invalid references.
func (p *ResourcePool) GetImage(ref ImageRef) *render.Image {
	if !ref.IsValid() || int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// Images returns every pooled image in insertion order.
func (p *ResourcePool) Images() []*render.Image {
	return append([]*render.Image(nil), p.images...)
}

// ImageCount returns the number of pooled images.
func (p *ResourcePool) ImageCount() int { return len(p.images) }
