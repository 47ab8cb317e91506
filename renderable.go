package textgeom

import "github.com/gogpu/textgeom/render"

// Node holds the placement shared by every renderable object. The
// transform rotates and scales about the center of the object, then
// moves its top-left corner to Pos.
type Node struct {
	Pos      [2]float64
	Rotation float64 // degrees
	Scale    [2]float64
	Visible  bool
}

func newNode() Node {
	return Node{Scale: [2]float64{1, 1}, Visible: true}
}

func (n *Node) node() *Node { return n }

// SetPos moves the top-left corner to (x, y).
func (n *Node) SetPos(x, y float64) { n.Pos = [2]float64{x, y} }

func (n *Node) transform(w, h float64) render.Matrix {
	cx, cy := w/2, h/2
	return render.Translate(n.Pos[0]+cx, n.Pos[1]+cy).
		Multiply(render.RotateDegrees(n.Rotation)).
		Multiply(render.Scale(n.Scale[0], n.Scale[1])).
		Multiply(render.Translate(-cx, -cy))
}

func (n *Node) rect(w, h float64) render.Rect {
	return render.Rect{X: n.Pos[0], Y: n.Pos[1], W: w, H: h}
}

// Renderable is implemented by every drawable object of this package.
type Renderable interface {
	Render(dev render.Device) error
	Size() (w, h float64)
	Rect() render.Rect
	Copy() Renderable
	SetPos(x, y float64)
	node() *Node
}

var (
	_ Renderable = (*Picture)(nil)
	_ Renderable = (*Animation)(nil)
	_ Renderable = (*DynamicText)(nil)
	_ Renderable = (*CompiledText)(nil)
	_ Renderable = (*AtlasText)(nil)
)

// InlineImage is an image that can stand in for a token inside text.
// Text objects place copies of registered images and tint them with the
// text color.
type InlineImage interface {
	Size() (w, h float64)
	CopyImage() InlineImage
	SetTint(c RGBA)
	SetPos(x, y float64)
	Render(dev render.Device) error
}

var (
	_ InlineImage = (*Picture)(nil)
	_ InlineImage = (*Animation)(nil)
)

func copyImages(src []InlineImage) []InlineImage {
	out := make([]InlineImage, len(src))
	for i, img := range src {
		out[i] = img.CopyImage()
	}
	return out
}
