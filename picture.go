package textgeom

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io"
	"os"
	"time"

	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/webp" // register WebP decoding

	"github.com/gogpu/textgeom/render"
)

// Picture is a static image. It can be drawn on its own or registered
// as an inline image.
type Picture struct {
	Node
	img  *render.Image
	tint RGBA
}

// NewPicture wraps pix. The pixels must not be modified afterwards.
func NewPicture(pix image.Image) *Picture {
	return &Picture{Node: newNode(), img: render.NewImage(pix), tint: render.White}
}

// LoadPicture decodes a PNG, JPEG, GIF, BMP or WebP image.
func LoadPicture(r io.Reader) (*Picture, error) {
	pix, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("textgeom: decode picture: %w", err)
	}
	Logger().Debug("textgeom: picture loaded", "format", format, "bounds", pix.Bounds())
	return NewPicture(pix), nil
}

// LoadPictureFile decodes the image file at path.
func LoadPictureFile(path string) (*Picture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadPicture(f)
}

// Image returns the shared image handle.
func (p *Picture) Image() *render.Image { return p.img }

// Tint returns the color the image is modulated with.
func (p *Picture) Tint() RGBA { return p.tint }

// SetTint sets the color the image is modulated with.
func (p *Picture) SetTint(c RGBA) { p.tint = c }

// Size returns the image size in pixels.
func (p *Picture) Size() (w, h float64) {
	return float64(p.img.Width()), float64(p.img.Height())
}

// Rect returns the unscaled bounds at the current position.
func (p *Picture) Rect() render.Rect { return p.rect(p.Size()) }

// Copy returns a picture sharing the image with its own placement.
func (p *Picture) Copy() Renderable { return p.clone() }

// CopyImage implements InlineImage.
func (p *Picture) CopyImage() InlineImage { return p.clone() }

func (p *Picture) clone() *Picture {
	c := *p
	return &c
}

// Render draws the picture.
func (p *Picture) Render(dev render.Device) error {
	if !p.Visible {
		return nil
	}
	w, h := p.Size()
	dev.PushTransform(p.transform(w, h))
	defer dev.PopTransform()
	return dev.DrawImage(p.img, render.Rect{W: w, H: h}, p.tint)
}

// Frame is one image of an animation.
type Frame struct {
	Image *render.Image
	Delay time.Duration
}

// defaultFrameDelay is used for frames without a positive delay.
const defaultFrameDelay = 100 * time.Millisecond

// Animation cycles through frames as time is advanced.
//
// Inline copies made with CopyImage share the clock of the animation
// they were copied from, so advancing a registered image animates every
// text that shows it. Copy starts an independent clock.
type Animation struct {
	Node
	frames []Frame
	total  time.Duration
	clock  *animationClock
	tint   RGBA
}

type animationClock struct {
	elapsed time.Duration
}

// NewAnimation creates a looping animation. Frames without a positive
// delay are shown for 100ms.
func NewAnimation(frames []Frame) (*Animation, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	a := &Animation{
		Node:   newNode(),
		frames: make([]Frame, len(frames)),
		clock:  &animationClock{},
		tint:   render.White,
	}
	for i, f := range frames {
		if f.Image == nil {
			return nil, fmt.Errorf("textgeom: animation frame %d: %w", i, ErrNilImage)
		}
		if f.Delay <= 0 {
			f.Delay = defaultFrameDelay
		}
		a.frames[i] = f
		a.total += f.Delay
	}
	return a, nil
}

// LoadGIF decodes an animated GIF. Frames are composed onto the logical
// screen following each frame's disposal method.
func LoadGIF(r io.Reader) (*Animation, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("textgeom: decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		for _, p := range g.Image {
			bounds = bounds.Union(p.Bounds())
		}
	}

	screen := image.NewRGBA(bounds)
	frames := make([]Frame, len(g.Image))
	for i, p := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var previous *image.RGBA
		if disposal == gif.DisposalPrevious {
			previous = image.NewRGBA(bounds)
			copy(previous.Pix, screen.Pix)
		}

		draw.Draw(screen, p.Bounds(), p, p.Bounds().Min, draw.Over)
		snapshot := image.NewRGBA(bounds)
		copy(snapshot.Pix, screen.Pix)

		delay := time.Duration(0)
		if i < len(g.Delay) {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		frames[i] = Frame{Image: render.NewImage(snapshot), Delay: delay}

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(screen, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			screen = previous
		}
	}
	return NewAnimation(frames)
}

// Len returns the number of frames.
func (a *Animation) Len() int { return len(a.frames) }

// Duration returns the length of one loop.
func (a *Animation) Duration() time.Duration { return a.total }

// Advance moves the animation forward by dt.
func (a *Animation) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	a.clock.elapsed = (a.clock.elapsed + dt) % a.total
}

// Reset rewinds to the first frame.
func (a *Animation) Reset() { a.clock.elapsed = 0 }

// Frame returns the index of the current frame.
func (a *Animation) Frame() int {
	t := a.clock.elapsed
	for i, f := range a.frames {
		if t < f.Delay {
			return i
		}
		t -= f.Delay
	}
	return len(a.frames) - 1
}

// Tint returns the color the frames are modulated with.
func (a *Animation) Tint() RGBA { return a.tint }

// SetTint sets the color the frames are modulated with.
func (a *Animation) SetTint(c RGBA) { a.tint = c }

// Size returns the size of the first frame.
func (a *Animation) Size() (w, h float64) {
	img := a.frames[0].Image
	return float64(img.Width()), float64(img.Height())
}

// Rect returns the unscaled bounds at the current position.
func (a *Animation) Rect() render.Rect { return a.rect(a.Size()) }

// Copy returns an animation sharing the frames with its own placement
// and clock. The clock starts at the current time of a.
func (a *Animation) Copy() Renderable {
	c := a.clone()
	c.clock = &animationClock{elapsed: a.clock.elapsed}
	return c
}

// CopyImage implements InlineImage. The copy follows the clock of a.
func (a *Animation) CopyImage() InlineImage { return a.clone() }

func (a *Animation) clone() *Animation {
	c := *a
	return &c
}

// Render draws the current frame.
func (a *Animation) Render(dev render.Device) error {
	if !a.Visible {
		return nil
	}
	w, h := a.Size()
	dev.PushTransform(a.transform(w, h))
	defer dev.PopTransform()
	return dev.DrawImage(a.frames[a.Frame()].Image, render.Rect{W: w, H: h}, a.tint)
}
