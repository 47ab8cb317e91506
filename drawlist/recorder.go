package drawlist

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/textgeom/render"
)

var (
	// ErrRecorderFinished is returned for calls on a finished recorder.
	ErrRecorderFinished = errors.New("drawlist: recorder already finished")

	// ErrUnbalancedTransform is returned when pushes and pops do not match.
	ErrUnbalancedTransform = errors.New("drawlist: unbalanced transform stack")
)

func init() {
	render.Register("record", func(int, int) (render.Device, error) {
		return NewRecorder(), nil
	})
}

// Recorder captures device calls. It implements render.Device.
type Recorder struct {
	commands  []Command
	resources *ResourcePool
	depth     int
	finished  bool
	err       error
}

var _ render.Device = (*Recorder)(nil)

// NewRecorder opens a recording scope.
func NewRecorder() *Recorder {
	return &Recorder{resources: NewResourcePool()}
}

// PushTransform implements render.Device.
func (r *Recorder) PushTransform(m render.Matrix) {
	if r.check() != nil {
		return
	}
	r.depth++
	r.commands = append(r.commands, PushTransformCommand{Matrix: m})
}

// PopTransform implements render.Device.
func (r *Recorder) PopTransform() {
	if r.check() != nil {
		return
	}
	if r.depth == 0 {
		r.err = ErrUnbalancedTransform
		return
	}
	r.depth--
	r.commands = append(r.commands, PopTransformCommand{})
}

// DrawImage implements render.Device.
func (r *Recorder) DrawImage(img *render.Image, dst render.Rect, tint render.RGBA) error {
	if err := r.check(); err != nil {
		return err
	}
	if img == nil {
		return errors.New("drawlist: DrawImage with nil image")
	}
	r.commands = append(r.commands, DrawImageCommand{Image: r.resources.AddImage(img), Dst: dst, Tint: tint})
	return nil
}

// FillRect implements render.Device.
func (r *Recorder) FillRect(dst render.Rect, c render.RGBA) error {
	if err := r.check(); err != nil {
		return err
	}
	r.commands = append(r.commands, FillRectCommand{Dst: dst, Color: c})
	return nil
}

// DrawTriangles implements render.Device.
func (r *Recorder) DrawTriangles(img *render.Image, verts []render.Vertex) error {
	if err := r.check(); err != nil {
		return err
	}
	r.commands = append(r.commands, DrawTrianglesCommand{
		Image:    r.resources.AddImage(img),
		Vertices: slices.Clone(verts),
	})
	return nil
}

// Len returns the number of commands recorded so far.
func (r *Recorder) Len() int { return len(r.commands) }

// Finish closes the scope and returns the list. The recorder cannot be
// used afterwards.
func (r *Recorder) Finish() (*List, error) {
	if r.finished {
		return nil, ErrRecorderFinished
	}
	r.finished = true
	if r.err != nil {
		return nil, r.err
	}
	if r.depth != 0 {
		return nil, fmt.Errorf("%w: %d pushes left open", ErrUnbalancedTransform, r.depth)
	}
	return &List{commands: r.commands, resources: r.resources}, nil
}

func (r *Recorder) check() error {
	if r.finished {
		return ErrRecorderFinished
	}
	return r.err
}

// List is an immutable recorded command list.
type List struct {
	commands  []Command
	resources *ResourcePool
}

// Commands returns the recorded commands.
func (l *List) Commands() []Command { return l.commands }

// Resources returns the resource pool.
func (l *List) Resources() *ResourcePool { return l.resources }

// Len returns the number of commands.
func (l *List) Len() int { return len(l.commands) }

// Playback replays the list onto dev. It stops at the first device error.
func (l *List) Playback(dev render.Device) error {
	for i, cmd := range l.commands {
		var err error
		switch c := cmd.(type) {
		case PushTransformCommand:
			dev.PushTransform(c.Matrix)
		case PopTransformCommand:
			dev.PopTransform()
		case DrawImageCommand:
			err = dev.DrawImage(l.resources.GetImage(c.Image), c.Dst, c.Tint)
		case FillRectCommand:
			err = dev.FillRect(c.Dst, c.Color)
		case DrawTrianglesCommand:
			err = dev.DrawTriangles(l.resources.GetImage(c.Image), c.Vertices)
		}
		if err != nil {
			return fmt.Errorf("drawlist: command %d (%s): %w", i, cmd.Type(), err)
		}
	}
	return nil
}
