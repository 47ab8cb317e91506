package drawlist

import "github.com/gogpu/textgeom/render"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdPushTransform CommandType = iota // Push and multiply a transform
	CmdPopTransform                     // Restore the previous transform
	CmdDrawImage                        // Draw a tinted image
	CmdFillRect                         // Fill a rectangle
	CmdDrawTriangles                    // Draw a textured triangle list
)

var commandTypeNames = [...]string{
	CmdPushTransform: "PushTransform",
	CmdPopTransform:  "PopTransform",
	CmdDrawImage:     "DrawImage",
	CmdFillRect:      "FillRect",
	CmdDrawTriangles: "DrawTriangles",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one recorded device call.
type Command interface {
	Type() CommandType
}

// ImageRef is a reference to an image in the resource pool.
type ImageRef uint32

// InvalidRef marks a command without an image.
const InvalidRef = ImageRef(^uint32(0))

// IsValid reports whether the reference points to an image.
func (r ImageRef) IsValid() bool { return r != InvalidRef }

// PushTransformCommand multiplies the current transform.
type PushTransformCommand struct {
	Matrix render.Matrix
}

// Type implements Command.
func (PushTransformCommand) Type() CommandType { return CmdPushTransform }

// PopTransformCommand restores the previous transform.
type PopTransformCommand struct{}

// Type implements Command.
func (PopTransformCommand) Type() CommandType { return CmdPopTransform }

// DrawImageCommand draws a pooled image into Dst.
type DrawImageCommand struct {
	Image ImageRef
	Dst   render.Rect
	Tint  render.RGBA
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

// FillRectCommand fills Dst with Color.
type FillRectCommand struct {
	Dst   render.Rect
	Color render.RGBA
}

// Type implements Command.
func (FillRectCommand) Type() CommandType { return CmdFillRect }

// DrawTrianglesCommand draws a triangle list. Vertices are copied at
// record time.
type DrawTrianglesCommand struct {
	Image    ImageRef
	Vertices []render.Vertex
}

// Type implements Command.
func (DrawTrianglesCommand) Type() CommandType { return CmdDrawTriangles }
