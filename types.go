package textgeom

import (
	"github.com/gogpu/textgeom/render"
	"github.com/gogpu/textgeom/text"
)

// RGBA is a straight-alpha color with components in [0, 1].
type RGBA = render.RGBA

// Style selects bold, italic and underline rendering.
type Style = text.Style
