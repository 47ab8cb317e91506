package atlas

// RowPacker places rectangles left to right in rows. A row is closed when
// the next rectangle would cross the right edge; the next row starts below
// the tallest rectangle of the closed row. Rows are never revisited.
type RowPacker struct {
	width   int
	height  int
	padding int

	x, y      int
	rowHeight int
	usedArea  int
}

// NewRowPacker creates a packer for a width x height canvas. padding is
// left empty to the right of and below every rectangle.
func NewRowPacker(width, height, padding int) *RowPacker {
	return &RowPacker{width: width, height: height, padding: padding}
}

// Place returns the top-left corner for a w x h rectangle, or ok=false
// when it does not fit. A failed Place leaves the packer unchanged.
func (p *RowPacker) Place(w, h int) (x, y int, ok bool) {
	if w > p.width {
		return p.x, p.y, false
	}
	nx, ny, rh := p.x, p.y, p.rowHeight
	if nx+w > p.width {
		nx = 0
		ny += rh
		rh = 0
	}
	if ny+h > p.height {
		return nx, ny, false
	}

	p.x = nx + w + p.padding
	p.y = ny
	p.rowHeight = max(rh, h+p.padding)
	p.usedArea += w * h
	return nx, ny, true
}

// Reset clears all placements.
func (p *RowPacker) Reset() {
	p.x, p.y, p.rowHeight, p.usedArea = 0, 0, 0, 0
}

// Utilization returns the fraction of the canvas covered (0.0 to 1.0).
func (p *RowPacker) Utilization() float64 {
	if p.width <= 0 || p.height <= 0 {
		return 0
	}
	return float64(p.usedArea) / float64(p.width*p.height)
}
