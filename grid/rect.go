package grid

// Rect is a closed rectangle of 1-indexed grid coordinates. Both corners
// are inclusive, so a single cell has MinRow == MaxRow and MinCol == MaxCol.
type Rect struct {
	MinRow int
	MinCol int
	MaxRow int
	MaxCol int
}

// Contains reports whether the coordinate lies inside the rectangle.
func (r Rect) Contains(row, col int) bool {
	return row >= r.MinRow && row <= r.MaxRow &&
		col >= r.MinCol && col <= r.MaxCol
}

// Height returns the number of rows the rectangle covers.
func (r Rect) Height() int {
	return r.MaxRow - r.MinRow + 1
}

// Width returns the number of columns the rectangle covers.
func (r Rect) Width() int {
	return r.MaxCol - r.MinCol + 1
}

// Area returns the number of coordinates the rectangle covers.
func (r Rect) Area() int {
	return r.Height() * r.Width()
}

// Intersects reports whether two rectangles share any coordinate.
func (r Rect) Intersects(other Rect) bool {
	return r.MinRow <= other.MaxRow && r.MaxRow >= other.MinRow &&
		r.MinCol <= other.MaxCol && r.MaxCol >= other.MinCol
}
