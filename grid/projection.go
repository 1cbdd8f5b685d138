package grid

// unowned marks coordinates no element's footprint covers.
const unowned = int32(-1)

// Projection indexes ownership of every coordinate covered by a table's
// elements and answers header-path queries for arbitrary coordinates.
//
// A Projection is built exactly once by NewProjection and never mutated
// afterwards. GetPath performs no writes, so any number of goroutines may
// query the same Projection concurrently without locking.
type Projection struct {
	elements []Element

	// owners holds, for every coordinate inside the table bounds, the index
	// into elements of the owning element, or unowned. Row-major layout
	// with maxCols columns per row.
	owners  []int32
	maxRows int
	maxCols int
}

// NewProjection builds the ownership index over a collection of elements.
// The collection may be empty or nil; every element is expected to satisfy
// the Element invariants individually, and cross-element consistency is not
// re-validated. When footprints overlap, the element latest in input order
// owns the contested coordinates.
//
// The input slice is copied, so later mutation of it does not affect the
// projection.
func NewProjection(elements []Element) *Projection {
	p := &Projection{
		elements: make([]Element, len(elements)),
	}
	copy(p.elements, elements)

	for _, e := range p.elements {
		fp := e.Footprint()
		if fp.MaxRow > p.maxRows {
			p.maxRows = fp.MaxRow
		}
		if fp.MaxCol > p.maxCols {
			p.maxCols = fp.MaxCol
		}
	}

	p.owners = make([]int32, p.maxRows*p.maxCols)
	for i := range p.owners {
		p.owners[i] = unowned
	}
	for i, e := range p.elements {
		fp := e.Footprint()
		for r := fp.MinRow; r <= fp.MaxRow; r++ {
			base := (r - 1) * p.maxCols
			for c := fp.MinCol; c <= fp.MaxCol; c++ {
				p.owners[base+c-1] = int32(i)
			}
		}
	}
	return p
}

// RowCount returns the highest row any element's footprint reaches.
func (p *Projection) RowCount() int { return p.maxRows }

// ColCount returns the highest column any element's footprint reaches.
func (p *Projection) ColCount() int { return p.maxCols }

// OwnerAt returns the element whose footprint covers the coordinate. The
// second result is false when the coordinate is unowned or out of range.
func (p *Projection) OwnerAt(row, col int) (Element, bool) {
	idx := p.ownerIndex(row, col)
	if idx == unowned {
		return Element{}, false
	}
	return p.elements[idx], true
}

func (p *Projection) ownerIndex(row, col int) int32 {
	if row < 1 || col < 1 || row > p.maxRows || col > p.maxCols {
		return unowned
	}
	return p.owners[(row-1)*p.maxCols+col-1]
}

// GetPath returns the ordered header labels that govern the given
// coordinate: labels from header cells entirely left of it at the same row,
// most general first, followed by labels from header cells entirely above
// it at the same column, most general first.
//
// GetPath is a pure function of the projection and its arguments. It never
// panics: out-of-range and unowned coordinates yield the empty path. The
// returned slice is never nil and is freshly allocated on each call.
func (p *Projection) GetPath(row, col int) []string {
	path := []string{}
	if row < 1 || col < 1 {
		return path
	}
	path = p.appendRowHeaders(path, row, col)
	path = p.appendColHeaders(path, row, col)
	return path
}

// appendRowHeaders walks columns 1..col-1 at the fixed row, left to right.
// An owner qualifies when it is a header whose footprint ends strictly left
// of the target column. Each distinct element contributes once, at its
// first appearance; empty labels consume their position but emit nothing.
func (p *Projection) appendRowHeaders(path []string, row, col int) []string {
	if row > p.maxRows {
		return path
	}
	var seen []int32
	base := (row - 1) * p.maxCols
	for j := 1; j <= min(col-1, p.maxCols); j++ {
		idx := p.owners[base+j-1]
		if idx == unowned {
			continue
		}
		e := &p.elements[idx]
		if !e.isHeader {
			continue
		}
		if e.col+e.colSpan-1 >= col {
			// Reaches into or past the target column; not a row header.
			continue
		}
		if containsIndex(seen, idx) {
			continue
		}
		seen = append(seen, idx)
		if e.value != "" {
			path = append(path, e.value)
		}
	}
	return path
}

// appendColHeaders is the symmetric scan over rows 1..row-1 at the fixed
// column, qualifying headers whose footprint ends strictly above the target
// row.
func (p *Projection) appendColHeaders(path []string, row, col int) []string {
	if col > p.maxCols {
		return path
	}
	var seen []int32
	for i := 1; i <= min(row-1, p.maxRows); i++ {
		idx := p.owners[(i-1)*p.maxCols+col-1]
		if idx == unowned {
			continue
		}
		e := &p.elements[idx]
		if !e.isHeader {
			continue
		}
		if e.row+e.rowSpan-1 >= row {
			continue
		}
		if containsIndex(seen, idx) {
			continue
		}
		seen = append(seen, idx)
		if e.value != "" {
			path = append(path, e.value)
		}
	}
	return path
}

// containsIndex reports whether idx is already in seen.
func containsIndex(seen []int32, idx int32) bool {
	for _, s := range seen {
		if s == idx {
			return true
		}
	}
	return false
}
