package grid

import "fmt"

// ValidationError reports a structural field that was out of range when
// constructing an Element. Row, column, and both spans must be at least 1.
type ValidationError struct {
	Field string
	Value int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("grid: element %s must be >= 1, got %d", e.Field, e.Value)
}

// Element represents one occupied rectangle of a table: a cell classified
// as header or data, with its anchor position, span, and text.
//
// The anchor (row, col) is 1-indexed and names the top-left coordinate of
// the rectangle. Spans extend the rectangle down and to the right, so an
// element with rowSpan or colSpan greater than 1 occupies every coordinate
// of its footprint, not just the anchor.
//
// Elements are immutable once constructed. Classification is supplied by
// the caller (typically a table adapter) and is never inferred here.
type Element struct {
	isHeader bool
	row      int
	col      int
	rowSpan  int
	colSpan  int
	value    string
}

// NewElement creates an Element and validates its structural fields.
// It fails with a *ValidationError when row, col, rowSpan, or colSpan is
// less than 1. The value may be empty; empty-valued headers still occupy
// their footprint but contribute no label to any path.
func NewElement(isHeader bool, row, col, rowSpan, colSpan int, value string) (Element, error) {
	switch {
	case row < 1:
		return Element{}, &ValidationError{Field: "row", Value: row}
	case col < 1:
		return Element{}, &ValidationError{Field: "col", Value: col}
	case rowSpan < 1:
		return Element{}, &ValidationError{Field: "rowspan", Value: rowSpan}
	case colSpan < 1:
		return Element{}, &ValidationError{Field: "colspan", Value: colSpan}
	}
	return Element{
		isHeader: isHeader,
		row:      row,
		col:      col,
		rowSpan:  rowSpan,
		colSpan:  colSpan,
		value:    value,
	}, nil
}

// Header creates a single-cell header element. It panics when row or col is
// less than 1; use NewElement to handle validation as an error.
func Header(row, col int, value string) Element {
	e, err := NewElement(true, row, col, 1, 1, value)
	if err != nil {
		panic(err)
	}
	return e
}

// Data creates a single-cell data element. It panics when row or col is
// less than 1; use NewElement to handle validation as an error.
func Data(row, col int, value string) Element {
	e, err := NewElement(false, row, col, 1, 1, value)
	if err != nil {
		panic(err)
	}
	return e
}

// IsHeader reports whether the element is a header cell.
func (e Element) IsHeader() bool { return e.isHeader }

// Row returns the 1-indexed anchor row.
func (e Element) Row() int { return e.row }

// Col returns the 1-indexed anchor column.
func (e Element) Col() int { return e.col }

// RowSpan returns the number of rows the element occupies.
func (e Element) RowSpan() int { return e.rowSpan }

// ColSpan returns the number of columns the element occupies.
func (e Element) ColSpan() int { return e.colSpan }

// Value returns the element's text: a label for headers, payload for data.
func (e Element) Value() string { return e.value }

// Footprint returns the closed rectangle of coordinates the element
// occupies: [row, row+rowSpan-1] x [col, col+colSpan-1].
func (e Element) Footprint() Rect {
	return Rect{
		MinRow: e.row,
		MinCol: e.col,
		MaxRow: e.row + e.rowSpan - 1,
		MaxCol: e.col + e.colSpan - 1,
	}
}

// Equal reports whether two elements occupy the same rectangle. Only the
// four positional fields participate; classification and value do not.
func (e Element) Equal(other Element) bool {
	return e.row == other.row &&
		e.col == other.col &&
		e.rowSpan == other.rowSpan &&
		e.colSpan == other.colSpan
}

// Spec returns the element's fields as the exported Spec shape, the inverse
// of FromSpec.
func (e Element) Spec() Spec {
	return Spec{
		IsHeader: e.isHeader,
		Row:      e.row,
		Col:      e.col,
		RowSpan:  e.rowSpan,
		ColSpan:  e.colSpan,
		Value:    e.value,
	}
}

// String returns a compact diagnostic form of the element.
func (e Element) String() string {
	kind := "data"
	if e.isHeader {
		kind = "header"
	}
	return fmt.Sprintf("%s(%d,%d %dx%d %q)", kind, e.row, e.col, e.rowSpan, e.colSpan, e.value)
}
