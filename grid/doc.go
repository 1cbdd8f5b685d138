// Package grid resolves the header context of table cells.
//
// Given a flat collection of positioned, possibly-spanning cells, each
// classified as header or data by the caller, the package builds an index
// over the table and answers, for any coordinate, which header cells govern
// it and in what order. It is the computational core behind turning a
// two-dimensional table into linear "context paths" for embeddings and RAG
// pipelines; it never parses documents itself.
//
// # Elements
//
// [Element] is an immutable value describing one occupied rectangle: a
// header/data flag, a 1-indexed anchor, a row/column span, and text.
// Construct elements with [NewElement], or with the [Header] and [Data]
// shorthands for single cells:
//
//	h := grid.Header(1, 1, "Category")
//	d := grid.Data(1, 2, "Value")
//	wide, err := grid.NewElement(true, 1, 2, 1, 3, "Quarters")
//
// Construction validates that the anchor and spans are at least 1 and fails
// with a [ValidationError] otherwise. An element's [Element.Footprint] is
// the closed rectangle it occupies.
//
// External shapes convert to elements through one typed function per shape,
// never by runtime inspection: [FromSpec] for struct-shaped input,
// [FromRecord] for decoded JSON objects, [FromTuple] for positional input.
//
// # Projections
//
// [NewProjection] builds a [Projection] once per table. Construction marks
// every coordinate inside each element's footprint as owned by that
// element; a spanning cell owns its whole rectangle. The projection is
// immutable afterwards, so concurrent queries need no locking.
//
// # Paths
//
// [Projection.GetPath] assembles the path for a coordinate from two scans:
// columns left of the target at its row, then rows above the target at its
// column. A header qualifies only when its footprint ends strictly before
// the target (a cell spanning into the target's column is not "to the
// left"). Spanning headers contribute one label no matter how many
// coordinates of the scan they cover, empty labels contribute nothing, and
// data cells never contribute. Both sub-sequences run outer to inner, so
// paths read general to specific:
//
//	els := []grid.Element{
//		grid.Header(1, 2, "Q1"),
//		grid.Header(2, 1, "Revenue"),
//		grid.Data(2, 2, "100"),
//	}
//	p := grid.NewProjection(els)
//	p.GetPath(2, 2) // ["Revenue", "Q1"]
//
// Queries are total: out-of-range or unowned coordinates yield an empty
// path, never a panic.
package grid
