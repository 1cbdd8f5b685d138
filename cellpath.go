// Package cellpath resolves the header context of data cells in tables.
//
// Given the cells of a table as positioned grid elements, cellpath builds
// a projection and answers, for any data cell, the trail of header labels
// that govern it. A revenue figure in a quarterly table comes back as
// "Revenue → Q1: 100" rather than a bare "100".
//
// Basic usage:
//
//	lines, err := cellpath.OpenHTML("report.html").Strings()
//	if err != nil {
//	    // handle error
//	}
//	// lines[0] == "Revenue → Q1: 100"
//
// With options:
//
//	recs, err := cellpath.Workbook("report.xlsx").
//	    Sheet("Q3").
//	    HeaderRows(2).
//	    Records()
//
// For advanced use cases, the lower-level grid, htmltable, and worksheet
// packages are also available.
package cellpath

import (
	"github.com/tsawler/cellpath/format"
	"github.com/tsawler/cellpath/grid"
)

// Version is the cellpath release version.
const Version = "0.1.0"

// Path resolves the header path of the cell anchored at (row, col) in a
// single call. For repeated queries over the same elements, build a
// [grid.Projection] once instead.
//
// Example:
//
//	path := cellpath.Path(elements, 2, 2) // ["Revenue", "Q1"]
func Path(elements []grid.Element, row, col int) []string {
	return grid.NewProjection(elements).GetPath(row, col)
}

// DetectSource determines the table source format from a filename
// extension. Front ends that accept arbitrary paths can use it to choose
// between the HTML and workbook extractors.
func DetectSource(filename string) format.Format {
	return format.Detect(filename)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	lines := cellpath.Must(cellpath.OpenHTML("report.html").Strings())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
