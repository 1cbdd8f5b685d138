package cellpath

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tsawler/cellpath/grid"
	"github.com/tsawler/cellpath/records"
	"github.com/tsawler/cellpath/worksheet"
)

// WorkbookExtractor provides a fluent interface for extracting cell
// records from Excel worksheets. Each configuration method returns a new
// instance, making it safe for concurrent use and allowing method
// chaining.
type WorkbookExtractor struct {
	// Source (exactly one is set)
	filename string
	data     []byte

	// Configuration
	config    worksheet.Config
	separator string

	// Accumulated error (fail-fast)
	err error
}

// Workbook creates an extractor reading from an .xlsx file. The workbook
// is opened when a terminal operation runs.
//
// Example:
//
//	recs, err := cellpath.Workbook("report.xlsx").Records()
func Workbook(filename string) *WorkbookExtractor {
	return &WorkbookExtractor{
		filename:  filename,
		config:    worksheet.DefaultConfig(),
		separator: records.DefaultSeparator,
	}
}

// WorkbookReader creates an extractor reading workbook bytes from r. The
// reader is consumed immediately.
//
// Example:
//
//	recs, err := cellpath.WorkbookReader(resp.Body).Records()
func WorkbookReader(r io.Reader) *WorkbookExtractor {
	ext := &WorkbookExtractor{
		config:    worksheet.DefaultConfig(),
		separator: records.DefaultSeparator,
	}
	data, err := io.ReadAll(r)
	if err != nil {
		ext.err = fmt.Errorf("reading input: %w", err)
		return ext
	}
	ext.data = data
	return ext
}

// clone creates a copy of the extractor so configuration methods leave
// the receiver untouched.
func (e *WorkbookExtractor) clone() *WorkbookExtractor {
	return &WorkbookExtractor{
		filename:  e.filename,
		data:      e.data,
		config:    e.config,
		separator: e.separator,
		err:       e.err,
	}
}

// ============================================================================
// Configuration Methods (return new WorkbookExtractor instance)
// ============================================================================

// Sheet selects the worksheet by name. The default is the workbook's
// active sheet.
//
// Example:
//
//	recs, err := cellpath.Workbook("report.xlsx").Sheet("Q3").Records()
func (e *WorkbookExtractor) Sheet(name string) *WorkbookExtractor {
	newExt := e.clone()
	newExt.config.Sheet = name
	return newExt
}

// Start sets the anchor cell, in A1 notation, that becomes grid position
// (1,1). Cells above or left of the anchor are ignored. The default is
// "A1".
//
// Example:
//
//	recs, err := cellpath.Workbook("report.xlsx").Start("B3").Records()
func (e *WorkbookExtractor) Start(cell string) *WorkbookExtractor {
	newExt := e.clone()
	newExt.config.StartCell = cell
	return newExt
}

// HeaderRows sets how many leading rows of the extracted range are
// headers. The default is 1.
//
// Example:
//
//	recs, err := cellpath.Workbook("report.xlsx").HeaderRows(2).Records()
func (e *WorkbookExtractor) HeaderRows(n int) *WorkbookExtractor {
	newExt := e.clone()
	newExt.config.HeaderRows = n
	return newExt
}

// HeaderCols sets how many leading columns of the extracted range are
// headers. The default is 1.
//
// Example:
//
//	recs, err := cellpath.Workbook("report.xlsx").HeaderCols(2).Records()
func (e *WorkbookExtractor) HeaderCols(n int) *WorkbookExtractor {
	newExt := e.clone()
	newExt.config.HeaderCols = n
	return newExt
}

// Separator sets the string joining path components in rendered contexts.
// The default is " → ".
//
// Example:
//
//	lines, err := cellpath.Workbook("report.xlsx").Separator(" / ").Strings()
func (e *WorkbookExtractor) Separator(sep string) *WorkbookExtractor {
	newExt := e.clone()
	newExt.separator = sep
	return newExt
}

// ============================================================================
// Terminal Operations (read the workbook and return results)
// ============================================================================

// Elements reads the workbook and returns the positioned cells of the
// selected sheet range.
//
// Example:
//
//	elements, err := cellpath.Workbook("report.xlsx").Elements()
func (e *WorkbookExtractor) Elements() ([]grid.Element, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.filename != "" {
		return worksheet.Open(e.filename, e.config)
	}
	return worksheet.Read(bytes.NewReader(e.data), e.config)
}

// Records reads the workbook and returns one record per data cell, each
// carrying its header path and rendered context.
//
// Example:
//
//	recs, err := cellpath.Workbook("report.xlsx").HeaderRows(2).Records()
//	// recs[0].Context == "Revenue → 2024 → Q1: 100"
func (e *WorkbookExtractor) Records() ([]records.Record, error) {
	elements, err := e.Elements()
	if err != nil {
		return nil, err
	}
	return records.Assemble(elements, records.Config{Separator: e.separator}), nil
}

// Strings reads the workbook and returns the rendered context line of
// every data cell.
//
// Example:
//
//	lines, err := cellpath.Workbook("report.xlsx").Strings()
func (e *WorkbookExtractor) Strings() ([]string, error) {
	recs, err := e.Records()
	if err != nil {
		return nil, err
	}
	return records.Strings(recs), nil
}

// Pairs reads the workbook and returns the (path, value) shape of every
// data cell.
//
// Example:
//
//	pairs, err := cellpath.Workbook("report.xlsx").Pairs()
func (e *WorkbookExtractor) Pairs() ([]records.Pair, error) {
	recs, err := e.Records()
	if err != nil {
		return nil, err
	}
	return records.Pairs(recs), nil
}
