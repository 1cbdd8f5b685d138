package cellpath

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tsawler/cellpath/grid"
	"github.com/tsawler/cellpath/htmltable"
	"github.com/tsawler/cellpath/records"
)

// HTMLExtractor provides a fluent interface for extracting cell records
// from HTML tables. Each configuration method returns a new instance,
// making it safe for concurrent use and allowing method chaining.
type HTMLExtractor struct {
	// Source (exactly one is set)
	filename string
	data     []byte

	// Configuration
	config    htmltable.Config
	separator string

	// Accumulated error (fail-fast)
	err error
}

// OpenHTML creates an extractor reading from an HTML file. The file is
// opened when a terminal operation runs; its character encoding is
// sniffed from the content.
//
// Example:
//
//	lines, err := cellpath.OpenHTML("report.html").Strings()
func OpenHTML(filename string) *HTMLExtractor {
	return &HTMLExtractor{
		filename:  filename,
		config:    htmltable.DefaultConfig(),
		separator: records.DefaultSeparator,
	}
}

// HTML creates an extractor reading an HTML document from r. The reader
// is consumed immediately. The input is assumed to be UTF-8; wrap the
// reader with charset.NewReader when the encoding is unknown.
//
// Example:
//
//	recs, err := cellpath.HTML(resp.Body).Records()
func HTML(r io.Reader) *HTMLExtractor {
	ext := &HTMLExtractor{
		config:    htmltable.DefaultConfig(),
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

// HTMLString creates an extractor over an HTML document literal.
//
// Example:
//
//	recs, err := cellpath.HTMLString("<table>...</table>").Records()
func HTMLString(doc string) *HTMLExtractor {
	return &HTMLExtractor{
		data:      []byte(doc),
		config:    htmltable.DefaultConfig(),
		separator: records.DefaultSeparator,
	}
}

// clone creates a copy of the extractor so configuration methods leave
// the receiver untouched.
func (e *HTMLExtractor) clone() *HTMLExtractor {
	return &HTMLExtractor{
		filename:  e.filename,
		data:      e.data,
		config:    e.config,
		separator: e.separator,
		err:       e.err,
	}
}

// ============================================================================
// Configuration Methods (return new HTMLExtractor instance)
// ============================================================================

// TableID restricts extraction to the table with the given id attribute.
//
// Example:
//
//	recs, err := cellpath.OpenHTML("report.html").TableID("q3").Records()
func (e *HTMLExtractor) TableID(id string) *HTMLExtractor {
	newExt := e.clone()
	newExt.config.TableID = id
	return newExt
}

// SpanAsLabel treats any cell spanning multiple rows or columns as a
// header label, regardless of its tag. Useful for tables that mark group
// labels up as plain td cells.
//
// Example:
//
//	recs, err := cellpath.OpenHTML("report.html").SpanAsLabel().Records()
func (e *HTMLExtractor) SpanAsLabel() *HTMLExtractor {
	newExt := e.clone()
	newExt.config.SpanAsLabel = true
	return newExt
}

// Separator sets the string joining path components in rendered contexts.
// The default is " → ".
//
// Example:
//
//	lines, err := cellpath.OpenHTML("report.html").Separator(" / ").Strings()
func (e *HTMLExtractor) Separator(sep string) *HTMLExtractor {
	newExt := e.clone()
	newExt.separator = sep
	return newExt
}

// ============================================================================
// Terminal Operations (parse the source and return results)
// ============================================================================

// Elements parses the source and returns the positioned cells of the
// selected table.
//
// Example:
//
//	elements, err := cellpath.OpenHTML("report.html").Elements()
func (e *HTMLExtractor) Elements() ([]grid.Element, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.filename != "" {
		return htmltable.Open(e.filename, e.config)
	}
	return htmltable.Parse(bytes.NewReader(e.data), e.config)
}

// Records parses the source and returns one record per data cell, each
// carrying its header path and rendered context.
//
// Example:
//
//	recs, err := cellpath.OpenHTML("report.html").Records()
//	// recs[0].Context == "Revenue → Q1: 100"
func (e *HTMLExtractor) Records() ([]records.Record, error) {
	elements, err := e.Elements()
	if err != nil {
		return nil, err
	}
	return records.Assemble(elements, records.Config{Separator: e.separator}), nil
}

// Strings parses the source and returns the rendered context line of
// every data cell.
//
// Example:
//
//	lines, err := cellpath.OpenHTML("report.html").Strings()
func (e *HTMLExtractor) Strings() ([]string, error) {
	recs, err := e.Records()
	if err != nil {
		return nil, err
	}
	return records.Strings(recs), nil
}

// Pairs parses the source and returns the (path, value) shape of every
// data cell.
//
// Example:
//
//	pairs, err := cellpath.OpenHTML("report.html").Pairs()
func (e *HTMLExtractor) Pairs() ([]records.Pair, error) {
	recs, err := e.Records()
	if err != nil {
		return nil, err
	}
	return records.Pairs(recs), nil
}

// AllRecords parses every table in the source and returns one record
// group per table, in document order. TableID is ignored.
//
// Example:
//
//	groups, err := cellpath.OpenHTML("report.html").AllRecords()
//	for _, group := range groups {
//	    // one group per table
//	}
func (e *HTMLExtractor) AllRecords() ([][]records.Record, error) {
	if e.err != nil {
		return nil, e.err
	}

	var groups [][]grid.Element
	var err error
	if e.filename != "" {
		groups, err = htmltable.OpenAll(e.filename, e.config)
	} else {
		groups, err = htmltable.ParseAll(bytes.NewReader(e.data), e.config)
	}
	if err != nil {
		return nil, err
	}
	return records.AssembleGroups(groups, records.Config{Separator: e.separator}), nil
}
