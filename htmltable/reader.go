// Package htmltable extracts positioned table cells from HTML documents.
package htmltable

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/tsawler/cellpath/grid"
)

// ErrTableNotFound reports that a document contains no table, or no table
// with the requested id.
var ErrTableNotFound = errors.New("no table found")

// Config controls table selection and header classification.
type Config struct {
	// TableID restricts extraction to the table whose id attribute matches.
	// Empty means the first table in document order.
	TableID string

	// SpanAsLabel additionally classifies any cell spanning more than one
	// row or column as a header, regardless of its tag.
	SpanAsLabel bool
}

// DefaultConfig returns a Config selecting the first table with tag-based
// header classification.
func DefaultConfig() Config {
	return Config{}
}

// Open reads an HTML file and returns the cells of the first matching
// table. The file's character encoding is sniffed from its content.
func Open(filename string, cfg Config) ([]grid.Element, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	decoded, err := charset.NewReader(f, "")
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}
	return Parse(decoded, cfg)
}

// OpenAll reads an HTML file and returns one element collection per table,
// in document order. The file's character encoding is sniffed from its
// content.
func OpenAll(filename string, cfg Config) ([][]grid.Element, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	decoded, err := charset.NewReader(f, "")
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}
	return ParseAll(decoded, cfg)
}

// Parse reads an HTML document and returns the cells of the first matching
// table as positioned grid elements. It fails with ErrTableNotFound when
// the document has no table, or none with the configured id.
func Parse(r io.Reader, cfg Config) ([]grid.Element, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	table := findTable(doc, cfg.TableID)
	if table == nil {
		if cfg.TableID != "" {
			return nil, fmt.Errorf("%w with id=%q", ErrTableNotFound, cfg.TableID)
		}
		return nil, ErrTableNotFound
	}
	return projectTable(table, cfg)
}

// ParseAll reads an HTML document and returns one element collection per
// table, in document order. It fails with ErrTableNotFound when the
// document has no tables at all.
func ParseAll(r io.Reader, cfg Config) ([][]grid.Element, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var tables []*html.Node
	collectTables(doc, &tables)
	if len(tables) == 0 {
		return nil, ErrTableNotFound
	}

	groups := make([][]grid.Element, 0, len(tables))
	for _, table := range tables {
		els, err := projectTable(table, cfg)
		if err != nil {
			return nil, err
		}
		groups = append(groups, els)
	}
	return groups, nil
}

// tableCell is a cell as it appears in markup, before grid positions are
// assigned.
type tableCell struct {
	text     string
	isHeader bool
	rowSpan  int
	colSpan  int
}

// tableRow groups the cells of one tr element.
type tableRow struct {
	cells  []tableCell
	inHead bool
}

// findTable finds the first table element, or the first one whose id
// attribute matches when id is non-empty.
func findTable(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		if id == "" || getAttr(n, "id") == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findTable(c, id); result != nil {
			return result
		}
	}
	return nil
}

// collectTables appends every table element in document order, including
// tables nested inside other tables.
func collectTables(n *html.Node, tables *[]*html.Node) {
	if n.Type == html.ElementNode && n.Data == "table" {
		*tables = append(*tables, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectTables(c, tables)
	}
}

// projectTable assigns 1-indexed grid positions to a table's cells. The
// column cursor skips positions still covered by a rowspan from an earlier
// row, so emitted anchors already account for prior spans. Every td and th
// produces an element, including empty ones.
func projectTable(tableNode *html.Node, cfg Config) ([]grid.Element, error) {
	rows := collectRows(tableNode)

	elements := []grid.Element{}
	// blocked maps a column to the last row index an active rowspan covers.
	blocked := make(map[int]int)

	for ri, row := range rows {
		r := ri + 1
		c := 1
		for _, cell := range row.cells {
			for blocked[c] >= r {
				c++
			}

			isHeader := cell.isHeader || row.inHead
			if cfg.SpanAsLabel && (cell.rowSpan > 1 || cell.colSpan > 1) {
				isHeader = true
			}

			e, err := grid.FromSpec(grid.Spec{
				IsHeader: isHeader,
				Row:      r,
				Col:      c,
				RowSpan:  cell.rowSpan,
				ColSpan:  cell.colSpan,
				Value:    cell.text,
			})
			if err != nil {
				return nil, fmt.Errorf("projecting cell at row %d: %w", r, err)
			}
			elements = append(elements, e)

			if cell.rowSpan > 1 {
				until := r + cell.rowSpan - 1
				for cc := c; cc < c+cell.colSpan; cc++ {
					if blocked[cc] < until {
						blocked[cc] = until
					}
				}
			}
			c += cell.colSpan
		}
	}
	return elements, nil
}

// collectRows gathers the tr rows directly belonging to a table, in
// document order, without descending into nested tables.
func collectRows(tableNode *html.Node) []tableRow {
	rows := make([]tableRow, 0)

	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead":
			collectSectionRows(c, &rows, true)
		case "tbody", "tfoot":
			collectSectionRows(c, &rows, false)
		case "tr":
			rows = append(rows, parseTableRow(c, false))
		}
	}
	return rows
}

// collectSectionRows parses rows within thead, tbody, or tfoot.
func collectSectionRows(section *html.Node, rows *[]tableRow, inHead bool) {
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			*rows = append(*rows, parseTableRow(c, inHead))
		}
	}
}

// parseTableRow parses a single tr element. Cells keep document order; th
// cells are headers regardless of section.
func parseTableRow(tr *html.Node, inHead bool) tableRow {
	row := tableRow{inHead: inHead}

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cell := tableCell{
				text:     getTextContent(c),
				isHeader: c.Data == "th",
				rowSpan:  1,
				colSpan:  1,
			}

			for _, attr := range c.Attr {
				switch attr.Key {
				case "rowspan":
					fmt.Sscanf(attr.Val, "%d", &cell.rowSpan)
				case "colspan":
					fmt.Sscanf(attr.Val, "%d", &cell.colSpan)
				}
			}
			// Malformed span attributes fall back to a single cell.
			if cell.rowSpan < 1 {
				cell.rowSpan = 1
			}
			if cell.colSpan < 1 {
				cell.colSpan = 1
			}

			row.cells = append(row.cells, cell)
		}
	}
	return row
}

// getAttr returns the value of the named attribute, or "".
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// getTextContent extracts the text of a node and its descendants with
// whitespace collapsed, the way a browser would render it.
func getTextContent(n *html.Node) string {
	var b strings.Builder
	getTextContentRecursive(n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func getTextContentRecursive(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			b.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, b)
	}
}

// shouldSkipElement reports whether an element's content is invisible and
// should not contribute cell text.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}
