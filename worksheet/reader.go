// Package worksheet extracts positioned table cells from xlsx workbooks.
//
// A rectangular region anchored at a caller-chosen start cell is projected
// onto a 1-indexed grid whose origin is the anchor. Merged ranges become
// spanning elements the way rowspan/colspan cells do in HTML tables, and
// the leading rows and columns of the region are classified as headers per
// caller-supplied counts. Worksheets are sparse, so empty unmerged cells
// produce no elements.
package worksheet

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/cellpath/grid"
)

// ErrSheetNotFound reports that a workbook has no sheet with the requested
// name.
var ErrSheetNotFound = errors.New("worksheet not found")

// Config controls sheet selection, region anchoring, and header
// classification. The zero value selects the active sheet anchored at A1
// with no header classification; DefaultConfig matches the usual layout of
// one header row and one header column.
type Config struct {
	// Sheet names the worksheet to read. Empty means the active sheet.
	Sheet string

	// StartCell anchors the region, as an A1-style reference. Emitted
	// coordinates are re-based so the anchor becomes (1, 1). Empty means
	// "A1".
	StartCell string

	// HeaderRows and HeaderCols classify the leading rows and columns of
	// the re-based region as headers.
	HeaderRows int
	HeaderCols int
}

// DefaultConfig returns a Config reading the active sheet from A1 with one
// header row and one header column.
func DefaultConfig() Config {
	return Config{StartCell: "A1", HeaderRows: 1, HeaderCols: 1}
}

// Open reads a workbook file and returns the configured region's cells.
func Open(filename string, cfg Config) ([]grid.Element, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	return FromFile(f, cfg)
}

// Read reads a workbook from a stream and returns the configured region's
// cells.
func Read(r io.Reader, cfg Config) ([]grid.Element, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}
	defer f.Close()

	return FromFile(f, cfg)
}

// FromFile projects the configured region of an already-open workbook onto
// grid elements. Cells are emitted in row-major order. A merged range whose
// top-left cell lies inside the region becomes one spanning element; ranges
// rooted above or left of the anchor are ignored along with the cells they
// cover.
func FromFile(f *excelize.File, cfg Config) ([]grid.Element, error) {
	sheet, err := resolveSheet(f, cfg.Sheet)
	if err != nil {
		return nil, err
	}

	startCell := cfg.StartCell
	if startCell == "" {
		startCell = "A1"
	}
	startCol, startRow, err := excelize.CellNameToCoordinates(startCell)
	if err != nil {
		return nil, fmt.Errorf("parsing start cell %q: %w", startCell, err)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	regions, err := mergedRegions(f, sheet)
	if err != nil {
		return nil, err
	}

	// The scan covers the used range plus any merged range extending past
	// it; merged roots can sit beyond the last stored value.
	maxRow := len(rows)
	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	for _, reg := range regions {
		if reg.endRow > maxRow {
			maxRow = reg.endRow
		}
		if reg.endCol > maxCol {
			maxCol = reg.endCol
		}
	}

	elements := []grid.Element{}
	for r := startRow; r <= maxRow; r++ {
		for c := startCol; c <= maxCol; c++ {
			value := cellAt(rows, r, c)
			rowSpan, colSpan := 1, 1

			if reg, merged := regionAt(regions, r, c); merged {
				if reg.startRow != r || reg.startCol != c {
					// Covered by a merge; the root carries the value.
					continue
				}
				rowSpan = reg.endRow - r + 1
				colSpan = reg.endCol - c + 1
			} else if value == "" {
				continue
			}

			rebRow := r - startRow + 1
			rebCol := c - startCol + 1
			isHeader := rebRow <= cfg.HeaderRows || rebCol <= cfg.HeaderCols

			e, err := grid.FromSpec(grid.Spec{
				IsHeader: isHeader,
				Row:      rebRow,
				Col:      rebCol,
				RowSpan:  rowSpan,
				ColSpan:  colSpan,
				Value:    value,
			})
			if err != nil {
				return nil, fmt.Errorf("projecting cell (%d,%d): %w", r, c, err)
			}
			elements = append(elements, e)
		}
	}
	return elements, nil
}

// mergedRegion is a merged cell range in absolute 1-indexed coordinates.
type mergedRegion struct {
	startRow, startCol int
	endRow, endCol     int
}

// resolveSheet maps the configured sheet name to an existing worksheet,
// defaulting to the active sheet.
func resolveSheet(f *excelize.File, name string) (string, error) {
	if name == "" {
		return f.GetSheetName(f.GetActiveSheetIndex()), nil
	}
	for _, s := range f.GetSheetList() {
		if s == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

// mergedRegions parses the sheet's merged cell ranges.
func mergedRegions(f *excelize.File, sheet string) ([]mergedRegion, error) {
	mcs, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading merged cells: %w", err)
	}

	regions := make([]mergedRegion, 0, len(mcs))
	for _, mc := range mcs {
		startCol, startRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			return nil, fmt.Errorf("parsing merge range: %w", err)
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			return nil, fmt.Errorf("parsing merge range: %w", err)
		}
		regions = append(regions, mergedRegion{
			startRow: startRow,
			startCol: startCol,
			endRow:   endRow,
			endCol:   endCol,
		})
	}
	return regions, nil
}

// regionAt returns the merged region covering the coordinate, if any.
func regionAt(regions []mergedRegion, r, c int) (mergedRegion, bool) {
	for _, reg := range regions {
		if r >= reg.startRow && r <= reg.endRow && c >= reg.startCol && c <= reg.endCol {
			return reg, true
		}
	}
	return mergedRegion{}, false
}

// cellAt returns the stored value at an absolute coordinate. GetRows trims
// trailing empties, so missing positions read as empty strings.
func cellAt(rows [][]string, r, c int) string {
	if r-1 >= len(rows) {
		return ""
	}
	row := rows[r-1]
	if c-1 >= len(row) {
		return ""
	}
	return row[c-1]
}
