package worksheet

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/tsawler/cellpath/grid"
)

func TestOpen_DefaultLayout(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "")
		f.SetCellValue("Sheet1", "B1", "Q1")
		f.SetCellValue("Sheet1", "C1", "Q2")
		f.SetCellValue("Sheet1", "A2", "Revenue")
		f.SetCellValue("Sheet1", "B2", "100")
		f.SetCellValue("Sheet1", "C2", "120")
	})

	els, err := Open(path, DefaultConfig())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	want := []grid.Spec{
		{IsHeader: true, Row: 1, Col: 2, RowSpan: 1, ColSpan: 1, Value: "Q1"},
		{IsHeader: true, Row: 1, Col: 3, RowSpan: 1, ColSpan: 1, Value: "Q2"},
		{IsHeader: true, Row: 2, Col: 1, RowSpan: 1, ColSpan: 1, Value: "Revenue"},
		{IsHeader: false, Row: 2, Col: 2, RowSpan: 1, ColSpan: 1, Value: "100"},
		{IsHeader: false, Row: 2, Col: 3, RowSpan: 1, ColSpan: 1, Value: "120"},
	}
	if diff := cmp.Diff(want, specs(els)); diff != "" {
		t.Errorf("Open() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpen_MergedRangeBecomesSpan(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "B1", "2024")
		f.MergeCell("Sheet1", "B1", "C1")
		f.SetCellValue("Sheet1", "B2", "Q1")
		f.SetCellValue("Sheet1", "C2", "Q2")
		f.SetCellValue("Sheet1", "A3", "Revenue")
		f.SetCellValue("Sheet1", "B3", "100")
		f.SetCellValue("Sheet1", "C3", "120")
	})

	els, err := Open(path, Config{StartCell: "A1", HeaderRows: 2, HeaderCols: 1})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	want := []grid.Spec{
		{IsHeader: true, Row: 1, Col: 2, RowSpan: 1, ColSpan: 2, Value: "2024"},
		{IsHeader: true, Row: 2, Col: 2, RowSpan: 1, ColSpan: 1, Value: "Q1"},
		{IsHeader: true, Row: 2, Col: 3, RowSpan: 1, ColSpan: 1, Value: "Q2"},
		{IsHeader: true, Row: 3, Col: 1, RowSpan: 1, ColSpan: 1, Value: "Revenue"},
		{IsHeader: false, Row: 3, Col: 2, RowSpan: 1, ColSpan: 1, Value: "100"},
		{IsHeader: false, Row: 3, Col: 3, RowSpan: 1, ColSpan: 1, Value: "120"},
	}
	if diff := cmp.Diff(want, specs(els)); diff != "" {
		t.Errorf("Open() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpen_StartCellRebasesAnchors(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		// Noise outside the region.
		f.SetCellValue("Sheet1", "A1", "Report")
		// The table proper starts at B3.
		f.SetCellValue("Sheet1", "B3", "Name")
		f.SetCellValue("Sheet1", "C3", "Count")
		f.SetCellValue("Sheet1", "B4", "widget")
		f.SetCellValue("Sheet1", "C4", "3")
	})

	els, err := Open(path, Config{StartCell: "B3", HeaderRows: 1})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	want := []grid.Spec{
		{IsHeader: true, Row: 1, Col: 1, RowSpan: 1, ColSpan: 1, Value: "Name"},
		{IsHeader: true, Row: 1, Col: 2, RowSpan: 1, ColSpan: 1, Value: "Count"},
		{IsHeader: false, Row: 2, Col: 1, RowSpan: 1, ColSpan: 1, Value: "widget"},
		{IsHeader: false, Row: 2, Col: 2, RowSpan: 1, ColSpan: 1, Value: "3"},
	}
	if diff := cmp.Diff(want, specs(els)); diff != "" {
		t.Errorf("Open() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpen_HeaderColsOnly(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Label")
		f.SetCellValue("Sheet1", "B1", "v1")
		f.SetCellValue("Sheet1", "A2", "Other")
		f.SetCellValue("Sheet1", "B2", "v2")
	})

	els, err := Open(path, Config{HeaderRows: 0, HeaderCols: 1})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	for _, e := range els {
		wantHeader := e.Col() == 1
		if e.IsHeader() != wantHeader {
			t.Errorf("cell (%d,%d) header = %v, want %v", e.Row(), e.Col(), e.IsHeader(), wantHeader)
		}
	}
}

func TestOpen_NamedSheet(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "default")
		f.NewSheet("Data")
		f.SetCellValue("Data", "A1", "named")
	})

	els, err := Open(path, Config{Sheet: "Data"})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if len(els) != 1 || els[0].Value() != "named" {
		t.Errorf("Open() read the wrong sheet: %v", els)
	}
}

func TestOpen_SheetNotFound(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "x")
	})

	_, err := Open(path, Config{Sheet: "Missing"})
	if !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("Open() error = %v, want ErrSheetNotFound", err)
	}
}

func TestOpen_EmptyCellsSkipped(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "Name")
		f.SetCellValue("Sheet1", "C1", "Count")
		f.SetCellValue("Sheet1", "A3", "widget")
	})

	els, err := Open(path, Config{})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if len(els) != 3 {
		t.Errorf("got %d elements, want 3 (gaps must not emit)", len(els))
	}
}

func TestOpen_EmptyMergedRootStillEmits(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		f.MergeCell("Sheet1", "A1", "B1")
		f.SetCellValue("Sheet1", "A2", "below")
	})

	els, err := Open(path, Config{})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	want := []grid.Spec{
		{IsHeader: false, Row: 1, Col: 1, RowSpan: 1, ColSpan: 2, Value: ""},
		{IsHeader: false, Row: 2, Col: 1, RowSpan: 1, ColSpan: 1, Value: "below"},
	}
	if diff := cmp.Diff(want, specs(els)); diff != "" {
		t.Errorf("Open() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpen_MergedRootBeforeAnchorIgnored(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "outside")
		f.MergeCell("Sheet1", "A1", "B2")
		f.SetCellValue("Sheet1", "C2", "inside")
	})

	els, err := Open(path, Config{StartCell: "B2"})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	want := []grid.Spec{
		{IsHeader: false, Row: 1, Col: 2, RowSpan: 1, ColSpan: 1, Value: "inside"},
	}
	if diff := cmp.Diff(want, specs(els)); diff != "" {
		t.Errorf("Open() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpen_AnchorBeyondUsedRange(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "x")
	})

	els, err := Open(path, Config{StartCell: "Z100"})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if len(els) != 0 {
		t.Errorf("got %d elements past the used range, want 0", len(els))
	}
}

func TestOpen_BadStartCell(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "x")
	})

	_, err := Open(path, Config{StartCell: "not-a-ref"})
	if err == nil {
		t.Error("Open() accepted a malformed start cell")
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/workbook.xlsx", DefaultConfig())
	if err == nil {
		t.Error("Open() expected error for nonexistent file")
	}
}

func TestRead_FromStream(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "Name")
	f.SetCellValue("Sheet1", "A2", "widget")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() failed: %v", err)
	}

	els, err := Read(bytes.NewReader(buf.Bytes()), DefaultConfig())
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(els) != 2 {
		t.Errorf("Read() returned %d elements, want 2", len(els))
	}
}

func TestOpen_FeedsProjection(t *testing.T) {
	path := saveWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "B1", "2024")
		f.MergeCell("Sheet1", "B1", "C1")
		f.SetCellValue("Sheet1", "B2", "Q1")
		f.SetCellValue("Sheet1", "C2", "Q2")
		f.SetCellValue("Sheet1", "A3", "Revenue")
		f.SetCellValue("Sheet1", "B3", "100")
		f.SetCellValue("Sheet1", "C3", "120")
	})

	els, err := Open(path, Config{HeaderRows: 2, HeaderCols: 1})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	p := grid.NewProjection(els)
	if diff := cmp.Diff([]string{"Revenue", "2024", "Q1"}, p.GetPath(3, 2)); diff != "" {
		t.Errorf("GetPath(3,2) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Revenue", "2024", "Q2"}, p.GetPath(3, 3)); diff != "" {
		t.Errorf("GetPath(3,3) mismatch (-want +got):\n%s", diff)
	}
}

// Helper to build a workbook fixture and save it to a temp file
func saveWorkbook(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	build(f)

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test workbook: %v", err)
	}
	return path
}

// Helper to view elements as comparable specs
func specs(els []grid.Element) []grid.Spec {
	out := make([]grid.Spec, len(els))
	for i, e := range els {
		out[i] = e.Spec()
	}
	return out
}
