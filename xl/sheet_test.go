package xl

import (
	"errors"
	"testing"
)

func TestNewWorksheetDefaults(t *testing.T) {
	ws, err := NewWorksheet(3)
	if err != nil {
		t.Fatalf("NewWorksheet failed: %v", err)
	}
	if ws.ColumnCount() != 3 {
		t.Errorf("Expected 3 columns, got %d", ws.ColumnCount())
	}
	for col := 0; col < 3; col++ {
		f, err := ws.ColumnFormat(col)
		if err != nil {
			t.Fatalf("ColumnFormat(%d) failed: %v", col, err)
		}
		if f != DefaultFormat {
			t.Errorf("column %d format = %+v, expected %+v", col, f, DefaultFormat)
		}
	}
	if ws.Name != DefaultSheetName {
		t.Errorf("unexpected sheet name %q", ws.Name)
	}

	if _, err := NewWorksheet(0); !errors.Is(err, ErrColumnRange) {
		t.Errorf("expected ErrColumnRange, got %v", err)
	}
	if _, err := NewWorksheet(MaxColumns + 1); !errors.Is(err, ErrTooManyColumns) {
		t.Errorf("expected ErrTooManyColumns, got %v", err)
	}
}

func TestWorksheetMisuse(t *testing.T) {
	ws, _ := NewWorksheet(2)

	if err := ws.AddCell("x"); !errors.Is(err, ErrNoRow) {
		t.Errorf("AddCell without row: expected ErrNoRow, got %v", err)
	}
	if err := ws.SetCell(0, "x"); !errors.Is(err, ErrNoRow) {
		t.Errorf("SetCell without row: expected ErrNoRow, got %v", err)
	}

	ws.NewRow()
	if err := ws.SetCell(2, "x"); !errors.Is(err, ErrColumnRange) {
		t.Errorf("SetCell out of range: expected ErrColumnRange, got %v", err)
	}
	if err := ws.SetCell(-1, "x"); !errors.Is(err, ErrColumnRange) {
		t.Errorf("SetCell negative: expected ErrColumnRange, got %v", err)
	}
	if err := ws.SetColumnFormat(5, Format{DataType: DataZoned}); !errors.Is(err, ErrColumnRange) {
		t.Errorf("SetColumnFormat out of range: expected ErrColumnRange, got %v", err)
	}

	ws.AddCell("a")
	ws.AddCell("b")
	if err := ws.AddCell("c"); !errors.Is(err, ErrRowFull) {
		t.Errorf("AddCell past last column: expected ErrRowFull, got %v", err)
	}
	if got := ws.Rows()[0].Len(); got != 2 {
		t.Errorf("row length changed to %d", got)
	}

	if err := ws.AddCellAs("x", DataType("money")); !errors.Is(err, ErrUnknownDataType) {
		t.Errorf("expected ErrUnknownDataType, got %v", err)
	}
	if err := ws.SetColumnFormat(0, Format{DataType: "money"}); !errors.Is(err, ErrUnknownDataType) {
		t.Errorf("expected ErrUnknownDataType, got %v", err)
	}
}

func TestWorksheetCursorResets(t *testing.T) {
	ws, _ := NewWorksheet(2)
	ws.NewRow()
	ws.AddCell("a")
	ws.AddCell("b")
	ws.NewRow()
	if err := ws.AddCell("c"); err != nil {
		t.Fatalf("AddCell on new row failed: %v", err)
	}

	rows := ws.Rows()
	if len(rows) != 2 || rows[1].Number() != 2 {
		t.Fatalf("unexpected rows: %d", len(rows))
	}
	c, _ := rows[1].Cell(0)
	if id, ok := c.Shared(); !ok || id != 2 {
		t.Errorf("expected shared string id 2, got %d (%v)", id, ok)
	}
	c, _ = rows[1].Cell(1)
	if _, ok := c.Shared(); ok {
		t.Error("unwritten cell should not reference a shared string")
	}
}

func TestWorksheetCharCounts(t *testing.T) {
	ws, _ := NewWorksheet(2)

	ws.NewRow()
	ws.SetCell(0, "abcdef")
	ws.SetCell(0, "ab") // the first row stores unconditionally
	ws.SetCell(1, "")
	assertCharCount(t, ws, 0, 2)
	assertCharCount(t, ws, 1, 0)

	ws.NewRow()
	ws.SetCell(0, "a")
	ws.SetCell(1, "héllo")
	assertCharCount(t, ws, 0, 2)
	assertCharCount(t, ws, 1, 5)

	ws.NewRow()
	ws.SetCell(0, "abcd")
	assertCharCount(t, ws, 0, 4)
}

func assertCharCount(t *testing.T, ws *Worksheet, col, expected int) {
	t.Helper()
	n, err := ws.CharCount(col)
	if err != nil {
		t.Fatalf("CharCount(%d) failed: %v", col, err)
	}
	if n != expected {
		t.Errorf("CharCount(%d) = %d, expected %d", col, n, expected)
	}
}

func TestWorksheetTypeResolution(t *testing.T) {
	ws, _ := NewWorksheet(3)
	ws.SetColumnFormat(1, Format{DataType: DataZoned})
	ws.SetColumnFormat(2, Format{DataType: DataDate})

	ws.NewRow()
	ws.AddCellAs("5", DataZoned) // override on a char column
	ws.AddCellAs("Amount", DataChar)
	ws.AddCell("2024-01-31")

	ws.NewRow()
	ws.AddCell("plain")
	ws.AddCell("12")
	ws.AddCellAs("2024-02-01", DataDate) // same as column, not an override

	row := ws.Rows()[0]
	c, _ := row.Cell(0)
	if v, ok := c.Literal(); !ok || v != "5" {
		t.Errorf("cell A1 should be literal 5, got %q (%v)", v, ok)
	}
	if dt, ok := c.Override(); !ok || dt != DataZoned {
		t.Errorf("cell A1 override = %q (%v)", dt, ok)
	}
	c, _ = row.Cell(1)
	if _, ok := c.Shared(); !ok {
		t.Error("cell B1 with char override should be a shared string")
	}
	c, _ = row.Cell(2)
	if _, ok := c.Shared(); !ok {
		t.Error("date cells are stored as shared strings")
	}

	row = ws.Rows()[1]
	c, _ = row.Cell(1)
	if v, ok := c.Literal(); !ok || v != "12" {
		t.Errorf("cell B2 should be literal 12, got %q (%v)", v, ok)
	}
	c, _ = row.Cell(2)
	if _, ok := c.Override(); ok {
		t.Error("an override equal to the column type is not stored")
	}

	if ws.SharedStrings().Len() != 4 {
		t.Errorf("expected 4 shared strings, got %d", ws.SharedStrings().Len())
	}
}

func TestSetColumnFormatMerges(t *testing.T) {
	ws, _ := NewWorksheet(1)
	ws.SetColumnFormat(0, Format{DataType: DataPacked})
	ws.SetColumnFormat(0, Format{DecPos: "2"})

	f, _ := ws.ColumnFormat(0)
	if f.DataType != DataPacked || f.DecPos != "2" || !f.TwoDecimal() {
		t.Errorf("unexpected merged format %+v", f)
	}

	if err := ws.SetColumnCode(0, "L", ""); err != nil {
		t.Fatalf("SetColumnCode failed: %v", err)
	}
	f, _ = ws.ColumnFormat(0)
	if f.DataType != DataDate || f.DecPos != "2" {
		t.Errorf("unexpected format after legacy code %+v", f)
	}
}

func TestLegacyFormat(t *testing.T) {
	tests := []struct {
		code     byte
		expected DataType
	}{
		{'L', DataDate},
		{'T', DataTime},
		{'Z', DataTimestamp},
		{'G', DataGraphic},
		{'F', DataFloating},
		{'P', DataPacked},
		{'B', DataZoned},
		{'I', DataZoned},
		{'S', DataZoned},
		{'U', DataZoned},
		{'Y', DataZoned},
		{'A', DataChar},
		{'?', DataChar},
	}

	for _, tt := range tests {
		f := LegacyFormat(tt.code, "2")
		if f.DataType != tt.expected || f.DecPos != "2" {
			t.Errorf("LegacyFormat(%q) = %+v, expected %s", tt.code, f, tt.expected)
		}
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("floating", "")
	if err != nil || f.DataType != DataFloating {
		t.Errorf("ParseFormat(floating) = %+v, %v", f, err)
	}
	f, err = ParseFormat("P", "2")
	if err != nil || f.DataType != DataPacked || !f.TwoDecimal() {
		t.Errorf("ParseFormat(P) = %+v, %v", f, err)
	}
	f, err = ParseFormat("", "2")
	if err != nil || f.DataType != "" || f.DecPos != "2" {
		t.Errorf("ParseFormat(\"\") = %+v, %v", f, err)
	}
	if _, err := ParseFormat("varchar", ""); !errors.Is(err, ErrUnknownDataType) {
		t.Errorf("expected ErrUnknownDataType, got %v", err)
	}
}

func TestDataTypeStringy(t *testing.T) {
	stringy := []DataType{DataChar, DataGraphic, DataDate, DataTimestamp, DataTime}
	literal := []DataType{DataZoned, DataFloating, DataPacked}
	for _, dt := range stringy {
		if !dt.Stringy() {
			t.Errorf("%s should be stringy", dt)
		}
	}
	for _, dt := range literal {
		if dt.Stringy() {
			t.Errorf("%s should not be stringy", dt)
		}
	}
}

func TestWorksheetFrozen(t *testing.T) {
	ws, _ := NewWorksheet(1)
	ws.NewRow()
	ws.AddCell("a")

	if err := ws.freeze(); err != nil {
		t.Fatalf("freeze failed: %v", err)
	}
	if err := ws.freeze(); !errors.Is(err, ErrBuildInFlight) {
		t.Errorf("second freeze: expected ErrBuildInFlight, got %v", err)
	}
	ws.release()

	if !ws.Frozen() {
		t.Fatal("worksheet should stay frozen after release")
	}
	if err := ws.NewRow(); !errors.Is(err, ErrFrozen) {
		t.Errorf("NewRow: expected ErrFrozen, got %v", err)
	}
	if err := ws.SetCell(0, "b"); !errors.Is(err, ErrFrozen) {
		t.Errorf("SetCell: expected ErrFrozen, got %v", err)
	}
	if err := ws.SetColumnFormat(0, Format{DecPos: "2"}); !errors.Is(err, ErrFrozen) {
		t.Errorf("SetColumnFormat: expected ErrFrozen, got %v", err)
	}
}
