package xl

import (
	"fmt"
	"sync/atomic"
	"unicode/utf8"
)

// DefaultSheetName is the name of the only sheet in the workbook.
const DefaultSheetName = "Sheet1"

// Worksheet accumulates rows of cells for a single-sheet workbook. The column
// count is fixed at construction. Rows are appended in order and a worksheet
// becomes read-only once package generation starts.
type Worksheet struct {
	Name string

	columns    []Format
	names      []string // column letters, precomputed
	charCounts []int    // max observed characters per column
	rows       []*Row
	strings    *SharedStrings

	cursor   int // next column for AddCell
	frozen   bool
	building atomic.Bool
}

// NewWorksheet creates an empty worksheet with the given number of columns,
// all formatted as char.
func NewWorksheet(columnCount int) (*Worksheet, error) {
	if columnCount < 1 {
		return nil, fmt.Errorf("%w: worksheet needs at least one column", ErrColumnRange)
	}
	names, err := ColumnNames(columnCount)
	if err != nil {
		return nil, err
	}
	ws := &Worksheet{
		Name:       DefaultSheetName,
		columns:    make([]Format, columnCount),
		names:      names,
		charCounts: make([]int, columnCount),
		strings:    NewSharedStrings(),
	}
	for i := range ws.columns {
		ws.columns[i] = DefaultFormat
	}
	return ws, nil
}

// ColumnCount is the fixed number of columns.
func (ws *Worksheet) ColumnCount() int {
	return len(ws.columns)
}

// Rows returns the rows in order.
func (ws *Worksheet) Rows() []*Row {
	return ws.rows
}

// SharedStrings returns the shared string table of the worksheet.
func (ws *Worksheet) SharedStrings() *SharedStrings {
	return ws.strings
}

// ColumnFormat returns the format of the zero-based column.
func (ws *Worksheet) ColumnFormat(col int) (Format, error) {
	if err := ws.checkColumn(col); err != nil {
		return Format{}, err
	}
	return ws.columns[col], nil
}

// CharCount returns the maximum observed character count of a column.
func (ws *Worksheet) CharCount(col int) (int, error) {
	if err := ws.checkColumn(col); err != nil {
		return 0, err
	}
	return ws.charCounts[col], nil
}

// Frozen reports whether package generation has started.
func (ws *Worksheet) Frozen() bool {
	return ws.frozen
}

// NewRow appends an empty row and moves the cursor back to column 0.
func (ws *Worksheet) NewRow() error {
	if ws.frozen {
		return ErrFrozen
	}
	ws.rows = append(ws.rows, &Row{
		cells:     make([]Cell, len(ws.columns)),
		rowNumber: len(ws.rows) + 1,
	})
	ws.cursor = 0
	return nil
}

// AddCell writes value at the cursor of the current row and advances the
// cursor by one column.
func (ws *Worksheet) AddCell(value string) error {
	return ws.addCell(value, "")
}

// AddCellAs is AddCell with a data type that overrides the column format for
// this cell only.
func (ws *Worksheet) AddCellAs(value string, override DataType) error {
	if !override.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDataType, override)
	}
	return ws.addCell(value, override)
}

func (ws *Worksheet) addCell(value string, override DataType) error {
	if len(ws.rows) > 0 && ws.cursor >= len(ws.columns) {
		return fmt.Errorf("%w: row %d has %d columns", ErrRowFull, len(ws.rows), len(ws.columns))
	}
	if err := ws.setCell(ws.cursor, value, override); err != nil {
		return err
	}
	ws.cursor++
	return nil
}

// SetCell writes value into a column of the most recently added row.
func (ws *Worksheet) SetCell(col int, value string) error {
	return ws.setCell(col, value, "")
}

// SetCellAs is SetCell with a per-cell data type override.
func (ws *Worksheet) SetCellAs(col int, value string, override DataType) error {
	if !override.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDataType, override)
	}
	return ws.setCell(col, value, override)
}

func (ws *Worksheet) setCell(col int, value string, override DataType) error {
	if ws.frozen {
		return ErrFrozen
	}
	if len(ws.rows) == 0 {
		return ErrNoRow
	}
	if err := ws.checkColumn(col); err != nil {
		return err
	}

	// the first row sets the baseline, later rows keep the running maximum
	n := utf8.RuneCountInString(value)
	if len(ws.rows) == 1 {
		ws.charCounts[col] = n
	} else {
		ws.charCounts[col] = max(ws.charCounts[col], n)
	}

	column := ws.columns[col]
	if override == column.DataType {
		override = ""
	}
	c := Cell{override: override}
	if c.resolve(column).Stringy() {
		c.kind = cellShared
		c.sst = ws.strings.Intern(value)
	} else {
		c.kind = cellLiteral
		c.literal = value
	}

	ws.rows[len(ws.rows)-1].cells[col] = c
	return nil
}

// SetColumnFormat merges f into the format of a column. An empty DataType or
// DecPos keeps the current value.
func (ws *Worksheet) SetColumnFormat(col int, f Format) error {
	if ws.frozen {
		return ErrFrozen
	}
	if err := ws.checkColumn(col); err != nil {
		return err
	}
	if f.DataType != "" {
		if !f.DataType.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownDataType, f.DataType)
		}
		ws.columns[col].DataType = f.DataType
	}
	if f.DecPos != "" {
		ws.columns[col].DecPos = f.DecPos
	}
	return nil
}

// SetColumnCode sets a column format from a one-character legacy type code or
// a full data type name.
func (ws *Worksheet) SetColumnCode(col int, source, decPos string) error {
	f, err := ParseFormat(source, decPos)
	if err != nil {
		return err
	}
	return ws.SetColumnFormat(col, f)
}

func (ws *Worksheet) checkColumn(col int) error {
	if col < 0 || col >= len(ws.columns) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrColumnRange, col, len(ws.columns))
	}
	return nil
}

// stringRefs counts the cells that reference the shared string table.
func (ws *Worksheet) stringRefs() int {
	n := 0
	for _, r := range ws.rows {
		for _, c := range r.cells {
			if c.kind == cellShared {
				n++
			}
		}
	}
	return n
}

// freeze marks the worksheet read-only and claims the single build slot.
func (ws *Worksheet) freeze() error {
	if !ws.building.CompareAndSwap(false, true) {
		return ErrBuildInFlight
	}
	ws.frozen = true
	return nil
}

func (ws *Worksheet) release() {
	ws.building.Store(false)
}
