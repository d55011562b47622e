package xl

// Row is a fixed-width row of cells. Its width equals the column count of the
// worksheet it belongs to.
type Row struct {
	cells []Cell

	rowNumber int // 1-based
}

// Number is the 1-based row number.
func (r *Row) Number() int {
	return r.rowNumber
}

// Len is the number of cells, always the worksheet column count.
func (r *Row) Len() int {
	return len(r.cells)
}

// Cell returns the cell at the zero-based column.
func (r *Row) Cell(col int) (Cell, bool) {
	if col < 0 || col >= len(r.cells) {
		return Cell{}, false
	}
	return r.cells[col], true
}
