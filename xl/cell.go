package xl

import "strconv"

// cellKind tells how a stored cell value is interpreted.
type cellKind uint8

const (
	cellEmpty   cellKind = iota // never written, emitted as an empty value
	cellLiteral                 // written verbatim into <v>
	cellShared                  // id into the shared string table
)

// Cell is one stored cell value.
type Cell struct {
	kind     cellKind
	literal  string
	sst      int
	override DataType // empty when the column format applies
}

// Shared returns the shared string id of the cell.
func (c Cell) Shared() (int, bool) {
	return c.sst, c.kind == cellShared
}

// Literal returns the literal value of the cell.
func (c Cell) Literal() (string, bool) {
	return c.literal, c.kind == cellLiteral
}

// Override returns the per-cell data type, if one was given.
func (c Cell) Override() (DataType, bool) {
	return c.override, c.override != ""
}

// resolve picks the data type of a cell: cell override, then column format.
func (c Cell) resolve(column Format) DataType {
	if c.override != "" {
		return c.override
	}
	if column.DataType == "" {
		return DefaultFormat.DataType
	}
	return column.DataType
}

// text is the unescaped content of the <v> element.
func (c Cell) text() string {
	switch c.kind {
	case cellShared:
		return strconv.Itoa(c.sst)
	case cellLiteral:
		return c.literal
	}
	return ""
}
