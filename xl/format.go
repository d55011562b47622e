package xl

import "fmt"

// DataType is the data type of a column or a single cell. It decides whether
// values are stored in the shared string table or written as literals.
type DataType string

// Data type constants.
const (
	DataChar      DataType = "char"      // text
	DataGraphic   DataType = "graphic"   // double-byte text
	DataDate      DataType = "date"      // date, kept as text
	DataTimestamp DataType = "timestamp" // timestamp, kept as text
	DataTime      DataType = "time"      // time, kept as text
	DataZoned     DataType = "zoned"     // zoned decimal and other integer kinds
	DataFloating  DataType = "floating"  // floating point
	DataPacked    DataType = "packed"    // packed decimal
)

// Valid reports whether t is one of the known data types.
func (t DataType) Valid() bool {
	switch t {
	case DataChar, DataGraphic, DataDate, DataTimestamp, DataTime,
		DataZoned, DataFloating, DataPacked:
		return true
	}
	return false
}

// Stringy reports whether values of this type go to the shared string table.
func (t DataType) Stringy() bool {
	switch t {
	case DataChar, DataGraphic, DataDate, DataTimestamp, DataTime:
		return true
	}
	return false
}

// Format is the formatting of a column.
type Format struct {
	DataType DataType `yaml:"type"`
	DecPos   string   `yaml:"decPos"` // "2" selects the 2-decimal cell style
}

// DefaultFormat is the format of every column until it is changed.
var DefaultFormat = Format{DataType: DataChar}

// TwoDecimal reports whether cells use the 2-decimal numeric style.
func (f Format) TwoDecimal() bool {
	return f.DecPos == "2"
}

// LegacyFormat maps a single-character type code to a Format:
//
//	L date, T time, Z timestamp, G graphic, F floating, P packed,
//	B I S U Y zoned, anything else char.
func LegacyFormat(code byte, decPos string) Format {
	f := Format{DataType: DataChar, DecPos: decPos}
	switch code {
	case 'L':
		f.DataType = DataDate
	case 'T':
		f.DataType = DataTime
	case 'Z':
		f.DataType = DataTimestamp
	case 'G':
		f.DataType = DataGraphic
	case 'F':
		f.DataType = DataFloating
	case 'P':
		f.DataType = DataPacked
	case 'B', 'I', 'S', 'U', 'Y':
		f.DataType = DataZoned
	}
	return f
}

// ParseFormat accepts either a full data type name or a one-character legacy
// code. An empty source yields a format with no data type, which leaves the
// column type unchanged when applied.
func ParseFormat(source, decPos string) (Format, error) {
	switch {
	case source == "":
		return Format{DecPos: decPos}, nil
	case len(source) == 1:
		return LegacyFormat(source[0], decPos), nil
	}
	t := DataType(source)
	if !t.Valid() {
		return Format{}, fmt.Errorf("%w: %q", ErrUnknownDataType, source)
	}
	return Format{DataType: t, DecPos: decPos}, nil
}
