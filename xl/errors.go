package xl

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRow is returned when a cell is written before any row was added.
	ErrNoRow = errors.New("no open row")

	// ErrColumnRange is returned for a column index outside of the worksheet.
	ErrColumnRange = errors.New("column index out of range")

	// ErrRowFull is returned by AddCell once every column of the current row
	// has been filled.
	ErrRowFull = errors.New("row is full")

	// ErrFrozen is returned when a worksheet is mutated after package
	// generation has started.
	ErrFrozen = errors.New("worksheet is frozen")

	// ErrUnknownDataType is returned for a data type name outside of the
	// supported enumeration.
	ErrUnknownDataType = errors.New("unknown data type")

	// ErrTooManyColumns is returned when a worksheet is created with more
	// columns than three-letter column names can address.
	ErrTooManyColumns = errors.New("too many columns")

	// ErrBuildInFlight is returned when a second build of the same worksheet
	// starts while another one is still running.
	ErrBuildInFlight = errors.New("package build already in flight")

	// ErrCompress wraps failures of the compression collaborator.
	ErrCompress = errors.New("compression failed")

	// ErrNoSaver is returned by Download when the builder has no Saver.
	ErrNoSaver = errors.New("builder has no saver")
)

// PartError reports a failure to produce or store a single package part.
type PartError struct {
	Part string
	Err  error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("part %q: %v", e.Part, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}
