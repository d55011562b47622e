package xl

import (
	"fmt"
	"strconv"
	"sync"
)

// MaxColumns is the number of columns addressable with names of up to three
// letters (A..ZZZ).
const MaxColumns = 26 + 26*26 + 26*26*26

const columnDigits = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ColumnNames enumerates the first n spreadsheet column names in order:
// A..Z, AA..ZZ, AAA..ZZZ.
//
// Names are produced by counting through every name of one width before moving
// to the next width, so no name ever carries a blank or zero digit.
func ColumnNames(n int) ([]string, error) {
	if n < 0 || n > MaxColumns {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyColumns, n, MaxColumns)
	}
	names := make([]string, 0, n)
	for width := 1; width <= 3 && len(names) < n; width++ {
		digits := make([]int, width)
		for len(names) < n {
			name := make([]byte, width)
			for i, d := range digits {
				name[i] = columnDigits[d]
			}
			names = append(names, string(name))

			// advance the rightmost digit, carrying to the left
			i := width - 1
			for ; i >= 0; i-- {
				if digits[i] < len(columnDigits)-1 {
					digits[i]++
					break
				}
				digits[i] = 0
			}
			if i < 0 {
				break // all names of this width used
			}
		}
	}
	return names, nil
}

var columnTable = sync.OnceValue(func() []string {
	names, _ := ColumnNames(MaxColumns)
	return names
})

// ColumnName returns the letters of the zero-based column index.
func ColumnName(index int) (string, error) {
	if index < 0 || index >= MaxColumns {
		return "", fmt.Errorf("%w: %d", ErrColumnRange, index)
	}
	return columnTable()[index], nil
}

// ColumnIndex parses column letters (case-insensitive) into a zero-based index.
func ColumnIndex(letters string) (int, error) {
	if letters == "" || len(letters) > 3 {
		return 0, fmt.Errorf("invalid column name %q", letters)
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("invalid column name %q", letters)
		}
		n = n*26 + int(c-'A') + 1
	}
	return n - 1, nil
}

// CellRef joins precomputed column letters with a 1-based row number.
func CellRef(column string, row int) string {
	return column + strconv.Itoa(row)
}
