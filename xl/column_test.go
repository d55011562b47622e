package xl

import (
	"errors"
	"testing"
)

func TestColumnNamesBoundaries(t *testing.T) {
	tests := []struct {
		index int
		name  string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
		{MaxColumns - 1, "ZZZ"},
	}

	for _, tt := range tests {
		got, err := ColumnName(tt.index)
		if err != nil {
			t.Fatalf("ColumnName(%d) failed: %v", tt.index, err)
		}
		if got != tt.name {
			t.Errorf("ColumnName(%d) = %q, expected %q", tt.index, got, tt.name)
		}
	}
}

func TestColumnNamesRoundTrip(t *testing.T) {
	names, err := ColumnNames(MaxColumns)
	if err != nil {
		t.Fatalf("ColumnNames failed: %v", err)
	}
	if len(names) != MaxColumns {
		t.Fatalf("Expected %d names, got %d", MaxColumns, len(names))
	}
	for i, name := range names {
		n, err := ColumnIndex(name)
		if err != nil {
			t.Fatalf("ColumnIndex(%q) failed: %v", name, err)
		}
		if n != i {
			t.Fatalf("ColumnIndex(%q) = %d, expected %d", name, n, i)
		}
	}
}

func TestColumnNamesPrefix(t *testing.T) {
	names, err := ColumnNames(28)
	if err != nil {
		t.Fatalf("ColumnNames failed: %v", err)
	}
	if len(names) != 28 || names[25] != "Z" || names[26] != "AA" || names[27] != "AB" {
		t.Errorf("unexpected names: %v", names)
	}

	empty, err := ColumnNames(0)
	if err != nil || len(empty) != 0 {
		t.Errorf("ColumnNames(0) = %v, %v", empty, err)
	}
}

func TestColumnNamesRange(t *testing.T) {
	if _, err := ColumnNames(MaxColumns + 1); !errors.Is(err, ErrTooManyColumns) {
		t.Errorf("expected ErrTooManyColumns, got %v", err)
	}
	if _, err := ColumnNames(-1); !errors.Is(err, ErrTooManyColumns) {
		t.Errorf("expected ErrTooManyColumns, got %v", err)
	}
	if _, err := ColumnName(-1); !errors.Is(err, ErrColumnRange) {
		t.Errorf("expected ErrColumnRange, got %v", err)
	}
	if _, err := ColumnName(MaxColumns); !errors.Is(err, ErrColumnRange) {
		t.Errorf("expected ErrColumnRange, got %v", err)
	}
}

func TestColumnIndexInvalid(t *testing.T) {
	for _, s := range []string{"", "A1", "AAAA", "-"} {
		if _, err := ColumnIndex(s); err == nil {
			t.Errorf("ColumnIndex(%q) should fail", s)
		}
	}
	if n, err := ColumnIndex("ab"); err != nil || n != 27 {
		t.Errorf("ColumnIndex(\"ab\") = %d, %v", n, err)
	}
}

func TestCellRef(t *testing.T) {
	if got := CellRef("AB", 12); got != "AB12" {
		t.Errorf("CellRef = %q", got)
	}
}
