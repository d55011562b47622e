package xl

import (
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
)

// Writer generates the parts of a single-sheet package. The relationship and
// content-type registries are filled once by NewWriter, so every generated
// part agrees on the same ids and paths.
type Writer struct {
	out Storage

	GlobalRels          map[string]RelInfo // maps id to path relative to the package root
	WorkbookRels        map[string]RelInfo // maps id to path relative to xl/
	DefaultContentTypes map[string]string  // maps path extension to content-type
	PartContentTypes    map[string]string  // maps absolute part name to content-type

	sheetRID string
}

// NewWriter creates a writer storing parts into s. s may be nil when only
// Parts is used.
func NewWriter(s Storage) *Writer {
	w := &Writer{
		out:                 s,
		GlobalRels:          map[string]RelInfo{},
		WorkbookRels:        map[string]RelInfo{},
		DefaultContentTypes: map[string]string{},
		PartContentTypes:    map[string]string{},
		sheetRID:            "rId1",
	}

	w.DefaultContentTypes["xml"] = ctXML
	w.DefaultContentTypes["rels"] = ctRelationships

	w.PartContentTypes["/"+PartWorkbook] = ctWorkbook
	w.PartContentTypes["/"+PartSheet] = ctWorksheet
	w.PartContentTypes["/"+PartStyles] = ctStyles
	w.PartContentTypes["/"+PartSharedStrings] = ctSharedStrings

	w.GlobalRels["rId1"] = RelInfo{Type: relOfficeDocument, Target: PartWorkbook}

	w.WorkbookRels[w.sheetRID] = RelInfo{Type: relWorksheet, Target: "worksheets/sheet1.xml"}
	w.WorkbookRels["rId3"] = RelInfo{Type: relStyles, Target: "styles.xml"}
	w.WorkbookRels["rId4"] = RelInfo{Type: relSharedStrings, Target: "sharedStrings.xml"}

	return w
}

// Parts generates every part of the package for ws and returns them in
// archive order. Generation runs content types, package relationships,
// workbook, workbook relationships, styles, shared strings, then sheet data.
func (w *Writer) Parts(ws *Worksheet) ([]Part, error) {
	ms := NewMemStorage()

	ms.WriteBlob(PartContentTypes, ContentTypesXML(w.DefaultContentTypes, w.PartContentTypes))
	ms.WriteBlob(PartPackageRels, RelsXML(w.GlobalRels))

	wb, err := WorkbookXML(ws, w.sheetRID)
	if err != nil {
		return nil, &PartError{Part: PartWorkbook, Err: err}
	}
	ms.WriteBlob(PartWorkbook, wb)

	ms.WriteBlob(PartWorkbookRels, RelsXML(w.WorkbookRels))
	ms.WriteBlob(PartStyles, StylesXML())
	ms.WriteBlob(PartSharedStrings, SharedStringsXML(ws))
	ms.WriteBlob(PartSheet, SheetXML(ws))

	return ms.Parts(PartNames), nil
}

// Write freezes ws, generates its parts and stores them.
func (w *Writer) Write(ws *Worksheet) error {
	if w.out == nil {
		return fmt.Errorf("xl: writer has no storage")
	}
	if err := ws.freeze(); err != nil {
		return err
	}
	defer ws.release()

	parts, err := w.Parts(ws)
	if err != nil {
		return err
	}
	for _, p := range parts {
		if err := w.out.WriteBlob(p.Name, p.Data); err != nil {
			return &PartError{Part: p.Name, Err: err}
		}
	}
	return nil
}

func enumerate[M ~map[K]V, K constraints.Ordered, V any](m M, callback func(k K, v V) error) error {
	keys := maps.Keys(m)
	slices.Sort(keys)
	for _, k := range keys {
		err := callback(k, m[k])
		if err != nil {
			return err
		}
	}
	return nil
}
