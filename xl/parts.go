package xl

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/adnsv/srw/xml"
)

// Part paths inside the package, in archive order.
const (
	PartContentTypes  = "[Content_Types].xml"
	PartPackageRels   = "_rels/.rels"
	PartWorkbook      = "xl/workbook.xml"
	PartStyles        = "xl/styles.xml"
	PartSharedStrings = "xl/sharedStrings.xml"
	PartWorkbookRels  = "xl/_rels/workbook.xml.rels"
	PartSheet         = "xl/worksheets/sheet1.xml"
)

// PartNames lists every part of the package in archive order.
var PartNames = []string{
	PartContentTypes,
	PartPackageRels,
	PartWorkbook,
	PartStyles,
	PartSharedStrings,
	PartWorkbookRels,
	PartSheet,
}

// MIME types.
const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	ctRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML           = "application/xml"
	ctWorkbook      = ContentTypeXLSX + ".main+xml"
	ctWorksheet     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ctStyles        = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ctSharedStrings = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
)

// XML namespaces and relationship types.
const (
	nsMain         = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRel          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPackageRels  = "http://schemas.openxmlformats.org/package/2006/relationships"

	relOfficeDocument = nsRel + "/officeDocument"
	relWorksheet      = nsRel + "/worksheet"
	relStyles         = nsRel + "/styles"
	relSharedStrings  = nsRel + "/sharedStrings"
)

// fontMaxDigitWidth is the pixel width of the widest digit of the 11pt body font.
const fontMaxDigitWidth = 7

// Part is one named document of the package.
type Part struct {
	Name string
	Data []byte
}

type RelInfo struct {
	Type   string // url to schema type
	Target string // relative path
}

// ColumnWidth estimates the width of a column from the maximum number of
// characters observed in it. The result is truncated to 1/256 of a character
// like Excel does, so it is floored rather than rounded.
func ColumnWidth(maxChars int) float64 {
	if maxChars < 0 {
		maxChars = 0
	}
	w := float64(maxChars)
	return math.Floor((w*fontMaxDigitWidth+5)/fontMaxDigitWidth*256)/256 + 5
}

// ContentTypesXML generates [Content_Types].xml from extension defaults and
// per-part overrides. Both are emitted in sorted order.
func ContentTypesXML(defaults, overrides map[string]string) []byte {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})

	x.XmlStandaloneDecl()
	x.OTag("Types")
	x.Attr("xmlns", nsContentTypes)
	enumerate(defaults, func(ext, ctype string) error {
		x.OTag("+Default").Attr("Extension", ext).Attr("ContentType", ctype).CTag()
		return nil
	})
	enumerate(overrides, func(abspath, ctype string) error {
		x.OTag("+Override").Attr("PartName", abspath).Attr("ContentType", ctype).CTag()
		return nil
	})
	x.CTag()

	return bb.Bytes()
}

// RelsXML generates a relationships part, ordered by relationship id.
func RelsXML(rels map[string]RelInfo) []byte {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("Relationships")
	x.Attr("xmlns", nsPackageRels)
	enumerate(rels, func(rid string, info RelInfo) error {
		x.OTag("+Relationship").Attr("Id", rid).Attr("Type", info.Type).Attr("Target", info.Target)
		x.CTag()
		return nil
	})
	x.CTag()

	return bb.Bytes()
}

// WorkbookXML generates xl/workbook.xml listing the single sheet under the
// relationship id sheetRID.
func WorkbookXML(ws *Worksheet, sheetRID string) ([]byte, error) {
	if err := validateSheetName(ws.Name); err != nil {
		return nil, err
	}

	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("workbook")
	x.Attr("xmlns", nsMain)
	x.Attr("xmlns:r", nsRel)

	x.OTag("+sheets")
	x.OTag("+sheet")
	x.Attr("name", ws.Name)
	x.Attr("sheetId", 1)
	x.Attr("r:id", sheetRID)
	x.CTag()
	x.CTag() // sheets

	x.CTag() // workbook

	return bb.Bytes(), nil
}

// SharedStringsXML generates xl/sharedStrings.xml. count is the number of
// string cells, uniqueCount the size of the table.
func SharedStringsXML(ws *Worksheet) []byte {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("sst")
	x.Attr("xmlns", nsMain)
	x.Attr("count", ws.stringRefs())
	x.Attr("uniqueCount", ws.strings.Len())

	for _, s := range ws.strings.Strings() {
		s = sanitizeText(s)
		x.OTag("+si")
		x.OTag("t")
		if needsPreserve(s) {
			x.Attr("xml:space", "preserve")
		}
		x.RawString(escapeText(s))
		x.CTag()
		x.CTag()
	}

	x.CTag()

	return bb.Bytes()
}

// SheetXML generates xl/worksheets/sheet1.xml: dimension, one <col> per
// column with estimated width, and every cell of every row.
func SheetXML(ws *Worksheet) []byte {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("worksheet")
	x.Attr("xmlns", nsMain)
	x.Attr("xmlns:r", nsRel)

	last := ws.names[len(ws.names)-1]
	ref := "A1"
	if len(ws.rows) > 0 {
		ref = "A1:" + CellRef(last, len(ws.rows))
	}
	x.OTag("+dimension").Attr("ref", ref).CTag()

	x.OTag("+cols")
	for i, f := range ws.columns {
		n := i + 1
		x.OTag("+col").Attr("min", n).Attr("max", n)
		x.Attr("width", strconv.FormatFloat(ColumnWidth(ws.charCounts[i]), 'f', -1, 64))
		if f.TwoDecimal() {
			x.Attr("style", StyleTwoDecimal)
		}
		x.Attr("customWidth", 1)
		x.CTag()
	}
	x.CTag() // cols

	x.OTag("+sheetData")
	for _, row := range ws.rows {
		x.OTag("+row").Attr("r", row.rowNumber)
		for col, cell := range row.cells {
			x.OTag("+c").Attr("r", CellRef(ws.names[col], row.rowNumber))
			switch {
			case cell.kind == cellShared:
				x.Attr("t", "s")
			case ws.columns[col].TwoDecimal():
				x.Attr("s", StyleTwoDecimal)
			}
			x.OTag("v").RawString(escapeText(sanitizeText(cell.text()))).CTag()
			x.CTag() // c
		}
		x.CTag() // row
	}
	x.CTag() // sheetData

	x.CTag() // worksheet

	return bb.Bytes()
}

func needsPreserve(s string) bool {
	return s != "" && (strings.TrimSpace(s[:1]) == "" || strings.TrimSpace(s[len(s)-1:]) == "")
}

// sanitizeText drops characters that XML 1.0 cannot carry, so a stray
// control byte in a cell never produces an unreadable package.
func sanitizeText(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return r
		case r < 0x20, r == 0xFFFE, r == 0xFFFF:
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

// escapeText renders sanitized text as element content. Carriage returns are
// written as references so parsers do not fold them into line feeds.
func escapeText(s string) xml.RawString {
	if !strings.ContainsAny(s, "&<>\r") {
		return xml.RawString(s)
	}
	sb := strings.Builder{}
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '\r':
			sb.WriteString("&#13;")
		default:
			sb.WriteRune(r)
		}
	}
	return xml.RawString(sb.String())
}

// validateSheetName applies the spreadsheet rules for Worksheet.Name: 1 to 31
// characters, no leading or trailing apostrophe, none of :\/?*[] and no
// control characters.
func validateSheetName(name string) error {
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		return errors.New("worksheet name is empty")
	case n > 31:
		return fmt.Errorf("worksheet name %q exceeds 31 characters", name)
	}
	if name[0] == '\'' || name[len(name)-1] == '\'' {
		return fmt.Errorf("worksheet name %q starts or ends with an apostrophe", name)
	}
	if i := strings.IndexAny(name, ":\\/?*[]"); i >= 0 {
		return fmt.Errorf("worksheet name %q contains %q", name, name[i])
	}
	if strings.ContainsFunc(name, unicode.IsControl) {
		return fmt.Errorf("worksheet name %q contains a control character", name)
	}
	return nil
}
