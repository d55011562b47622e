package xl

import (
	"bytes"

	"github.com/adnsv/srw/xml"
)

// Font represents the font record of the stylesheet. These properties
// correspond to the OpenXML font element as defined in ECMA-376.
type Font struct {
	Name       string
	Size       float64 // points
	Family     int     // 2 = swiss
	Scheme     string  // "minor", "major" or empty
	ThemeColor int
}

// DefaultFont is the only font of the stylesheet, Excel's body font.
var DefaultFont = Font{
	Name:       "Calibri",
	Size:       11,
	Family:     2,
	Scheme:     "minor",
	ThemeColor: 1,
}

// Cell style indices into <cellXfs>.
const (
	StyleGeneral    = 0
	StyleTwoDecimal = 1
)

// builtin number formats (ECMA-376 18.8.30), not declared in <numFmts>
const (
	numFmtGeneral    = 0
	numFmtTwoDecimal = 2 // 0.00
)

// cellXfs lists the number format of each cell style, by style index.
var cellXfs = [...]int{
	StyleGeneral:    numFmtGeneral,
	StyleTwoDecimal: numFmtTwoDecimal,
}

// StylesXML generates xl/styles.xml: one font, fill and border (the minimum
// Excel accepts) and the general and 2-decimal cell formats.
func StylesXML() []byte {
	bb := bytes.Buffer{}
	x := xml.NewWriter(&bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.XmlStandaloneDecl()

	x.OTag("styleSheet")
	x.Attr("xmlns", nsMain)

	x.OTag("+fonts").Attr("count", 1)
	writeFont(x, DefaultFont)
	x.CTag()

	x.OTag("+fills").Attr("count", 1)
	x.OTag("+fill")
	x.OTag("patternFill").Attr("patternType", "none").CTag()
	x.CTag()
	x.CTag()

	x.OTag("+borders").Attr("count", 1)
	x.OTag("+border")
	x.OTag("left").CTag()
	x.OTag("right").CTag()
	x.OTag("top").CTag()
	x.OTag("bottom").CTag()
	x.OTag("diagonal").CTag()
	x.CTag()
	x.CTag()

	x.OTag("+cellStyleXfs").Attr("count", 1)
	x.OTag("+xf").Attr("numFmtId", 0).Attr("fontId", 0).Attr("fillId", 0).Attr("borderId", 0).CTag()
	x.CTag()

	x.OTag("+cellXfs").Attr("count", len(cellXfs))
	for _, numFmt := range cellXfs {
		x.OTag("+xf")
		x.Attr("numFmtId", numFmt).Attr("fontId", 0).Attr("fillId", 0).Attr("borderId", 0).Attr("xfId", 0)
		if numFmt != numFmtGeneral {
			x.Attr("applyNumberFormat", 1)
		}
		x.CTag()
	}
	x.CTag()

	x.OTag("+dxfs").Attr("count", 0).CTag()

	x.CTag() // styleSheet

	return bb.Bytes()
}

func writeFont(x *xml.Writer, f Font) {
	x.OTag("+font")
	if f.Size > 0 {
		x.OTag("sz").Attr("val", f.Size).CTag()
	}
	x.OTag("color").Attr("theme", f.ThemeColor).CTag()
	x.OTag("name").Attr("val", f.Name).CTag()
	if f.Family > 0 {
		x.OTag("family").Attr("val", f.Family).CTag()
	}
	if f.Scheme != "" {
		x.OTag("scheme").Attr("val", f.Scheme).CTag()
	}
	x.CTag()
}
