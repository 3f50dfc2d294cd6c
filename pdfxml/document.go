package pdfxml

import (
	"bytes"
	"encoding/xml"
	"slices"
	"strings"
)

// documentXML is the <pdf2xml> root element.
type documentXML struct {
	XMLName  xml.Name
	Producer string    `xml:"producer,attr"`
	Version  string    `xml:"version,attr"`
	Pages    []pageXML `xml:"page"`
}

// pageXML is a <page> element.
type pageXML struct {
	Number    int           `xml:"number,attr"`
	Top       float64       `xml:"top,attr"`
	Left      float64       `xml:"left,attr"`
	Height    float64       `xml:"height,attr"`
	Width     float64       `xml:"width,attr"`
	FontSpecs []fontSpecXML `xml:"fontspec"`
	Texts     []textXML     `xml:"text"`
}

// fontSpecXML is a <fontspec> element. Its id is document-wide even though
// the element is nested inside the page that first uses it.
type fontSpecXML struct {
	ID     string `xml:"id,attr"`
	Size   string `xml:"size,attr"`
	Family string `xml:"family,attr"`
	Color  string `xml:"color,attr"`
}

// textXML is a <text> element. Geometry is kept as raw strings so that a
// missing or broken attribute can be reported per record.
type textXML struct {
	Top    string `xml:"top,attr"`
	Left   string `xml:"left,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	Font   string `xml:"font,attr"`
	Text   string `xml:"-"`

	// Bold is set when all visible text sits inside <b> markup
	Bold bool `xml:"-"`
}

// UnmarshalXML collects the character data of the element and all nested
// inline markup (<b>, <i>, <a>) in document order.
func (t *textXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "top":
			t.Top = attr.Value
		case "left":
			t.Left = attr.Value
		case "width":
			t.Width = attr.Value
		case "height":
			t.Height = attr.Value
		case "font":
			t.Font = attr.Value
		}
	}

	var sb strings.Builder
	var open []string
	bold, plain := false, false
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			open = append(open, tok.Name.Local)
		case xml.EndElement:
			if len(open) == 0 {
				t.Text = sb.String()
				t.Bold = bold && !plain
				return nil
			}
			open = open[:len(open)-1]
		case xml.CharData:
			sb.Write(tok)
			if len(bytes.TrimSpace(tok)) == 0 {
				continue
			}
			if slices.Contains(open, "b") {
				bold = true
			} else {
				plain = true
			}
		}
	}
}
