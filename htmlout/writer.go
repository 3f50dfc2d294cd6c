package htmlout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/tsawler/pdf2html/model"
)

var (
	// ErrNoDocument is returned when asked to render a nil document
	ErrNoDocument = errors.New("htmlout: nil document")

	// ErrUnsupportedEncoding is returned for an output encoding label the
	// WHATWG encoding index does not know
	ErrUnsupportedEncoding = errors.New("unsupported output encoding")
)

// Writer serializes a document as a minimal HTML page: a head with the
// declared charset, an optional generator tag and a title, then a body with
// one element per paragraph, each on its own line.
type Writer struct {
	// Encoding overrides the document's declared output encoding.
	// Any label known to the WHATWG encoding index is accepted.
	Encoding string

	// Generator overrides the document's generator meta value
	Generator string

	// DefaultTitle is the page title when the document has none
	DefaultTitle string
}

// NewWriter creates a writer that follows the document's metadata
func NewWriter() *Writer {
	return &Writer{}
}

// Render builds the HTML tree for doc
func (w *Writer) Render(doc *model.Document) (*html.Node, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	_, charset, err := w.encoding(doc)
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.DocumentNode}
	htmlNode := element(atom.Html)
	root.AppendChild(htmlNode)
	htmlNode.AppendChild(textNode("\n"))

	head := element(atom.Head)
	htmlNode.AppendChild(head)
	htmlNode.AppendChild(textNode("\n"))
	head.AppendChild(textNode("\n"))
	appendLine(head, element(atom.Meta,
		attr("http-equiv", "content-type"),
		attr("content", "text/html; charset="+charset)))

	generator := doc.Metadata.Generator
	if w.Generator != "" {
		generator = w.Generator
	}
	if generator != "" {
		appendLine(head, element(atom.Meta,
			attr("name", "generator"),
			attr("content", generator)))
	}

	title := doc.Metadata.Title
	if title == "" {
		title = w.DefaultTitle
	}
	appendLine(head, withText(element(atom.Title), title))

	body := element(atom.Body)
	htmlNode.AppendChild(body)
	htmlNode.AppendChild(textNode("\n"))
	body.AppendChild(textNode("\n"))

	if doc.Metadata.Title != "" {
		appendLine(body, withText(element(atom.H1), doc.Metadata.Title))
	}
	if doc.Metadata.Subtitle != "" {
		appendLine(body, withText(element(atom.H2), doc.Metadata.Subtitle))
	}

	for _, p := range doc.Paragraphs {
		a := atom.P
		if p.Kind == model.KindHeading {
			a = atom.H2
		}
		appendLine(body, withText(element(a), p.Text))
	}

	return root, nil
}

// Write renders doc to out in the declared encoding. Characters the
// encoding cannot represent are written as numeric character references.
func (w *Writer) Write(out io.Writer, doc *model.Document) error {
	root, err := w.Render(doc)
	if err != nil {
		return err
	}
	enc, _, err := w.encoding(doc)
	if err != nil {
		return err
	}

	if isUTF8(enc) {
		return html.Render(out, root)
	}

	tw := transform.NewWriter(out, encoding.HTMLEscapeUnsupported(enc.NewEncoder()))
	if err := html.Render(tw, root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return tw.Close()
}

// Bytes renders doc into a byte slice
func (w *Writer) Bytes(doc *model.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders doc to the named file. When neither the document nor
// the writer sets a title, the file's base name is used.
func (w *Writer) WriteFile(filename string, doc *model.Document) error {
	clone := *w
	if clone.DefaultTitle == "" {
		clone.DefaultTitle = filepath.Base(filename)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := clone.Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// encoding resolves the output encoding and the charset name to declare
func (w *Writer) encoding(doc *model.Document) (encoding.Encoding, string, error) {
	label := doc.Metadata.Encoding
	if w.Encoding != "" {
		label = w.Encoding
	}
	return ResolveEncoding(label)
}

// ResolveEncoding looks up an output encoding label and returns the
// encoding with the charset name to declare. An empty label is UTF-8.
func ResolveEncoding(label string) (encoding.Encoding, string, error) {
	if label == "" {
		label = "utf-8"
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", fmt.Errorf("%w %q: %v", ErrUnsupportedEncoding, label, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, "", fmt.Errorf("%w %q: %v", ErrUnsupportedEncoding, label, err)
	}
	return enc, strings.ToUpper(name), nil
}

func isUTF8(enc encoding.Encoding) bool {
	name, err := htmlindex.Name(enc)
	return err == nil && name == "utf-8"
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	if s != "" {
		n.AppendChild(textNode(s))
	}
	return n
}

// appendLine adds child to parent followed by a line break
func appendLine(parent, child *html.Node) {
	parent.AppendChild(child)
	parent.AppendChild(textNode("\n"))
}
