package pdf2html

import (
	"github.com/tsawler/pdf2html/config"
)

// set returns a copy of the Converter with one more option layer
func (c *Converter) set(opts config.Options) *Converter {
	return c.WithOptions(opts)
}

// Title sets the document title, shown as the page title and an <h1>.
func (c *Converter) Title(title string) *Converter {
	return c.set(config.Options{Title: config.String(title)})
}

// Subtitle sets the document subtitle, shown as an <h2> under the title.
func (c *Converter) Subtitle(subtitle string) *Converter {
	return c.set(config.Options{Subtitle: config.String(subtitle)})
}

// HeaderPos drops all text above y on every page.
//
// Example:
//
//	html, _, err := pdf2html.Open("doc.pdf").HeaderPos(66).HTML(ctx)
func (c *Converter) HeaderPos(y float64) *Converter {
	return c.set(config.Options{HeaderPos: config.Float(y)})
}

// FooterPos drops all text below y on every page. A value below -1 is an
// offset from the bottom of the page.
//
// Example:
//
//	html, _, err := pdf2html.Open("doc.pdf").FooterPos(-50).HTML(ctx)
func (c *Converter) FooterPos(y float64) *Converter {
	return c.set(config.Options{FooterPos: config.Float(y)})
}

// SkipInitialPages ignores the first n pages, such as a cover and a table
// of contents.
func (c *Converter) SkipInitialPages(n int) *Converter {
	return c.set(config.Options{SkipInitialPages: config.Int(n)})
}

// Leading fixes the expected gap between lines of one paragraph instead of
// calibrating it.
func (c *Converter) Leading(v float64) *Converter {
	return c.set(config.Options{Leading: config.Float(v)})
}

// Indent fixes the first-line indent instead of calibrating it.
func (c *Converter) Indent(v float64) *Converter {
	return c.set(config.Options{Indent: config.Float(v)})
}

// LeftMargin fixes the body text margin instead of calibrating it.
func (c *Converter) LeftMargin(v float64) *Converter {
	return c.set(config.Options{LeftMargin: config.Float(v)})
}

// HorizLeeway fixes the horizontal alignment tolerance instead of
// calibrating it.
func (c *Converter) HorizLeeway(v float64) *Converter {
	return c.set(config.Options{HorizLeeway: config.Float(v)})
}

// MinLineWidth ends a paragraph after any line narrower than w.
func (c *Converter) MinLineWidth(w float64) *Converter {
	return c.set(config.Options{MinLineWidth: config.Float(w)})
}

// GuessMinLineWidth derives the minimum line width from the document when
// MinLineWidth is not set.
func (c *Converter) GuessMinLineWidth() *Converter {
	return c.set(config.Options{GuessMinLineWidth: config.Bool(true)})
}

// MirrorMargins calibrates separate left margins for odd and even pages.
func (c *Converter) MirrorMargins() *Converter {
	return c.set(config.Options{MirrorMargins: config.Bool(true)})
}

// KeepHyphens disables joining words hyphenated across lines.
func (c *Converter) KeepHyphens() *Converter {
	return c.set(config.Options{JoinHyphenated: config.Bool(false)})
}

// NoHeadings emits every paragraph as <p>.
func (c *Converter) NoHeadings() *Converter {
	return c.set(config.Options{DetectHeadings: config.Bool(false)})
}

// SourceOrder keeps pdftohtml's record order instead of sorting each page
// top to bottom.
func (c *Converter) SourceOrder() *Converter {
	return c.set(config.Options{SortByPosition: config.Bool(false)})
}

// SkipGenerator omits the generator meta tag.
func (c *Converter) SkipGenerator() *Converter {
	return c.set(config.Options{SkipGenerator: config.Bool(true)})
}

// Encoding sets the output character encoding. Characters it cannot
// represent are written as character references.
func (c *Converter) Encoding(name string) *Converter {
	return c.set(config.Options{Encoding: config.String(name)})
}

// Keep leaves the extractor's intermediate XML on disk.
func (c *Converter) Keep() *Converter {
	return c.set(config.Options{Keep: config.Bool(true)})
}
