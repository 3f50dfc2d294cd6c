// Package htmlout writes a converted document as HTML.
//
// The page carries no styles and no page breaks: one <p> or <h2> element
// per paragraph, each on its own line.
//
//	w := htmlout.NewWriter()
//	w.Encoding = "iso-8859-1"
//	err := w.WriteFile("book.html", doc)
package htmlout
