// Package pdftohtml runs the poppler pdftohtml tool to turn a PDF into the
// pdf2xml format read by package pdfxml.
//
//	runner := pdftohtml.NewRunner()
//	reader, err := runner.Open(ctx, "book.pdf")
//
// The tool must be installed separately. Set Runner.Keep to inspect the
// intermediate XML.
package pdftohtml
