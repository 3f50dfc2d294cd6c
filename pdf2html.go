// Package pdf2html provides a fluent API for converting PDF files into
// paragraph-structured HTML.
//
// Basic usage:
//
//	html, warnings, err := pdf2html.Open("book.pdf").HTML(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdf2html.FormatWarnings(warnings))
//	}
//
// With options:
//
//	warnings, err := pdf2html.Open("book.pdf").
//	    Title("Collected Stories").
//	    HeaderPos(66).
//	    FooterPos(-50).
//	    SkipInitialPages(2).
//	    WriteFile(ctx, "book.html")
//
// PDF input needs the pdftohtml tool from poppler on PATH. Output of
// "pdftohtml -xml" can be converted directly with Open("data.xml") or
// FromReader.
//
// For advanced use cases, the layout, pdfxml and htmlout packages are also
// available.
package pdf2html

import (
	"fmt"
)

// Version is the release version of pdf2html
const Version = "0.5.0"

// Author is credited in the generator meta tag
const Author = "the pdf2html authors"

// Generator returns the default generator meta value
func Generator() string {
	return fmt.Sprintf("pdf2html %s by %s", Version, Author)
}

// Open returns a Converter for a PDF file or a pdf2xml file. The format is
// detected from the file's content, falling back to its extension.
//
// Example:
//
//	html, warnings, err := pdf2html.Open("document.pdf").HTML(ctx)
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	opts := pdf2html.Must(config.LoadRC(".pdf2html.yaml"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustHTML is a helper that wraps a call to HTML() or Document() and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	html := pdf2html.MustHTML(pdf2html.Open("document.pdf").HTML(ctx))
func MustHTML[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
