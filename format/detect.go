// Package format provides input format detection for pdf2html.
package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a file format pdf2html reads or writes.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// PDFXML indicates the positioned-text XML written by "pdftohtml -xml".
	PDFXML
	// HTML indicates an HTML document.
	HTML
)

// sniffLen is how much of a file is inspected for magic bytes.
const sniffLen = 512

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case PDFXML:
		return "PDFXML"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case PDFXML:
		return ".xml"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// Convertible reports whether pdf2html accepts the format as input.
func (f Format) Convertible() bool {
	return f == PDF || f == PDFXML
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".xml":
		return PDFXML
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format.
// An XML document counts as PDFXML only when its root is <pdf2xml>.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}

	data = bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(data) == 0 {
		return Unknown
	}
	upper := strings.ToUpper(string(data[:min(sniffLen, len(data))]))

	if strings.HasPrefix(upper, "<?XML") || strings.HasPrefix(upper, "<!DOCTYPE PDF2XML") || strings.HasPrefix(upper, "<PDF2XML") {
		if strings.Contains(upper, "<PDF2XML") {
			return PDFXML
		}
		if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
			return HTML
		}
		return Unknown
	}

	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return HTML
	}
	return Unknown
}

// DetectFromReader reads up to the first 512 bytes of r and inspects them.
func DetectFromReader(r io.Reader) (Format, error) {
	magic := make([]byte, sniffLen)
	n, err := io.ReadFull(r, magic)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// DetectFile inspects the file's content, falling back to its extension
// when the content is not recognized.
func DetectFile(filename string) (Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Unknown, fmt.Errorf("detect format: %w", err)
	}
	defer f.Close()

	format, err := DetectFromReader(f)
	if err != nil {
		return Unknown, fmt.Errorf("detect format: %w", err)
	}
	if format != Unknown {
		return format, nil
	}
	return Detect(filename), nil
}
