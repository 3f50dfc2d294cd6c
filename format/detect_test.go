package format

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "PDF"},
		{PDFXML, "PDFXML"},
		{HTML, "HTML"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, ".pdf"},
		{PDFXML, ".xml"},
		{HTML, ".html"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Convertible(t *testing.T) {
	if !PDF.Convertible() || !PDFXML.Convertible() {
		t.Error("PDF and PDFXML should be convertible")
	}
	if HTML.Convertible() || Unknown.Convertible() {
		t.Error("HTML and Unknown should not be convertible")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.pdf", PDF},
		{"document.PDF", PDF},
		{"document.Pdf", PDF},
		{"data.xml", PDFXML},
		{"data.XML", PDFXML},
		{"document.html", HTML},
		{"document.HTML", HTML},
		{"document.htm", HTML},
		{"document.txt", Unknown},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/file.pdf", PDF},
		{"/path/to/file.xml", PDFXML},
		{"/path/to/file.html", HTML},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "PDF magic bytes",
			data: []byte("%PDF-1.4"),
			want: PDF,
		},
		{
			name: "PDF minimal",
			data: []byte("%PDF"),
			want: PDF,
		},
		{
			name: "pdf2xml with declaration and doctype",
			data: []byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<!DOCTYPE pdf2xml SYSTEM \"pdf2xml.dtd\">\n\n<pdf2xml producer=\"poppler\" version=\"22.02.0\">"),
			want: PDFXML,
		},
		{
			name: "bare pdf2xml root",
			data: []byte("<pdf2xml>\n<page number=\"1\">"),
			want: PDFXML,
		},
		{
			name: "other XML",
			data: []byte("<?xml version=\"1.0\"?>\n<feed>"),
			want: Unknown,
		},
		{
			name: "XHTML",
			data: []byte("<?xml version=\"1.0\"?>\n<html xmlns=\"http://www.w3.org/1999/xhtml\">"),
			want: HTML,
		},
		{
			name: "HTML with DOCTYPE",
			data: []byte("<!DOCTYPE html>\n<html>"),
			want: HTML,
		},
		{
			name: "HTML with html tag",
			data: []byte("<html><head>"),
			want: HTML,
		},
		{
			name: "HTML with whitespace before DOCTYPE",
			data: []byte("  \n  <!DOCTYPE HTML PUBLIC"),
			want: HTML,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "random data",
			data: []byte{0x01, 0x02, 0x03, 0x04, 0x05},
			want: Unknown,
		},
		{
			name: "text file",
			data: []byte("Hello, World!"),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_PDF(t *testing.T) {
	data := []byte("%PDF-1.4\n%%EOF")

	format, err := DetectFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != PDF {
		t.Errorf("DetectFromReader() = %v, want PDF", format)
	}
}

func TestDetectFromReader_LongInput(t *testing.T) {
	data := append([]byte("<pdf2xml>"), bytes.Repeat([]byte(" "), 4096)...)

	format, err := DetectFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != PDFXML {
		t.Errorf("DetectFromReader() = %v, want PDFXML", format)
	}
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()

	// content wins over a misleading extension
	xmlAsPDF := filepath.Join(dir, "data.pdf")
	if err := os.WriteFile(xmlAsPDF, []byte("<pdf2xml></pdf2xml>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, err := DetectFile(xmlAsPDF); err != nil || got != PDFXML {
		t.Errorf("DetectFile(%q) = %v, %v, want PDFXML", xmlAsPDF, got, err)
	}

	// unrecognized content falls back to the extension
	empty := filepath.Join(dir, "empty.pdf")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if got, err := DetectFile(empty); err != nil || got != PDF {
		t.Errorf("DetectFile(%q) = %v, %v, want PDF", empty, got, err)
	}

	if _, err := DetectFile(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("DetectFile() on a missing file should fail")
	}
}
