// Package cli implements the pdf2html command line.
//
// Options are resolved per input file from, lowest to highest priority:
// built-in defaults, the global config file, the sections of the input's
// .pdf2html.yaml that match its name, PDF2HTML_* environment variables,
// and flags.
package cli
