package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RCFileName is the per-directory config file consulted next to each input
const RCFileName = ".pdf2html.yaml"

// Section is one glob-keyed block of an rc file
type Section struct {
	Pattern string
	Options Options
}

// RCFile holds the sections of an rc file in file order
type RCFile struct {
	Path     string
	Sections []Section
}

// ParseRC parses rc file contents. The document must be a mapping from
// shell glob patterns to option blocks:
//
//	"*":
//	  skip_generator: true
//	"chapter-*.pdf":
//	  header_pos: 60
//	  footer_pos: -50
func ParseRC(data []byte) (*RCFile, error) {
	rc := &RCFile{}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse rc file: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return rc, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse rc file: line %d: expected a mapping of patterns to options", doc.Line)
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		if _, err := filepath.Match(key.Value, ""); err != nil {
			return nil, fmt.Errorf("parse rc file: line %d: bad pattern %q: %w", key.Line, key.Value, err)
		}

		var opts Options
		if err := value.Decode(&opts); err != nil {
			return nil, fmt.Errorf("parse rc file: section %q: %w", key.Value, err)
		}
		rc.Sections = append(rc.Sections, Section{Pattern: key.Value, Options: opts})
	}
	return rc, nil
}

// LoadRC reads and parses the rc file at path. A missing file yields an
// empty RCFile.
func LoadRC(path string) (*RCFile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &RCFile{Path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rc file: %w", err)
	}

	rc, err := ParseRC(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	rc.Path = path
	return rc, nil
}

// RCPathFor returns the rc file path consulted for an input file
func RCPathFor(input string) string {
	return filepath.Join(filepath.Dir(input), RCFileName)
}

// Apply overlays every section whose pattern matches filename onto base, in
// file order. A pattern matches either the whole filename or its base name.
// The patterns that applied are returned alongside.
func (rc *RCFile) Apply(base Options, filename string) (Options, []string) {
	if rc == nil {
		return base, nil
	}

	var applied []string
	name := filepath.Base(filename)
	for _, s := range rc.Sections {
		if !matches(s.Pattern, filename) && !matches(s.Pattern, name) {
			continue
		}
		base = base.Merge(s.Options)
		applied = append(applied, s.Pattern)
	}
	return base, applied
}

func matches(pattern, name string) bool {
	ok, err := filepath.Match(pattern, name)
	return err == nil && ok
}
