// Package icons maps file types to inline SVG icons for the listing page.
// The built-in set is embedded; a YAML file with the same shape can override
// individual entries:
//
//	icons:
//	  image: <svg ...>...</svg>
//
// All markup is sanitized with an SVG-only policy before use.
package icons

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fileview/pkg/files"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrEmptyIcon is returned when an icon has no markup left after sanitizing.
var ErrEmptyIcon = errors.New("icons: icon is empty after sanitizing")

// KnownTypes lists the file types the listing can show.
var KnownTypes = []files.FileType{
	files.FileTypeRoot,
	files.FileTypeDir,
	files.FileTypeFile,
	files.FileTypeText,
	files.FileTypeImage,
	files.FileTypeVideo,
	files.FileTypeAudio,
}

type document struct {
	Icons map[string]string `yaml:"icons"`
}

// Set resolves icons by file type. The zero value has no icons.
type Set struct {
	icons map[string]string
}

// Default returns the embedded icon set.
func Default() *Set {
	set, err := Parse(defaultsYAML, "defaults.yaml")
	if err != nil {
		panic(err)
	}
	return set
}

// Parse reads an icon set from YAML. name is used in error messages.
func Parse(data []byte, name string) (*Set, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("icons: parse %s: %w", name, err)
	}

	set := &Set{icons: make(map[string]string, len(doc.Icons))}
	for key, markup := range doc.Icons {
		fileType := normaliseType(key)
		if fileType == "" {
			return nil, fmt.Errorf("icons: %s: empty file type key", name)
		}
		clean := Sanitize(markup)
		if clean == "" {
			return nil, fmt.Errorf("%w: %s: %q", ErrEmptyIcon, name, fileType)
		}
		set.icons[fileType] = clean
	}
	return set, nil
}

// LoadFile reads an icon set from a YAML file on disk.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("icons: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads an icon set from name inside fsys.
func LoadFS(fsys fs.FS, name string) (*Set, error) {
	if fsys == nil {
		return nil, errors.New("icons: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("icons: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Merge returns a new set holding s's icons overridden by other's.
func (s *Set) Merge(other *Set) *Set {
	merged := &Set{icons: make(map[string]string)}
	for _, src := range []*Set{s, other} {
		if src == nil {
			continue
		}
		for key, markup := range src.icons {
			merged.icons[key] = markup
		}
	}
	return merged
}

// For returns the icon for a record: its exact type, then the directory icon
// for directory records, then the generic file icon. It returns "" when none
// of those exist.
func (s *Set) For(record files.Record) string {
	if s == nil {
		return ""
	}
	if record != nil {
		if markup, ok := s.icons[normaliseType(record.FileType())]; ok {
			return markup
		}
	}
	if files.IsDir(record) {
		if markup, ok := s.icons[string(files.FileTypeDir)]; ok {
			return markup
		}
	}
	return s.icons[string(files.FileTypeFile)]
}

// Types lists the file types with an icon, sorted.
func (s *Set) Types() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.icons))
	for key := range s.icons {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Missing lists the known file types that have no icon of their own.
func (s *Set) Missing() []string {
	var out []string
	for _, fileType := range KnownTypes {
		if s == nil {
			out = append(out, string(fileType))
			continue
		}
		if _, ok := s.icons[string(fileType)]; !ok {
			out = append(out, string(fileType))
		}
	}
	return out
}

func normaliseType(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
