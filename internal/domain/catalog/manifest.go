package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Manifest is the on-disk format for extra catalog entries
type Manifest struct {
	Apps []Entry `json:"apps" yaml:"apps" toml:"apps"`
}

// Discover expands a doublestar pattern (e.g. "apps/**/*.yaml") into manifest paths.
// Files with unsupported extensions are skipped. Results are sorted.
func Discover(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, nil
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, fmt.Errorf("invalid manifest pattern %q", pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		if isManifest(m) {
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func isManifest(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

// LoadFile parses a YAML or TOML manifest
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse YAML manifest %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse TOML manifest %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", path)
	}

	for _, e := range m.Apps {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return m.Apps, nil
}

// Load returns a new catalog holding c's entries followed by the entries of
// each manifest in paths, in order. Duplicate ids across files are an error.
func (c *Catalog) Load(paths ...string) (*Catalog, error) {
	var extra []Entry
	for _, p := range paths {
		entries, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		extra = append(extra, entries...)
	}
	return c.With(extra...)
}

// Build returns the default catalog extended with every manifest matching pattern.
// An empty pattern yields the default catalog.
func Build(pattern string) (*Catalog, error) {
	paths, err := Discover(pattern)
	if err != nil {
		return nil, err
	}
	return Default().Load(paths...)
}
