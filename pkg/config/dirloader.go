package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPatterns are the globs LoadDir uses when none are given.
var DefaultPatterns = []string{"**/*.yaml", "**/*.yml", "**/*.json"}

// LoadDir loads and merges every catalog file under root whose relative path
// matches one of the doublestar patterns. Files load in sorted path order so
// merges are deterministic; duplicate operation names across files surface
// through Catalog.Validate.
func LoadDir(root string, patterns ...string) (*Catalog, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat catalog directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			paths = append(paths, match)
		}
	}
	sort.Strings(paths)

	merged := &Catalog{}
	for _, path := range paths {
		if skip, err := isDir(fsys, path); err != nil || skip {
			continue
		}
		catalog, err := LoadFromFile(filepath.Join(root, path))
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merged.Merge(catalog)
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func isDir(fsys fs.FS, path string) (bool, error) {
	info, err := fs.Stat(fsys, path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
