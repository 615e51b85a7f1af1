package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"migration-advisor/src/config"
	"migration-advisor/src/util"
)

// Scanner locates source files under a root directory
type Scanner struct {
	extensions map[string]bool
	excludes   *util.ExclusionMatcher
}

// NewScanner creates a scanner from extractor config
func NewScanner(cfg config.ExtractorConfig) *Scanner {
	exts := make(map[string]bool, len(cfg.Extensions))
	for _, e := range cfg.Extensions {
		exts[strings.ToLower(e)] = true
	}
	return &Scanner{
		extensions: exts,
		excludes:   util.NewExclusionMatcher(cfg.ExcludePatterns),
	}
}

// Scan walks root recursively and returns matching file paths in sorted
// order, so downstream merging is independent of directory iteration order.
func (s *Scanner) Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			util.Warn("skipping %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			switch d.Name() {
			case ".git", ".svn", ".hg":
				return filepath.SkipDir
			}
			return nil
		}
		if !s.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if s.excludes.Matches(filepath.ToSlash(rel)) {
			util.Debug("excluded %s", rel)
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
