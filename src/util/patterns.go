package util

import (
	"path/filepath"
	"strings"
)

// ExclusionMatcher matches root-relative source paths against exclusion
// glob patterns. Paths are expected in slash form.
type ExclusionMatcher struct {
	patterns []string
}

// NewExclusionMatcher creates a matcher for the given glob patterns
func NewExclusionMatcher(patterns []string) *ExclusionMatcher {
	return &ExclusionMatcher{patterns: patterns}
}

// Matches checks if a path should be excluded from scanning
func (m *ExclusionMatcher) Matches(path string) bool {
	for _, pattern := range m.patterns {
		if MatchGlob(pattern, path) {
			return true
		}
	}
	return false
}

// MatchGlob matches a path against a glob pattern
func MatchGlob(pattern, path string) bool {
	if strings.Contains(pattern, "**") {
		return matchDoubleGlob(pattern, path)
	}
	matched, _ := filepath.Match(pattern, path)
	return matched
}

// matchDoubleGlob handles ** patterns in globs
func matchDoubleGlob(pattern, path string) bool {
	// Handle ** patterns by converting to a simpler check
	parts := strings.Split(pattern, "**")
	switch len(parts) {
	case 2:
		prefix := strings.TrimSuffix(parts[0], "/")
		suffix := strings.TrimPrefix(parts[1], "/")

		// Check if path contains both parts
		if prefix == "" && suffix != "" {
			return strings.HasSuffix(path, suffix) || strings.Contains(path, "/"+suffix)
		}
		if suffix == "" && prefix != "" {
			return strings.HasPrefix(path, prefix) || strings.Contains(path, prefix+"/")
		}
		if prefix != "" && suffix != "" {
			return strings.Contains(path, prefix) && strings.Contains(path, suffix)
		}
		return false
	case 3:
		// Patterns like **/test/** match any path with that directory segment
		if parts[0] != "" || parts[2] != "" {
			return false
		}
		segment := strings.Trim(parts[1], "/")
		if segment == "" {
			return false
		}
		return strings.HasPrefix(path, segment+"/") || strings.Contains(path, "/"+segment+"/")
	default:
		return false
	}
}
