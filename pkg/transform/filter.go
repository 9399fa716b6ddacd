// File: pkg/transform/filter.go
package transform

import (
	"strings"

	"codeonly/pkg/ignore"
)

// PathFilter decides which directories are descended into and which files
// count as code. It never touches the filesystem.
type PathFilter struct {
	excludedDirs map[string]struct{}
	extensions   map[string]struct{}
	ignores      *ignore.Matcher
}

// NewPathFilter builds a filter from directory names and extensions.
// Both are normalized to lower case; extensions may carry a leading dot.
// A nil matcher disables pattern-based ignores.
func NewPathFilter(excludedDirs, extensions []string, ignores *ignore.Matcher) *PathFilter {
	f := &PathFilter{
		excludedDirs: make(map[string]struct{}, len(excludedDirs)),
		extensions:   make(map[string]struct{}, len(extensions)),
		ignores:      ignores,
	}
	for _, name := range excludedDirs {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			f.excludedDirs[name] = struct{}{}
		}
	}
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext != "" {
			f.extensions[ext] = struct{}{}
		}
	}
	return f
}

// ShouldDescend reports whether a directory with this name may be entered.
func (f *PathFilter) ShouldDescend(dirName string) bool {
	_, excluded := f.excludedDirs[strings.ToLower(dirName)]
	return !excluded
}

// IsCodeFile reports whether fileName carries an allowed extension.
// Names without a dot, with only a leading dot, or ending in a dot never qualify.
func (f *PathFilter) IsCodeFile(fileName string) bool {
	lastDot := strings.LastIndex(fileName, ".")
	if lastDot <= 0 || lastDot == len(fileName)-1 {
		return false
	}
	_, ok := f.extensions[strings.ToLower(fileName[lastDot+1:])]
	return ok
}

// Ignored reports whether relPath (slash-separated, relative to the root)
// matches a configured ignore pattern.
func (f *PathFilter) Ignored(relPath string, isDir bool) bool {
	return f.ignores.Match(relPath, isDir)
}
