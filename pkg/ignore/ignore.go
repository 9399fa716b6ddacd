// Package ignore matches slash-separated relative paths against
// gitignore-style patterns.
package ignore

import (
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// FileName is the per-root ignore file picked up next to the sources.
const FileName = ".codeonlyignore"

// Matcher is an ordered list of patterns where the last match wins.
// A Matcher is not safe for concurrent Compile calls; matching is read-only.
type Matcher struct {
	lines   []string
	ignorer *gitignore.GitIgnore
	logger  *zap.Logger
}

// New returns an empty Matcher. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Compile adds pattern lines. Blank lines and comments are skipped.
func (m *Matcher) Compile(lines ...string) {
	added := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !isPatternLine(line) {
			continue
		}
		m.lines = append(m.lines, line)
		added++
		m.logger.Debug("Compiled ignore pattern",
			zap.Int("lineNo", len(m.lines)),
			zap.String("pattern", line))
	}
	if added > 0 {
		m.ignorer = gitignore.CompileIgnoreLines(m.lines...)
	}
}

// CompileData splits the contents of an ignore file into lines and compiles them.
func (m *Matcher) CompileData(data []byte) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	m.Compile(lines...)
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.lines)
}

// Match reports whether relPath is ignored.
func (m *Matcher) Match(relPath string, isDir bool) bool {
	matched, _ := m.MatchWithPattern(relPath, isDir)
	return matched
}

// MatchWithPattern reports whether relPath is ignored and returns the
// pattern that ignored it. Directories are matched with a trailing slash so
// that "dir/" patterns only apply to them.
func (m *Matcher) MatchWithPattern(relPath string, isDir bool) (bool, *gitignore.IgnorePattern) {
	if m == nil || m.ignorer == nil {
		return false, nil
	}
	path := strings.TrimPrefix(filepath.ToSlash(relPath), "./")
	if isDir {
		path = strings.TrimSuffix(path, "/") + "/"
	}

	matched, pattern := m.ignorer.MatchesPathHow(path)
	if matched && pattern != nil {
		m.logger.Debug("Ignore pattern matched path",
			zap.String("path", path),
			zap.String("pattern", pattern.Line),
			zap.Int("lineNo", pattern.LineNo))
	}
	return matched, pattern
}

// isPatternLine filters out blanks, comments and lines made only of
// slashes or a bare '!', which would otherwise compile to match-all rules.
func isPatternLine(line string) bool {
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}
	return strings.Trim(line, "/!") != ""
}
