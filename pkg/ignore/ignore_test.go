package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestMatch(t *testing.T) {
	testCases := []struct {
		name     string
		pattern  string
		path     string
		isDir    bool
		expected bool
	}{
		{name: "Extension at root", pattern: "*.log", path: "app.log", expected: true},
		{name: "Extension nested", pattern: "*.log", path: "logs/app.log", expected: true},
		{name: "Extension mismatch", pattern: "*.log", path: "app.go", expected: false},
		{name: "Star stays in segment", pattern: "src*", path: "src/main.go", expected: true},
		{name: "Directory pattern on directory", pattern: "build/", path: "build", isDir: true, expected: true},
		{name: "Directory pattern on file", pattern: "build/", path: "build", expected: false},
		{name: "Directory pattern on child", pattern: "build/", path: "build/out.go", expected: true},
		{name: "Directory pattern nested", pattern: "build/", path: "cmd/build", isDir: true, expected: true},
		{name: "Anchored at root", pattern: "/root.go", path: "root.go", expected: true},
		{name: "Anchored elsewhere", pattern: "/root.go", path: "sub/root.go", expected: false},
		{name: "Folder glob anchors", pattern: "docs/*.md", path: "docs/a.md", expected: true},
		{name: "Folder glob anchored elsewhere", pattern: "docs/*.md", path: "x/docs/a.md", expected: false},
		{name: "Leading double star", pattern: "**/gen", path: "a/b/gen", isDir: true, expected: true},
		{name: "Leading double star at root", pattern: "**/gen", path: "gen", isDir: true, expected: true},
		{name: "Middle double star direct", pattern: "a/**/b", path: "a/b", expected: true},
		{name: "Middle double star deep", pattern: "a/**/b", path: "a/x/y/b", expected: true},
		{name: "Trailing double star", pattern: "src/**", path: "src/x/y.go", expected: true},
		{name: "Dot is literal", pattern: "a.go", path: "abgo", expected: false},
		{name: "Escaped hash", pattern: `\#notes`, path: "#notes", expected: true},
		{name: "Leading dot-slash path", pattern: "*.tmp", path: "./x.tmp", expected: true},
		{name: "Surrounding whitespace", pattern: "  *.bak  ", path: "old.bak", expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := New(zaptest.NewLogger(t))
			m.Compile(tc.pattern)
			require.Equal(t, 1, m.Len())
			assert.Equal(t, tc.expected, m.Match(tc.path, tc.isDir))
		})
	}
}

func TestMatch_EscapedWildcardIsLiteral(t *testing.T) {
	m := New(nil)
	m.Compile(`a\*.go`)

	assert.True(t, m.Match("a*.go", false))
	assert.True(t, m.Match("pkg/a*.go", false))
	assert.False(t, m.Match("aX.go", false))
	assert.False(t, m.Match(`a\X.go`, false))
	assert.False(t, m.Match("a.go", false))
}

func TestMatch_LastPatternWins(t *testing.T) {
	m := New(nil)
	m.Compile("*.go", "!keep.go")

	assert.True(t, m.Match("drop.go", false))
	assert.False(t, m.Match("keep.go", false))
	assert.False(t, m.Match("sub/keep.go", false))

	matched, p := m.MatchWithPattern("drop.go", false)
	assert.True(t, matched)
	require.NotNil(t, p)
	assert.Equal(t, "*.go", p.Line)
	assert.Equal(t, 1, p.LineNo)
	assert.False(t, p.Negate)
}

func TestMatch_ReincludedThenIgnoredAgain(t *testing.T) {
	m := New(nil)
	m.Compile("*.go", "!main.go", "main.go")

	assert.True(t, m.Match("main.go", false))
}

func TestCompile_SkipsBlanksAndComments(t *testing.T) {
	m := New(nil)
	m.Compile("", "   ", "# comment", "#", "/", "!")
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Match("anything.go", false))
	assert.False(t, m.Match("dir", true))
}

func TestCompileData(t *testing.T) {
	m := New(nil)
	m.CompileData([]byte("# generated\r\n*.pb.go\r\n\r\nvendor/\n"))

	assert.Equal(t, 2, m.Len())
	assert.True(t, m.Match("api/x.pb.go", false))
	assert.True(t, m.Match("vendor", true))
	assert.False(t, m.Match("main.go", false))
}

func TestCompile_Incremental(t *testing.T) {
	m := New(nil)
	m.Compile("*.log")
	m.CompileData([]byte("tmp/\n"))

	assert.Equal(t, 2, m.Len())
	assert.True(t, m.Match("x.log", false))
	assert.True(t, m.Match("tmp", true))
}

func TestNilMatcher(t *testing.T) {
	var m *Matcher
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Match("a.go", false))
	matched, p := m.MatchWithPattern("a.go", false)
	assert.False(t, matched)
	assert.Nil(t, p)
}
