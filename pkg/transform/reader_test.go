package transform

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestTruncationNotice(t *testing.T) {
	assert.Equal(t, "\n... (file truncated due to size limit of 1000000 characters) ...", TruncationNotice(1000000))
}

func TestContentReader_Read(t *testing.T) {
	reader, err := NewContentReader(OSFileSystem{}, DefaultEncoding)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		content  string
		maxChars int
		expected string
	}{
		{name: "Short file", content: "hello", maxChars: 10, expected: "hello"},
		{name: "Exact length", content: "hello", maxChars: 5, expected: "hello"},
		{name: "Truncated", content: "hello world", maxChars: 5, expected: "hello" + TruncationNotice(5)},
		{name: "Counts code points", content: "日本語のテキスト", maxChars: 3, expected: "日本語" + TruncationNotice(3)},
		{name: "Multibyte at limit", content: "ééé", maxChars: 3, expected: "ééé"},
		{name: "Empty file", content: "", maxChars: 1, expected: ""},
		{name: "Line endings preserved", content: "a\r\nb\n", maxChars: 100, expected: "a\r\nb\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTestFile(t, "f.txt", []byte(tc.content))
			got, err := reader.Read(path, tc.maxChars)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestContentReader_TruncatedLength(t *testing.T) {
	reader, err := NewContentReader(OSFileSystem{}, DefaultEncoding)
	require.NoError(t, err)
	path := writeTestFile(t, "big.go", []byte(strings.Repeat("x", 2000)))

	got, err := reader.Read(path, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000+len(TruncationNotice(1000)), len(got))
	assert.True(t, strings.HasSuffix(got, TruncationNotice(1000)))
}

func TestContentReader_Errors(t *testing.T) {
	reader, err := NewContentReader(OSFileSystem{}, DefaultEncoding)
	require.NoError(t, err)
	dir := t.TempDir()
	valid := writeTestFile(t, "ok.go", []byte("package ok"))

	_, err = reader.Read(filepath.Join(dir, "missing.go"), 10)
	assert.True(t, errors.Is(err, ErrIO), "missing file: %v", err)

	_, err = reader.Read(dir, 10)
	assert.True(t, errors.Is(err, ErrIO), "directory: %v", err)

	invalid := writeTestFile(t, "bad.go", []byte{'o', 'k', 0xff, 0xfe})
	_, err = reader.Read(invalid, 10)
	assert.True(t, errors.Is(err, ErrIO), "invalid utf-8: %v", err)

	_, err = reader.Read(valid, 0)
	assert.True(t, errors.Is(err, ErrInvalidConfig), "zero ceiling: %v", err)
}

func TestContentReader_LegacyEncoding(t *testing.T) {
	reader, err := NewContentReader(OSFileSystem{}, "iso-8859-1")
	require.NoError(t, err)
	path := writeTestFile(t, "legacy.c", []byte{'c', 'a', 'f', 0xe9})

	got, err := reader.Read(path, 10)
	require.NoError(t, err)
	assert.Equal(t, "café", got)
}

func TestNewContentReader_UnknownEncoding(t *testing.T) {
	_, err := NewContentReader(OSFileSystem{}, "not-an-encoding")
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}
