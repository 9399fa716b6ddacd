package transform

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// setupTestDir creates <tmp>/proj populated from structure and returns its
// path. Keys ending in "/" are created as empty directories.
func setupTestDir(t *testing.T, structure map[string]string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "proj")
	require.NoError(t, os.MkdirAll(root, 0755))

	paths := make([]string, 0, len(structure))
	for p := range structure {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, relPath := range paths {
		absPath := filepath.Join(root, filepath.FromSlash(relPath))
		if strings.HasSuffix(relPath, "/") {
			require.NoError(t, os.MkdirAll(absPath, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(absPath), 0755))
		require.NoError(t, os.WriteFile(absPath, []byte(structure[relPath]), 0644), "Failed to write file: %s", absPath)
	}
	return root
}

// newTestEngine builds an engine on the real filesystem with a test logger.
func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	engine, err := New(cfg, nil, zaptest.NewLogger(t))
	require.NoError(t, err)
	return engine
}

// fileBlock renders the expected text of one file block.
func fileBlock(depth int, name, content string) string {
	return strings.Repeat(indentUnit, depth) + "[File: " + name + "]\n" +
		SeparatorRule + "\n" + content + "\n" + SeparatorRule + "\n"
}

// dirHeader renders the expected directory header line.
func dirHeader(depth int, name string) string {
	return strings.Repeat(indentUnit, depth) + "[Directory: " + name + "]\n"
}

// assertNoFile fails when path exists.
func assertNoFile(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.True(t, errors.Is(err, fs.ErrNotExist), "expected no file at %s, stat error: %v", path, err)
}

// faultyFS wraps the OS filesystem and fails selected operations.
type faultyFS struct {
	OSFileSystem
	readErrs map[string]error // keyed by base name
	listErrs map[string]error // keyed by base name
	writeErr error
	writes   []string
}

func (f *faultyFS) ReadFile(path string) ([]byte, error) {
	if err, ok := f.readErrs[filepath.Base(path)]; ok {
		return nil, err
	}
	return f.OSFileSystem.ReadFile(path)
}

func (f *faultyFS) ReadDir(path string) ([]fs.DirEntry, error) {
	if err, ok := f.listErrs[filepath.Base(path)]; ok {
		return nil, err
	}
	return f.OSFileSystem.ReadDir(path)
}

func (f *faultyFS) WriteFile(path string, data []byte) error {
	f.writes = append(f.writes, path)
	if f.writeErr != nil {
		return f.writeErr
	}
	return f.OSFileSystem.WriteFile(path, data)
}
