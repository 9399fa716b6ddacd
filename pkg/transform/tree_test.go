package transform

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree(t *testing.T) {
	root := setupTestDir(t, map[string]string{
		"a.go":              "a",
		"README.md":         "docs",
		"node_modules/x.js": "x",
		"sub/b.go":          "b",
		"sub/inner/c.go":    "c",
	})

	diagram, err := newTestEngine(t, DefaultConfig()).Tree(root)
	require.NoError(t, err)

	expected := "proj/\n" +
		"├── README.md\n" +
		"├── a.go\n" +
		"└── sub/\n" +
		"    ├── b.go\n" +
		"    └── inner/\n" +
		"        └── c.go\n"
	assert.Equal(t, expected, diagram)
}

func TestTree_DepthLimitAndIgnores(t *testing.T) {
	root := setupTestDir(t, map[string]string{
		"a/b/c.go":   "c",
		"a/skip.log": "log",
		"z.go":       "z",
	})
	cfg := DefaultConfig()
	cfg.MaxDirectoryDepth = 1
	cfg.IgnorePatterns = []string{"*.log"}

	diagram, err := newTestEngine(t, cfg).Tree(root)
	require.NoError(t, err)

	expected := "proj/\n" +
		"├── a/\n" +
		"│   └── b/\n" +
		"└── z.go\n"
	assert.Equal(t, expected, diagram)
}

func TestTree_EmptyDirectory(t *testing.T) {
	root := setupTestDir(t, map[string]string{})

	diagram, err := newTestEngine(t, DefaultConfig()).Tree(root)
	require.NoError(t, err)
	assert.Equal(t, "proj/\n", diagram)
}

func TestTree_NotADirectory(t *testing.T) {
	root := setupTestDir(t, map[string]string{"a.go": "a"})

	_, err := newTestEngine(t, DefaultConfig()).Tree(filepath.Join(root, "a.go"))
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
