// File: pkg/transform/tree.go
package transform

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Connectors used by the directory diagram.
const (
	branchConnector = "├── "
	lastConnector   = "└── "
	branchExtension = "│   "
	lastExtension   = "    "
)

// diagrammer renders an ASCII directory tree.
type diagrammer struct {
	cfg    Config
	fsys   FileSystem
	filter *PathFilter
	logger *zap.Logger
}

// diagram renders root and its visible descendants, one entry per line.
func (d *diagrammer) diagram(root string) (string, error) {
	var tree strings.Builder
	tree.WriteString(filepath.Base(root) + "/")
	tree.WriteString(lineSeparator)

	subtree, err := d.diagramRecursively(root, root, "", 0)
	if err != nil {
		return "", err
	}
	if subtree != "" {
		tree.WriteString(subtree)
		tree.WriteString(lineSeparator)
	}
	return tree.String(), nil
}

// diagramRecursively renders the children of directory. Excluded entries are
// removed before connectors are chosen so the last visible entry gets "└── ".
func (d *diagrammer) diagramRecursively(directory, root, prefix string, depth int) (string, error) {
	entries, err := sortedEntries(d.fsys, directory)
	if err != nil {
		d.logger.Warn("Failed to read directory for tree", zap.String("directory", directory), zap.Error(err))
		return "", fmt.Errorf("%w: failed to read directory %s: %v", ErrIO, directory, err)
	}

	visible := make([]fs.DirEntry, 0, len(entries))
	for _, entry := range entries {
		rel := relativeTo(root, filepath.Join(directory, entry.Name()))
		if entry.IsDir() && !d.filter.ShouldDescend(entry.Name()) {
			continue
		}
		if d.filter.Ignored(rel, entry.IsDir()) {
			continue
		}
		visible = append(visible, entry)
	}

	var output []string
	for i, entry := range visible {
		connector, extension := branchConnector, branchExtension
		if i == len(visible)-1 {
			connector, extension = lastConnector, lastExtension
		}

		if !entry.IsDir() {
			output = append(output, prefix+connector+entry.Name())
			continue
		}

		output = append(output, prefix+connector+entry.Name()+"/")
		if depth >= d.cfg.MaxDirectoryDepth {
			d.logger.Debug("Tree depth limit reached", zap.String("directory", entry.Name()))
			continue
		}
		subtree, err := d.diagramRecursively(filepath.Join(directory, entry.Name()), root, prefix+extension, depth+1)
		if err != nil {
			return "", err
		}
		if subtree != "" {
			output = append(output, subtree)
		}
	}

	return strings.Join(output, lineSeparator), nil
}
