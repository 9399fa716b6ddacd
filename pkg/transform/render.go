// File: pkg/transform/render.go
package transform

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Output grammar markers.
const (
	fileMarker    = "[File:"
	indentUnit    = "  "
	lineSeparator = "\n"
)

// SeparatorRule is the 80-character rule framing file content and the summary.
var SeparatorRule = strings.Repeat("=", 80)

// traversal is the mutable state of one Transform call. It is owned by that
// call alone; depth travels by value through the recursion instead.
type traversal struct {
	sourceRoot     string
	filesProcessed int
}

// renderer walks one tree and produces the artifact body.
type renderer struct {
	cfg    Config
	fsys   FileSystem
	filter *PathFilter
	reader *ContentReader
	logger *zap.Logger
}

// containsFileBlock reports whether a fragment holds at least one file block.
func containsFileBlock(fragment string) bool {
	return strings.Contains(fragment, fileMarker)
}

// renderDirectory renders dir at depth. The caller decides whether to keep
// the fragment; only the header is unconditional.
func (r *renderer) renderDirectory(dir string, depth int, tc *traversal) (string, error) {
	var b strings.Builder
	indent := strings.Repeat(indentUnit, depth)
	fmt.Fprintf(&b, "%s[Directory: %s]%s", indent, filepath.Base(dir), lineSeparator)

	entries, err := sortedEntries(r.fsys, dir)
	if err != nil {
		r.logger.Error("Failed to list directory", zap.String("directory", dir), zap.Error(err))
		return "", fmt.Errorf("%w: failed to list directory %s: %v", ErrIO, dir, err)
	}

	for i, entry := range entries {
		// Raw entry position bounds the scan, qualifying or not.
		if i >= r.cfg.MaxFilesPerDirectory {
			r.logger.Debug("Per-directory entry cap reached",
				zap.String("directory", dir),
				zap.Int("limit", r.cfg.MaxFilesPerDirectory),
				zap.Int("entries", len(entries)))
			break
		}

		path := filepath.Join(dir, entry.Name())
		rel := relativeTo(tc.sourceRoot, path)

		switch {
		case entry.IsDir():
			if !r.filter.ShouldDescend(entry.Name()) || r.filter.Ignored(rel, true) {
				r.logger.Debug("Skipping excluded directory", zap.String("directory", rel))
				continue
			}
			if depth >= r.cfg.MaxDirectoryDepth {
				r.logger.Debug("Skipping directory beyond depth limit",
					zap.String("directory", rel),
					zap.Int("maxDepth", r.cfg.MaxDirectoryDepth))
				continue
			}
			sub, err := r.renderDirectory(path, depth+1, tc)
			if err != nil {
				return "", err
			}
			if containsFileBlock(sub) {
				b.WriteString(sub)
			}

		case r.filter.IsCodeFile(entry.Name()) && isFileEntry(r.fsys, entry, path):
			if r.filter.Ignored(rel, false) {
				r.logger.Debug("Skipping ignored file", zap.String("file", rel))
				continue
			}
			if tc.filesProcessed >= r.cfg.MaxTotalFiles {
				r.logger.Debug("Total file limit reached, skipping file",
					zap.String("file", rel),
					zap.Int("limit", r.cfg.MaxTotalFiles))
				continue
			}
			block, err := r.renderFile(path, depth+1)
			if err != nil {
				return "", err
			}
			b.WriteString(block)
			tc.filesProcessed++
		}
	}

	return b.String(), nil
}

// renderFile renders one file block at the given depth.
func (r *renderer) renderFile(path string, depth int) (string, error) {
	content, err := r.reader.Read(path, r.cfg.MaxFileSize)
	if err != nil {
		r.logger.Error("Failed to read file", zap.String("filePath", path), zap.Error(err))
		return "", err
	}
	r.logger.Debug("Rendered file", zap.String("filePath", path), zap.Int("contentLength", len(content)))

	var b strings.Builder
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteString("[File: ")
	b.WriteString(filepath.Base(path))
	b.WriteString("]")
	b.WriteString(lineSeparator)
	b.WriteString(SeparatorRule)
	b.WriteString(lineSeparator)
	b.WriteString(content)
	b.WriteString(lineSeparator)
	b.WriteString(SeparatorRule)
	b.WriteString(lineSeparator)
	return b.String(), nil
}

// isFileEntry reports whether entry is a file candidate. Symbolic links to
// directories are not; dangling links are, so the content reader reports them.
func isFileEntry(fsys FileSystem, entry fs.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fsys.Stat(path)
	return err != nil || !info.IsDir()
}

// relativeTo returns path relative to root using forward slashes.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
