// File: pkg/transform/count.go
package transform

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// prober counts qualifying files without reading them.
type prober struct {
	fsys   FileSystem
	filter *PathFilter
	logger *zap.Logger
}

// count walks dir without a depth bound and stops once maxFiles files have
// been seen. The result never exceeds maxFiles.
func (p *prober) count(root, dir string, maxFiles int) (int, error) {
	entries, err := sortedEntries(p.fsys, dir)
	if err != nil {
		p.logger.Warn("Failed to list directory during count", zap.String("directory", dir), zap.Error(err))
		return 0, fmt.Errorf("%w: failed to list directory %s: %v", ErrIO, dir, err)
	}

	count := 0
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		rel := relativeTo(root, path)

		if entry.IsDir() {
			if p.filter.ShouldDescend(entry.Name()) && !p.filter.Ignored(rel, true) {
				sub, err := p.count(root, path, maxFiles-count)
				if err != nil {
					return 0, err
				}
				count += sub
			}
		} else if p.filter.IsCodeFile(entry.Name()) && isFileEntry(p.fsys, entry, path) && !p.filter.Ignored(rel, false) {
			count++
		}

		if count >= maxFiles {
			break
		}
	}
	return min(count, maxFiles), nil
}
