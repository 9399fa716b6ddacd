// Package transform renders a source directory into a single annotated text
// artifact holding the content of its code files.
package transform

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"codeonly/pkg/ignore"

	"go.uber.org/zap"
)

// OutputSuffix is appended to the source directory name to form the artifact name.
const OutputSuffix = "_code_only.txt"

// Engine runs transforms, pre-flight counts and tree diagrams with one
// immutable configuration. It is safe for concurrent use over disjoint roots.
type Engine struct {
	cfg    Config
	fsys   FileSystem
	reader *ContentReader
	logger *zap.Logger
}

// New validates cfg and builds an Engine. A nil fsys selects OSFileSystem and
// a nil logger is replaced with a no-op logger.
func New(cfg Config, fsys FileSystem, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reader, err := NewContentReader(fsys, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:    cfg,
		fsys:   fsys,
		reader: reader,
		logger: logger,
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Transform renders root, writes the artifact and reports the outcome.
// It never panics or returns an error; failures are carried in the Result.
func (e *Engine) Transform(root string) Result {
	startTime := time.Now()
	e.logger.Info("Starting transformation", zap.String("directory", root))

	absRoot, err := e.resolveRoot(root)
	if err != nil {
		e.logger.Warn("Rejected transformation input", zap.String("directory", root), zap.Error(err))
		return failure(err)
	}

	filter, err := e.filterFor(absRoot)
	if err != nil {
		e.logger.Error("Failed to load ignore patterns", zap.String("directory", absRoot), zap.Error(err))
		return failure(err)
	}

	r := &renderer{cfg: e.cfg, fsys: e.fsys, filter: filter, reader: e.reader, logger: e.logger}
	tc := &traversal{sourceRoot: absRoot}
	body, err := r.renderDirectory(absRoot, 0, tc)
	if err != nil {
		e.logger.Error("Transformation aborted", zap.String("directory", absRoot), zap.Error(err))
		return failure(err)
	}

	if !containsFileBlock(body) {
		if !e.cfg.AllowEmpty {
			e.logger.Warn("No code files found", zap.String("directory", absRoot))
			return failure(ErrNoCodeFiles)
		}
		body = ""
	}

	content := body
	if e.cfg.IncludeSummary {
		content = withSummary(body, tc, e.cfg.MaxTotalFiles)
	}

	outputPath, err := e.OutputPathFor(absRoot)
	if err != nil {
		return failure(err)
	}
	if err := e.fsys.WriteFile(outputPath, []byte(content)); err != nil {
		e.logger.Error("Failed to write output file", zap.String("file", outputPath), zap.Error(err))
		return failure(fmt.Errorf("%w: failed to write %s: %v", ErrIO, outputPath, err))
	}

	e.logger.Info("Transformation completed",
		zap.String("outputFile", outputPath),
		zap.Int("filesProcessed", tc.filesProcessed),
		zap.Bool("limitReached", limitReached(tc, e.cfg.MaxTotalFiles)),
		zap.Duration("elapsed", time.Since(startTime)))

	return Result{
		Content:        content,
		OutputPath:     outputPath,
		Success:        true,
		FilesProcessed: tc.filesProcessed,
		LimitReached:   limitReached(tc, e.cfg.MaxTotalFiles),
	}
}

// CountCodeFiles counts qualifying files under root, stopping at maxFiles.
// A root that is not a directory, or a non-positive maxFiles, yields 0.
func (e *Engine) CountCodeFiles(root string, maxFiles int) (int, error) {
	if maxFiles <= 0 {
		return 0, nil
	}
	absRoot, err := e.resolveRoot(root)
	if err != nil {
		e.logger.Debug("Count requested for non-directory", zap.String("path", root))
		return 0, nil
	}
	filter, err := e.filterFor(absRoot)
	if err != nil {
		return 0, err
	}
	p := &prober{fsys: e.fsys, filter: filter, logger: e.logger}
	count, err := p.count(absRoot, absRoot, maxFiles)
	if err != nil {
		return 0, err
	}
	e.logger.Debug("Counted code files", zap.String("directory", absRoot), zap.Int("count", count), zap.Int("ceiling", maxFiles))
	return count, nil
}

// ExceedsThreshold reports whether root holds more code files than
// MaxFilesThreshold, along with the bounded count.
func (e *Engine) ExceedsThreshold(root string) (bool, int, error) {
	count, err := e.CountCodeFiles(root, e.cfg.MaxFilesThreshold+1)
	if err != nil {
		return false, 0, err
	}
	return count > e.cfg.MaxFilesThreshold, count, nil
}

// Tree renders an ASCII diagram of root's visible entries.
func (e *Engine) Tree(root string) (string, error) {
	absRoot, err := e.resolveRoot(root)
	if err != nil {
		return "", err
	}
	filter, err := e.filterFor(absRoot)
	if err != nil {
		return "", err
	}
	d := &diagrammer{cfg: e.cfg, fsys: e.fsys, filter: filter, logger: e.logger}
	return d.diagram(absRoot)
}

// OutputPathFor returns the artifact path for root: OutputPath when
// configured, otherwise "<parent>/<name>_code_only.txt".
func (e *Engine) OutputPathFor(root string) (string, error) {
	if e.cfg.OutputPath != "" {
		return e.cfg.OutputPath, nil
	}
	clean := filepath.Clean(root)
	parent := filepath.Dir(clean)
	if parent == clean {
		return "", fmt.Errorf("%w: %s has no parent directory for the output file", ErrInvalidInput, root)
	}
	return filepath.Join(parent, filepath.Base(clean)+OutputSuffix), nil
}

// resolveRoot makes root absolute and checks it is a directory.
func (e *Engine) resolveRoot(root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("%w: empty directory path", ErrInvalidInput)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve %s: %v", ErrInvalidInput, root, err)
	}
	info, err := e.fsys.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: not a directory: %s", ErrInvalidInput, absRoot)
	}
	return absRoot, nil
}

// filterFor builds the PathFilter for one root. Patterns are layered global
// ignore file, then configured patterns, then the root's ignore file, so
// later layers can re-include what earlier ones ignore.
func (e *Engine) filterFor(absRoot string) (*PathFilter, error) {
	matcher := ignore.New(e.logger)
	if e.cfg.GlobalIgnoreFile != "" {
		data, err := e.fsys.ReadFile(e.cfg.GlobalIgnoreFile)
		if err != nil {
			e.logger.Warn("Failed to load global ignore file", zap.String("file", e.cfg.GlobalIgnoreFile), zap.Error(err))
		} else {
			matcher.CompileData(data)
			e.logger.Debug("Loaded global ignore file", zap.String("file", e.cfg.GlobalIgnoreFile), zap.Int("totalPatterns", matcher.Len()))
		}
	}
	matcher.Compile(e.cfg.IgnorePatterns...)

	ignoreFile := filepath.Join(absRoot, ignore.FileName)
	data, err := e.fsys.ReadFile(ignoreFile)
	switch {
	case err == nil:
		matcher.CompileData(data)
		e.logger.Debug("Loaded ignore file", zap.String("file", ignoreFile), zap.Int("totalPatterns", matcher.Len()))
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrIO, ignoreFile, err)
	}

	return NewPathFilter(e.cfg.ExcludedDirs, e.cfg.CodeFileExtensions, matcher), nil
}
