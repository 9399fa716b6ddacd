// File: pkg/transform/config.go
package transform

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Default limits applied when no configuration overrides them.
const (
	DefaultMaxFilesPerDirectory = 100       // Entries scanned per directory level
	DefaultMaxDirectoryDepth    = 5         // Deepest directory level descended into
	DefaultMaxTotalFiles        = 500       // File blocks emitted per transform
	DefaultMaxFilesThreshold    = 300       // Pre-flight "too large" threshold
	DefaultMaxFileSize          = 1_000_000 // Per-file character ceiling
	DefaultEncoding             = "utf-8"
)

// DefaultExcludedDirs lists directory names that are never descended into.
var DefaultExcludedDirs = []string{
	".git", "node_modules", "__pycache__", "target", "build",
	"dist", "out", "bin", ".idea", ".vscode",
}

// DefaultCodeFileExtensions lists the extensions treated as code files.
var DefaultCodeFileExtensions = []string{
	// General purpose
	"java", "py", "js", "ts", "cpp", "c", "h", "hpp", "cs", "go", "rs", "rb",
	// Web and JVM/Apple
	"php", "scala", "kt", "kts", "groovy", "swift", "m", "mm",
	// Shell and scripts
	"sh", "bash", "ps1", "bat", "cmd",
	// Other
	"r", "pl", "pm", "t", "sql", "lua", "elm", "erl", "ex", "exs",
}

// Config holds the limits and selection rules for one Engine.
// It is treated as immutable once passed to New.
type Config struct {
	MaxFilesPerDirectory int      `mapstructure:"max_files_per_directory"` // Raw entries considered per directory.
	MaxDirectoryDepth    int      `mapstructure:"max_directory_depth"`     // Root is depth 0.
	MaxTotalFiles        int      `mapstructure:"max_total_files"`         // Cap on emitted file blocks.
	MaxFilesThreshold    int      `mapstructure:"max_files_threshold"`     // Pre-flight rejection threshold.
	MaxFileSize          int      `mapstructure:"max_file_size"`           // Characters kept per file before truncation.
	ExcludedDirs         []string `mapstructure:"excluded_dirs"`           // Directory names never descended into.
	CodeFileExtensions   []string `mapstructure:"code_file_extensions"`    // Extensions without the leading dot.
	IgnorePatterns       []string `mapstructure:"ignore_patterns"`         // Gitignore-style patterns relative to the root.
	GlobalIgnoreFile     string   `mapstructure:"global_ignore_file"`      // Ignore file applied to every root, before its own.
	Encoding             string   `mapstructure:"encoding"`                // Text encoding used to decode files.
	IncludeSummary       bool     `mapstructure:"include_summary"`         // Prepend the summary header.
	AllowEmpty           bool     `mapstructure:"allow_empty"`             // Treat "no code files" as success.
	OutputPath           string   `mapstructure:"output_path"`             // Overrides the derived output path.
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		MaxFilesPerDirectory: DefaultMaxFilesPerDirectory,
		MaxDirectoryDepth:    DefaultMaxDirectoryDepth,
		MaxTotalFiles:        DefaultMaxTotalFiles,
		MaxFilesThreshold:    DefaultMaxFilesThreshold,
		MaxFileSize:          DefaultMaxFileSize,
		ExcludedDirs:         append([]string(nil), DefaultExcludedDirs...),
		CodeFileExtensions:   append([]string(nil), DefaultCodeFileExtensions...),
		Encoding:             DefaultEncoding,
		IncludeSummary:       true,
	}
}

// Validate reports the first invalid setting, if any.
func (c Config) Validate() error {
	switch {
	case c.MaxFilesPerDirectory <= 0:
		return fmt.Errorf("%w: max_files_per_directory must be positive, got %d", ErrInvalidConfig, c.MaxFilesPerDirectory)
	case c.MaxDirectoryDepth < 0:
		return fmt.Errorf("%w: max_directory_depth must not be negative, got %d", ErrInvalidConfig, c.MaxDirectoryDepth)
	case c.MaxTotalFiles <= 0:
		return fmt.Errorf("%w: max_total_files must be positive, got %d", ErrInvalidConfig, c.MaxTotalFiles)
	case c.MaxFilesThreshold <= 0:
		return fmt.Errorf("%w: max_files_threshold must be positive, got %d", ErrInvalidConfig, c.MaxFilesThreshold)
	case c.MaxFileSize <= 0:
		return fmt.Errorf("%w: max_file_size must be positive, got %d", ErrInvalidConfig, c.MaxFileSize)
	}
	if c.Encoding != "" && !isUTF8(c.Encoding) {
		if _, err := htmlindex.Get(c.Encoding); err != nil {
			return fmt.Errorf("%w: unsupported encoding %q", ErrInvalidConfig, c.Encoding)
		}
	}
	return nil
}

// isUTF8 reports whether name refers to UTF-8.
func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}
