// Package config merges defaults, config files, .env files, environment
// variables and command-line flags into a transform.Config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"codeonly/pkg/transform"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	EnvPrefix         = "CODEONLY"
	DefaultConfigName = "codeonly"
)

// Viper keys.
const (
	KeyMaxFilesPerDirectory = "max_files_per_directory"
	KeyMaxDirectoryDepth    = "max_directory_depth"
	KeyMaxTotalFiles        = "max_total_files"
	KeyMaxFilesThreshold    = "max_files_threshold"
	KeyMaxFileSize          = "max_file_size"
	KeyExcludedDirs         = "excluded_dirs"
	KeyCodeFileExtensions   = "code_file_extensions"
	KeyIgnorePatterns       = "ignore_patterns"
	KeyGlobalIgnoreFile     = "global_ignore_file"
	KeyEncoding             = "encoding"
	KeyIncludeSummary       = "include_summary"
	KeyAllowEmpty           = "allow_empty"
	KeyOutputPath           = "output_path"
)

// flagKeys maps flag names to the configuration keys they override.
var flagKeys = map[string]string{
	"max-files-per-dir": KeyMaxFilesPerDirectory,
	"max-depth":         KeyMaxDirectoryDepth,
	"max-total-files":   KeyMaxTotalFiles,
	"threshold":         KeyMaxFilesThreshold,
	"max-file-size":     KeyMaxFileSize,
	"ignore":            KeyIgnorePatterns,
	"global-ignore":     KeyGlobalIgnoreFile,
	"encoding":          KeyEncoding,
	"allow-empty":       KeyAllowEmpty,
	"output":            KeyOutputPath,
}

// RegisterFlags defines the configuration override flags.
func RegisterFlags(flags *pflag.FlagSet) {
	d := transform.DefaultConfig()
	flags.Int("max-files-per-dir", d.MaxFilesPerDirectory, "Maximum entries scanned per directory")
	flags.Int("max-depth", d.MaxDirectoryDepth, "Maximum directory depth (root is 0)")
	flags.Int("max-total-files", d.MaxTotalFiles, "Maximum files included in one transform")
	flags.Int("threshold", d.MaxFilesThreshold, "File count above which a tree is considered too large")
	flags.Int("max-file-size", d.MaxFileSize, "Characters kept per file before truncation")
	flags.StringArray("ignore", nil, "Gitignore-style pattern to skip (repeatable)")
	flags.String("global-ignore", "", "Ignore file applied to every directory")
	flags.String("encoding", d.Encoding, "Text encoding of source files")
}

// Load builds the configuration. cfgFile may be empty, in which case
// codeonly.{yaml,toml,json} is searched in the working directory and
// $HOME/.config/codeonly; a missing file is not an error. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet, logger *zap.Logger) (transform.Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName))
		} else {
			logger.Debug("Could not determine home directory", zap.Error(err))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			logger.Error("Failed to read configuration file", zap.String("path", cfgFile), zap.Error(err))
			return transform.Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		logger.Debug("No configuration file found, using defaults")
	} else {
		logger.Debug("Using configuration file", zap.String("path", v.ConfigFileUsed()))
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Failed to load .env file", zap.Error(err))
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return transform.Config{}, err
		}
	}

	var cfg transform.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return transform.Config{}, fmt.Errorf("error decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return transform.Config{}, err
	}

	logger.Debug("Configuration loaded",
		zap.Int(KeyMaxFilesPerDirectory, cfg.MaxFilesPerDirectory),
		zap.Int(KeyMaxDirectoryDepth, cfg.MaxDirectoryDepth),
		zap.Int(KeyMaxTotalFiles, cfg.MaxTotalFiles),
		zap.Int(KeyMaxFilesThreshold, cfg.MaxFilesThreshold),
		zap.Int(KeyMaxFileSize, cfg.MaxFileSize),
		zap.Strings(KeyIgnorePatterns, cfg.IgnorePatterns),
		zap.String(KeyGlobalIgnoreFile, cfg.GlobalIgnoreFile),
		zap.String(KeyEncoding, cfg.Encoding))
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := transform.DefaultConfig()
	v.SetDefault(KeyMaxFilesPerDirectory, d.MaxFilesPerDirectory)
	v.SetDefault(KeyMaxDirectoryDepth, d.MaxDirectoryDepth)
	v.SetDefault(KeyMaxTotalFiles, d.MaxTotalFiles)
	v.SetDefault(KeyMaxFilesThreshold, d.MaxFilesThreshold)
	v.SetDefault(KeyMaxFileSize, d.MaxFileSize)
	v.SetDefault(KeyExcludedDirs, d.ExcludedDirs)
	v.SetDefault(KeyCodeFileExtensions, d.CodeFileExtensions)
	v.SetDefault(KeyIgnorePatterns, []string{})
	v.SetDefault(KeyGlobalIgnoreFile, "")
	v.SetDefault(KeyEncoding, d.Encoding)
	v.SetDefault(KeyIncludeSummary, d.IncludeSummary)
	v.SetDefault(KeyAllowEmpty, d.AllowEmpty)
	v.SetDefault(KeyOutputPath, "")
}

// bindFlags binds the known flags present in flags. "no-summary" is the
// inverse of include_summary and is applied only when set.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	if flags.Changed("no-summary") {
		noSummary, err := flags.GetBool("no-summary")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		v.Set(KeyIncludeSummary, !noSummary)
	}
	return nil
}
