// Package config provides configuration loading and discovery for javalint.
//
// Configuration is loaded from multiple sources with the following priority
// (highest to lowest):
//  1. CLI flags (passed as overrides)
//  2. Environment variables (JAVALINT_* prefix)
//  3. Config file (closest .javalint.toml or javalint.toml)
//  4. Built-in defaults
//
// Config file discovery walks up from the target file's directory until a
// config file is found. The closest config wins (no merging).
package config

import (
	"cmp"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigFileNames defines the config file names to search for, in priority order.
var ConfigFileNames = []string{".javalint.toml", "javalint.toml"}

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "JAVALINT_"

// Config represents the complete javalint configuration.
type Config struct {
	// Rules contains rule selection and per-rule configuration.
	Rules RulesConfig `koanf:"rules"`

	// Filters configures violation suppression.
	Filters FiltersConfig `koanf:"filters"`

	// Output configures output format and destination.
	Output OutputConfig `koanf:"output"`

	// FileValidation configures pre-parse file validation checks.
	FileValidation FileValidationConfig `koanf:"file-validation"`

	// ConfigFile is the path to the config file that was loaded (if any).
	// This is metadata, not loaded from config.
	ConfigFile string `koanf:"-"`
}

// OutputConfig configures output formatting and behavior.
type OutputConfig struct {
	// Format specifies the output format: text, json, xml, sarif, github-actions.
	Format string `koanf:"format"`

	// Path specifies where to write output ("stdout", "stderr" or a file).
	Path string `koanf:"path"`

	// ShowSource enables source code snippets in text output.
	ShowSource bool `koanf:"show-source"`

	// FailLevel sets the minimum severity that causes a non-zero exit code.
	// "none" never fails.
	FailLevel string `koanf:"fail-level"`
}

// FileValidationConfig configures pre-parse file validation checks.
//
// Example TOML configuration:
//
//	[file-validation]
//	max-file-size = 1048576
type FileValidationConfig struct {
	// MaxFileSize is the maximum file size in bytes (0 = unlimited).
	MaxFileSize int64 `koanf:"max-file-size"`
}

// Default returns the default configuration.
// Rule-specific defaults are owned by each rule via ConfigurableRule.DefaultConfig().
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:     "text",
			Path:       "stdout",
			ShowSource: true,
			FailLevel:  "info",
		},
		Filters:        DefaultFilters(),
		FileValidation: FileValidationConfig{MaxFileSize: 1024 * 1024},
	}
}

// Load loads configuration for a target file path.
// It discovers the closest config file, loads it, and applies
// environment variable overrides.
func Load(targetPath string) (*Config, error) {
	return load(Discover(targetPath), nil)
}

// LoadFromFile loads configuration from a specific config file path.
// Unlike Load, it does not perform config discovery.
func LoadFromFile(configPath string) (*Config, error) {
	return load(configPath, nil)
}

// LoadWithOverrides loads configuration like Load (or LoadFromFile when
// configPath is set) and applies overrides last. Overrides use the nested
// shape of the TOML file:
//
//	map[string]any{"output": map[string]any{"format": "json"}}
func LoadWithOverrides(targetPath, configPath string, overrides map[string]any) (*Config, error) {
	if configPath == "" {
		configPath = Discover(targetPath)
	}
	return load(configPath, overrides)
}

func load(configPath string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, err
	}

	// 2. Config file
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, err
		}
	}

	// 3. Environment variables (JAVALINT_* prefix)
	// JAVALINT_RULES_FILELENGTH_MAX -> rules.filelength.max
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, err
	}

	// 4. CLI overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, ""), nil); err != nil {
			return nil, err
		}
	}

	cfg, err := decodeConfig(k)
	if err != nil {
		return nil, err
	}
	cfg.ConfigFile = configPath
	return cfg, nil
}

// knownHyphenatedKeys maps dot-separated patterns to their hyphenated equivalents.
// Add new entries here when adding options with hyphenated names.
var knownHyphenatedKeys = map[string]string{
	"skip.blank.lines":            "skip-blank-lines",
	"skip.comments":               "skip-comments",
	"show.source":                 "show-source",
	"fail.level":                  "fail-level",
	"file.validation":             "file-validation",
	"max.file.size":               "max-file-size",
	"allowed.abbreviation.length": "allowed-abbreviation-length",
	"allowed.abbreviations":       "allowed-abbreviations",
	"ignore.static.final":         "ignore-static-final",
	"ignore.final":                "ignore-final",
	"ignore.static":               "ignore-static",
	"ignore.overridden.methods":   "ignore-overridden-methods",
	"nearby.comment":              "nearby-comment",
	"plain.text":                  "plain-text",
	"nearby.text":                 "nearby-text",
	"accept.on.match":             "accept-on-match",
	"off.format":                  "off-format",
	"on.format":                   "on-format",
	"check.format":                "check-format",
	"message.format":              "message-format",
	"id.format":                   "id-format",
	"comment.format":              "comment-format",
	"influence.format":            "influence-format",
	"check.line.comments":         "check-line-comments",
	"check.block.comments":        "check-block-comments",
	"nearby.text.pattern":         "nearby-text-pattern",
	"check.pattern":               "check-pattern",
	"message.pattern":             "message-pattern",
	"id.pattern":                  "id-pattern",
	"line.range":                  "line-range",
	"max.tries":                   "max-tries",
}

// hyphenationOrder lists knownHyphenatedKeys longest first, so that
// "nearby.text.pattern" is rewritten before "nearby.text".
var hyphenationOrder = func() []string {
	keys := slices.Collect(maps.Keys(knownHyphenatedKeys))
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return keys
}()

var allowedEnvTopLevelKeys = map[string]struct{}{
	"rules":           {},
	"filters":         {},
	"output":          {},
	"file-validation": {},
}

// envKeyTransform converts environment variable names to config keys.
// JAVALINT_OUTPUT_FORMAT -> output.format
// JAVALINT_RULES_FILELENGTH_SKIP_BLANK_LINES -> rules.filelength.skip-blank-lines
func envKeyTransform(k, v string) (string, any) {
	s := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	s = strings.ReplaceAll(s, "_", ".")
	for _, pattern := range hyphenationOrder {
		s = strings.ReplaceAll(s, pattern, knownHyphenatedKeys[pattern])
	}

	topLevel := s
	if before, _, ok := strings.Cut(s, "."); ok {
		topLevel = before
	}
	if _, ok := allowedEnvTopLevelKeys[topLevel]; !ok {
		return "", nil
	}
	return s, v
}

// Discover finds the closest config file for a target file path.
// It walks up the directory tree from the target's directory,
// checking for config files at each level.
// Returns empty string if no config file is found.
func Discover(targetPath string) string {
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return ""
	}

	dir := absPath
	if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
		dir = filepath.Dir(absPath)
	}

	for {
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(dir, name)
			if fileExists(configPath) {
				return configPath
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
