// File: config.go
// Title: Application Configuration
// Description: Loads vc2pseudo settings from a TOML or YAML file. The format
//              is chosen by file extension. Missing values are filled with
//              defaults and the config file may be located through the
//              VC2PSEUDO_CONFIG environment variable or a set of default
//              locations.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial configuration loader

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	vcerrors "github.com/msto63/vc2pseudo/pkg/core/errors"
	vclog "github.com/msto63/vc2pseudo/pkg/core/log"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "VC2PSEUDO_CONFIG"

// Output formats understood by the parse command
const (
	OutputYAML = "yaml"
	OutputJSON = "json"
	OutputTree = "tree"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	Viewer  ViewerConfig  `toml:"viewer" yaml:"viewer"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name string `toml:"name" yaml:"name"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level         string   `toml:"level" yaml:"level"`
	Format        string   `toml:"format" yaml:"format"`
	SlowThreshold Duration `toml:"slow_threshold" yaml:"slow_threshold"`
}

// ParserConfig holds parser limits
type ParserConfig struct {
	MaxInputLength int      `toml:"max_input_length" yaml:"max_input_length"`
	TraceRules     bool     `toml:"trace_rules" yaml:"trace_rules"`
	CacheSize      int      `toml:"cache_size" yaml:"cache_size"`
	CacheTTL       Duration `toml:"cache_ttl" yaml:"cache_ttl"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
	Color  string `toml:"color" yaml:"color"`
}

// ViewerConfig holds settings of the interactive AST viewer
type ViewerConfig struct {
	ShowOffsets bool `toml:"show_offsets" yaml:"show_offsets"`
	ShowTrivia  bool `toml:"show_trivia" yaml:"show_trivia"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a .toml, .yaml or .yml file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, vcerrors.Newf("config file not found: %s", path).WithCode(vcerrors.CodeConfigError)
		}
		return nil, vcerrors.Wrap(err, "reading config").WithCode(vcerrors.CodeIO)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, vcerrors.Wrap(err, "failed to parse config").WithCode(vcerrors.CodeConfigError)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, vcerrors.Wrap(err, "failed to parse config").WithCode(vcerrors.CodeConfigError)
		}
	default:
		return nil, vcerrors.Newf("unsupported config format: %s", path).
			WithCode(vcerrors.CodeConfigError).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultPaths lists the locations searched when no path is configured
func DefaultPaths() []string {
	paths := []string{
		"./vc2pseudo.toml",
		"./vc2pseudo.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "vc2pseudo", "config.toml"))
	}
	return paths
}

// LoadFromEnv loads configuration from the VC2PSEUDO_CONFIG environment
// variable or the first existing default path. Without any config file the
// defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.Name == "" {
		c.General.Name = "vc2pseudo"
	}

	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}

	if c.Output.Format == "" {
		c.Output.Format = OutputTree
	}
	if c.Output.Color == "" {
		c.Output.Color = ColorAuto
	}
}

// Validate checks that enumerated settings hold known values
func (c *Config) Validate() error {
	if _, err := vclog.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level)
	}
	if _, err := vclog.ParseFormat(c.Log.Format); err != nil {
		return invalid("log.format", c.Log.Format)
	}
	switch c.Output.Format {
	case OutputYAML, OutputJSON, OutputTree:
	default:
		return invalid("output.format", c.Output.Format)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return invalid("output.color", c.Output.Color)
	}
	if c.Parser.MaxInputLength < 0 {
		return vcerrors.New("parser.max_input_length must not be negative").
			WithCode(vcerrors.CodeInvalidConfig)
	}
	if c.Parser.CacheSize < 0 {
		return vcerrors.New("parser.cache_size must not be negative").
			WithCode(vcerrors.CodeInvalidConfig)
	}
	if c.Parser.CacheTTL.Duration < 0 {
		return vcerrors.New("parser.cache_ttl must not be negative").
			WithCode(vcerrors.CodeInvalidConfig)
	}
	return nil
}

// LoggerConfig translates the log section into a logger configuration
func (c *Config) LoggerConfig() vclog.Config {
	level, _ := vclog.ParseLevel(c.Log.Level)
	format, _ := vclog.ParseFormat(c.Log.Format)
	return vclog.Config{
		Level:         level,
		Format:        format,
		Name:          c.General.Name,
		SlowThreshold: c.Log.SlowThreshold.Duration,
	}
}

func invalid(key, value string) error {
	return vcerrors.Newf("invalid value %q for %s", value, key).
		WithCode(vcerrors.CodeInvalidConfig).
		WithDetail("key", key)
}
