package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up next to a program when no config is given.
const ConfigFileName = "lumen.yml"

// Config controls how the driver runs a program.
type Config struct {
	Path string
	// Typecheck runs the checker over the whole program before executing it.
	Typecheck bool
	// ContinueOnError skips a failing top-level statement instead of aborting.
	ContinueOnError bool
	// Prelude seeds the initial context and environment with host primitives.
	Prelude  bool
	LogLevel string
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type configFile struct {
	Typecheck       *bool  `yaml:"typecheck"`
	ContinueOnError *bool  `yaml:"continue_on_error"`
	Prelude         *bool  `yaml:"prelude"`
	LogLevel        string `yaml:"log_level"`
}

// DefaultConfig checks before running, aborts on the first error and loads the prelude.
func DefaultConfig() *Config {
	return &Config{Typecheck: true, Prelude: true, LogLevel: "warn"}
}

// LoadConfig parses a YAML config from disk. Keys left out keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := decodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeConfig(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	cfg := DefaultConfig()
	if raw.Typecheck != nil {
		cfg.Typecheck = *raw.Typecheck
	}
	if raw.ContinueOnError != nil {
		cfg.ContinueOnError = *raw.ContinueOnError
	}
	if raw.Prelude != nil {
		cfg.Prelude = *raw.Prelude
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	return cfg, nil
}

// FindConfig returns the config beside programPath, or the defaults when
// there is none.
func FindConfig(programPath string) (*Config, error) {
	candidate := filepath.Join(filepath.Dir(programPath), ConfigFileName)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config: stat %s: %w", candidate, err)
	}
	return LoadConfig(candidate)
}

func (c *Config) validate() error {
	var errs ValidationError
	if _, ok := parseLevel(c.LogLevel); !ok {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q must be one of debug, info, warn, error", c.LogLevel))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
