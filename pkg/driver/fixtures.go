package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"lumen/interpreter-go/pkg/diag"
)

// FixtureSuite is a YAML file of source programs with their expected output
// or failure.
type FixtureSuite struct {
	Name  string        `yaml:"name"`
	Cases []FixtureCase `yaml:"cases"`
}

// FixtureCase describes one program. Error holds the expected error kind as
// printed by diag.Kind (for example "type mismatch"), or "parse" for a syntax
// error. Phase, when
// set, must match the phase that raised it.
type FixtureCase struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Output []string `yaml:"output"`
	Error  string   `yaml:"error,omitempty"`
	Phase  string   `yaml:"phase,omitempty"`
	Skip   bool     `yaml:"skip,omitempty"`
}

// FixtureOutcome is the result of running one case.
type FixtureOutcome struct {
	Suite   string
	Case    string
	Skipped bool
	Output  []string
	Err     error
	Problem string
}

// Passed reports whether the case matched its expectations.
func (o FixtureOutcome) Passed() bool {
	return o.Skipped || o.Problem == ""
}

// LoadFixtureSuite reads a fixture suite file.
func LoadFixtureSuite(path string) (*FixtureSuite, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: open %s: %w", path, err)
	}
	defer file.Close()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	var suite FixtureSuite
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("fixtures: parse %s: %w", path, err)
	}
	if suite.Name == "" {
		suite.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	for idx, c := range suite.Cases {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("fixtures: %s: case %d has no name", path, idx)
		}
	}
	return &suite, nil
}

// FixtureFiles lists the *.yml and *.yaml files directly under dir, sorted.
func FixtureFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fixtures: read %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yml", ".yaml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// RunFixtureSuite runs every case of suite in a fresh session built from cfg.
func RunFixtureSuite(suite *FixtureSuite, cfg *Config) []FixtureOutcome {
	outcomes := make([]FixtureOutcome, 0, len(suite.Cases))
	for _, c := range suite.Cases {
		outcomes = append(outcomes, runFixtureCase(suite.Name, c, cfg))
	}
	return outcomes
}

func runFixtureCase(suite string, c FixtureCase, cfg *Config) FixtureOutcome {
	outcome := FixtureOutcome{Suite: suite, Case: c.Name}
	if c.Skip {
		outcome.Skipped = true
		return outcome
	}
	caseCfg := *cfg
	caseCfg.ContinueOnError = false
	session := NewSession(&caseCfg, nil)
	result, err := session.RunSource([]byte(c.Source), suite+"/"+c.Name)
	if result != nil {
		outcome.Output = result.Output
	}
	outcome.Err = err
	outcome.Problem = checkFixtureOutcome(c, outcome.Output, err)
	return outcome
}

func checkFixtureOutcome(c FixtureCase, output []string, err error) string {
	if !slices.Equal(output, c.Output) {
		return fmt.Sprintf("output mismatch: expected %q, got %q", c.Output, output)
	}
	if c.Error == "" {
		if err != nil {
			return fmt.Sprintf("unexpected error: %v", err)
		}
		return ""
	}
	if err == nil {
		return fmt.Sprintf("expected %s error, got none", c.Error)
	}
	if c.Error == "parse" {
		var pde *ParserDiagnosticError
		if !errors.As(err, &pde) {
			return fmt.Sprintf("expected parse error, got %v", err)
		}
		return ""
	}
	if got := diag.KindOf(err).String(); got != c.Error {
		return fmt.Sprintf("expected %s error, got %v", c.Error, err)
	}
	if c.Phase != "" {
		var de *diag.Error
		if errors.As(err, &de) && string(de.Phase) != c.Phase {
			return fmt.Sprintf("expected %s error during %s, got %s", c.Error, c.Phase, de.Phase)
		}
	}
	return ""
}
