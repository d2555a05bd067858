package cli

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/toyz/fielder/internal/errors"
)

// DebuggableOptionDisabled is the exact option value that disables debug
// scaffolding. Any other value, including an absent option, keeps it enabled.
const DebuggableOptionDisabled = "false"

// Config holds the configuration for one generation round
type Config struct {
	// Directories is the list of directories to scan for annotated structs
	Directories []string

	// Debuggable controls whether generated types carry debug scaffolding
	Debuggable bool

	// OutputDir redirects generated files to a single root instead of each
	// source package directory. Empty means alongside the source.
	OutputDir string

	// Verbose enables detailed logging and error reporting
	Verbose bool
}

// ParseDebuggableOption interprets the build-tool-supplied option string.
// Only the exact, case-sensitive value "false" disables debug scaffolding.
func ParseDebuggableOption(value string) bool {
	return value != DebuggableOptionDisabled
}

// FileConfig is the optional .fielder.yaml configuration file. Explicit CLI
// flags override anything set here.
type FileConfig struct {
	Debuggable *string `yaml:"debuggable"`
	Output     string  `yaml:"output"`
	Verbose    *bool   `yaml:"verbose"`
}

// LoadConfigFile reads and parses a YAML configuration file
func LoadConfigFile(path string) (*FileConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigurationError(path, "read", err)
	}

	var config FileConfig
	if err := yaml.Unmarshal(content, &config); err != nil {
		return nil, errors.WrapConfigurationError(path, "parse", err)
	}

	return &config, nil
}

// Apply folds file values into a Config without overriding explicit flags.
// The set map records which flags were passed on the command line.
func (f *FileConfig) Apply(config *Config, set map[string]bool) {
	if f == nil {
		return
	}
	if f.Debuggable != nil && !set["debuggable"] {
		config.Debuggable = ParseDebuggableOption(*f.Debuggable)
	}
	if f.Output != "" && !set["output"] {
		config.OutputDir = f.Output
	}
	if f.Verbose != nil && !set["verbose"] {
		config.Verbose = *f.Verbose
	}
}
