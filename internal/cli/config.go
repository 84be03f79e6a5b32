package cli

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/pgrid/sudoku/internal/engine"
)

//go:embed schema.cue
var configSchema string

// Config holds solver defaults loadable from a YAML file. Flags the user
// sets explicitly take precedence over file values.
type Config struct {
	Workers       int    `yaml:"workers"`
	PrintInterval uint64 `yaml:"print_interval"`
	MaxSolutions  uint64 `yaml:"max_solutions"`
	Database      string `yaml:"database"`
	Verify        bool   `yaml:"verify"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Workers:       engine.DefaultMaxWorkers,
		PrintInterval: engine.DefaultPrintInterval,
		MaxSolutions:  engine.Unbounded,
	}
}

// LoadConfig reads a YAML config file, validates it against the embedded
// CUE schema, and decodes it over the defaults. Schema violations and
// unknown fields are errors.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cuectx := cuecontext.New()
	schema := cuectx.CompileString(configSchema).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile config schema: %w", err)
	}
	if err := cueyaml.Validate(data, schema); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
