package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/signalnine/evalagg/internal/algorithm"
)

const (
	DefaultEvaluations = "evaluations"
	DefaultResults     = "results"
	DefaultInventory   = "inventory.yaml"
)

type Config struct {
	Paths   Paths   `yaml:"paths" toml:"paths"`
	Logging Logging `yaml:"logging" toml:"logging"`
	Jobs    []Job   `yaml:"jobs" toml:"jobs"`
}

type Paths struct {
	Evaluations string `yaml:"evaluations" toml:"evaluations"`
	Results     string `yaml:"results" toml:"results"`
	Inventory   string `yaml:"inventory" toml:"inventory"`
}

type Logging struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Job is one aggregation job: the algorithms to compare and the trays they
// were evaluated on.
type Job struct {
	Name      string           `yaml:"name" toml:"name"`
	Duplex    bool             `yaml:"duplex" toml:"duplex"`
	MDefs     []algorithm.MDef `yaml:"mdefs" toml:"mdefs"`
	TDefs     []TDef           `yaml:"tdefs" toml:"tdefs"`
	Templates []string         `yaml:"templates" toml:"templates"`
}

type TDef struct {
	Name string `yaml:"name" toml:"name"`
}

// Trays returns the tray names of the job's tdefs in declaration order.
func (j Job) Trays() []string {
	trays := make([]string, len(j.TDefs))
	for i, t := range j.TDefs {
		trays[i] = t.Name
	}
	return trays
}

// Job looks up a job by name.
func (c *Config) Job(name string) (*Job, error) {
	for i := range c.Jobs {
		if c.Jobs[i].Name == name {
			return &c.Jobs[i], nil
		}
	}
	return nil, fmt.Errorf("job %q not found in config", name)
}

// Load reads a YAML config, or a TOML one when path ends in .toml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Paths.Evaluations == "" {
		cfg.Paths.Evaluations = DefaultEvaluations
	}
	if cfg.Paths.Results == "" {
		cfg.Paths.Results = DefaultResults
	}
	if cfg.Paths.Inventory == "" {
		cfg.Paths.Inventory = DefaultInventory
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	if len(cfg.Jobs) == 0 {
		return fmt.Errorf("no jobs defined")
	}
	seen := make(map[string]bool, len(cfg.Jobs))
	for i, j := range cfg.Jobs {
		if j.Name == "" {
			return fmt.Errorf("job %d: name is required", i)
		}
		if seen[j.Name] {
			return fmt.Errorf("job %q: defined more than once", j.Name)
		}
		seen[j.Name] = true
		if len(j.MDefs) == 0 {
			return fmt.Errorf("job %q: at least one mdef is required", j.Name)
		}
		for k, m := range j.MDefs {
			if m.Algorithm == "" {
				return fmt.Errorf("job %q mdef %d: algorithm is required", j.Name, k)
			}
		}
		if len(j.TDefs) == 0 {
			return fmt.Errorf("job %q: at least one tdef is required", j.Name)
		}
		for k, t := range j.TDefs {
			if t.Name == "" {
				return fmt.Errorf("job %q tdef %d: name is required", j.Name, k)
			}
		}
	}
	return nil
}
