package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sortbench/pkg/search"
	"sortbench/pkg/workload"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Benchmark BenchmarkConfig `yaml:"benchmark"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // HTTP listen address (e.g. :8080)
}

type DataConfig struct {
	Path         string `yaml:"path"`         // dataset file; empty means synthetic
	Size         int    `yaml:"size"`         // synthetic key count
	Distribution string `yaml:"distribution"` // dense | uniform | zorder
	MaxGap       uint32 `yaml:"max_gap"`      // uniform distribution gap bound
}

type BenchmarkConfig struct {
	Strategies       []string `yaml:"strategies"`
	Lookups          int      `yaml:"lookups"`
	Repeats          int      `yaml:"repeats"`
	Seed             uint64   `yaml:"seed"`
	MaxEstimateError int      `yaml:"max_estimate_error"`
	PinCore          int      `yaml:"pin_core"` // negative disables pinning
	ResultsPath      string   `yaml:"results_path"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Data: DataConfig{
			Size:         1_000_000,
			Distribution: string(workload.DistUniform),
			MaxGap:       16,
		},
		Benchmark: BenchmarkConfig{
			Strategies:       []string{"binary", "linear", "exponential"},
			Lookups:          100_000,
			Repeats:          3,
			Seed:             workload.DefaultSeed,
			MaxEstimateError: 64,
			PinCore:          -1,
			ResultsPath:      "sortbench_results.db",
		},
	}
}

// Load reads a YAML config. An empty path searches the default locations
// and falls back to defaults when no file exists.
func Load(configPath string) (*Config, error) {
	cfg := defaults()

	if configPath == "" {
		for _, p := range []string{"configs/sortbench.yaml", "sortbench.yaml"} {
			data, err := os.ReadFile(p)
			if err == nil {
				if err := yaml.Unmarshal(data, cfg); err != nil {
					return cfg, err
				}
				applyDefaults(cfg)
				return cfg, cfg.validate()
			}
		}
		applyDefaults(cfg)
		return cfg, nil // no file found: use defaults
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}

	applyDefaults(cfg)
	return cfg, cfg.validate()
}

func applyDefaults(cfg *Config) {
	if cfg.Data.Size <= 0 {
		cfg.Data.Size = 1_000_000
	}
	if cfg.Data.Distribution == "" {
		cfg.Data.Distribution = string(workload.DistUniform)
	}
	if cfg.Data.MaxGap == 0 {
		cfg.Data.MaxGap = 16
	}
	if len(cfg.Benchmark.Strategies) == 0 {
		cfg.Benchmark.Strategies = []string{"binary", "linear", "exponential"}
	}
	if cfg.Benchmark.Lookups <= 0 {
		cfg.Benchmark.Lookups = 100_000
	}
	if cfg.Benchmark.Repeats <= 0 {
		cfg.Benchmark.Repeats = 3
	}
	if cfg.Benchmark.Seed == 0 {
		cfg.Benchmark.Seed = workload.DefaultSeed
	}
	if cfg.Benchmark.MaxEstimateError < 0 {
		cfg.Benchmark.MaxEstimateError = 0
	}
}

func (cfg *Config) validate() error {
	if !workload.Distribution(cfg.Data.Distribution).Valid() {
		return fmt.Errorf("config: unknown distribution %q", cfg.Data.Distribution)
	}
	for _, s := range cfg.Benchmark.Strategies {
		if !search.Strategy(s).Valid() {
			return fmt.Errorf("config: unknown strategy %q", s)
		}
	}
	return nil
}
