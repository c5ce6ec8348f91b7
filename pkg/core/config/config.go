// Package config loads engine configuration from YAML or HJSON files with
// environment overrides. Bucket thresholds live here because they are
// deployment-tunable business constants; the defaults are the canonical
// dashboard values.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"

	"finadash/pkg/core/calc"
	"finadash/pkg/core/engine"
	"finadash/pkg/core/fetch"
)

// SourceConfig describes one upstream endpoint in the config file.
type SourceConfig struct {
	Name     string `yaml:"name" json:"name"`
	URL      string `yaml:"url" json:"url"`
	TenantID string `yaml:"tenant_id" json:"tenantId"`
	Kind     string `yaml:"kind" json:"kind"`
}

// FetchConfig tunes the orchestrator.
type FetchConfig struct {
	MaxAttempts int `yaml:"max_attempts" json:"maxAttempts"`
	BackoffMS   int `yaml:"backoff_ms" json:"backoffMs"`
	TimeoutMS   int `yaml:"timeout_ms" json:"timeoutMs"`
}

// BinConfig is a bucket boundary in the config file. A zero Max on the last
// bin means unbounded (+Inf).
type BinConfig struct {
	Label string  `yaml:"label" json:"label"`
	Min   float64 `yaml:"min" json:"min"`
	Max   float64 `yaml:"max" json:"max"`
}

// Buckets carries the threshold tables for every fixed partition.
type Buckets struct {
	SalaryBands   []BinConfig `yaml:"salary_bands" json:"salaryBands"`
	AgeBuckets    []BinConfig `yaml:"age_buckets" json:"ageBuckets"`
	TenureBuckets []BinConfig `yaml:"tenure_buckets" json:"tenureBuckets"`
	AgingBuckets  []BinConfig `yaml:"aging_buckets" json:"agingBuckets"`
}

// Config is the full engine configuration.
type Config struct {
	Listen      string         `yaml:"listen" json:"listen"`
	DatabaseURL string         `yaml:"database_url" json:"databaseUrl"`
	Fetch       FetchConfig    `yaml:"fetch" json:"fetch"`
	Sources     []SourceConfig `yaml:"sources" json:"sources"`
	Buckets     Buckets        `yaml:"buckets" json:"buckets"`
}

// Default returns the canonical configuration: dashboard bucket thresholds,
// three retry attempts, 15s request timeout.
func Default() Config {
	return Config{
		Listen: ":8080",
		Fetch: FetchConfig{
			MaxAttempts: 3,
			BackoffMS:   250,
			TimeoutMS:   15000,
		},
	}
}

// Load reads a config file (.yaml/.yml or .hjson by extension), applies
// defaults for anything unset, then applies environment overrides
// (DATABASE_URL, LISTEN_ADDR). A missing path returns pure defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		switch filepath.Ext(path) {
		case ".hjson":
			// HJSON goes through an interface{} round trip into JSON, same
			// as the ParseHJSONToStruct flow.
			var tree interface{}
			if err := hjson.Unmarshal(data, &tree); err != nil {
				return cfg, fmt.Errorf("failed to parse hjson config: %w", err)
			}
			jsonBytes, err := json.Marshal(tree)
			if err != nil {
				return cfg, err
			}
			if err := json.Unmarshal(jsonBytes, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to map hjson config: %w", err)
			}
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse yaml config: %w", err)
			}
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Listen = v
	}
	if cfg.Fetch.MaxAttempts <= 0 {
		cfg.Fetch.MaxAttempts = 3
	}
	return cfg, nil
}

// OrchestratorOptions converts the fetch section into orchestrator options.
func (c Config) OrchestratorOptions() fetch.Options {
	return fetch.Options{
		MaxAttempts: c.Fetch.MaxAttempts,
		Backoff:     time.Duration(c.Fetch.BackoffMS) * time.Millisecond,
		Timeout:     time.Duration(c.Fetch.TimeoutMS) * time.Millisecond,
	}
}

// EngineSources converts configured sources into engine sources.
func (c Config) EngineSources() []engine.Source {
	out := make([]engine.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		out = append(out, engine.Source{
			Spec: fetch.SourceSpec{Name: s.Name, URL: s.URL, TenantID: s.TenantID},
			Kind: s.Kind,
		})
	}
	return out
}

// SalaryBands returns the configured salary partition, or the canonical
// default when unset.
func (c Config) SalaryBands() []calc.Bin {
	return binsOrDefault(c.Buckets.SalaryBands, calc.DefaultSalaryBands)
}

// AgeBuckets returns the configured age partition or its default.
func (c Config) AgeBuckets() []calc.Bin {
	return binsOrDefault(c.Buckets.AgeBuckets, calc.DefaultAgeBuckets)
}

// TenureBuckets returns the configured tenure partition or its default.
func (c Config) TenureBuckets() []calc.Bin {
	return binsOrDefault(c.Buckets.TenureBuckets, calc.DefaultTenureBuckets)
}

// AgingBuckets returns the configured due-date partition or its default.
// The first bin (overdue) is open at the low end regardless of config.
func (c Config) AgingBuckets() []calc.Bin {
	bins := binsOrDefault(c.Buckets.AgingBuckets, calc.DefaultAgingBins)
	if len(bins) > 0 {
		bins[0].Min = math.Inf(-1)
	}
	return bins
}

func binsOrDefault(configured []BinConfig, fallback func() []calc.Bin) []calc.Bin {
	if len(configured) == 0 {
		return fallback()
	}
	bins := make([]calc.Bin, len(configured))
	for i, b := range configured {
		max := b.Max
		if i == len(configured)-1 && max <= b.Min {
			// Unbounded final bin.
			max = math.Inf(1)
		}
		bins[i] = calc.Bin{Label: b.Label, Min: b.Min, Max: max}
	}
	return bins
}
