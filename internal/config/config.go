// Package config loads fpdf's runtime configuration: defaults, merged with
// an optional fpdf.yaml file, merged with FPDF_* environment variables
// (spec.md §6, §9's "explicit value, not a singleton" design note).
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// AnalyzerConfig holds the Analyzer's tunable thresholds.
type AnalyzerConfig struct {
	// HeaderFooterBandPercent is the fraction (0..1) of page height treated
	// as the header/footer band. spec.md §9 leaves the exact percentage an
	// open question; 0.10 is the documented default, exposed here instead
	// of hardcoded.
	HeaderFooterBandPercent float64 `yaml:"headerFooterBandPercent"`

	// LineBandToleranceRatio is loaded from the config file (default 0.5).
	// The analyzer does not read it: line grouping always uses a fixed
	// 0.5 x median glyph height.
	LineBandToleranceRatio float64 `yaml:"lineBandToleranceRatio"`

	// TextLegacy is set when FPDF_TEXT_LEGACY=1. The analyzer has a single
	// text-extraction path and does not read this field.
	TextLegacy bool `yaml:"-"`
}

// Config is the full process configuration. cmd/fpdf builds it once at
// startup and keeps it on its app value; this package holds no global copy.
type Config struct {
	Debug            bool           `yaml:"-"`
	AllowedDirs      []string       `yaml:"allowedDirs"`
	DefaultWorkers   int            `yaml:"defaultWorkers"`
	CacheDir         string         `yaml:"cacheDir"`
	Analyzer         AnalyzerConfig `yaml:"analyzer"`
}

// Default returns the built-in defaults, before any file or environment
// overrides are applied.
func Default() Config {
	return Config{
		DefaultWorkers: clampWorkers(runtime.NumCPU()),
		CacheDir:       ".fpdf-cache",
		Analyzer: AnalyzerConfig{
			HeaderFooterBandPercent: 0.10,
			LineBandToleranceRatio:  0.5,
		},
	}
}

// Load builds a Config by merging, in order: built-in defaults, an
// optional yamlPath file (skipped if it does not exist), then FPDF_*
// environment variables (highest precedence).
func Load(yamlPath string) (Config, error) {
	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err == nil {
			if uerr := yaml.Unmarshal(data, &cfg); uerr != nil {
				return cfg, fmt.Errorf("config: parsing %q: %w", yamlPath, uerr)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("config: reading %q: %w", yamlPath, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FPDF_DEBUG"); v != "" {
		cfg.Debug = v == "1" || v == "true"
	}
	if v := os.Getenv("FPDF_ALLOWED_DIRS"); v != "" {
		cfg.AllowedDirs = splitColon(v)
	}
	if v := os.Getenv("FPDF_DEFAULT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultWorkers = clampWorkers(n)
		}
	}
	if v := os.Getenv("FPDF_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("FPDF_TEXT_LEGACY"); v == "1" {
		cfg.Analyzer.TextLegacy = true
	}
}

func clampWorkers(n int) int {
	if n < 1 {
		return 1
	}
	if n > 16 {
		return 16
	}
	return n
}

func splitColon(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
