package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the project-level configuration read from .fsltool.yaml,
// matching the teacher's flat YAML usage and termfx-morfx's CLI
// bootstrap of a project config plus .env overrides.
type Config struct {
	// Inputs is the default set of doublestar glob patterns used when a
	// subcommand is given no file arguments, e.g. "schema/**/*.fsl".
	Inputs []string `yaml:"inputs"`
	// OutputDir, if set, is where the canonical command writes its
	// output files instead of stdout, unless --out is given.
	OutputDir string `yaml:"output_dir"`
	// Sort requests declarations be canonically sorted on output.
	Sort bool `yaml:"sort"`
	// SourceMap requests an inline source map comment naming this file.
	SourceMap string `yaml:"source_map"`
	// CacheFile is the path to the gzip+JSON result cache.
	CacheFile string `yaml:"cache_file"`
	// LogLevel is the default hclog level, overridable by FSLTOOL_LOG_LEVEL.
	LogLevel string `yaml:"log_level"`
}

func defaultConfig() *Config {
	return &Config{
		CacheFile: ".fsltool-cache.json.gz",
		LogLevel:  "info",
	}
}

// loadConfig reads path if present; a missing file yields the defaults,
// since a .fsltool.yaml is an optional convenience, not a requirement.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
