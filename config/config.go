package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config carries the tunables of the analyzer that are not command line
// flags. Missing fields inherit the default configuration.
type Config struct {
	// IterationCeiling bounds the number of fixpoint sweeps. Reaching it
	// indicates a defect in the widening operator, not a property of the
	// analyzed program.
	IterationCeiling int `toml:"iteration_ceiling"`
	// SuppressedWarnings lists warning categories that are computed but
	// not reported, e.g. "possible-overflow".
	SuppressedWarnings []string `toml:"suppressed_warnings"`
}

func Default() Config {
	return Config{
		IterationCeiling: 1000,
	}
}

// Load reads a TOML configuration file, merging it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	if cfg.IterationCeiling <= 0 {
		cfg.IterationCeiling = Default().IterationCeiling
	}
	return cfg, nil
}

// Suppressed checks whether a warning category is suppressed.
func (c Config) Suppressed(category string) bool {
	for _, s := range c.SuppressedWarnings {
		if s == category {
			return true
		}
	}
	return false
}
