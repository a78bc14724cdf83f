package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the script runner's configuration.
type Config struct {
	Script  string        `env:"BLOCKFALL_SCRIPT"`
	Seed    uint64        `env:"BLOCKFALL_SEED"    envDefault:"1"`
	Timeout time.Duration `env:"BLOCKFALL_TIMEOUT" envDefault:"10s"`
}

// ParseConfig reads the environment, then lets flags in args override it.
// A single positional argument names the script when -script is not set.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Script, "script", cfg.Script, "path to the lua script")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "piece generator seed")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "abort the script after this long")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Script == "" && fs.NArg() == 1 {
		cfg.Script = fs.Arg(0)
	}
	return cfg, nil
}
