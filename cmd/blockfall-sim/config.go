package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the simulator's configuration.
type Config struct {
	Games     int    `env:"BLOCKFALL_GAMES"      envDefault:"20"`
	Seed      uint64 `env:"BLOCKFALL_SEED"`
	MaxPieces int    `env:"BLOCKFALL_MAX_PIECES" envDefault:"500"`
	Workers   int    `env:"BLOCKFALL_WORKERS"    envDefault:"4"`
	Verbose   bool   `env:"BLOCKFALL_VERBOSE"`
}

// ParseConfig reads the environment, then lets flags in args override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.IntVar(&cfg.Games, "games", cfg.Games, "number of games to play")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed of the first game (0 picks one at random)")
	fs.IntVar(&cfg.MaxPieces, "max-pieces", cfg.MaxPieces, "stop a game after this many pieces")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "games played in parallel")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log every finished game")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// newSeed returns a random non-zero seed.
func newSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]) | 1, nil
}
