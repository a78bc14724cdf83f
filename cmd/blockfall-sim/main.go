// Command blockfall-sim plays a batch of seeded games with the autoplay
// agent and prints a markdown report.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/plus3/blockfall/sim"
)

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	logger := log.New(errOut, "", log.LstdFlags)

	if cfg.Seed == 0 {
		seed, err := newSeed()
		if err != nil {
			return err
		}
		cfg.Seed = seed
	}

	simCfg := sim.Config{
		Games:     cfg.Games,
		Seed:      cfg.Seed,
		MaxPieces: cfg.MaxPieces,
		Workers:   cfg.Workers,
		Weights:   sim.DefaultWeights,
	}
	if cfg.Verbose {
		simCfg.Logger = logger
	}

	logger.Printf("Playing %d games from seed %d with %d workers...", cfg.Games, cfg.Seed, max(cfg.Workers, 1))
	results, err := sim.Run(ctx, simCfg)
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	logger.Printf("Simulation finished in %s.", results.Elapsed)

	if err := sim.NewReport(simCfg, results).Generate(out); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	return nil
}
