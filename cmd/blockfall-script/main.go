// Command blockfall-script runs a Lua script against a seeded game and
// prints the final state.
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

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/script"
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
	if cfg.Script == "" {
		return fmt.Errorf("script path is required: %w", script.ErrEmptyScript)
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	game := engine.NewGame(engine.NewSeededGenerator(cfg.Seed))
	session := script.NewSession(game, script.WithLogger(log.New(errOut, "", 0)))

	snap, err := session.RunFile(ctx, cfg.Script)
	if err != nil {
		return fmt.Errorf("run %s: %w", cfg.Script, err)
	}

	printSnapshot(out, snap)
	return nil
}

func printSnapshot(w io.Writer, snap engine.Snapshot) {
	fmt.Fprintf(w, "phase:  %s\n", snap.Phase)
	fmt.Fprintf(w, "score:  %d\n", snap.Score)
	fmt.Fprintf(w, "lines:  %d\n", snap.Lines)
	fmt.Fprintf(w, "pieces: %d\n", snap.Pieces)
	if snap.Current != nil {
		fmt.Fprintf(w, "piece:  %s at %d,%d\n", snap.Current.Kind, snap.Current.Position.X, snap.Current.Position.Y)
	}
	if snap.Next != nil {
		fmt.Fprintf(w, "next:   %s\n", snap.Next.Kind)
	}
	fmt.Fprint(w, snap.Board.String())
}
