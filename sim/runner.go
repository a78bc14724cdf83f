package sim

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kamstrup/intmap"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/loop"
)

var (
	// ErrNoGames is returned when Config.Games is not positive.
	ErrNoGames = errors.New("sim: at least one game is required")
	// ErrNoPieceLimit is returned when Config.MaxPieces is not positive.
	ErrNoPieceLimit = errors.New("sim: max pieces must be positive")
)

// MaxLinesPerLock is the most rows a single lock can clear.
const MaxLinesPerLock = 4

// Config describes a batch of games.
type Config struct {
	Games int
	// Seed of the first game; game i uses Seed+i.
	Seed uint64
	// MaxPieces stops a game that is still running after this many locks.
	MaxPieces int
	// Workers bounds how many games run at once. Zero means one.
	Workers int
	Weights Weights
	// Logger receives one line per finished game when set.
	Logger *log.Logger
}

// GameResult is the outcome of one game.
type GameResult struct {
	Seed     uint64
	Score    int
	Lines    int
	Pieces   int
	Frames   int64
	GameOver bool
	Elapsed  time.Duration
	// Systems holds the scheduler's per-system timings for this game.
	Systems []loop.SystemStats
}

// Results aggregates a batch.
type Results struct {
	Games []GameResult
	// Kinds counts locked pieces by kind.
	Kinds *intmap.Map[engine.Kind, int]
	// LinesPerLock counts locks by how many rows they cleared.
	LinesPerLock *intmap.Map[int, int]
	// Systems combines each scheduler system's timings over every game, in
	// registration order.
	Systems []loop.SystemStats
	Elapsed time.Duration

	mu sync.Mutex
}

func newResults(games int) *Results {
	return &Results{
		Games:        make([]GameResult, games),
		Kinds:        intmap.New[engine.Kind, int](engine.NumKinds),
		LinesPerLock: intmap.New[int, int](MaxLinesPerLock + 1),
	}
}

func (r *Results) merge(index int, result GameResult, counts *tally) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Games[index] = result
	for i, sys := range result.Systems {
		if i == len(r.Systems) {
			r.Systems = append(r.Systems, loop.SystemStats{Name: sys.Name})
		}
		r.Systems[i] = r.Systems[i].Combine(sys)
	}
	for _, k := range engine.Kinds() {
		if n, ok := counts.kinds.Get(k); ok {
			total, _ := r.Kinds.Get(k)
			r.Kinds.Put(k, total+n)
		}
	}
	for l := 0; l <= MaxLinesPerLock; l++ {
		if n, ok := counts.lines.Get(l); ok {
			total, _ := r.LinesPerLock.Get(l)
			r.LinesPerLock.Put(l, total+n)
		}
	}
}

// Run plays cfg.Games games, at most cfg.Workers at a time, and returns
// their aggregated results. It stops early if ctx is cancelled.
func Run(ctx context.Context, cfg Config) (*Results, error) {
	if cfg.Games <= 0 {
		return nil, ErrNoGames
	}
	if cfg.MaxPieces <= 0 {
		return nil, ErrNoPieceLimit
	}

	results := newResults(cfg.Games)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))

	for i := 0; i < cfg.Games; i++ {
		seed := cfg.Seed + uint64(i)
		g.Go(func() error {
			result, counts, err := playGame(ctx, seed, cfg)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
			}
			results.merge(i, result, counts)
			if cfg.Logger != nil {
				cfg.Logger.Printf("game %d seed=%d score=%d lines=%d pieces=%d game_over=%t",
					i, seed, result.Score, result.Lines, result.Pieces, result.GameOver)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results.Elapsed = time.Since(start)
	return results, nil
}

// tally counts every lock, including those gravity causes in the same
// frame as a command.
type tally struct {
	kinds *intmap.Map[engine.Kind, int]
	lines *intmap.Map[int, int]
}

func newTally() *tally {
	return &tally{
		kinds: intmap.New[engine.Kind, int](engine.NumKinds),
		lines: intmap.New[int, int](MaxLinesPerLock + 1),
	}
}

func (t *tally) observe(e engine.LockEvent) {
	k, _ := t.kinds.Get(e.Kind)
	t.kinds.Put(e.Kind, k+1)
	n, _ := t.lines.Get(e.Lines)
	t.lines.Put(e.Lines, n+1)
}

func playGame(ctx context.Context, seed uint64, cfg Config) (GameResult, *tally, error) {
	counts := newTally()
	game := engine.NewGame(engine.NewSeededGenerator(seed), engine.WithLockObserver(counts.observe))
	scheduler := loop.New(game)
	agent := NewAgent(cfg.Weights)
	start := time.Now()

	scheduler.Commands().Push(engine.Start)
	scheduler.Once(0)

	for game.Phase() == engine.Running && game.Snapshot().Pieces < cfg.MaxPieces {
		if err := ctx.Err(); err != nil {
			return GameResult{}, nil, err
		}

		piece, _ := game.Current()
		plan, ok := agent.Plan(game.Board(), piece)
		if !ok {
			plan = Plan{}
		}
		scheduler.Commands().Push(plan.Actions()...)
		scheduler.Once(loop.TickInterval)
	}

	snap := game.Snapshot()
	stats := scheduler.GetStats()
	return GameResult{
		Seed:     seed,
		Score:    snap.Score,
		Lines:    snap.Lines,
		Pieces:   snap.Pieces,
		Frames:   stats.Frames,
		GameOver: snap.GameOver,
		Elapsed:  time.Since(start),
		Systems:  stats.Systems,
	}, counts, nil
}
