package loop

import (
	"context"
	"reflect"
	"time"

	"github.com/plus3/blockfall/engine"
)

const (
	// FallInterval is how long the piece hangs on a row before gravity moves
	// it down.
	FallInterval = time.Second
	// TickInterval is the period at which Run steps the scheduler.
	TickInterval = 50 * time.Millisecond
)

// Clock reports the current time. Run uses it to measure frame deltas.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler owns a game and steps its systems one frame at a time. It is
// armed while the game is Running; gravity only acts on armed frames.
type Scheduler struct {
	game        *engine.Game
	commands    *Commands
	clock       Clock
	systems     []System
	systemStats []*systemStatsInternal
	armed       bool
	frames      int64
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock replaces the wall clock used by Run.
func WithClock(clock Clock) SchedulerOption {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

// NewScheduler creates a scheduler for game with no systems registered.
func NewScheduler(game *engine.Game, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		game:     game,
		commands: NewCommands(),
		clock:    systemClock{},
		systems:  make([]System, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// New creates a scheduler with the standard systems: queued commands are
// applied first, then gravity drops the piece every FallInterval.
func New(game *engine.Game, opts ...SchedulerOption) *Scheduler {
	s := NewScheduler(game, opts...)
	s.Register(&InputSystem{})
	s.Register(&GravitySystem{Interval: FallInterval})
	return s
}

// Register adds a system to the end of the execution order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Game returns the game driven by the scheduler.
func (s *Scheduler) Game() *engine.Game {
	return s.game
}

// Commands returns the buffer command sources push actions into.
func (s *Scheduler) Commands() *Commands {
	return s.commands
}

// Armed reports whether gravity is currently active.
func (s *Scheduler) Armed() bool {
	return s.armed
}

// Arm activates timed systems, resetting any that implement Armer.
func (s *Scheduler) Arm() {
	if s.armed {
		return
	}
	s.armed = true
	for _, system := range s.systems {
		if a, ok := system.(Armer); ok {
			a.Arm()
		}
	}
}

// Disarm stops timed systems until the next Arm.
func (s *Scheduler) Disarm() {
	s.armed = false
}

// sync ties the armed state to the game phase.
func (s *Scheduler) sync() {
	running := s.game.Phase() == engine.Running
	switch {
	case running && !s.armed:
		s.Arm()
	case !running && s.armed:
		s.Disarm()
	}
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler) Once(dt time.Duration) {
	frame := newFrame(dt, s.armed, s.commands, s.game)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.frames++
	s.sync()
}

// Advance steps the scheduler through total time in frames of step. A
// remainder shorter than step is executed as a final, shorter frame.
func (s *Scheduler) Advance(total, step time.Duration) {
	if step <= 0 {
		step = TickInterval
	}
	for total >= step {
		s.Once(step)
		total -= step
	}
	if total > 0 {
		s.Once(total)
	}
}

// Run executes all systems repeatedly at the given interval until the context
// is cancelled. The scheduler is disarmed on return.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer s.Disarm()

	lastTime := s.clock.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := s.clock.Now()
			dt := now.Sub(lastTime)
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}

// Combine folds other, a run of the same system, into s.
func (s SystemStats) Combine(other SystemStats) SystemStats {
	if s.ExecutionCount == 0 {
		return other
	}
	if other.ExecutionCount == 0 {
		return s
	}

	s.ExecutionCount += other.ExecutionCount
	s.TotalDuration += other.TotalDuration
	s.MinDuration = min(s.MinDuration, other.MinDuration)
	s.MaxDuration = max(s.MaxDuration, other.MaxDuration)
	s.LastDuration = other.LastDuration
	s.AvgDuration = s.TotalDuration / time.Duration(s.ExecutionCount)
	return s
}
