package timer

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/anypeace-oss/jeda/internal/model"
)

// Snapshot is a point-in-time copy of the engine state for UI consumers.
type Snapshot struct {
	Mode               Mode           `json:"mode"`
	TimeLeft           int            `json:"timeLeft"`
	IsRunning          bool           `json:"isRunning"`
	CompletedPomodoros int            `json:"completedPomodoros"`
	Settings           model.Settings `json:"settings"`
}

// Session owns one Engine and one Reporter for a single client. All state
// transitions run on the session goroutine, one event at a time: a 1 Hz
// tick and user commands interleave but never overlap, which is the whole
// concurrency story for timer state.
type Session struct {
	engine   *Engine
	reporter *Reporter
	clock    clockwork.Clock
	commands chan func()
	done     chan struct{}
}

func NewSession(engine *Engine, reporter *Reporter, clock clockwork.Clock) *Session {
	return &Session{
		engine:   engine,
		reporter: reporter,
		clock:    clock,
		commands: make(chan func()),
		done:     make(chan struct{}),
	}
}

// Run processes ticks and commands until ctx is cancelled. It must be
// called exactly once.
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)

	ticker := s.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.afterTransition(ctx, s.engine.Tick())
		case command := <-s.commands:
			command()
		}
	}
}

func (s *Session) Toggle() {
	s.do(func() {
		s.engine.Toggle()
	})
}

func (s *Session) SetMode(mode Mode) {
	s.do(func() {
		s.engine.SetMode(mode)
		s.reporter.ObserveMode(s.engine.Mode())
	})
}

func (s *Session) Skip(ctx context.Context) {
	s.do(func() {
		s.afterTransition(ctx, s.engine.Skip())
	})
}

func (s *Session) UpdateSettings(settings model.Settings) {
	s.do(func() {
		s.engine.UpdateSettings(settings)
	})
}

func (s *Session) Snapshot() Snapshot {
	var snapshot Snapshot
	s.do(func() {
		snapshot = Snapshot{
			Mode:               s.engine.Mode(),
			TimeLeft:           s.engine.TimeLeft(),
			IsRunning:          s.engine.IsRunning(),
			CompletedPomodoros: s.engine.CompletedPomodoros(),
			Settings:           s.engine.Settings(),
		}
	})
	return snapshot
}

// afterTransition forwards an engine event to the reporter and lets it
// observe the resulting mode, in that order, matching the engine's
// transition-then-rearm contract.
func (s *Session) afterTransition(ctx context.Context, event *Event) {
	s.reporter.HandleEvent(ctx, event)
	s.reporter.ObserveMode(s.engine.Mode())
}

// do runs fn on the session goroutine and waits for it to finish. Calls
// made after the session stopped return without effect.
func (s *Session) do(fn func()) {
	ran := make(chan struct{})
	wrapped := func() {
		fn()
		close(ran)
	}

	select {
	case s.commands <- wrapped:
		<-ran
	case <-s.done:
	}
}
