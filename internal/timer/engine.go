// Package timer implements the client-side pomodoro cycle: a pure
// three-mode state machine, a best-effort focus-time reporter, and a
// single-goroutine session loop that drives both.
package timer

import "github.com/anypeace-oss/jeda/internal/model"

type Mode string

const (
	ModePomodoro   Mode = "pomodoro"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

type EventKind string

const (
	// EventExpired marks a pomodoro that ran to zero; FocusTime is the
	// full configured duration.
	EventExpired EventKind = "expired"
	// EventSkipped marks a manually skipped pomodoro; FocusTime is the
	// elapsed portion only.
	EventSkipped EventKind = "skipped"
)

// Event describes a completed or skipped pomodoro interval. Break
// transitions never produce events.
type Event struct {
	Kind      EventKind
	Mode      Mode
	FocusTime int // seconds
}

// Engine is the timer state machine. It owns no clock and performs no IO:
// callers feed it ticks and commands and consume the events it returns,
// which keeps every transition synchronous and directly testable.
type Engine struct {
	settings  model.Settings
	mode      Mode
	timeLeft  int // seconds
	running   bool
	completed int
}

func NewEngine(settings model.Settings) *Engine {
	e := &Engine{settings: settings, mode: ModePomodoro}
	e.timeLeft = e.durationFor(ModePomodoro)
	return e
}

func (e *Engine) Mode() Mode               { return e.mode }
func (e *Engine) TimeLeft() int            { return e.timeLeft }
func (e *Engine) IsRunning() bool          { return e.running }
func (e *Engine) CompletedPomodoros() int  { return e.completed }
func (e *Engine) Settings() model.Settings { return e.settings }

// SetMode jumps unconditionally to target, recomputing timeLeft from the
// target mode's configured duration and stopping the countdown.
func (e *Engine) SetMode(target Mode) {
	e.mode = target
	e.timeLeft = e.durationFor(target)
	e.running = false
}

// Toggle flips the running flag without touching timeLeft or mode.
func (e *Engine) Toggle() {
	e.running = !e.running
}

// Tick advances the countdown by one second. When the interval reaches
// zero it handles expiry and may return an event for a completed pomodoro.
func (e *Engine) Tick() *Event {
	if !e.running {
		return nil
	}
	if e.timeLeft > 0 {
		e.timeLeft--
	}
	if e.timeLeft > 0 {
		return nil
	}
	return e.expire()
}

// Skip ends the current interval early. A skipped pomodoro reports only
// its elapsed seconds and never auto-starts the next mode: auto-start is
// reserved for natural expiry.
func (e *Engine) Skip() *Event {
	from := e.mode
	if from != ModePomodoro {
		e.SetMode(ModePomodoro)
		return nil
	}

	elapsed := e.durationFor(ModePomodoro) - e.timeLeft
	e.completed++
	e.SetMode(e.nextBreak())
	return &Event{Kind: EventSkipped, Mode: from, FocusTime: elapsed}
}

// UpdateSettings swaps in new settings. An idle timer picks up the current
// mode's new duration immediately; a running countdown is never
// interrupted and only future transitions see the new durations.
func (e *Engine) UpdateSettings(settings model.Settings) {
	e.settings = settings
	if !e.running {
		e.timeLeft = e.durationFor(e.mode)
	}
}

func (e *Engine) expire() *Event {
	e.running = false
	from := e.mode

	if from != ModePomodoro {
		e.SetMode(ModePomodoro)
		if e.settings.AutoStartPomodoros {
			e.running = true
		}
		return nil
	}

	e.completed++
	e.SetMode(e.nextBreak())
	if e.settings.AutoStartBreaks {
		e.running = true
	}
	return &Event{Kind: EventExpired, Mode: from, FocusTime: e.durationFor(ModePomodoro)}
}

// nextBreak picks the break following a finished pomodoro. An interval of
// zero or less disables long breaks entirely.
func (e *Engine) nextBreak() Mode {
	interval := e.settings.LongBreakInterval
	if e.completed > 0 && interval > 0 && e.completed%interval == 0 {
		return ModeLongBreak
	}
	return ModeShortBreak
}

func (e *Engine) durationFor(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return e.settings.ShortBreakTime * 60
	case ModeLongBreak:
		return e.settings.LongBreakTime * 60
	default:
		return e.settings.PomodoroTime * 60
	}
}
