package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anypeace-oss/jeda/internal/model"
)

func testSettings() model.Settings {
	settings := model.DefaultSettings()
	settings.PomodoroTime = 25
	settings.ShortBreakTime = 5
	settings.LongBreakTime = 15
	settings.LongBreakInterval = 4
	return settings
}

// runToExpiry starts the engine and ticks until the current interval ends,
// returning the event from the final tick.
func runToExpiry(t *testing.T, e *Engine) *Event {
	t.Helper()
	if !e.IsRunning() {
		e.Toggle()
	}
	for i := 0; i < 60*60; i++ {
		event := e.Tick()
		if event != nil || !e.IsRunning() {
			return event
		}
	}
	t.Fatal("interval never expired")
	return nil
}

func TestNewEngineStartsIdlePomodoro(t *testing.T) {
	e := NewEngine(testSettings())

	assert.Equal(t, ModePomodoro, e.Mode())
	assert.Equal(t, 25*60, e.TimeLeft())
	assert.False(t, e.IsRunning())
	assert.Zero(t, e.CompletedPomodoros())
}

func TestSetModeRecomputesAndStops(t *testing.T) {
	e := NewEngine(testSettings())
	e.Toggle()
	e.Tick()
	e.Tick()

	e.SetMode(ModeShortBreak)
	assert.Equal(t, ModeShortBreak, e.Mode())
	assert.Equal(t, 5*60, e.TimeLeft())
	assert.False(t, e.IsRunning())
}

func TestSetModeIsIdempotentOnTimeLeft(t *testing.T) {
	e := NewEngine(testSettings())
	e.SetMode(ModeLongBreak)
	first := e.TimeLeft()
	e.SetMode(ModeLongBreak)
	assert.Equal(t, first, e.TimeLeft())
}

func TestToggleDoesNotTouchTimeLeft(t *testing.T) {
	e := NewEngine(testSettings())
	e.Toggle()
	e.Tick()
	remaining := e.TimeLeft()

	e.Toggle()
	assert.False(t, e.IsRunning())
	assert.Equal(t, remaining, e.TimeLeft())

	// Ticks while paused are no-ops.
	e.Tick()
	assert.Equal(t, remaining, e.TimeLeft())

	e.Toggle()
	assert.True(t, e.IsRunning())
	assert.Equal(t, remaining, e.TimeLeft())
}

func TestTickDecrementsOneSecond(t *testing.T) {
	e := NewEngine(testSettings())
	e.Toggle()

	require.Nil(t, e.Tick())
	assert.Equal(t, 25*60-1, e.TimeLeft())
}

func TestPomodoroExpiryReportsFullDuration(t *testing.T) {
	settings := testSettings()
	settings.PomodoroTime = 2
	e := NewEngine(settings)

	event := runToExpiry(t, e)
	require.NotNil(t, event)
	assert.Equal(t, EventExpired, event.Kind)
	assert.Equal(t, ModePomodoro, event.Mode)
	assert.Equal(t, 2*60, event.FocusTime)
	assert.Equal(t, 1, e.CompletedPomodoros())
	assert.Equal(t, ModeShortBreak, e.Mode())
	assert.False(t, e.IsRunning())
}

func TestExpiryFocusTimeIgnoresPauses(t *testing.T) {
	settings := testSettings()
	settings.PomodoroTime = 1
	e := NewEngine(settings)
	e.Toggle()

	// Pause and resume mid-interval a few times.
	for i := 0; i < 30; i++ {
		e.Tick()
	}
	e.Toggle()
	e.Toggle()

	event := runToExpiry(t, e)
	require.NotNil(t, event)
	assert.Equal(t, 60, event.FocusTime)
}

func TestBreakExpiryReturnsToPomodoroWithoutEvent(t *testing.T) {
	settings := testSettings()
	settings.ShortBreakTime = 1
	e := NewEngine(settings)
	e.SetMode(ModeShortBreak)

	event := runToExpiry(t, e)
	assert.Nil(t, event)
	assert.Equal(t, ModePomodoro, e.Mode())
	assert.Equal(t, 25*60, e.TimeLeft())
}

func TestLongBreakEveryNthPomodoro(t *testing.T) {
	settings := testSettings()
	settings.PomodoroTime = 1
	settings.LongBreakInterval = 4
	e := NewEngine(settings)

	for i := 1; i <= 4; i++ {
		e.SetMode(ModePomodoro)
		event := runToExpiry(t, e)
		require.NotNil(t, event)
		assert.Equal(t, i, e.CompletedPomodoros())

		if i%4 == 0 {
			assert.Equal(t, ModeLongBreak, e.Mode(), "pomodoro %d", i)
		} else {
			assert.Equal(t, ModeShortBreak, e.Mode(), "pomodoro %d", i)
		}
	}
}

func TestLongBreakIntervalZeroNeverYieldsLongBreak(t *testing.T) {
	for _, interval := range []int{0, -1, -4} {
		settings := testSettings()
		settings.PomodoroTime = 1
		settings.LongBreakInterval = interval
		e := NewEngine(settings)

		for i := 0; i < 6; i++ {
			e.SetMode(ModePomodoro)
			runToExpiry(t, e)
			assert.Equal(t, ModeShortBreak, e.Mode(), "interval %d, pomodoro %d", interval, i+1)
		}
	}
}

func TestAutoStartBreaksOnNaturalExpiry(t *testing.T) {
	settings := testSettings()
	settings.PomodoroTime = 1
	settings.AutoStartBreaks = true
	e := NewEngine(settings)

	runToExpiry(t, e)
	assert.Equal(t, ModeShortBreak, e.Mode())
	assert.True(t, e.IsRunning())
}

func TestAutoStartPomodorosOnBreakExpiry(t *testing.T) {
	settings := testSettings()
	settings.ShortBreakTime = 1
	settings.AutoStartPomodoros = true
	e := NewEngine(settings)
	e.SetMode(ModeShortBreak)

	runToExpiry(t, e)
	assert.Equal(t, ModePomodoro, e.Mode())
	assert.True(t, e.IsRunning())
}

func TestSkipReportsElapsedOnly(t *testing.T) {
	e := NewEngine(testSettings())
	e.Toggle()
	for i := 0; i < 90; i++ {
		e.Tick()
	}

	event := e.Skip()
	require.NotNil(t, event)
	assert.Equal(t, EventSkipped, event.Kind)
	assert.Equal(t, ModePomodoro, event.Mode)
	assert.Equal(t, 90, event.FocusTime)
	assert.Equal(t, 1, e.CompletedPomodoros())
	assert.Equal(t, ModeShortBreak, e.Mode())
}

func TestImmediateSkipReportsZero(t *testing.T) {
	e := NewEngine(testSettings())
	e.Toggle()

	event := e.Skip()
	require.NotNil(t, event)
	assert.Zero(t, event.FocusTime)
}

func TestSkipNeverAutoStarts(t *testing.T) {
	settings := testSettings()
	settings.AutoStartBreaks = true
	settings.AutoStartPomodoros = true
	e := NewEngine(settings)
	e.Toggle()

	e.Skip()
	assert.Equal(t, ModeShortBreak, e.Mode())
	assert.False(t, e.IsRunning())

	e.Toggle()
	event := e.Skip()
	assert.Nil(t, event)
	assert.Equal(t, ModePomodoro, e.Mode())
	assert.False(t, e.IsRunning())
}

func TestSkipCountsTowardLongBreakInterval(t *testing.T) {
	settings := testSettings()
	settings.LongBreakInterval = 2
	e := NewEngine(settings)

	e.Skip()
	assert.Equal(t, ModeShortBreak, e.Mode())

	e.SetMode(ModePomodoro)
	e.Skip()
	assert.Equal(t, ModeLongBreak, e.Mode())
}

func TestUpdateSettingsWhileIdleRecomputes(t *testing.T) {
	e := NewEngine(testSettings())

	settings := testSettings()
	settings.PomodoroTime = 50
	e.UpdateSettings(settings)
	assert.Equal(t, 50*60, e.TimeLeft())
}

func TestUpdateSettingsWhileRunningDefersNewDuration(t *testing.T) {
	settings := testSettings()
	settings.PomodoroTime = 1
	settings.ShortBreakTime = 1
	e := NewEngine(settings)
	e.Toggle()
	e.Tick()
	remaining := e.TimeLeft()

	updated := settings
	updated.PomodoroTime = 50
	e.UpdateSettings(updated)
	assert.Equal(t, remaining, e.TimeLeft(), "in-flight countdown must not change")

	// Finish the running pomodoro and the following break; the next
	// pomodoro picks up the new duration.
	runToExpiry(t, e)
	assert.Equal(t, ModeShortBreak, e.Mode())
	runToExpiry(t, e)
	assert.Equal(t, ModePomodoro, e.Mode())
	assert.Equal(t, 50*60, e.TimeLeft())
}

func TestCompletedPomodorosNeverResets(t *testing.T) {
	settings := testSettings()
	settings.PomodoroTime = 1
	e := NewEngine(settings)

	for i := 0; i < 3; i++ {
		e.SetMode(ModePomodoro)
		runToExpiry(t, e)
	}
	e.SetMode(ModePomodoro)
	e.SetMode(ModeLongBreak)
	e.UpdateSettings(testSettings())

	assert.Equal(t, 3, e.CompletedPomodoros())
}
