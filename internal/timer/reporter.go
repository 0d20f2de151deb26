package timer

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// SkipCooldown suppresses bursts of submissions from rapid repeated skip
// presses. It is a debounce, not an idempotency guarantee.
const SkipCooldown = 2 * time.Second

// Submitter delivers focus seconds to the persistence boundary.
type Submitter interface {
	Submit(ctx context.Context, focusSeconds int) error
}

// Identity resolves the current user. An empty id with a nil error means
// anonymous; a non-nil error means the check itself failed, which is a
// different condition and must not trigger a login prompt.
type Identity interface {
	UserID(ctx context.Context) (string, error)
}

// Notifier surfaces reporter outcomes to the user without blocking the
// timer.
type Notifier interface {
	SubmitFailed(err error)
	LoginRequired()
}

// Reporter consumes engine events and submits focus time best-effort: one
// submission per natural expiry, cooldown-limited submissions on skips,
// failures reported but never retried. The timer state machine stays
// authoritative regardless of persistence outcome.
type Reporter struct {
	submitter Submitter
	identity  Identity
	notifier  Notifier
	clock     clockwork.Clock

	expirySent bool
	lastSkipAt time.Time
}

func NewReporter(submitter Submitter, identity Identity, notifier Notifier, clock clockwork.Clock) *Reporter {
	if notifier == nil {
		notifier = slogNotifier{}
	}
	return &Reporter{
		submitter: submitter,
		identity:  identity,
		notifier:  notifier,
		clock:     clock,
	}
}

// HandleEvent processes one engine event. It never blocks: submissions run
// in their own goroutine and their outcome does not gate timer progress.
func (r *Reporter) HandleEvent(ctx context.Context, event *Event) {
	if event == nil {
		return
	}
	switch event.Kind {
	case EventExpired:
		r.handleExpired(ctx, event)
	case EventSkipped:
		r.handleSkipped(ctx, event)
	}
}

// ObserveMode rearms the expiry guard once the session has moved off
// pomodoro, so the next cycle can report again.
func (r *Reporter) ObserveMode(mode Mode) {
	if mode != ModePomodoro {
		r.expirySent = false
	}
}

func (r *Reporter) handleExpired(ctx context.Context, event *Event) {
	if r.expirySent {
		return
	}
	userID, err := r.identity.UserID(ctx)
	if err != nil || userID == "" {
		return
	}
	r.expirySent = true
	r.dispatch(ctx, event.FocusTime)
}

func (r *Reporter) handleSkipped(ctx context.Context, event *Event) {
	userID, err := r.identity.UserID(ctx)
	if err != nil {
		return
	}
	if userID == "" {
		r.notifier.LoginRequired()
		return
	}

	now := r.clock.Now()
	if !r.lastSkipAt.IsZero() && now.Sub(r.lastSkipAt) < SkipCooldown {
		return
	}
	r.lastSkipAt = now
	r.dispatch(ctx, event.FocusTime)
}

func (r *Reporter) dispatch(ctx context.Context, focusSeconds int) {
	go func() {
		if err := r.submitter.Submit(ctx, focusSeconds); err != nil {
			r.notifier.SubmitFailed(err)
		}
	}()
}

type slogNotifier struct{}

func (slogNotifier) SubmitFailed(err error) {
	slog.Warn("failed to save focus time", "error", err)
}

func (slogNotifier) LoginRequired() {
	slog.Info("login required to save focus time")
}
