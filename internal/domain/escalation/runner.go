package escalation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Timer is the cancellable handle for one Notifying state.
type Timer interface {
	Stop() bool
}

// TimerFactory arms a timer; tests swap in a manual trigger.
type TimerFactory func(d time.Duration, fn func()) Timer

func realTimer(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Hooks let the owning service observe state transitions: Notify fires on
// every contact the runner reaches (advanced is false for the first),
// Finished fires once per escalation with err set to ErrEscalationExhausted
// when the cascade ran out.
type Hooks struct {
	Notify   func(ctx context.Context, esc *Escalation, contact Contact, advanced bool)
	Finished func(ctx context.Context, esc *Escalation, err error)
}

type run struct {
	esc   *Escalation
	plan  Plan
	hooks Hooks
	timer Timer
	idx   int
}

// Runner drives active escalation state machines:
// Idle → Notifying(1) → {Acknowledged | TimedOut → Notifying(k+1)} →
// Resolved | Exhausted. One cancellable timer exists per Notifying state.
type Runner struct {
	mu       sync.Mutex
	active   map[uuid.UUID]*run
	newTimer TimerFactory
	log      zerolog.Logger
}

func NewRunner(log zerolog.Logger) *Runner {
	return &Runner{active: make(map[uuid.UUID]*run), newTimer: realTimer, log: log}
}

// NewRunnerWithTimer injects a timer factory for deterministic tests.
func NewRunnerWithTimer(log zerolog.Logger, factory TimerFactory) *Runner {
	return &Runner{active: make(map[uuid.UUID]*run), newTimer: factory, log: log}
}

// Start moves the escalation from Idle to Notifying(1) and notifies the
// first contact.
func (r *Runner) Start(ctx context.Context, esc *Escalation, plan Plan, hooks Hooks) error {
	r.mu.Lock()
	if _, exists := r.active[esc.ID]; exists {
		r.mu.Unlock()
		return fmt.Errorf("escalation %s already running", esc.ID)
	}
	esc.State = StateNotifying
	esc.CurrentPriority = 1
	esc.TimeoutSeconds = plan.TimeoutSeconds
	rn := &run{esc: esc, plan: plan, hooks: hooks}
	r.active[esc.ID] = rn
	r.arm(rn)
	r.mu.Unlock()

	r.log.Info().Str("escalation_id", esc.ID.String()).
		Str("child_id", esc.ChildID.String()).
		Int("contacts", len(plan.Contacts)).
		Msg("escalation started")
	if hooks.Notify != nil {
		hooks.Notify(ctx, esc, plan.Contacts[0], false)
	}
	return nil
}

// arm starts the timeout for the current Notifying state. Caller holds r.mu.
func (r *Runner) arm(rn *run) {
	id := rn.esc.ID
	rn.timer = r.newTimer(time.Duration(rn.plan.TimeoutSeconds)*time.Second, func() {
		r.timeout(id)
	})
}

// Ack acknowledges the active escalation, cancelling its timer and moving it
// to Resolved.
func (r *Runner) Ack(ctx context.Context, escalationID uuid.UUID, memberID string) (*Escalation, error) {
	r.mu.Lock()
	rn, ok := r.active[escalationID]
	if !ok {
		r.mu.Unlock()
		return nil, fmt.Errorf("no active escalation %s", escalationID)
	}
	rn.timer.Stop()
	delete(r.active, escalationID)

	now := time.Now()
	rn.esc.State = StateResolved
	rn.esc.AcknowledgedBy = &memberID
	rn.esc.EndedAt = &now
	r.mu.Unlock()

	r.log.Info().Str("escalation_id", escalationID.String()).
		Str("acknowledged_by", memberID).Msg("escalation resolved")
	if rn.hooks.Finished != nil {
		rn.hooks.Finished(ctx, rn.esc, nil)
	}
	return rn.esc, nil
}

// timeout advances the cascade past an unacknowledged contact.
func (r *Runner) timeout(escalationID uuid.UUID) {
	ctx := context.Background()

	r.mu.Lock()
	rn, ok := r.active[escalationID]
	if !ok {
		// Acked between expiry and here.
		r.mu.Unlock()
		return
	}
	rn.idx++
	if rn.idx >= len(rn.plan.Contacts) {
		delete(r.active, escalationID)
		now := time.Now()
		rn.esc.State = StateExhausted
		rn.esc.EndedAt = &now
		r.mu.Unlock()

		r.log.Error().Str("escalation_id", escalationID.String()).
			Str("child_id", rn.esc.ChildID.String()).
			Msg("escalation exhausted with no acknowledgment")
		if rn.hooks.Finished != nil {
			rn.hooks.Finished(ctx, rn.esc, ErrEscalationExhausted)
		}
		return
	}

	rn.esc.CurrentPriority = rn.idx + 1
	next := rn.plan.Contacts[rn.idx]
	r.arm(rn)
	r.mu.Unlock()

	r.log.Warn().Str("escalation_id", escalationID.String()).
		Int("priority", rn.idx+1).Msg("escalation advanced to next contact")
	if rn.hooks.Notify != nil {
		rn.hooks.Notify(ctx, rn.esc, next, true)
	}
}

// Active reports whether an escalation is still being driven.
func (r *Runner) Active(escalationID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[escalationID]
	return ok
}
