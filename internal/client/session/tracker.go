package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrStaleGeneration is returned for events addressed to a session that a
// newer Start has superseded. Such events must be discarded.
var ErrStaleGeneration = errors.New("stale session generation")

// Ticket identifies the generation an upload belongs to. Ctx is cancelled
// when the generation is superseded or finishes.
type Ticket struct {
	Generation uint64
	SessionID  string
	Ctx        context.Context
}

// Observer receives every session change. Observers run synchronously and
// in order and must not call back into the tracker; the Session they are
// handed is the current state.
type Observer func(Session)

// Tracker holds the single active session. It is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	current  Session
	gen      uint64
	cancel   context.CancelFunc
	done     chan struct{}
	closeOne func()

	notifyMu  sync.Mutex
	observers []Observer

	now   func() time.Time
	newID func() string
}

func NewTracker() *Tracker {
	return &Tracker{
		current: New(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Subscribe registers fn for all subsequent changes.
func (t *Tracker) Subscribe(fn Observer) {
	t.notifyMu.Lock()
	defer t.notifyMu.Unlock()
	t.observers = append(t.observers, fn)
}

// Current returns a copy of the active session.
func (t *Tracker) Current() Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Start supersedes whatever is active: the previous upload's context is
// cancelled, the session is reset to idle and a new generation enters
// uploading with progress 0.
func (t *Tracker) Start(parent context.Context, files []string) (Ticket, Session) {
	t.mu.Lock()

	if t.cancel != nil {
		t.cancel()
	}
	if t.closeOne != nil {
		t.closeOne()
	}

	var changes []Session
	if t.current.Status != StatusIdle {
		changes = append(changes, t.current.Reset())
	}

	t.gen++
	// Begin cannot fail from a freshly reset session.
	next, _ := t.current.Reset().Begin(t.gen, t.newID(), files, t.now())
	changes = append(changes, next)

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	t.current = next
	t.cancel = cancel
	t.done = done
	t.closeOne = sync.OnceFunc(func() { close(done) })

	ticket := Ticket{Generation: next.Generation, SessionID: next.ID, Ctx: ctx}
	t.publishLocked(changes...)

	return ticket, next
}

// Progress applies a percentage to generation gen.
func (t *Tracker) Progress(gen uint64, percent float64) (Session, error) {
	return t.apply(gen, func(s Session) (Session, error) { return s.Progress(percent) })
}

// Succeed finishes generation gen with url.
func (t *Tracker) Succeed(gen uint64, url string) (Session, error) {
	return t.apply(gen, func(s Session) (Session, error) { return s.Succeed(url, t.now()) })
}

// Fail finishes generation gen with message.
func (t *Tracker) Fail(gen uint64, message string) (Session, error) {
	return t.apply(gen, func(s Session) (Session, error) { return s.Fail(message, t.now()) })
}

func (t *Tracker) apply(gen uint64, fn func(Session) (Session, error)) (Session, error) {
	t.mu.Lock()

	if gen != t.gen {
		cur := t.current
		t.mu.Unlock()
		return cur, ErrStaleGeneration
	}

	prev := t.current
	next, err := fn(prev)
	if err != nil {
		t.mu.Unlock()
		return prev, err
	}

	t.current = next
	var release func()
	if next.IsTerminal() {
		t.cancel()
		release = t.closeOne
	}

	if next.Status == prev.Status && next.ProgressPercent == prev.ProgressPercent {
		t.mu.Unlock()
	} else {
		t.publishLocked(next)
	}

	// Waiters are released only after observers have seen the outcome.
	if release != nil {
		release()
	}
	return next, nil
}

// publishLocked hands changes to observers. It is entered with t.mu held
// and releases it once notifyMu is taken, so observers see changes in
// the order they were made.
func (t *Tracker) publishLocked(changes ...Session) {
	t.notifyMu.Lock()
	t.mu.Unlock()
	defer t.notifyMu.Unlock()

	for _, s := range changes {
		for _, fn := range t.observers {
			fn(s)
		}
	}
}

// Wait blocks until the current generation reaches a terminal state, is
// superseded, or ctx ends. With nothing started it returns at once.
func (t *Tracker) Wait(ctx context.Context) (Session, error) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return t.Current(), nil
	}

	select {
	case <-done:
		return t.Current(), nil
	case <-ctx.Done():
		return t.Current(), ctx.Err()
	}
}
