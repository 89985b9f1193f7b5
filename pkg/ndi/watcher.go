package ndi

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/bdbl/loan-verification-api/pkg/handoff"
	"github.com/bdbl/loan-verification-api/pkg/poller"
)

const (
	defaultPollInterval = 3 * time.Second
	defaultMaxWatch     = 10 * time.Minute
)

// Watcher owns the server-side poll loop for each in-flight proof
// request. One loop per thread id; at most one status check in flight
// at a time within a loop. Loops stop on a terminal status, the
// request's expiry, an explicit Cancel, or service shutdown. A poll
// never outlives its verification attempt.
type Watcher struct {
	svc      NDIService
	store    handoff.Store
	sessions SessionStore
	logger   *slog.Logger
	interval time.Duration
	maxWatch time.Duration

	ctx context.Context

	mu     sync.Mutex
	active map[string]*poller.Handle
}

type WatcherOptions struct {
	Logger   *slog.Logger
	Interval time.Duration
	// MaxWatch bounds a loop whose proof request carried no usable
	// expiry timestamp.
	MaxWatch time.Duration
}

// NewWatcher binds poll loops to ctx, normally the service's lifetime
// context; cancelling it stops every active loop.
func NewWatcher(ctx context.Context, svc NDIService, store handoff.Store, sessions SessionStore, opts WatcherOptions) *Watcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	maxWatch := opts.MaxWatch
	if maxWatch <= 0 {
		maxWatch = defaultMaxWatch
	}

	return &Watcher{
		svc:      svc,
		store:    store,
		sessions: sessions,
		logger:   logger.With(slog.String("component", "ndi_watcher")),
		interval: interval,
		maxWatch: maxWatch,
		ctx:      ctx,
		active:   make(map[string]*poller.Handle),
	}
}

// Watch persists a pending session and starts its poll loop. The loop
// checks the verifier once per interval until the outcome is terminal
// or expiresAt passes. Every watch is deadline-bounded: a zero
// expiresAt is replaced with the MaxWatch window.
func (w *Watcher) Watch(session Session, expiresAt time.Time) error {
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(w.maxWatch)
	}

	if err := w.sessions.Save(w.ctx, session); err != nil {
		return err
	}

	log := w.logger.With(
		slog.String("thread_id", session.ThreadID),
		slog.String("session_id", session.SessionID),
	)

	handle := poller.Start(w.ctx, w.interval, expiresAt, func(ctx context.Context) (bool, error) {
		return w.check(ctx, &session)
	})

	w.mu.Lock()
	w.active[session.ThreadID] = handle
	w.mu.Unlock()

	go w.reap(session, handle, log)

	return nil
}

func (w *Watcher) check(ctx context.Context, session *Session) (bool, error) {
	result, err := w.svc.CheckStatus(ctx, session.ThreadID)
	if err != nil {
		return false, err
	}

	switch result.Status {
	case StatusPending:
		// keep polling, quietly
		return false, nil

	case StatusVerified:
		data := MapCredential(result.Raw)

		key := handoff.Key{SessionID: session.SessionID, Source: handoff.SourceNDI}
		if err := w.store.Put(ctx, key, data); err != nil {
			return false, err
		}

		session.Status = StatusVerified
		session.FormData = &data
		return true, w.sessions.Save(ctx, *session)

	default:
		session.Status = result.Status
		return true, w.sessions.Save(ctx, *session)
	}
}

// reap waits for a loop to finish and records why, so a loop that ended
// without reaching a terminal status (expiry, cancellation, transport
// failure) still leaves the session in a terminal state.
func (w *Watcher) reap(session Session, handle *poller.Handle, log *slog.Logger) {
	<-handle.Done()

	w.mu.Lock()
	delete(w.active, session.ThreadID)
	w.mu.Unlock()

	err := handle.Err()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	current, loadErr := w.sessions.Load(ctx, session.ThreadID)
	if loadErr != nil || current.Status.Terminal() {
		return
	}

	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// ran out of time or was torn down while still pending
		current.Status = StatusExpired
	default:
		log.Error("ndi status polling failed", slog.Any("error", err))
		current.Status = StatusFailed
		current.Reason = err.Error()
	}

	if saveErr := w.sessions.Save(ctx, current); saveErr != nil {
		log.Error("failed to persist terminal session state", slog.Any("error", saveErr))
	}
}

// Cancel stops the poll loop for a thread id. Reports whether a loop
// was active.
func (w *Watcher) Cancel(threadID string) bool {
	w.mu.Lock()
	handle, ok := w.active[threadID]
	w.mu.Unlock()

	if ok {
		handle.Stop()
	}
	return ok
}

// Shutdown stops all active loops and waits for them to exit.
func (w *Watcher) Shutdown() {
	w.mu.Lock()
	handles := make([]*poller.Handle, 0, len(w.active))
	for _, handle := range w.active {
		handles = append(handles, handle)
	}
	w.mu.Unlock()

	for _, handle := range handles {
		handle.Stop()
	}
	for _, handle := range handles {
		<-handle.Done()
	}
}
