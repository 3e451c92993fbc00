package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/tcgexchange/internal/logging"
)

// LoginChecker reports whether there is an authenticated session.
type LoginChecker interface {
	IsLoggedIn() bool
}

// UpdateFunc pushes the current profile and collections to the server. It
// must read state when called, not when the sync was scheduled.
type UpdateFunc func(ctx context.Context) error

// Scheduler debounces profile updates. Updates are skipped while anonymous.
// Runs never overlap; each sends the state current when it starts, so the
// last run wins.
type Scheduler struct {
	ctx       context.Context
	debouncer *Debouncer
	session   LoginChecker
	update    UpdateFunc
	log       logging.Logger
	runMu     sync.Mutex
}

// NewScheduler builds a scheduler whose updates run with ctx.
func NewScheduler(ctx context.Context, delay time.Duration, session LoginChecker, update UpdateFunc, log logging.Logger, opts ...DebouncerOption) *Scheduler {
	s := &Scheduler{
		ctx:     ctx,
		session: session,
		update:  update,
		log:     log.With("component", "syncer"),
	}
	s.debouncer = NewDebouncer(delay, s.run, opts...)
	return s
}

// Trigger schedules an update after the quiet period.
func (s *Scheduler) Trigger() {
	s.debouncer.Trigger()
}

func (s *Scheduler) Pending() bool {
	return s.debouncer.Pending()
}

// Flush runs a pending update immediately and waits for any update already
// in flight.
func (s *Scheduler) Flush() {
	s.debouncer.Flush()

	// a run started by the timer holds runMu until it finishes
	s.runMu.Lock()
	defer s.runMu.Unlock()
}

// Close flushes and then stops accepting triggers.
func (s *Scheduler) Close() {
	s.Flush()
	s.debouncer.Stop()
}

func (s *Scheduler) run() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if !s.session.IsLoggedIn() {
		s.log.Debug(s.ctx, "sync skipped: not logged in")
		return
	}

	if err := s.update(s.ctx); err != nil {
		s.log.Error(s.ctx, "profile sync failed", "error", err)
		return
	}
	s.log.Debug(s.ctx, "profile synced")
}
