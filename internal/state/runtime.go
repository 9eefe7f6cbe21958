package state

import (
	"sync"
	"time"

	"github.com/timebg/background-changer/internal/domain"
)

// Snapshot is a point-in-time copy of the runtime state.
type Snapshot struct {
	CurrentAsset        string
	CurrentRange        domain.TimeRange
	HasRange            bool
	LastTick            time.Time
	LastChange          time.Time
	LastReload          time.Time
	LastError           error
	ConsecutiveFailures int
	StopRequested       bool
}

// Runtime is the mutable state of a running process.
type Runtime struct {
	mu       sync.RWMutex
	snapshot Snapshot

	stopOnce sync.Once
	initOnce sync.Once
	stop     chan struct{}
}

// CurrentAsset returns the image most recently applied, or "".
func (r *Runtime) CurrentAsset() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot.CurrentAsset
}

// SetApplied records a successful wallpaper change.
func (r *Runtime) SetApplied(rng domain.TimeRange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.CurrentAsset = rng.Image
	r.snapshot.CurrentRange = rng
	r.snapshot.HasRange = true
	r.snapshot.LastChange = time.Now()
}

// RecordTick records the outcome of one poller iteration. A nil err resets
// the failure streak.
func (r *Runtime) RecordTick(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.LastTick = time.Now()
	if err != nil {
		r.snapshot.LastError = err
		r.snapshot.ConsecutiveFailures++
		return
	}
	r.snapshot.LastError = nil
	r.snapshot.ConsecutiveFailures = 0
}

// RecordReload marks that the configuration was reloaded from disk.
func (r *Runtime) RecordReload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.LastReload = time.Now()
}

// RequestStop sets the stop flag and wakes every Done waiter. Safe to call
// more than once.
func (r *Runtime) RequestStop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		r.snapshot.StopRequested = true
		r.mu.Unlock()
		close(r.done())
	})
}

// Done is closed once a stop has been requested.
func (r *Runtime) Done() <-chan struct{} {
	return r.done()
}

func (r *Runtime) StopRequested() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot.StopRequested
}

// Snapshot returns a copy of the current state.
func (r *Runtime) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

func (r *Runtime) done() chan struct{} {
	r.initOnce.Do(func() { r.stop = make(chan struct{}) })
	return r.stop
}
