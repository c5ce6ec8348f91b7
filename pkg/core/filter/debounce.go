package filter

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay applied to free-text search before the
// predicate is recompiled, so the collection is not re-scanned per keystroke.
const DefaultDebounce = 275 * time.Millisecond

// Debouncer coalesces rapid calls into one. Each Schedule cancels the
// pending timer before arming a new one. Timers replace, they never queue.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// Token identifies a scheduled call so a caller can cancel it explicitly.
type Token uint64

// NewDebouncer returns a ready-to-use debouncer.
func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// Schedule arms fn to run after delay, cancelling any pending call first.
func (d *Debouncer) Schedule(fn func(), delay time.Duration) Token {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	token := d.seq
	d.timer = time.AfterFunc(delay, func() {
		d.mu.Lock()
		current := d.seq == token
		d.mu.Unlock()
		if current {
			fn()
		}
	})
	return Token(token)
}

// Cancel stops a pending call. Cancelling a token that already fired or was
// superseded is a no-op.
func (d *Debouncer) Cancel(token Token) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seq == uint64(token) && d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
