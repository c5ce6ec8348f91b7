package filter

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesRapidCalls(t *testing.T) {
	d := NewDebouncer()
	var fired int32

	// Three keystrokes in quick succession: only the last may fire.
	for i := 0; i < 3; i++ {
		d.Schedule(func() { atomic.AddInt32(&fired, 1) }, 30*time.Millisecond)
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("expected exactly 1 firing, got %d", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer()
	var fired int32

	token := d.Schedule(func() { atomic.AddInt32(&fired, 1) }, 20*time.Millisecond)
	d.Cancel(token)

	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 0 {
		t.Errorf("cancelled call fired %d times", got)
	}
}

func TestDebouncerStaleCancelIsNoop(t *testing.T) {
	d := NewDebouncer()
	var fired int32

	stale := d.Schedule(func() { atomic.AddInt32(&fired, 1) }, 10*time.Millisecond)
	current := d.Schedule(func() { atomic.AddInt32(&fired, 1) }, 10*time.Millisecond)
	_ = current

	// Cancelling the superseded token must not stop the current timer.
	d.Cancel(stale)

	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("expected current timer to fire once, got %d", got)
	}
}
