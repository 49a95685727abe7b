package ingest

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of paths and emits each distinct path once the
// burst goes quiet. Add and Flush may be called from different goroutines;
// the timer callback runs Flush on its own goroutine.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]struct{}
	timer   *time.Timer
	stopped bool
	emit    func(string)
}

func newDebouncer(delay time.Duration, emit func(string)) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: map[string]struct{}{},
		emit:    emit,
	}
}

func (d *debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending[path] = struct{}{}
	if d.delay <= 0 {
		d.flushLocked()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.Flush)
}

// Flush emits everything pending. Safe to call concurrently with Add.
func (d *debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flushLocked()
}

// Stop prevents further emits. Pending paths are dropped.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *debouncer) flushLocked() {
	if d.stopped {
		return
	}
	for p := range d.pending {
		d.emit(p)
		delete(d.pending, p)
	}
}
