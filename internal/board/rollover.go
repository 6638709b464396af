package board

import (
	"context"
	"sync"
	"time"

	"github.com/dukerupert/choreboard/internal/clock"
)

// RolloverWatcher notices when the local calendar date changes. Completion
// state needs no rewrite at midnight; the callback only tells listeners to
// refresh.
type RolloverWatcher struct {
	mu       sync.Mutex
	clock    clock.Clock
	interval time.Duration
	onChange func(prev, next string)
	last     string
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewRolloverWatcher creates a watcher that polls clk every interval and
// calls onChange once per observed date change.
func NewRolloverWatcher(clk clock.Clock, interval time.Duration, onChange func(prev, next string)) *RolloverWatcher {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &RolloverWatcher{
		clock:    clk,
		interval: interval,
		onChange: onChange,
		last:     clock.Today(clk),
	}
}

// Start begins the polling loop. Calling Start on a running watcher is a
// no-op.
func (w *RolloverWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.cancel != nil {
		w.mu.Unlock()
		return
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	done := w.done
	w.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.Check()
			}
		}
	}()
}

// Stop ends the loop and waits for it to exit.
func (w *RolloverWatcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	done := w.done
	w.cancel = nil
	w.done = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Check compares today with the last observed date and fires the callback
// when it moved. It reports whether a rollover happened.
func (w *RolloverWatcher) Check() bool {
	today := clock.Today(w.clock)

	w.mu.Lock()
	prev := w.last
	if today == prev {
		w.mu.Unlock()
		return false
	}
	w.last = today
	w.mu.Unlock()

	if w.onChange != nil {
		w.onChange(prev, today)
	}
	return true
}
