package board

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/dukerupert/choreboard/internal/clock"
)

func TestRolloverCheck(t *testing.T) {
	clk := clock.NewFixed(time.Date(2024, time.January, 1, 23, 59, 0, 0, time.UTC))

	var got [][2]string
	w := NewRolloverWatcher(clk, time.Minute, func(prev, next string) {
		got = append(got, [2]string{prev, next})
	})

	if w.Check() {
		t.Error("no rollover expected before midnight")
	}

	clk.Set(time.Date(2024, time.January, 2, 0, 0, 30, 0, time.UTC))
	if !w.Check() {
		t.Error("expected rollover after midnight")
	}
	if w.Check() {
		t.Error("rollover must fire once per date change")
	}

	want := [][2]string{{"2024-01-01", "2024-01-02"}}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("callbacks = %v, want %v", got, want)
	}
}

func TestRolloverWatcherStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	clk := clock.NewFixed(monday)
	fired := make(chan string, 1)
	w := NewRolloverWatcher(clk, 5*time.Millisecond, func(_, next string) {
		select {
		case fired <- next:
		default:
		}
	})

	w.Start(context.Background())
	w.Start(context.Background())
	clk.AddDate(1)

	select {
	case next := <-fired:
		if next != "2024-01-02" {
			t.Errorf("next = %q, want 2024-01-02", next)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("rollover callback not called")
	}

	w.Stop()
	w.Stop()
}

func TestRolloverWatcherStopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	calls := 0
	w := NewRolloverWatcher(clock.NewFixed(monday), time.Millisecond, func(_, _ string) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	cancel()
	w.Stop()

	mu.Lock()
	defer mu.Unlock()
	if calls != 0 {
		t.Errorf("calls = %d, want 0 without a date change", calls)
	}
}
