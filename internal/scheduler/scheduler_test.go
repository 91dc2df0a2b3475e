// internal/scheduler/scheduler_test.go

package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// counter records job executions in order.
type counter struct {
	mu   sync.Mutex
	runs []string
}

func (c *counter) job(name string) JobFunc {
	return func(context.Context) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.runs = append(c.runs, name)
		return nil
	}
}

func (c *counter) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.runs))
	copy(out, c.runs)
	return out
}

func TestStartRunsJobsOnceInOrder(t *testing.T) {
	var c counter
	s := New([]Job{
		{Name: "fetch", Interval: time.Hour, Run: c.job("fetch")},
		{Name: "sentiment", Interval: time.Hour, Run: c.job("sentiment")},
		{Name: "trends", Interval: time.Hour, Run: c.job("trends")},
		{Name: "alerts", Interval: time.Hour, Run: c.job("alerts")},
	}, testLogger())

	s.Start(context.Background())
	s.Stop()

	got := c.snapshot()
	want := []string{"fetch", "sentiment", "trends", "alerts"}
	if len(got) != len(want) {
		t.Fatalf("got %d runs, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got run order %v, want %v", got, want)
		}
	}
}

func TestStartIsIdempotent(t *testing.T) {
	var c counter
	s := New([]Job{
		{Name: "fetch", Interval: time.Hour, Run: c.job("fetch")},
	}, testLogger())

	s.Start(context.Background())
	s.Start(context.Background()) // no-op while running
	s.Stop()

	if got := c.snapshot(); len(got) != 1 {
		t.Errorf("got %d initial runs, want 1", len(got))
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := New([]Job{
		{Name: "noop", Interval: time.Hour, Run: func(context.Context) error { return nil }},
	}, testLogger())

	s.Start(context.Background())
	s.Stop()
	s.Stop() // second call must not panic or block

	if s.Running() {
		t.Error("expected scheduler to be stopped")
	}
}

func TestStopOnNeverStartedScheduler(t *testing.T) {
	s := New(nil, testLogger())
	s.Stop() // no-op
	if s.Running() {
		t.Error("expected scheduler to remain stopped")
	}
}

func TestRestartAfterStop(t *testing.T) {
	var c counter
	s := New([]Job{
		{Name: "fetch", Interval: time.Hour, Run: c.job("fetch")},
	}, testLogger())

	s.Start(context.Background())
	s.Stop()
	s.Start(context.Background())
	defer s.Stop()

	if !s.Running() {
		t.Fatal("expected scheduler to be running after restart")
	}
	if got := c.snapshot(); len(got) != 2 {
		t.Errorf("got %d runs, want one initial run per Start", len(got))
	}
}

func TestTickerFires(t *testing.T) {
	var c counter
	s := New([]Job{
		{Name: "fast", Interval: 10 * time.Millisecond, Run: c.job("fast")},
	}, testLogger())

	s.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if got := c.snapshot(); len(got) < 2 {
		t.Errorf("got %d runs, want at least the initial run plus one tick", len(got))
	}
}

func TestFailingJobKeepsTicking(t *testing.T) {
	var c counter
	failing := func(ctx context.Context) error {
		_ = c.job("fail")(ctx)
		return errors.New("transient failure")
	}
	s := New([]Job{
		{Name: "fail", Interval: 10 * time.Millisecond, Run: failing},
	}, testLogger())

	s.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if got := c.snapshot(); len(got) < 2 {
		t.Errorf("got %d runs, want failures to not stop the timer", len(got))
	}
}

func TestPanickingJobIsContained(t *testing.T) {
	var c counter
	s := New([]Job{
		{Name: "panics", Interval: time.Hour, Run: func(context.Context) error { panic("boom") }},
		{Name: "after", Interval: time.Hour, Run: c.job("after")},
	}, testLogger())

	s.Start(context.Background()) // must not propagate the panic
	s.Stop()

	if got := c.snapshot(); len(got) != 1 {
		t.Errorf("got %d runs of the following job, want 1", len(got))
	}
}

func TestContextCancelStopsLoops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := New([]Job{
		{Name: "noop", Interval: 10 * time.Millisecond, Run: func(context.Context) error { return nil }},
	}, testLogger())

	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after context cancellation")
	}
}
