package producer

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/barline/barline/internal/slots"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// waitChanged asserts the board signals a change within the deadline.
func waitChanged(t *testing.T, board *slots.Board) {
	t.Helper()
	select {
	case <-board.Changed():
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for board change")
	}
}

// waitCount polls until the counter reaches want or the deadline passes.
func waitCount(t *testing.T, counter *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for counter.Load() < want {
		if time.Now().After(deadline) {
			t.Fatalf("compute count = %d, want at least %d", counter.Load(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestProducer_IntervalComputesImmediatelyThenTicks(t *testing.T) {
	board := slots.NewBoard(1)
	var count atomic.Int32
	spec := Spec{
		Name:     "tick",
		Interval: 5 * time.Millisecond,
		Compute: func() (string, bool) {
			count.Add(1)
			return "tick", true
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go New(spec, board, 0, testLogger()).Run(ctx)

	waitChanged(t, board)
	if got := board.Read(0); got != "tick" {
		t.Errorf("Read(0) = %q, want %q", got, "tick")
	}
	waitCount(t, &count, 3)
}

func TestProducer_SignalOnlyWaitsForFirstWake(t *testing.T) {
	board := slots.NewBoard(1)
	wake := make(chan struct{}, 1)
	var count atomic.Int32
	spec := Spec{
		Name: "volume",
		Wake: wake,
		Compute: func() (string, bool) {
			count.Add(1)
			return "muted", true
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go New(spec, board, 0, testLogger()).Run(ctx)

	// no timer and no trigger yet: the slot must stay empty
	time.Sleep(50 * time.Millisecond)
	if got := count.Load(); got != 0 {
		t.Fatalf("compute ran %d times before the first wake", got)
	}
	if got := board.Read(0); got != "" {
		t.Fatalf("Read(0) = %q before the first wake, want empty", got)
	}

	wake <- struct{}{}
	waitChanged(t, board)
	if got := board.Read(0); got != "muted" {
		t.Errorf("Read(0) = %q, want %q", got, "muted")
	}
}

func TestProducer_HybridRefreshesOnWake(t *testing.T) {
	board := slots.NewBoard(1)
	wake := make(chan struct{}, 1)
	var count atomic.Int32
	spec := Spec{
		Name:     "battery",
		Interval: time.Hour, // the ticker never fires inside the test
		Wake:     wake,
		Compute: func() (string, bool) {
			count.Add(1)
			return "98%", true
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go New(spec, board, 0, testLogger()).Run(ctx)

	// the immediate startup compute
	waitChanged(t, board)
	waitCount(t, &count, 1)

	wake <- struct{}{}
	waitChanged(t, board)
	waitCount(t, &count, 2)
}

func TestProducer_FailedComputeRetainsPreviousValue(t *testing.T) {
	board := slots.NewBoard(1)
	wake := make(chan struct{}, 1)
	var count atomic.Int32
	spec := Spec{
		Name: "battery",
		Wake: wake,
		Compute: func() (string, bool) {
			if count.Add(1) == 1 {
				return "75%", true
			}
			return "", false
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go New(spec, board, 0, testLogger()).Run(ctx)

	wake <- struct{}{}
	waitChanged(t, board)
	if got := board.Read(0); got != "75%" {
		t.Fatalf("Read(0) = %q, want %q", got, "75%")
	}

	wake <- struct{}{}
	waitCount(t, &count, 2)
	if got := board.Read(0); got != "75%" {
		t.Errorf("Read(0) = %q after failed refresh, want retained %q", got, "75%")
	}
	// a failed refresh publishes nothing, so no change is pending
	select {
	case <-board.Changed():
		t.Error("failed refresh signalled a change")
	default:
	}
}

func TestProducer_RecoversFromComputePanic(t *testing.T) {
	board := slots.NewBoard(1)
	var count atomic.Int32
	spec := Spec{
		Name:     "flaky",
		Interval: 5 * time.Millisecond,
		Compute: func() (string, bool) {
			if count.Add(1) == 1 {
				panic("boom")
			}
			return "recovered", true
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go New(spec, board, 0, testLogger()).Run(ctx)

	waitChanged(t, board)
	if got := board.Read(0); got != "recovered" {
		t.Errorf("Read(0) = %q, want %q", got, "recovered")
	}
}

func TestProducer_StopsOnContextCancel(t *testing.T) {
	board := slots.NewBoard(1)
	var count atomic.Int32
	spec := Spec{
		Name:     "tick",
		Interval: time.Millisecond,
		Compute: func() (string, bool) {
			count.Add(1)
			return "tick", true
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		New(spec, board, 0, testLogger()).Run(ctx)
		close(done)
	}()

	waitCount(t, &count, 2)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
