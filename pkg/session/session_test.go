package session

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/serene-interactive/seagreen/pkg/proctable"
	"github.com/serene-interactive/seagreen/pkg/types"
)

// fakeReader scripts resolution and usage reads for the controller.
type fakeReader struct {
	resolveErr error
	usageErr   error
	maxReads   int // after this many reads the target is gone; 0 = unlimited
	reads      atomic.Int64
	cpuPerTick time.Duration
	rss        uint64
}

func (f *fakeReader) List() ([]types.ProcessInfo, error) { return nil, nil }

func (f *fakeReader) Resolve(pid int32) (*proctable.Handle, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return &proctable.Handle{PID: pid, Name: "target"}, nil
}

func (f *fakeReader) ReadUsage(h *proctable.Handle) (types.Usage, error) {
	n := f.reads.Add(1)
	if f.usageErr != nil {
		return types.Usage{}, f.usageErr
	}
	if f.maxReads > 0 && n > int64(f.maxReads) {
		return types.Usage{}, fmt.Errorf("pid %d: %w", h.PID, proctable.ErrProcessGone)
	}
	return types.Usage{CPUTime: time.Duration(n) * f.cpuPerTick, RSS: f.rss}, nil
}

func TestRunCompletesAtDeadline(t *testing.T) {
	reader := &fakeReader{cpuPerTick: time.Millisecond, rss: 32 << 20}
	c := New(reader, 5*time.Millisecond, 40*time.Millisecond)

	rep, err := c.Run(context.Background(), 42)
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if c.State() != StateCompleted {
		t.Fatalf("expected completed state, got %s", c.State())
	}
	if rep.EarlyExit {
		t.Fatalf("deadline completion flagged as early exit")
	}
	if rep.Duration < 40*time.Millisecond {
		t.Fatalf("reported duration %v shorter than requested window", rep.Duration)
	}
	if rep.Samples < 2 {
		t.Fatalf("expected several samples, got %d", rep.Samples)
	}
	if rep.PeakMemory != 32<<20 {
		t.Fatalf("unexpected peak memory: %d", rep.PeakMemory)
	}
}

func TestRunCompletesEarlyWhenTargetVanishes(t *testing.T) {
	// Target survives exactly 3 ticks, then disappears. The session must
	// still complete, covering roughly the 3 observed ticks.
	reader := &fakeReader{maxReads: 3, cpuPerTick: time.Millisecond, rss: 8 << 20}
	c := New(reader, 10*time.Millisecond, time.Second)

	rep, err := c.Run(context.Background(), 42)
	if err != nil {
		t.Fatalf("early exit must not fail the session: %v", err)
	}
	if c.State() != StateCompleted {
		t.Fatalf("expected completed state, got %s", c.State())
	}
	if !rep.EarlyExit {
		t.Fatalf("expected early-exit flag")
	}
	if rep.Samples != 3 {
		t.Fatalf("expected 3 samples, got %d", rep.Samples)
	}
	if rep.Duration >= time.Second {
		t.Fatalf("duration should cover the observed window only, got %v", rep.Duration)
	}
	if rep.Duration < 20*time.Millisecond {
		t.Fatalf("duration shorter than 3 observed ticks: %v", rep.Duration)
	}
}

func TestRunAbortsOnResolutionFailure(t *testing.T) {
	reader := &fakeReader{resolveErr: fmt.Errorf("pid 99999999: %w", proctable.ErrNoSuchProcess)}
	c := New(reader, time.Millisecond, time.Second)

	_, err := c.Run(context.Background(), 99999999)
	if !errors.Is(err, proctable.ErrNoSuchProcess) {
		t.Fatalf("expected ErrNoSuchProcess, got %v", err)
	}
	if c.State() != StateAborted {
		t.Fatalf("expected aborted state, got %s", c.State())
	}
	if reader.reads.Load() != 0 {
		t.Fatalf("no samples may be taken for an unresolved target, got %d", reader.reads.Load())
	}
}

func TestRunAbortsOnPermissionFailure(t *testing.T) {
	reader := &fakeReader{usageErr: fmt.Errorf("pid 1: %w", proctable.ErrPermissionDenied)}
	c := New(reader, time.Millisecond, time.Second)

	_, err := c.Run(context.Background(), 1)
	if !errors.Is(err, proctable.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if c.State() != StateAborted {
		t.Fatalf("expected aborted state, got %s", c.State())
	}
}

func TestRunAbortsOnCancellation(t *testing.T) {
	reader := &fakeReader{cpuPerTick: time.Millisecond}
	c := New(reader, 10*time.Millisecond, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(25 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := c.Run(ctx, 42)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if c.State() != StateAborted {
		t.Fatalf("expected aborted state, got %s", c.State())
	}
	if waited := time.Since(start); waited > time.Second {
		t.Fatalf("cancellation not prompt, took %v", waited)
	}
}

func TestRunReportsProgress(t *testing.T) {
	reader := &fakeReader{cpuPerTick: time.Millisecond}
	c := New(reader, 5*time.Millisecond, 20*time.Millisecond)

	var ticks atomic.Int64
	c.OnTick = func(elapsed, total time.Duration) {
		if total != 20*time.Millisecond {
			t.Errorf("unexpected total in progress callback: %v", total)
		}
		ticks.Add(1)
	}

	if _, err := c.Run(context.Background(), 42); err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if ticks.Load() == 0 {
		t.Fatalf("progress callback never fired")
	}
}

func TestStateStrings(t *testing.T) {
	cases := map[State]string{
		StatePending:   "pending",
		StateRunning:   "running",
		StateCompleted: "completed",
		StateAborted:   "aborted",
		State(99):      "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Fatalf("state %d: expected %q, got %q", state, want, got)
		}
	}
}
