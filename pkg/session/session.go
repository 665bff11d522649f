// Package session owns one tracking run: resolve the target, drive the
// sampling loop at a fixed cadence, and reduce the result into a report.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/serene-interactive/seagreen/pkg/proctable"
	"github.com/serene-interactive/seagreen/pkg/report"
	"github.com/serene-interactive/seagreen/pkg/sampler"
	"github.com/serene-interactive/seagreen/pkg/types"
)

// State is the session lifecycle: Pending -> Running -> Completed|Aborted.
// Completed is the only state that yields a report; an early target exit
// still completes, with whatever was observed.
type State int

const (
	StatePending State = iota
	StateRunning
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Controller drives a single bounded tracking session. Each controller gets
// its own sampler, so delta state can never leak between sessions.
type Controller struct {
	reader   proctable.Reader
	sampler  *sampler.Sampler
	interval time.Duration
	duration time.Duration
	state    State

	// OnTick, if set, receives progress after every successful sample.
	OnTick func(elapsed, total time.Duration)
}

// New returns a controller that will poll every interval until duration has
// elapsed or the target exits.
func New(reader proctable.Reader, interval, duration time.Duration) *Controller {
	if interval <= 0 {
		interval = time.Second
	}
	return &Controller{
		reader:   reader,
		sampler:  sampler.New(reader),
		interval: interval,
		duration: duration,
		state:    StatePending,
	}
}

// State reports the controller's current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Run blocks until the session finishes and returns its report.
//
// Failure to resolve the target aborts before any sample is taken. Once
// running, the loop takes one sample per tick and sleeps the remainder of
// the interval, so the deadline never drifts by more than one tick. The
// target exiting mid-session (ErrProcessGone) completes the session early
// with partial statistics; ctx cancellation and permission failures abort.
func (c *Controller) Run(ctx context.Context, pid int32) (types.Report, error) {
	handle, err := c.reader.Resolve(pid)
	if err != nil {
		c.state = StateAborted
		return types.Report{}, err
	}

	c.state = StateRunning
	agg := report.NewAggregator()
	start := time.Now()
	earlyExit := false

	for {
		if err := ctx.Err(); err != nil {
			c.state = StateAborted
			return types.Report{}, err
		}

		tickStart := time.Now()
		obs, err := c.sampler.Sample(handle)
		if err != nil {
			if errors.Is(err, proctable.ErrProcessGone) {
				earlyExit = true
				break
			}
			c.state = StateAborted
			return types.Report{}, err
		}
		agg.Ingest(obs)

		elapsed := time.Since(start)
		if c.OnTick != nil {
			c.OnTick(elapsed, c.duration)
		}
		if elapsed >= c.duration {
			break
		}

		if err := c.sleepTick(ctx, tickStart); err != nil {
			c.state = StateAborted
			return types.Report{}, err
		}
	}

	c.state = StateCompleted
	hdr := report.Header{PID: handle.PID, Name: handle.Name}
	return report.Build(hdr, time.Since(start), agg.Final(), earlyExit), nil
}

// sleepTick waits out the remainder of the interval after the time spent
// sampling, waking early on cancellation.
func (c *Controller) sleepTick(ctx context.Context, tickStart time.Time) error {
	remaining := c.interval - time.Since(tickStart)
	if remaining <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
