// Package sampler turns raw process-table readings into per-tick
// observations. Instantaneous CPU% only exists as a delta: CPU time consumed
// since the previous reading divided by the wall clock that passed, so the
// sampler keeps the previous cumulative reading per handle.
package sampler

import (
	"time"

	"github.com/serene-interactive/seagreen/pkg/proctable"
	"github.com/serene-interactive/seagreen/pkg/types"
)

// timeNow allows tests to control the sampling clock.
var timeNow = time.Now

type reading struct {
	cpuTime time.Duration
	at      time.Time
}

// Sampler produces one Observation per call for resolved process handles.
// Delta state lives on the instance, so sequential sessions with fresh
// samplers can never see each other's stale readings.
type Sampler struct {
	reader proctable.Reader
	prev   map[int32]reading
}

// New returns a Sampler reading through the given process table.
func New(reader proctable.Reader) *Sampler {
	return &Sampler{
		reader: reader,
		prev:   make(map[int32]reading),
	}
}

// Sample performs one point-in-time read of the handle's usage.
//
// The first call for a handle is a warm-up: its memory reading is usable but
// CPUValid is false, since there is no previous cumulative reading to delta
// against. Warm-up CPU is excluded from averages rather than counted as zero.
// Fails with proctable.ErrProcessGone once the target has exited.
func (s *Sampler) Sample(h *proctable.Handle) (types.Observation, error) {
	usage, err := s.reader.ReadUsage(h)
	if err != nil {
		return types.Observation{}, err
	}

	now := timeNow()
	obs := types.Observation{Timestamp: now, RSSBytes: usage.RSS}

	if prev, ok := s.prev[h.PID]; ok {
		wall := now.Sub(prev.at)
		if wall > 0 {
			pct := 100 * float64(usage.CPUTime-prev.cpuTime) / float64(wall)
			if pct < 0 {
				// cumulative counter went backwards (pid reuse)
				pct = 0
			}
			obs.CPUPercent = pct
			obs.CPUValid = true
		}
	}

	s.prev[h.PID] = reading{cpuTime: usage.CPUTime, at: now}
	return obs, nil
}

// Forget drops delta state for a handle.
func (s *Sampler) Forget(h *proctable.Handle) {
	delete(s.prev, h.PID)
}
