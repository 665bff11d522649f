// Package report reduces a session's observation stream into running
// statistics and scores the result.
package report

import (
	"math"
	"time"

	"github.com/serene-interactive/seagreen/pkg/types"
)

// Aggregator folds observations into RunningStats incrementally: O(1) memory
// no matter how long the session runs, no retained history.
type Aggregator struct {
	stats types.RunningStats
}

// NewAggregator returns an empty accumulator for one session.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Ingest consumes one observation. Memory is counted for every observation;
// CPU only when the sample carries a valid delta (warm-up samples don't).
func (a *Aggregator) Ingest(obs types.Observation) {
	a.stats.Samples++
	a.stats.MemSum += obs.RSSBytes
	if obs.RSSBytes > a.stats.MemPeak {
		a.stats.MemPeak = obs.RSSBytes
	}
	if !obs.CPUValid {
		return
	}
	a.stats.CPUSamples++
	a.stats.CPUSum += obs.CPUPercent
	if obs.CPUPercent > a.stats.CPUPeak {
		a.stats.CPUPeak = obs.CPUPercent
	}
}

// Final returns the accumulated statistics. It is side-effect-free and may
// be called repeatedly; without intervening Ingest calls the results are
// identical.
func (a *Aggregator) Final() types.RunningStats {
	return a.stats
}

// tierTable orders minimum scores high to low; the first row at or below the
// score wins. Thresholds are policy constants.
var tierTable = []struct {
	minScore int
	tier     types.Tier
}{
	{90, types.TierExcellent},
	{70, types.TierGood},
	{40, types.TierFair},
	{0, types.TierNeedsWork},
}

func tierFor(score int) types.Tier {
	for _, row := range tierTable {
		if score >= row.minScore {
			return row.tier
		}
	}
	return types.TierNeedsWork
}

// Score maps average single-core CPU% and the observed duration to an
// efficiency score in [0,100] plus its tier. Lower CPU over a shorter window
// scores higher: raw = 100 - avgCPU * (seconds/60), rounded and clamped.
func Score(avgCPU float64, duration time.Duration) (int, types.Tier) {
	raw := 100 - avgCPU*(duration.Seconds()/60)
	score := int(math.Round(raw))
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	return score, tierFor(score)
}

// Build assembles the final report for a finished session.
//
// A session that never produced a valid CPU sample (the target vanished
// during warm-up, or the window was empty) has no defined CPU average; it is
// reported as a perfect score with InsufficientData set instead of dividing
// by nothing.
func Build(h Header, elapsed time.Duration, stats types.RunningStats, earlyExit bool) types.Report {
	r := types.Report{
		ProcessName: h.Name,
		PID:         h.PID,
		Duration:    elapsed,
		Samples:     stats.Samples,
		EarlyExit:   earlyExit,
		AvgMemory:   stats.AvgMemory(),
		PeakMemory:  stats.MemPeak,
	}
	if stats.CPUSamples == 0 || elapsed <= 0 {
		r.Score = 100
		r.Tier = types.TierExcellent
		r.InsufficientData = true
		return r
	}
	r.AvgCPU = stats.AvgCPU()
	r.PeakCPU = stats.CPUPeak
	r.CPUSeconds = r.AvgCPU / 100 * elapsed.Seconds()
	r.Score, r.Tier = Score(r.AvgCPU, elapsed)
	return r
}

// Header carries the identity a report is built for.
type Header struct {
	PID  int32
	Name string
}
