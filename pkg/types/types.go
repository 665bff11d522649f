package types

import "time"

// DefaultTrackSeconds is the tracking window used when /track is given no duration.
const DefaultTrackSeconds = 10

// DefaultListLimit caps how many rows /list prints.
const DefaultListLimit = 20

// ProcessInfo describes one row of the OS process table.
type ProcessInfo struct {
	PID  int32
	Name string
}

// Usage is one raw reading for a process: cumulative CPU time since the
// process started, plus its current resident set size.
type Usage struct {
	CPUTime time.Duration
	RSS     uint64
}

// Observation is a single tick's reading. CPUPercent is relative to one core
// (100 means one full core busy; multithreaded processes can exceed 100).
// CPUValid is false for a warm-up sample, where no previous cumulative CPU
// reading exists to take a delta against.
type Observation struct {
	Timestamp  time.Time
	CPUPercent float64
	CPUValid   bool
	RSSBytes   uint64
}

// RunningStats accumulates observations for one session in O(1) memory.
// Samples counts every ingested observation; CPUSamples counts only the ones
// carrying a valid CPU delta.
type RunningStats struct {
	Samples    uint64
	CPUSamples uint64
	CPUSum     float64
	CPUPeak    float64
	MemSum     uint64
	MemPeak    uint64
}

// AvgCPU returns the mean CPU percentage over valid CPU samples, or 0 when
// none were collected.
func (s RunningStats) AvgCPU() float64 {
	if s.CPUSamples == 0 {
		return 0
	}
	return s.CPUSum / float64(s.CPUSamples)
}

// AvgMemory returns the mean resident memory in bytes, or 0 without samples.
func (s RunningStats) AvgMemory() float64 {
	if s.Samples == 0 {
		return 0
	}
	return float64(s.MemSum) / float64(s.Samples)
}

// Tier buckets a numeric efficiency score into a qualitative label.
type Tier int

const (
	TierNeedsWork Tier = iota
	TierFair
	TierGood
	TierExcellent
)

func (t Tier) String() string {
	switch t {
	case TierExcellent:
		return "Excellent"
	case TierGood:
		return "Good"
	case TierFair:
		return "Fair"
	default:
		return "Needs Work"
	}
}

// Report is the immutable outcome of one tracking session.
//
// Duration is the window actually observed, which is shorter than requested
// when the target exits early (EarlyExit). InsufficientData marks sessions
// that never produced a valid CPU sample; their Score defaults to a perfect
// 100 rather than dividing an empty window.
type Report struct {
	ProcessName      string
	PID              int32
	Duration         time.Duration
	Samples          uint64
	AvgCPU           float64
	PeakCPU          float64
	AvgMemory        float64
	PeakMemory       uint64
	CPUSeconds       float64
	Score            int
	Tier             Tier
	EarlyExit        bool
	InsufficientData bool
}
