// Package proctable wraps the OS process table behind the small surface the
// tracker needs: enumeration for /list, one-time resolution of a target, and
// point-in-time usage readings for the sampler.
package proctable

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/serene-interactive/seagreen/pkg/types"
)

// Error taxonomy surfaced to the shell. ErrProcessGone is an expected
// mid-session condition, not a failure: the session completes with whatever
// it has observed so far.
var (
	ErrNoSuchProcess    = errors.New("no such process")
	ErrProcessGone      = errors.New("process gone")
	ErrPermissionDenied = errors.New("permission denied")
)

// Handle identifies a resolved target process for one tracking session. The
// display name is cached at resolution time so reports stay readable even if
// the process exits mid-session.
type Handle struct {
	PID  int32
	Name string

	proc *process.Process
}

// Reader is the slice of the process table the tracker depends on.
type Reader interface {
	// List enumerates live processes as (pid, name) rows.
	List() ([]types.ProcessInfo, error)
	// Resolve validates that pid names a live process and caches its name.
	Resolve(pid int32) (*Handle, error)
	// ReadUsage reads cumulative CPU time and resident memory for a handle.
	ReadUsage(h *Handle) (types.Usage, error)
}

// TableReader implements Reader on top of gopsutil.
type TableReader struct{}

// New returns a Reader backed by the local OS process table.
func New() *TableReader {
	return &TableReader{}
}

// List enumerates live processes sorted by pid. Rows whose names cannot be
// read (typically other users' processes on a locked-down system) fall back
// to a pid-N placeholder instead of being dropped.
func (r *TableReader) List() ([]types.ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}
	rows := make([]types.ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || name == "" {
			name = fmt.Sprintf("pid-%d", p.Pid)
		}
		rows = append(rows, types.ProcessInfo{PID: p.Pid, Name: name})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].PID < rows[j].PID })
	return rows, nil
}

// Resolve validates pid against the live process table.
func (r *TableReader) Resolve(pid int32) (*Handle, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("pid %d: %w", pid, ErrNoSuchProcess)
	}
	proc, err := process.NewProcess(pid)
	if err != nil {
		if isPermission(err) {
			return nil, fmt.Errorf("pid %d: %w", pid, ErrPermissionDenied)
		}
		return nil, fmt.Errorf("pid %d: %w", pid, ErrNoSuchProcess)
	}
	name, err := proc.Name()
	if err != nil {
		if isPermission(err) {
			return nil, fmt.Errorf("pid %d: %w", pid, ErrPermissionDenied)
		}
		name = fmt.Sprintf("pid-%d", pid)
	}
	return &Handle{PID: pid, Name: name, proc: proc}, nil
}

// ReadUsage performs one point-in-time read of cumulative CPU time (user +
// system) and resident memory for the handle's process.
func (r *TableReader) ReadUsage(h *Handle) (types.Usage, error) {
	times, err := h.proc.Times()
	if err != nil {
		return types.Usage{}, usageError(h.PID, err)
	}
	mem, err := h.proc.MemoryInfo()
	if err != nil {
		return types.Usage{}, usageError(h.PID, err)
	}
	cpuTime := time.Duration((times.User + times.System) * float64(time.Second))
	return types.Usage{CPUTime: cpuTime, RSS: mem.RSS}, nil
}

// probeAlive allows tests to stub the liveness probe.
var probeAlive = pidAlive

// usageError classifies a failed usage read. A dead target is ErrProcessGone
// regardless of how the underlying read failed.
func usageError(pid int32, err error) error {
	if errors.Is(err, process.ErrorProcessNotRunning) || !probeAlive(pid) {
		return fmt.Errorf("pid %d: %w", pid, ErrProcessGone)
	}
	if isPermission(err) {
		return fmt.Errorf("pid %d: %w", pid, ErrPermissionDenied)
	}
	return fmt.Errorf("pid %d: reading usage: %w", pid, err)
}

func isPermission(err error) bool {
	return errors.Is(err, os.ErrPermission)
}
