// Package shell parses interactive slash commands and owns the read-eval
// loop. A /track command blocks the loop for the whole session; Ctrl+C
// during a session cancels just that session.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/serene-interactive/seagreen/pkg/config"
	"github.com/serene-interactive/seagreen/pkg/proctable"
	"github.com/serene-interactive/seagreen/pkg/session"
	"github.com/serene-interactive/seagreen/pkg/types"
	"github.com/serene-interactive/seagreen/pkg/ui"
)

// Recognized commands.
const (
	CmdList  = "/list"
	CmdTrack = "/track"
	CmdHelp  = "/help"
	CmdQuit  = "/quit"
)

// InvalidArgumentError reports a malformed command argument. Arguments are
// never silently coerced.
type InvalidArgumentError struct {
	Arg    string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Arg, e.Reason)
}

// Invocation is one parsed line of interactive input.
type Invocation struct {
	Command string
	Args    []string
}

// Parse splits a raw line into a command and its arguments. Blank lines
// report ok=false and are skipped by the loop.
func Parse(line string) (Invocation, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Invocation{}, false
	}
	return Invocation{Command: strings.ToLower(fields[0]), Args: fields[1:]}, true
}

// Dispatcher routes parsed commands to their handlers.
type Dispatcher struct {
	reader  proctable.Reader
	render  *ui.Renderer
	cfg     config.Config
	out     io.Writer
	prompt  bool
	selfPID int32

	// runSession allows tests to intercept the blocking tracking call.
	runSession func(ctx context.Context, pid int32, window time.Duration) (types.Report, error)
}

// NewDispatcher wires a dispatcher for the given process table and renderer.
// Output (reports, tables, progress) goes to out; prompt controls whether an
// interactive prompt is printed before each read.
func NewDispatcher(reader proctable.Reader, render *ui.Renderer, cfg config.Config, out io.Writer, prompt bool) *Dispatcher {
	d := &Dispatcher{
		reader:  reader,
		render:  render,
		cfg:     cfg,
		out:     out,
		prompt:  prompt,
		selfPID: int32(os.Getpid()),
	}
	d.runSession = d.runTrackingSession
	return d
}

// Run is the read-eval loop: read one line, dispatch, render, repeat until
// /quit or end-of-input. No command error terminates the loop.
func (d *Dispatcher) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if d.prompt {
			fmt.Fprint(d.out, d.render.Prompt())
		}
		if !scanner.Scan() {
			if d.prompt {
				fmt.Fprintln(d.out)
			}
			return scanner.Err()
		}
		out, quit := d.Dispatch(ctx, scanner.Text())
		fmt.Fprint(d.out, out)
		if quit || ctx.Err() != nil {
			return nil
		}
	}
}

// Dispatch handles one line of input and returns the rendered output plus
// whether the loop should terminate.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) (string, bool) {
	inv, ok := Parse(line)
	if !ok {
		return "", false
	}
	switch inv.Command {
	case CmdQuit, "/exit", "quit", "exit":
		return d.render.Goodbye(), true
	case CmdHelp:
		return d.render.Help(), false
	case CmdList:
		return d.handleList(), false
	case CmdTrack:
		return d.handleTrack(ctx, inv.Args), false
	default:
		return d.render.Error(fmt.Sprintf("Unknown command: %s. Type /help for commands.", inv.Command)), false
	}
}

func (d *Dispatcher) handleList() string {
	rows, err := d.reader.List()
	if err != nil {
		return d.render.Error(fmt.Sprintf("Listing processes failed: %v", err))
	}
	rows = filterRows(rows, d.cfg.ListFilter, d.cfg.ListLimit, d.selfPID)
	return d.render.ProcessTable(rows)
}

// filterRows hides the tracker itself, applies the optional name filter, and
// caps the row count.
func filterRows(rows []types.ProcessInfo, filter string, limit int, self int32) []types.ProcessInfo {
	filter = strings.ToLower(filter)
	out := make([]types.ProcessInfo, 0, len(rows))
	for _, row := range rows {
		if row.PID == self {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(row.Name), filter) {
			continue
		}
		out = append(out, row)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (d *Dispatcher) handleTrack(ctx context.Context, args []string) string {
	pid, window, err := parseTrackArgs(args, d.cfg.TrackSeconds)
	if err != nil {
		return d.render.Error(err.Error() + ". Usage: /track <pid> [seconds]")
	}

	// Validate the target before announcing anything, so a bad pid never
	// looks like a started session.
	if _, err := d.reader.Resolve(pid); err != nil {
		return d.renderTrackFailure(pid, err)
	}

	fmt.Fprint(d.out, d.render.TrackingStarted(pid, window))
	rep, err := d.runSession(ctx, pid, window)
	if err != nil {
		return d.renderTrackFailure(pid, err)
	}
	return d.render.Report(rep)
}

func (d *Dispatcher) renderTrackFailure(pid int32, err error) string {
	switch {
	case errors.Is(err, proctable.ErrNoSuchProcess):
		return d.render.Error(fmt.Sprintf("Process %d not found. Use /list to see available processes.", pid))
	case errors.Is(err, proctable.ErrPermissionDenied):
		return d.render.Error(fmt.Sprintf("Permission denied for process %d. Try a process you own.", pid))
	case errors.Is(err, context.Canceled):
		return d.render.Info("Tracking stopped.")
	default:
		return d.render.Error(fmt.Sprintf("Tracking failed: %v", err))
	}
}

// runTrackingSession blocks for the session's whole window. Ctrl+C aborts
// the session without leaving the shell.
func (d *Dispatcher) runTrackingSession(ctx context.Context, pid int32, window time.Duration) (types.Report, error) {
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	ctrl := session.New(d.reader, d.cfg.PollInterval, window)
	ctrl.OnTick = func(elapsed, total time.Duration) {
		fmt.Fprint(d.out, d.render.Progress(elapsed, total))
	}
	rep, err := ctrl.Run(sctx, pid)
	fmt.Fprintln(d.out)
	return rep, err
}

// parseTrackArgs validates /track's pid and optional seconds argument.
func parseTrackArgs(args []string, defaultSeconds int) (int32, time.Duration, error) {
	if len(args) == 0 {
		return 0, 0, &InvalidArgumentError{Arg: "pid", Reason: "required"}
	}
	if len(args) > 2 {
		return 0, 0, &InvalidArgumentError{Arg: strings.Join(args[2:], " "), Reason: "too many arguments"}
	}
	pid64, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil || pid64 <= 0 {
		return 0, 0, &InvalidArgumentError{Arg: args[0], Reason: "pid must be a positive integer"}
	}
	seconds := defaultSeconds
	if len(args) == 2 {
		seconds, err = strconv.Atoi(args[1])
		if err != nil || seconds <= 0 {
			return 0, 0, &InvalidArgumentError{Arg: args[1], Reason: "seconds must be a positive integer"}
		}
		if seconds > config.MaxTrackSeconds {
			return 0, 0, &InvalidArgumentError{Arg: args[1], Reason: fmt.Sprintf("seconds must be at most %d", config.MaxTrackSeconds)}
		}
	}
	return int32(pid64), time.Duration(seconds) * time.Second, nil
}
