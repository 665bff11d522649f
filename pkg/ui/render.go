// Package ui formats reports, process listings, and shell messages for the
// terminal. The rest of the program depends on the Renderer only; nothing
// else writes escape codes.
package ui

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/serene-interactive/seagreen/pkg/types"
)

// Renderer formats terminal output, optionally colorized.
type Renderer struct {
	color bool
}

// NewRenderer returns a renderer. Pass color=false when stdout is not a
// terminal or colors are disabled by config.
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

func (r *Renderer) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + reset
}

// Report renders the two-column efficiency report with its score line.
func (r *Renderer) Report(rep types.Report) string {
	var buf bytes.Buffer
	buf.WriteString("\n")

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Process\t%s (pid %d)\n", rep.ProcessName, rep.PID)
	fmt.Fprintf(tw, "  Duration\t%.1fs\n", rep.Duration.Seconds())
	fmt.Fprintf(tw, "  Samples\t%d\n", rep.Samples)
	if !rep.InsufficientData {
		fmt.Fprintf(tw, "  Avg CPU\t%.1f%%\n", rep.AvgCPU)
		fmt.Fprintf(tw, "  Peak CPU\t%.1f%%\n", rep.PeakCPU)
	}
	fmt.Fprintf(tw, "  Avg Memory\t%.1f MB\n", rep.AvgMemory/(1<<20))
	fmt.Fprintf(tw, "  Peak Memory\t%.1f MB\n", float64(rep.PeakMemory)/(1<<20))
	if !rep.InsufficientData {
		fmt.Fprintf(tw, "  CPU-Seconds\t%.2f\n", rep.CPUSeconds)
	}
	tw.Flush()

	buf.WriteString("\n")
	fmt.Fprintf(&buf, "  %s %s\n",
		r.paint(bold+sereneGreen, "Efficiency:"),
		r.paint(bold, fmt.Sprintf("%d/100", rep.Score)))
	fmt.Fprintf(&buf, "  %s %s\n",
		r.paint(bold+sereneGreen, "Rating:"),
		r.paint(bold+tierColor(rep.Tier), tierLabel(rep.Tier)))

	if rep.InsufficientData {
		fmt.Fprintf(&buf, "  %s\n", r.paint(dim, "(insufficient data: no full sampling window was observed)"))
	} else if rep.EarlyExit {
		fmt.Fprintf(&buf, "  %s\n", r.paint(dim, "(process exited early; report covers the observed window)"))
	}
	buf.WriteString("\n")
	return buf.String()
}

func tierColor(t types.Tier) string {
	switch t {
	case types.TierExcellent:
		return seafoam
	case types.TierGood:
		return leafGreen
	case types.TierFair:
		return amber
	default:
		return alertRed
	}
}

func tierLabel(t types.Tier) string {
	switch t {
	case types.TierExcellent:
		return "🌿🌿🌿 " + t.String()
	case types.TierGood:
		return "🌿🌿 " + t.String()
	case types.TierFair:
		return "🌿 " + t.String()
	default:
		return "🍂 " + t.String()
	}
}

// ProcessTable renders /list rows.
func (r *Renderer) ProcessTable(rows []types.ProcessInfo) string {
	if len(rows) == 0 {
		return r.Info("No matching processes found.") + "\n"
	}
	var buf bytes.Buffer
	buf.WriteString("\n")
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\n", r.paint(bold, "PID"), r.paint(bold, "PROCESS"))
	for _, row := range rows {
		fmt.Fprintf(tw, "  %d\t%s\n", row.PID, row.Name)
	}
	tw.Flush()
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "  %s\n\n", r.paint(dim, "Use /track <pid> to monitor one"))
	return buf.String()
}

// Progress renders one in-place progress update for an active session.
func (r *Renderer) Progress(elapsed, total time.Duration) string {
	return fmt.Sprintf("\r  %s", r.paint(oceanTeal,
		fmt.Sprintf("Tracking... %.1fs / %.0fs", elapsed.Seconds(), total.Seconds())))
}

// TrackingStarted announces a new session.
func (r *Renderer) TrackingStarted(pid int32, total time.Duration) string {
	return fmt.Sprintf("\n  %s\n  %s\n",
		r.paint(bold+sereneGreen, fmt.Sprintf("Monitoring pid %d for %.0fs...", pid, total.Seconds())),
		r.paint(dim, "Press Ctrl+C to stop early"))
}

// Help renders the command reference.
func (r *Renderer) Help() string {
	var buf bytes.Buffer
	buf.WriteString("\n" + r.paint(bold+sereneGreen, "  Seagreen commands:") + "\n\n")
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  /list\tshow processes you can track\n")
	fmt.Fprintf(tw, "  /track <pid> [seconds]\tmonitor a process (default %ds)\n", types.DefaultTrackSeconds)
	fmt.Fprintf(tw, "  /help\tshow this help message\n")
	fmt.Fprintf(tw, "  /quit\texit seagreen\n")
	tw.Flush()
	buf.WriteString("\n  Examples:\n")
	buf.WriteString("    /track 1234      monitor pid 1234 for 10 seconds\n")
	buf.WriteString("    /track 1234 30   monitor pid 1234 for 30 seconds\n\n")
	return buf.String()
}

// Error renders a failure message.
func (r *Renderer) Error(msg string) string {
	return "  " + r.paint(bold+alertRed, msg) + "\n"
}

// Info renders a neutral informational message.
func (r *Renderer) Info(msg string) string {
	return "  " + r.paint(sereneGreen, msg) + "\n"
}

// Goodbye renders the exit message.
func (r *Renderer) Goodbye() string {
	return r.paint(bold+seafoam, "Goodbye! 🌊") + "\n"
}

// Prompt renders the interactive prompt.
func (r *Renderer) Prompt() string {
	return r.paint(bold+seafoam, "seagreen> ")
}
