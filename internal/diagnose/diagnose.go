// Package diagnose collects best-effort state when the readiness poller
// times out. It is purely observational: it performs no corrective action,
// never returns an error, and surfaces whatever it can find for a human to
// act on.
package diagnose

import (
	"log/slog"

	"github.com/nbup/nbup/internal/session"
	"github.com/shirou/gopsutil/v3/process"
)

// DefaultCaptureLines is how much of the pane's recent output is captured.
const DefaultCaptureLines = 80

// Dump is the diagnostic state collected on poller timeout.
type Dump struct {
	Sessions  []session.SessionID // all active sessions, nil if listing failed
	Pane      string              // recent output of the launched session's pane
	Processes []ProcessInfo       // process tree under the pane, when resolvable
}

// ProcessInfo describes one process found under the session's pane.
type ProcessInfo struct {
	PID     int32
	Name    string
	Cmdline string
}

// panePIDer is implemented by backends that can resolve a session's pane PID
// (the tmux backend can; the test double cannot).
type panePIDer interface {
	PanePID(id session.SessionID) (int, error)
}

// Collect gathers diagnostic state for a session. Every sub-query is
// best-effort; failures are logged at debug level and leave the
// corresponding field zero.
func Collect(sessions session.Sessions, id session.SessionID, lines int) *Dump {
	if lines <= 0 {
		lines = DefaultCaptureLines
	}
	d := &Dump{}

	if ids, err := sessions.List(); err == nil {
		d.Sessions = ids
	} else {
		slog.Debug("diagnostics: listing sessions failed", "error", err)
	}

	if out, err := sessions.Capture(id, lines); err == nil {
		d.Pane = out
	} else {
		slog.Debug("diagnostics: capturing pane failed", "session", id, "error", err)
	}

	if pider, ok := sessions.(panePIDer); ok {
		if pid, err := pider.PanePID(id); err == nil {
			d.Processes = processTree(int32(pid))
		} else {
			slog.Debug("diagnostics: resolving pane pid failed", "session", id, "error", err)
		}
	}

	return d
}

// processTree returns the process at pid and its descendants. Tells the
// operator whether the notebook server is actually alive under the pane even
// though it never showed up in the status listing.
func processTree(pid int32) []ProcessInfo {
	proc, err := process.NewProcess(pid)
	if err != nil {
		slog.Debug("diagnostics: pane process gone", "pid", pid, "error", err)
		return nil
	}

	var out []ProcessInfo
	var walk func(p *process.Process)
	walk = func(p *process.Process) {
		info := ProcessInfo{PID: p.Pid}
		if name, err := p.Name(); err == nil {
			info.Name = name
		}
		if cmdline, err := p.Cmdline(); err == nil {
			info.Cmdline = cmdline
		}
		out = append(out, info)

		children, err := p.Children()
		if err != nil {
			return
		}
		for _, child := range children {
			walk(child)
		}
	}
	walk(proc)
	return out
}
