// Package report renders the operator-facing provisioning reports.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/nbup/nbup/internal/diagnose"
	"github.com/nbup/nbup/internal/notebook"
	"github.com/nbup/nbup/internal/style"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Success is the connection report emitted when the poller finds the server.
type Success struct {
	RunID   string
	Project string
	WorkDir string
	Session string
	Record  notebook.ServiceRecord
	Attempt int
	Elapsed time.Duration
}

// WriteSuccess renders the success report to w.
func WriteSuccess(w io.Writer, s Success) {
	fmt.Fprintf(w, "\n%s %s\n\n",
		style.Success.Render("✓"),
		style.Bold.Render(titleCaser.String(s.Project)+" notebook is ready"))

	fmt.Fprintf(w, "  Project:   %s\n", s.Project)
	fmt.Fprintf(w, "  Directory: %s\n", s.WorkDir)
	fmt.Fprintf(w, "  Session:   %s\n", s.Session)
	fmt.Fprintf(w, "  Port:      %d\n", s.Record.Port)
	fmt.Fprintf(w, "  Status:    %s\n", style.Dim.Render(s.Record.Raw))
	fmt.Fprintf(w, "\n  Open %s\n", style.URL.Render(s.Record.LocalURL()))
	fmt.Fprintf(w, "\n%s\n",
		style.Dim.Render(fmt.Sprintf("ready after %d attempt(s) in %s · run %s",
			s.Attempt, s.Elapsed.Round(time.Millisecond), s.RunID)))
}

// Timeout is the diagnostic report emitted when the poller gives up.
// The server may still become usable later; this report only surfaces state.
type Timeout struct {
	RunID    string
	Project  string
	Session  string
	Port     int
	Attempts int
	Interval time.Duration
	Dump     *diagnose.Dump
}

// WriteTimeout renders the timeout report to w.
func WriteTimeout(w io.Writer, t Timeout) {
	fmt.Fprintf(w, "\n%s %s\n\n",
		style.Error.Render("✗"),
		style.Bold.Render(fmt.Sprintf("notebook on port %d not ready after %d attempts (%s)",
			t.Port, t.Attempts, time.Duration(t.Attempts)*t.Interval)))

	fmt.Fprintf(w, "The server may still be starting; it can become reachable later.\n")
	fmt.Fprintf(w, "Check progress with: nbup logs %s\n\n", t.Project)

	if t.Dump == nil {
		return
	}

	fmt.Fprintf(w, "%s\n", style.Bold.Render("Active sessions:"))
	if len(t.Dump.Sessions) == 0 {
		fmt.Fprintf(w, "  %s\n", style.Dim.Render("(none)"))
	}
	for _, id := range t.Dump.Sessions {
		fmt.Fprintf(w, "  %s\n", id)
	}

	if len(t.Dump.Processes) > 0 {
		fmt.Fprintf(w, "\n%s\n", style.Bold.Render("Processes under the session pane:"))
		for _, p := range t.Dump.Processes {
			fmt.Fprintf(w, "  %6d  %s  %s\n", p.PID, p.Name, style.Dim.Render(p.Cmdline))
		}
	}

	fmt.Fprintf(w, "\n%s\n", style.Bold.Render(fmt.Sprintf("Last output of %s:", t.Session)))
	if t.Dump.Pane == "" {
		fmt.Fprintf(w, "  %s\n", style.Dim.Render("(no output captured)"))
	} else {
		fmt.Fprintln(w, t.Dump.Pane)
	}

	fmt.Fprintf(w, "\n%s\n", style.Dim.Render("run "+t.RunID))
}
