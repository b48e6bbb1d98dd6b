// Package tmux provides a wrapper for tmux session operations via subprocess.
package tmux

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/nbup/nbup/internal/session"
)

// Sentinel errors for tmux failure modes, detected from stderr text.
var (
	// ErrNoServer indicates no tmux server is running (no sessions exist).
	ErrNoServer = errors.New("no tmux server running")
	// ErrSessionExists indicates a session with the requested name exists.
	ErrSessionExists = errors.New("session already exists")
	// ErrSessionNotFound indicates the target session does not exist.
	ErrSessionNotFound = errors.New("session not found")
)

// Compile-time check that *Tmux implements session.Sessions.
var _ session.Sessions = (*Tmux)(nil)

// Tmux wraps local tmux operations. All commands are executed as subprocesses
// of the tmux binary found on PATH.
type Tmux struct {
	bin string
}

// NewTmux creates a new local tmux wrapper.
func NewTmux() *Tmux {
	return &Tmux{bin: "tmux"}
}

// run executes a tmux command and returns trimmed stdout.
func (t *Tmux) run(args ...string) (string, error) {
	cmd := exec.Command(t.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", t.wrapError(err, stderr.String(), args)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// wrapError wraps tmux errors with context.
func (t *Tmux) wrapError(err error, stderr string, args []string) error {
	stderr = strings.TrimSpace(stderr)

	if strings.Contains(stderr, "no server running") ||
		strings.Contains(stderr, "error connecting to") {
		return ErrNoServer
	}
	if strings.Contains(stderr, "duplicate session") {
		return ErrSessionExists
	}
	if strings.Contains(stderr, "session not found") ||
		strings.Contains(stderr, "can't find session") {
		return ErrSessionNotFound
	}

	if stderr != "" {
		return fmt.Errorf("tmux %s: %s", args[0], stderr)
	}
	return fmt.Errorf("tmux %s: %w", args[0], err)
}

// Start creates a new detached session. The command runs directly as the
// initial process of the pane, so the session dies when the command exits.
func (t *Tmux) Start(name, workDir, command string) (session.SessionID, error) {
	args := []string{"new-session", "-d", "-s", name}
	if workDir != "" {
		args = append(args, "-c", workDir)
	}
	args = append(args, command)

	_, err := t.run(args...)
	if err != nil {
		return "", err
	}

	return session.SessionID(name), nil
}

// Stop terminates a session. Descendant processes of the pane are killed
// best-effort first so the notebook server doesn't outlive its session.
func (t *Tmux) Stop(id session.SessionID) error {
	name := string(id)

	if pid, err := t.getPanePID(name); err == nil && pid != "" {
		killCmd := fmt.Sprintf(
			"for p in $(pgrep -P %s 2>/dev/null); do kill -TERM $p 2>/dev/null; done; "+
				"sleep 0.1; "+
				"for p in $(pgrep -P %s 2>/dev/null); do kill -KILL $p 2>/dev/null; done",
			pid, pid)
		_ = exec.Command("sh", "-c", killCmd).Run() // Best effort
	}

	_, err := t.run("kill-session", "-t", name)
	if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrNoServer) {
		return nil // Session already gone
	}
	return err
}

// Exists checks if a session exists (exact match).
func (t *Tmux) Exists(id session.SessionID) (bool, error) {
	_, err := t.run("has-session", "-t", "="+string(id))
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrNoServer) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Capture captures the last N lines of a pane, including scrollback.
func (t *Tmux) Capture(id session.SessionID, lines int) (string, error) {
	return t.run("capture-pane", "-p", "-t", string(id), "-S", fmt.Sprintf("-%d", lines))
}

// CaptureAll captures all scrollback history from a pane.
func (t *Tmux) CaptureAll(id session.SessionID) (string, error) {
	return t.run("capture-pane", "-p", "-t", string(id), "-S", "-")
}

// List returns all session IDs.
func (t *Tmux) List() ([]session.SessionID, error) {
	out, err := t.run("list-sessions", "-F", "#{session_name}")
	if err != nil {
		if errors.Is(err, ErrNoServer) {
			return nil, nil // No server = no sessions
		}
		return nil, err
	}

	if out == "" {
		return nil, nil
	}

	names := strings.Split(out, "\n")
	ids := make([]session.SessionID, len(names))
	for i, name := range names {
		ids[i] = session.SessionID(name)
	}
	return ids, nil
}

// GetInfo returns detailed information about a session.
func (t *Tmux) GetInfo(id session.SessionID) (*session.Info, error) {
	name := string(id)
	format := "#{session_name}|#{session_windows}|#{session_created_string}|#{session_attached}"
	out, err := t.run("list-sessions", "-F", format, "-f", fmt.Sprintf("#{==:#{session_name},%s}", name))
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, ErrSessionNotFound
	}

	parts := strings.Split(out, "|")
	if len(parts) < 4 {
		return nil, fmt.Errorf("unexpected session info format: %s", out)
	}

	windows := 0
	_, _ = fmt.Sscanf(parts[1], "%d", &windows)

	return &session.Info{
		Name:     parts[0],
		Windows:  windows,
		Created:  parts[2],
		Attached: parts[3] == "1",
	}, nil
}

// Attach attaches the current terminal to a session.
func (t *Tmux) Attach(id session.SessionID) error {
	cmd := exec.Command(t.bin, "attach", "-t", string(id))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Helper methods

// getPanePID returns the PID of the pane's main process.
func (t *Tmux) getPanePID(sess string) (string, error) {
	out, err := t.run("list-panes", "-t", sess, "-F", "#{pane_pid}")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// PanePID returns the pane's main process PID as an integer.
// Used by diagnostics to inspect the process tree under the session.
func (t *Tmux) PanePID(id session.SessionID) (int, error) {
	out, err := t.getPanePID(string(id))
	if err != nil {
		return 0, err
	}
	pid := 0
	if _, err := fmt.Sscanf(out, "%d", &pid); err != nil {
		return 0, fmt.Errorf("parsing pane pid %q: %w", out, err)
	}
	return pid, nil
}
