// Package supervisor ensures a named, detached session exists and runs a
// long-lived command inside it, isolated from the invoking shell's lifetime.
package supervisor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/nbup/nbup/internal/session"
)

// Supervisor manages replace-if-exists session semantics on top of a
// session.Sessions backend. After EnsureSession returns, exactly one session
// with the given name exists and is running.
type Supervisor struct {
	sessions session.Sessions
	lockDir  string
}

// New creates a Supervisor backed by the given Sessions implementation.
func New(sessions session.Sessions) *Supervisor {
	return &Supervisor{
		sessions: sessions,
		lockDir:  os.TempDir(),
	}
}

// WithLockDir overrides the directory used for per-session lock files.
// Used by tests to avoid touching the shared temp dir.
func (s *Supervisor) WithLockDir(dir string) *Supervisor {
	s.lockDir = dir
	return s
}

// EnsureSession guarantees that exactly one session named name exists and is
// executing command in workDir. Any prior session with the same name is
// forcibly terminated first, discarding its output history.
//
// The command runs inside a login-shell wrapper that changes into workDir
// before exec, so the session's working directory never depends on the
// supervisor's own context. There is no synchronous wait for the inner
// command to succeed; failures inside the session are only observable via
// subsequent polling or diagnostics.
//
// A per-name file lock serializes concurrent EnsureSession calls targeting
// the same name, so two provisioning runs cannot interleave kill and create.
func (s *Supervisor) EnsureSession(name, workDir, command string) (session.SessionID, error) {
	if name == "" {
		return "", fmt.Errorf("session name cannot be empty")
	}
	info, err := os.Stat(workDir)
	if err != nil {
		return "", fmt.Errorf("working directory %s: %w", workDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("working directory %s: not a directory", workDir)
	}

	lock := flock.New(filepath.Join(s.lockDir, "nbup-"+name+".lock"))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("acquiring session lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	// Replace-if-exists: kill any prior session, running or dead-but-registered.
	exists, err := s.sessions.Exists(session.SessionID(name))
	if err != nil {
		return "", fmt.Errorf("checking session %s: %w", name, err)
	}
	if exists {
		if err := s.sessions.Stop(session.SessionID(name)); err != nil {
			return "", fmt.Errorf("replacing session %s: %w", name, err)
		}
	}

	id, err := s.sessions.Start(name, workDir, LoginShellCommand(workDir, command))
	if err != nil {
		return "", fmt.Errorf("creating session %s: %w", name, err)
	}
	return id, nil
}

// LoginShellCommand wraps command in a login shell that changes into workDir
// before exec. The explicit cd guards against working-directory mismatches
// between the supervisor's context and the session's context.
func LoginShellCommand(workDir, command string) string {
	return "bash -lc " + shellEscape("cd "+shellEscape(workDir)+" && exec "+command)
}

// shellEscape escapes a string for safe use in shell commands.
func shellEscape(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}
