package session

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// Double is an in-memory test double for the Sessions interface.
// It implements the same contract as real tmux but without subprocess overhead.
type Double struct {
	mu       sync.RWMutex
	sessions map[string]*doubleSession
}

type doubleSession struct {
	name     string
	workDir  string
	command  string
	buffer   []string // captured output lines
	attached bool     // simulates an operator attach
}

// NewDouble creates a new in-memory Sessions test double.
func NewDouble() *Double {
	return &Double{
		sessions: make(map[string]*doubleSession),
	}
}

// Ensure Double implements Sessions
var _ Sessions = (*Double)(nil)

// --- Lifecycle ---

// Start creates a new session. Fails if session name already exists.
func (d *Double) Start(name, workDir, command string) (SessionID, error) {
	if name == "" {
		return "", errors.New("session name cannot be empty")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.sessions[name]; exists {
		return "", errors.New("duplicate session: " + name)
	}

	d.sessions[name] = &doubleSession{
		name:    name,
		workDir: workDir,
		command: command,
		buffer:  []string{"$ "}, // simulate a fresh shell prompt
	}

	return SessionID(name), nil
}

// Stop terminates a session. Returns nil if session doesn't exist (idempotent).
func (d *Double) Stop(id SessionID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.sessions, string(id))
	return nil
}

// Exists checks if a session exists.
func (d *Double) Exists(id SessionID) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, exists := d.sessions[string(id)]
	return exists, nil
}

// --- Observation ---

// Capture returns the last N lines of the session buffer.
func (d *Double) Capture(id SessionID, lines int) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	sess, exists := d.sessions[string(id)]
	if !exists {
		return "", errors.New("session not found: " + string(id))
	}

	start := 0
	if len(sess.buffer) > lines {
		start = len(sess.buffer) - lines
	}

	result := ""
	for i := start; i < len(sess.buffer); i++ {
		if result != "" {
			result += "\n"
		}
		result += sess.buffer[i]
	}
	return result, nil
}

// CaptureAll returns the entire session buffer.
func (d *Double) CaptureAll(id SessionID) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	sess, exists := d.sessions[string(id)]
	if !exists {
		return "", errors.New("session not found: " + string(id))
	}

	return strings.Join(sess.buffer, "\n"), nil
}

// Attach marks the session as attached. The double has no terminal to hand
// over; GetInfo reflects the attach for verification.
func (d *Double) Attach(id SessionID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sess, exists := d.sessions[string(id)]
	if !exists {
		return errors.New("session not found: " + string(id))
	}

	sess.attached = true
	return nil
}

// --- Management ---

// List returns all session IDs.
func (d *Double) List() ([]SessionID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]SessionID, 0, len(d.sessions))
	for name := range d.sessions {
		ids = append(ids, SessionID(name))
	}
	return ids, nil
}

// GetInfo returns session information.
func (d *Double) GetInfo(id SessionID) (*Info, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	sess, exists := d.sessions[string(id)]
	if !exists {
		return nil, errors.New("session not found: " + string(id))
	}

	return &Info{
		Name:     sess.name,
		Created:  time.Now().Format(time.RFC3339),
		Attached: sess.attached,
		Windows:  1,
	}, nil
}

// --- Test helpers (not part of Sessions interface) ---

// SetBuffer sets the capture buffer for a session (for test setup).
func (d *Double) SetBuffer(id SessionID, lines []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sess, exists := d.sessions[string(id)]
	if !exists {
		return errors.New("session not found: " + string(id))
	}

	sess.buffer = lines
	return nil
}

// SessionCount returns the number of sessions (for test verification).
func (d *Double) SessionCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.sessions)
}

// GetCommand returns the command that was passed to Start (for test verification).
func (d *Double) GetCommand(id SessionID) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	sess, exists := d.sessions[string(id)]
	if !exists {
		return ""
	}

	return sess.command
}
