// Package session provides abstractions for running long-lived services in
// terminal sessions. The primary implementation is tmux, but this abstraction
// allows for testing with doubles and potentially other terminal multiplexers
// (e.g., zellij).
package session

// SessionID identifies a session.
// This is an opaque identifier returned by List() and Start(), and passed to
// other methods to specify which session to operate on.
type SessionID string

// Info contains information about a session.
type Info struct {
	Name     string // Session name
	Created  string // Creation time (format varies by implementation)
	Attached bool   // Whether someone is attached
	Windows  int    // Number of windows
}

// Sessions is the portable interface for managing a collection of terminal
// sessions. It abstracts the underlying session manager (tmux, zellij, etc.).
//
// This interface manages a collection of named sessions. Methods that operate
// on a specific session take a SessionID parameter. Use List() to get existing
// session IDs, or Start() to create a new session and get its ID.
//
// Start fails on a duplicate name; the supervisor layer builds
// replace-if-exists semantics on top of this.
type Sessions interface {
	// Lifecycle
	Start(name, workDir, command string) (SessionID, error)
	Stop(id SessionID) error
	Exists(id SessionID) (bool, error)

	// Observation
	Capture(id SessionID, lines int) (string, error)

	// Management
	List() ([]SessionID, error)
	GetInfo(id SessionID) (*Info, error)
}
