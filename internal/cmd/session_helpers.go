package cmd

import (
	"os"
	"path/filepath"

	"github.com/nbup/nbup/internal/session"
	"github.com/nbup/nbup/internal/tmux"
)

// sessionsProvider is a function that creates a Sessions instance.
// This can be overridden in tests to inject a double.
var sessionsProvider = func() session.Sessions {
	return tmux.NewTmux()
}

// newSessions returns a Sessions instance for terminal operations.
// Uses sessionsProvider which can be overridden in tests.
func newSessions() session.Sessions {
	return sessionsProvider()
}

// resolveWorkDir returns the absolute working directory for a run: the --dir
// flag value when set, the current directory otherwise.
func resolveWorkDir(dirFlag string) (string, error) {
	dir := dirFlag
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = cwd
	}
	return filepath.Abs(dir)
}
